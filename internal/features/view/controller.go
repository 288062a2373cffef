package view

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type ViewController struct {
	ViewService ViewService
}

func NewViewController(viewService ViewService) *ViewController {
	return &ViewController{
		ViewService: viewService,
	}
}

// StatusFor maps view store errors to HTTP status codes.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrDuplicateView):
		return fiber.StatusConflict
	case errors.Is(err, ErrSchemaMismatch), errors.Is(err, ErrIsAFolder), errors.Is(err, ErrInvalidPath):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(ctx *fiber.Ctx, err error) error {
	return ctx.Status(StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
}

// ListViews godoc
// @Summary      List folders and views
// @Tags         views
// @Produce      json
// @Param        path  query  string  false  "Folder path relative to the views root"
// @Success      200  {object}  view.Listing
// @Router       /api/views [get]
func (c *ViewController) ListViews(ctx *fiber.Ctx) error {
	listing, err := c.ViewService.ListViews(ctx.UserContext(), ctx.Query("path"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(listing)
}

// ReadView godoc
// @Summary      Read the filters of a view
// @Tags         views
// @Produce      json
// @Param        view    query  string  true   "folder/name of the view"
// @Param        strict  query  bool    false  "false returns {} for missing views"
// @Router       /api/views/data [get]
func (c *ViewController) ReadView(ctx *fiber.Ctx) error {
	strict := ctx.QueryBool("strict", true)
	filters, err := c.ViewService.ReadView(ctx.UserContext(), ctx.Query("view"), strict)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(filters)
}

// CreateView godoc
// @Summary      Create a view, rejecting duplicates
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        body  body  view.SaveRequest  true  "folder, view and filters"
// @Router       /api/views [post]
func (c *ViewController) CreateView(ctx *fiber.Ctx) error {
	payload, err := decodePayload(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	saved, err := c.ViewService.CreateView(ctx.UserContext(), payload)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(saved)
}

// UpdateView godoc
// @Summary      Overwrite a view
// @Tags         views
// @Accept       json
// @Produce      json
// @Param        body  body  view.SaveRequest  true  "folder, view and filters"
// @Router       /api/views [put]
func (c *ViewController) UpdateView(ctx *fiber.Ctx) error {
	payload, err := decodePayload(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	saved, err := c.ViewService.UpdateView(ctx.UserContext(), payload)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(saved)
}

// DeleteView godoc
// @Summary      Delete a view or a folder tree
// @Tags         views
// @Param        path  query  string  true  "View or folder path"
// @Router       /api/views [delete]
func (c *ViewController) DeleteView(ctx *fiber.Ctx) error {
	path := ctx.Query("path")
	if path == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "path parameter required"})
	}
	if err := c.ViewService.DeleteView(ctx.UserContext(), path); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// MoveView godoc
// @Summary      Move a view or folder into an existing folder
// @Tags         views
// @Accept       json
// @Param        body  body  view.MoveRequest  true  "src and dest"
// @Router       /api/views/move [post]
func (c *ViewController) MoveView(ctx *fiber.Ctx) error {
	var req MoveRequest
	if err := ctx.BodyParser(&req); err != nil || req.Src == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := c.ViewService.MoveView(ctx.UserContext(), req.Src, req.Dest); err != nil {
		return fail(ctx, err)
	}
	return ctx.SendStatus(fiber.StatusNoContent)
}

// decodePayload keeps the raw key set so the save structure can be validated.
func decodePayload(ctx *fiber.Ctx) (map[string]any, error) {
	payload := map[string]any{}
	if err := json.Unmarshal(ctx.Body(), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
