package view

import (
	"github.com/gofiber/fiber/v2"
)

type ViewApi struct {
	ViewController *ViewController
}

func NewViewApi(viewController *ViewController) *ViewApi {
	return &ViewApi{
		ViewController: viewController,
	}
}

func (api *ViewApi) Setup(app *fiber.App) {
	group := app.Group("/api/views")

	group.Get("/", api.ViewController.ListViews)
	group.Get("/data", api.ViewController.ReadView)
	group.Post("/", api.ViewController.CreateView)
	group.Put("/", api.ViewController.UpdateView)
	group.Delete("/", api.ViewController.DeleteView)
	group.Post("/move", api.ViewController.MoveView)
}
