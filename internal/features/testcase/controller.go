package testcase

import (
	"fmt"

	"go-reporting/internal/features/view"

	"github.com/gofiber/fiber/v2"
)

type ReportController struct {
	ReportService ReportService
}

func NewReportController(reportService ReportService) *ReportController {
	return &ReportController{
		ReportService: reportService,
	}
}

// GetReport godoc
// @Summary      Fetch testcase results
// @Description  Search failures produce an empty report, never an error status
// @Tags         testcases
// @Accept       json
// @Produce      json
// @Param        body  body  testcase.ReportRequest  false  "Report filters"
// @Success      200  {object}  testcase.ReportPayload
// @Failure      409  {object}  map[string]string
// @Router       /api/testcases/report [post]
func (c *ReportController) GetReport(ctx *fiber.Ctx) error {
	req, err := ParseReportRequest(ctx.Body())
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	payload, err := c.ReportService.GetReport(ctx.UserContext(), req)
	if err != nil {
		return ctx.Status(view.StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return ctx.JSON(payload)
}

// ExportReport godoc
// @Summary      Export testcase results as xlsx
// @Tags         testcases
// @Accept       json
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        body  body  testcase.ReportRequest  false  "Report filters"
// @Router       /api/testcases/export [post]
func (c *ReportController) ExportReport(ctx *fiber.Ctx) error {
	req, err := ParseReportRequest(ctx.Body())
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}

	data, filename, err := c.ReportService.ExportReport(ctx.UserContext(), req)
	if err != nil {
		return ctx.Status(view.StatusFor(err)).JSON(fiber.Map{"error": err.Error()})
	}

	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	return ctx.Send(data)
}
