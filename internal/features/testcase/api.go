package testcase

import (
	"github.com/gofiber/fiber/v2"
)

type ReportApi struct {
	ReportController *ReportController
}

func NewReportApi(reportController *ReportController) *ReportApi {
	return &ReportApi{
		ReportController: reportController,
	}
}

func (api *ReportApi) Setup(app *fiber.App) {
	group := app.Group("/api/testcases")

	group.Post("/report", api.ReportController.GetReport)
	group.Post("/export", api.ReportController.ExportReport)
}
