package index

import (
	"github.com/gofiber/fiber/v2"
)

type IndexApi struct {
	controller *IndexController
}

func NewIndexApi(controller *IndexController) *IndexApi {
	return &IndexApi{controller: controller}
}

func (api *IndexApi) Setup(app *fiber.App) {
	app.Post("/api/index/bootstrap", api.controller.Bootstrap)
}
