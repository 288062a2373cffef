package index

import (
	"github.com/gofiber/fiber/v2"
)

type IndexController struct {
	Service IndexService
}

func NewIndexController(service IndexService) *IndexController {
	return &IndexController{Service: service}
}

// Bootstrap godoc
// @Summary      Re-run the index template and index creation
// @Description  Failures of either step are reported but never turn into an error status
// @Tags         index
// @Produce      json
// @Router       /api/index/bootstrap [post]
func (c *IndexController) Bootstrap(ctx *fiber.Ctx) error {
	result := c.Service.EnsureReady(ctx.UserContext())
	return ctx.JSON(fiber.Map{
		"template": stepJSON(result.Template),
		"index":    stepJSON(result.Index),
	})
}

func stepJSON(r StepResult) fiber.Map {
	return fiber.Map{
		"step":    r.Step,
		"ignored": r.Ignored(),
		"reason":  r.Reason(),
	}
}
