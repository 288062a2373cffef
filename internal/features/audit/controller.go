package audit

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type AuditController struct {
	Service AuditService
}

func NewAuditController(service AuditService) *AuditController {
	return &AuditController{Service: service}
}

// ListLogs godoc
// @Summary      List audit entries
// @Tags         audit
// @Produce      json
// @Param        module     query  string  false  "views or index"
// @Param        record_id  query  string  false  "View path or index name"
// @Param        page       query  int     false  "Page"
// @Param        limit      query  int     false  "Page size"
// @Router       /api/audit [get]
func (ctrl *AuditController) ListLogs(c *fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filters := make(map[string]interface{})
	if module := c.Query("module"); module != "" {
		if !KnownModule(module) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "unknown module " + module + ", expected " + ModuleViews + " or " + ModuleIndex,
			})
		}
		filters["module"] = module
	}
	// record_id is a view path for views and an index name for index.
	if recordID := c.Query("record_id"); recordID != "" {
		filters["record_id"] = recordID
	}

	logs, err := ctrl.Service.ListLogs(c.UserContext(), filters, page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(logs)
}
