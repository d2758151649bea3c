package audit

import (
	"github.com/DiegoBrito17/caixapro/internal/database"
	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/audit-logs?entity_type=venda&entity_id=10&limit=100
func ListAuditLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if et := c.Query("entity_type"); et != "" {
			dbq = dbq.Where("entity_type = ?", et)
		}
		if eid := c.QueryInt("entity_id"); eid > 0 {
			dbq = dbq.Where("entity_id = ?", eid)
		}

		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Limit(limit).Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Não foi possível listar os logs")
		}

		return c.JSON(logs)
	}
}
