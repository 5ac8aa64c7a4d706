package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// LogController exposes the append-only event log to administrators.
type LogController struct {
	DB *gorm.DB
}

func NewLogController(db *gorm.DB) *LogController {
	return &LogController{DB: db}
}

// GetLogs lists audit entries, newest first. Optional query filters:
// action_type, username, limit (default 200).
func (c *LogController) GetLogs(ctx *fiber.Ctx) error {
	limit := 200
	if raw := ctx.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid limit"})
		}
		limit = parsed
	}

	query := c.DB.Model(&Models.EventLogEntry{}).Order("timestamp DESC, id DESC").Limit(limit)
	if actionType := ctx.Query("action_type"); actionType != "" {
		query = query.Where("action_type = ?", actionType)
	}
	if username := ctx.Query("username"); username != "" {
		query = query.Where("username = ?", username)
	}

	var entries []Models.EventLogEntry
	if err := query.Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}
	return ctx.JSON(entries)
}

// GetLogStats returns entry counts grouped by action type.
func (c *LogController) GetLogStats(ctx *fiber.Ctx) error {
	var entries []Models.EventLogEntry
	if err := c.DB.Find(&entries).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve logs"})
	}

	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.ActionType]++
	}
	return ctx.JSON(fiber.Map{
		"total":     len(entries),
		"by_action": counts,
	})
}
