package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// DashboardController serves the aggregate snapshot behind the dashboard.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

func (c *DashboardController) GetDashboard(ctx *fiber.Ctx) error {
	data, err := Models.ComputeDashboardData(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(data)
}
