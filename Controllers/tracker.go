package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// TrackerController handles the LC/PO shipment and payment tracker.
type TrackerController struct {
	DB *gorm.DB
}

func NewTrackerController(db *gorm.DB) *TrackerController {
	return &TrackerController{DB: db}
}

// GetTrackers lists every tracker row.
func (c *TrackerController) GetTrackers(ctx *fiber.Ctx) error {
	trackers, err := Models.ListLcPoTrackers(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(trackers)
}

// GetTracker returns the tracker row of one MN.
func (c *TrackerController) GetTracker(ctx *fiber.Ctx) error {
	var tracker Models.LcPoTracker
	if err := c.DB.Where("mn_number = ?", ctx.Params("mn_number")).First(&tracker).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tracker not found"})
	}
	return ctx.JSON(tracker)
}

// UpsertTracker creates or updates the tracker row of an MN.
func (c *TrackerController) UpsertTracker(ctx *fiber.Ctx) error {
	var input Models.LcPoTrackerInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tracker, err := Models.UpsertLcPoTracker(c.DB, ctx.Params("mn_number"), input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(tracker)
}
