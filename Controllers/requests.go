package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// RequestController handles the MN request endpoints.
type RequestController struct {
	DB *gorm.DB
}

func NewRequestController(db *gorm.DB) *RequestController {
	return &RequestController{DB: db}
}

// GetRequests lists MN requests, newest first. Optional query filters:
// cost_area, status, supplier_type, category.
func (c *RequestController) GetRequests(ctx *fiber.Ctx) error {
	filter := Models.RequestFilter{
		CostArea:     ctx.Query("cost_area"),
		Status:       ctx.Query("status"),
		SupplierType: ctx.Query("supplier_type"),
		Category:     ctx.Query("category"),
	}
	requests, err := Models.ListRequests(c.DB, filter)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(requests)
}

// GetRequest retrieves a single MN request by ID.
func (c *RequestController) GetRequest(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var request Models.Request
	if err := c.DB.First(&request, id).Error; err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Request not found"})
	}
	return ctx.JSON(request)
}

// CreateRequest submits a new MN against a budget head.
func (c *RequestController) CreateRequest(ctx *fiber.Ctx) error {
	var input Models.RequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := Models.CreateRequest(c.DB, input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(request)
}

// UpdateRequest edits an MN. Administrator-only route; the budget check is
// delta based.
func (c *RequestController) UpdateRequest(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var input Models.RequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := Models.UpdateRequest(c.DB, uint(id), input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(request)
}

// UpdateStatus moves an MN through the approval workflow.
func (c *RequestController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	request, err := Models.UpdateRequestStatus(c.DB, uint(id), input.Status, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(request)
}

// PreviewCost computes the landed cost for the given inputs without saving
// anything. The forms use it to show the cost as the user types.
func (c *RequestController) PreviewCost(ctx *fiber.Ctx) error {
	var input Models.RequestInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	rates, err := Models.GetConfigRates(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	fxRate, ok := rates.FXRate(input.Currency)
	if !ok {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unsupported currency"})
	}

	landed := Models.ComputeLandedCost(Models.CostInputs{
		ForeignSpareCost:  input.ForeignSpareCost,
		FreightFCACharges: input.FreightFCACharges,
		LocalCostWoVatAit: input.LocalCostWoVatAit,
		VatAit:            input.VatAit,
	}, rates.Duty, fxRate)

	return ctx.JSON(fiber.Map{
		"landed_total_cost": landed,
		"customs_duty_pct":  rates.Duty,
		"fx_rate":           fxRate,
	})
}

// GetStatuses returns the workflow status list for the dropdowns.
func (c *RequestController) GetStatuses(ctx *fiber.Ctx) error {
	return ctx.JSON(Models.RequestStatuses)
}
