package Controllers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// IndentController handles the local purchase bills and their line items.
type IndentController struct {
	DB *gorm.DB
}

func NewIndentController(db *gorm.DB) *IndentController {
	return &IndentController{DB: db}
}

// GetBills lists the bill headers, newest first.
func (c *IndentController) GetBills(ctx *fiber.Ctx) error {
	var headers []Models.IndentPurchaseRecord
	if err := c.DB.Order("bill_date DESC, bill_no").Find(&headers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve bills"})
	}
	return ctx.JSON(headers)
}

// GetBill returns one bill header with its line items.
func (c *IndentController) GetBill(ctx *fiber.Ctx) error {
	header, items, err := Models.GetIndentBill(c.DB, ctx.Params("bill_no"))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{
		"header": header,
		"items":  items,
	})
}

type CreateBillInput struct {
	Header Models.IndentHeaderInput `json:"header"`
	Items  []Models.IndentItemInput `json:"items"`
}

// CreateBill records a bill with its line items in one transaction.
func (c *IndentController) CreateBill(ctx *fiber.Ctx) error {
	var input CreateBillInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := Models.CreateIndentBill(c.DB, input.Header, input.Items, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(record)
}

// UpdateBill edits a bill header, re-keying line items on a bill number
// change. Administrator-only route.
func (c *IndentController) UpdateBill(ctx *fiber.Ctx) error {
	var input Models.IndentHeaderInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record, err := Models.UpdateIndentHeader(c.DB, ctx.Params("bill_no"), input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(record)
}

// AddItem appends a line item and returns the new bill total.
func (c *IndentController) AddItem(ctx *fiber.Ctx) error {
	var input Models.IndentItemInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	total, err := Models.AddIndentLineItem(c.DB, ctx.Params("bill_no"), input, actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"total_bill_amount": total})
}

// DeleteItem removes a line item and returns the new bill total.
// Administrator-only route.
func (c *IndentController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := strconv.Atoi(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid line item ID"})
	}

	total, err := Models.DeleteIndentLineItem(c.DB, uint(id), actorName(ctx))
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(fiber.Map{"total_bill_amount": total})
}

// GetPaymentModes returns the accepted payment modes for the forms.
func (c *IndentController) GetPaymentModes(ctx *fiber.Ctx) error {
	return ctx.JSON(Models.PaymentModes)
}
