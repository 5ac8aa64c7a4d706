package Controllers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"Meghna/Models"
)

// ConfigController handles the exchange-rate and duty configuration.
type ConfigController struct {
	DB *gorm.DB
}

func NewConfigController(db *gorm.DB) *ConfigController {
	return &ConfigController{DB: db}
}

// GetConfig returns the effective rates, including defaults for any key
// never saved.
func (c *ConfigController) GetConfig(ctx *fiber.Ctx) error {
	rates, err := Models.GetConfigRates(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(rates)
}

// SaveConfig replaces the financial configuration. Administrator-only.
func (c *ConfigController) SaveConfig(ctx *fiber.Ctx) error {
	var input Models.ExchangeConfigInput
	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := Models.SaveExchangeConfig(c.DB, input, actorName(ctx)); err != nil {
		return fail(ctx, err)
	}
	rates, err := Models.GetConfigRates(c.DB)
	if err != nil {
		return fail(ctx, err)
	}
	return ctx.JSON(rates)
}

// GetCurrencies returns the accepted currency list for the forms.
func (c *ConfigController) GetCurrencies(ctx *fiber.Ctx) error {
	return ctx.JSON(Models.Currencies)
}
