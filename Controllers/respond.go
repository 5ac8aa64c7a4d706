package Controllers

import (
	"Meghna/Models"

	"github.com/gofiber/fiber/v2"
)

// statusForCode maps a business error code to an HTTP status.
func statusForCode(code Models.ErrorCode) int {
	switch code {
	case Models.ErrMissingField, Models.ErrInvalidAmount, Models.ErrUnknownCostArea:
		return fiber.StatusBadRequest
	case Models.ErrDuplicateKey:
		return fiber.StatusConflict
	case Models.ErrBudgetExceeded, Models.ErrNonZeroUtilization, Models.ErrBudgetBelowUtilization:
		return fiber.StatusUnprocessableEntity
	case Models.ErrNotFound:
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func fail(ctx *fiber.Ctx, err error) error {
	opErr := Models.AsOpError(err)
	return ctx.Status(statusForCode(opErr.Code)).JSON(fiber.Map{
		"error": opErr,
	})
}

// actorName reads the username the Verify middleware stored on the context.
func actorName(ctx *fiber.Ctx) string {
	if user, ok := ctx.Locals("user").(Models.User); ok {
		return user.Username
	}
	return ""
}
