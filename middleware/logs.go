package middleware

import (
	"Meghna/Models"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger logs one structured line per request, tagged with the
// signed-in username when Verify ran before it.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		fields := logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
			"ip":      c.IP(),
		}
		if user, ok := c.Locals("user").(Models.User); ok {
			fields["username"] = user.Username
		}
		if err != nil {
			fields["error"] = err.Error()
		}

		entry := logrus.WithFields(fields)
		switch {
		case err != nil || c.Response().StatusCode() >= 500:
			entry.Error("request failed")
		case c.Response().StatusCode() >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request")
		}

		return err
	}
}
