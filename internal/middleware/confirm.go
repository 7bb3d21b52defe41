package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/localnerve/fastighet-admin/internal/utils"
)

// RequireConfirmation guards destructive routes. The request must carry
// ?confirm=true or an X-Confirm: true header.
func RequireConfirmation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		confirm := c.Query("confirm", c.Get("X-Confirm"))

		// Support the usual spellings
		switch strings.ToLower(strings.TrimSpace(confirm)) {
		case "true", "1", "yes":
			return c.Next()
		}

		return utils.ConfirmationRequiredResponse(c, "This action cannot be undone. Repeat the request with confirm=true.")
	}
}
