package api

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

const invalidTokenText = "slack token not valid!"

// EnsureSlackToken rejects webhook posts whose token form field does not
// match. Slack expects a 200 either way, so the rejection is a normal reply.
func EnsureSlackToken(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		received := c.FormValue("token")

		if token == "" || subtle.ConstantTimeCompare([]byte(received), []byte(token)) != 1 {
			log.Warn().Str("team", c.FormValue("team_domain")).Msg("Invalid Slack token")

			return c.JSON(fiber.Map{
				"text": invalidTokenText,
			})
		}

		return c.Next()
	}
}
