package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// NewLogger writes one line per request, levelled by response status. Slack
// posts also carry the team and channel they came from.
func NewLogger() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		startTime := time.Now()
		err = c.Next()

		msg := "HTTP Request"
		if err != nil {
			msg = err.Error()
		}

		code := c.Response().StatusCode()

		ipAddress := c.IP()
		if forwardedIP := c.Get("CF-Connecting-IP", ""); forwardedIP != "" {
			ipAddress = forwardedIP
		}

		requestContext := log.With().
			Int("status", code).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Str("ip", ipAddress).
			Dur("latency", time.Since(startTime)).
			Str("user-agent", c.Get(fiber.HeaderUserAgent))

		if c.Method() == fiber.MethodPost {
			if team := c.FormValue("team_domain"); team != "" {
				requestContext = requestContext.Str("team", team).Str("channel", c.FormValue("channel_name"))
			}
		}

		requestLogger := requestContext.Logger()
		requestLogger.WithLevel(statusLevel(code)).Msg(msg)

		return err
	}
}

func statusLevel(code int) zerolog.Level {
	switch {
	case code >= fiber.StatusInternalServerError:
		return zerolog.ErrorLevel
	case code >= fiber.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
