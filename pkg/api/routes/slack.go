package routes

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

const emptyPostText = "post successful."

type Announcer interface {
	HandleText(ctx context.Context, text string, triggerWord string) string
}

func SlackRouter(router fiber.Router, announcer Announcer, triggerWord string) {
	router.Post("/", func(c *fiber.Ctx) error {
		return postSlackCommand(c, announcer, triggerWord)
	})
}

func postSlackCommand(c *fiber.Ctx, announcer Announcer, triggerWord string) error {
	text := c.FormValue("text")
	if text == "" {
		return c.JSON(fiber.Map{
			"text": emptyPostText,
		})
	}

	return c.JSON(fiber.Map{
		"text": announcer.HandleText(c.UserContext(), text, triggerWord),
	})
}
