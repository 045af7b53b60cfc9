package api

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// ResponseClipboard hands the share text back to the HTTP client, which does
// the actual copy.
type ResponseClipboard struct{}

func (ResponseClipboard) WriteText(context.Context, string) error {
	return nil
}

func (handler *Handler) allowGeneration(c *fiber.Ctx) bool {
	return handler.limiter.allow(c.IP(), handler.now(), generationAttemptLimit, generationAttemptWindow)
}

func (handler *Handler) GetReflection(c *fiber.Ctx) error {
	if !handler.allowGeneration(c) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}

	view, err := handler.controller.Reflection(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	response := reflectionResponse{ReflectionView: view}
	if view.Reflection == nil && !view.Stale {
		response.Notice = localizedNotice(c, "notice.reflection_failed")
	}
	return c.JSON(response)
}

func (handler *Handler) GetShareableWord(c *fiber.Ctx) error {
	if !handler.allowGeneration(c) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}
	return c.JSON(handler.controller.ShareableWord(c.UserContext()))
}

func (handler *Handler) ShareWord(c *fiber.Ctx) error {
	word, err := parseShareableWord(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	outcome, err := handler.shares.Share(c.UserContext(), word)
	if err != nil {
		return handler.serviceError(c, err)
	}
	outcome.Notice = localizedNotice(c, outcome.Notice)
	return c.JSON(outcome)
}

func (handler *Handler) LightCandle(c *fiber.Ctx) error {
	input := candleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if !handler.allowGeneration(c) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}

	blessing, err := handler.controller.LightCandle(c.UserContext(), input.Intention, input.PersonName)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(blessing)
}

func (handler *Handler) OpenKeySelector(c *fiber.Ctx) error {
	if err := handler.settings.OpenKeySelector(c.UserContext()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
