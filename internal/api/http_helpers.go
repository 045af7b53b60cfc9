package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/services"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	payload := fiber.Map{"error": message}
	if key := errorTranslationKey(message); key != "" {
		if localized := translateMessage(currentMessages(c), key); localized != key {
			payload["message"] = localized
		}
	}
	return c.Status(status).JSON(payload)
}

// serviceError maps controller and service errors onto the HTTP surface.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrDayOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "day out of range")
	case errors.Is(err, services.ErrInvalidProfile):
		return apiError(c, fiber.StatusBadRequest, "invalid profile")
	case errors.Is(err, services.ErrLeadNameRequired):
		return apiError(c, fiber.StatusBadRequest, "lead name is required")
	case errors.Is(err, services.ErrCandleFieldsRequired):
		return apiError(c, fiber.StatusBadRequest, "candle fields required")
	case errors.Is(err, services.ErrQuizBusy):
		return apiError(c, fiber.StatusConflict, "quiz busy")
	case errors.Is(err, services.ErrJourneyNotStarted):
		return apiError(c, fiber.StatusConflict, "journey not started")
	case errors.Is(err, services.ErrInvalidFunnelTransition),
		errors.Is(err, services.ErrQuizStepInvalid),
		errors.Is(err, services.ErrQuizNotRetryable),
		errors.Is(err, services.ErrQuizAnswersFilled):
		return apiError(c, fiber.StatusConflict, "invalid transition")
	case errors.Is(err, services.ErrKeySelectorUnavailable):
		return apiError(c, fiber.StatusNotImplemented, "key selector unavailable")
	case errors.Is(err, services.ErrKeySelectionFailed):
		return apiError(c, fiber.StatusBadGateway, "key selection failed")
	default:
		handler.log.Error("unhandled service error", "path", c.Path(), "error", err.Error())
		return apiError(c, fiber.StatusInternalServerError, "internal error")
	}
}
