package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/services"
)

var errorMessageKeys = map[string]string{
	"day out of range":         "error.day_out_of_range",
	"invalid transition":       "error.invalid_transition",
	"journey not started":      "error.invalid_transition",
	"invalid profile":          "error.invalid_profile",
	"lead name is required":    "error.lead_name_required",
	"candle fields required":   "error.candle_fields_required",
	"quiz busy":                "error.quiz_busy",
	"invalid input":            "error.invalid_input",
	"too many requests":        "error.too_many_requests",
	"key selector unavailable": services.NoticeKeySelectorUnavailable,
	"key selection failed":     "error.key_selection_failed",
	"not found":                "error.not_found",
	"internal error":           "error.internal",
}

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

func errorTranslationKey(message string) string {
	key, ok := errorMessageKeys[strings.ToLower(strings.TrimSpace(message))]
	if !ok {
		return ""
	}
	return key
}

func currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || strings.TrimSpace(language) == "" {
		return ""
	}
	return language
}

func currentMessages(c *fiber.Ctx) map[string]string {
	messages, ok := c.Locals(contextMessagesKey).(map[string]string)
	if !ok || messages == nil {
		return map[string]string{}
	}
	return messages
}

// localizedNotice returns "" for an empty key.
func localizedNotice(c *fiber.Ctx, key string) string {
	return translateMessage(currentMessages(c), key)
}

func (handler *Handler) localizedGreeting(c *fiber.Ctx, name string) string {
	language := currentLanguage(c)
	if language == "" {
		language = handler.i18n.DefaultLanguage()
	}
	return handler.i18n.Translatef(language, "dashboard.greeting", name)
}
