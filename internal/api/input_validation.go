package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/models"
	"github.com/terraincognita07/quaresma/internal/services"
)

var errInvalidInput = errors.New("invalid input")

func parseDayParam(c *fiber.Ctx) (int, error) {
	day, err := strconv.Atoi(strings.TrimSpace(c.Params("day")))
	if err != nil {
		return 0, services.ErrDayOutOfRange
	}
	if err := services.ValidateDay(day); err != nil {
		return 0, err
	}
	return day, nil
}

// parseOptionalBody accepts an empty body as the zero value.
func parseOptionalBody(c *fiber.Ctx, out any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(out); err != nil {
		return errInvalidInput
	}
	return nil
}

func parseDayNote(c *fiber.Ctx) (models.DayNote, error) {
	input := dayNoteInput{}
	if err := parseOptionalBody(c, &input); err != nil {
		return models.DayNote{}, err
	}
	return services.NormalizeDayNote(input.Failures, input.Summary), nil
}

func parseShareableWord(c *fiber.Ctx) (models.ShareableWord, error) {
	input := shareInput{}
	if err := c.BodyParser(&input); err != nil {
		return models.ShareableWord{}, errInvalidInput
	}
	word := models.ShareableWord{
		Greeting:  strings.TrimSpace(input.Greeting),
		Verse:     strings.TrimSpace(input.Verse),
		Reference: strings.TrimSpace(input.Reference),
		Incentive: strings.TrimSpace(input.Incentive),
	}
	if word.Verse == "" || word.Reference == "" {
		return models.ShareableWord{}, errInvalidInput
	}
	return word, nil
}
