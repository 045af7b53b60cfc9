package services

import (
	"strings"
	"unicode/utf8"

	"github.com/terraincognita07/quaresma/internal/models"
)

const MaxDayNoteFieldLength = 2000

// NormalizeDayNote trims surrounding whitespace and caps each field at
// MaxDayNoteFieldLength runes.
func NormalizeDayNote(failures string, summary string) models.DayNote {
	return models.DayNote{
		Failures: trimDayNoteField(failures),
		Summary:  trimDayNoteField(summary),
	}
}

func trimDayNoteField(value string) string {
	value = strings.TrimSpace(value)
	if utf8.RuneCountInString(value) <= MaxDayNoteFieldLength {
		return value
	}
	return string([]rune(value)[:MaxDayNoteFieldLength])
}
