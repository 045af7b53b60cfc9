package services

import (
	"errors"

	"github.com/terraincognita07/quaresma/internal/models"
)

var ErrDayOutOfRange = errors.New("day out of range")

// ValidateDay guards the input boundary; reducers assume a valid day.
func ValidateDay(day int) error {
	if !models.IsJourneyDay(day) {
		return ErrDayOutOfRange
	}
	return nil
}

func SelectDay(state models.AppState, day int) models.AppState {
	next := state.Clone()
	next.SelectedDay = &day
	return next
}

func DeselectDay(state models.AppState) models.AppState {
	next := state.Clone()
	next.SelectedDay = nil
	return next
}

// CompleteDay always stores note. The day is appended and the completion
// timestamp moves only on its first completion.
func CompleteDay(state models.AppState, day int, note models.DayNote, nowMillis int64) models.AppState {
	next := state.Clone()
	if !next.IsDayCompleted(day) {
		next.CompletedDays = append(next.CompletedDays, day)
		next.LastCompletionTimestamp = &nowMillis
	}
	next.DayNotes[day] = note
	return next
}

func ResetJourney() models.AppState {
	return models.DefaultAppState()
}

func CurrentDevotionalDay(state models.AppState) int {
	return min(len(state.CompletedDays)+1, models.JourneyDays)
}

// ProgressPercent rounds half up without going through floating point.
func ProgressPercent(state models.AppState) int {
	return (len(state.CompletedDays)*200 + models.JourneyDays) / (2 * models.JourneyDays)
}

func RemainingDays(state models.AppState) int {
	return max(models.JourneyDays-len(state.CompletedDays), 0)
}

func IsMilestone(day int) bool {
	return day == models.FirstWeekMilestoneDay || day == models.HalfwayMilestoneDay
}

func IsFinal(day int) bool {
	return day == models.FinalJourneyDay
}

// BonusPanelEligible is recomputed on every open; there is no seen flag.
func BonusPanelEligible(day int, state models.AppState) bool {
	return day == models.FirstWeekMilestoneDay && state.IsDayCompleted(day)
}

func FinalBonusEligible(day int) bool {
	return IsFinal(day)
}

const (
	BonusKindMusic  = "music"
	BonusKindReward = "reward"

	SacredMusicEmbedURL     = "https://www.youtube.com/embed/CB_PaEi23Nc"
	DefaultBonusCheckoutURL = "https://seulinkdecheckout.com"
	FinalBonusCallToAction  = "Resgatar meu Bônus"
)

// DayBonus is what a client needs to render the bonus section of a day.
type DayBonus struct {
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ResourceURL string `json:"resourceUrl,omitempty"`
	CTALabel    string `json:"ctaLabel,omitempty"`
	CTATarget   string `json:"ctaTarget,omitempty"`
}

// DayBonusFor returns the day-7 music panel once day 7 is completed and the
// day-40 reward call to action; nil otherwise.
func DayBonusFor(day int, state models.AppState, checkoutURL string) *DayBonus {
	switch {
	case BonusPanelEligible(day, state):
		return &DayBonus{
			Kind:        BonusKindMusic,
			Title:       "Melodias para sua Alma",
			Description: "Você completou sua primeira semana! Desfrute desta seleção de músicas sagradas para acompanhar suas orações.",
			ResourceURL: SacredMusicEmbedURL,
		}
	case FinalBonusEligible(day):
		if checkoutURL == "" {
			checkoutURL = DefaultBonusCheckoutURL
		}
		return &DayBonus{
			Kind:        BonusKindReward,
			Title:       "Recompensa de Perseverança",
			Description: "Como gesto de gratidão por sua jornada, preparamos um presente especial para selar sua vitória.",
			CTALabel:    FinalBonusCallToAction,
			CTATarget:   checkoutURL,
		}
	}
	return nil
}

// NextDayToOpen follows the highest completed day, not the count.
func NextDayToOpen(state models.AppState) (int, bool) {
	highest := 0
	for _, day := range state.CompletedDays {
		highest = max(highest, day)
	}
	if highest >= models.JourneyDays {
		return 0, false
	}
	return highest + 1, true
}

// ClosesAfterFinish reports whether finishing a day closes its detail view.
// Day 7 stays open so the unlocked bonus can be seen.
func ClosesAfterFinish(day int) bool {
	return day != models.FirstWeekMilestoneDay
}

type TileKind string

const (
	TileCompleted TileKind = "completed"
	TileFinal     TileKind = "final"
	TileMilestone TileKind = "milestone"
	TileRegular   TileKind = "regular"
)

type DayTile struct {
	Day       int      `json:"day"`
	Kind      TileKind `json:"kind"`
	Completed bool     `json:"completed"`
	Badge     string   `json:"badge,omitempty"`
}

func milestoneBadge(day int) string {
	switch {
	case IsFinal(day):
		return "Grande Final"
	case day == models.HalfwayMilestoneDay:
		return "Metade"
	case day == models.FirstWeekMilestoneDay:
		return "Ouro"
	default:
		return ""
	}
}

func DayTiles(state models.AppState) []DayTile {
	tiles := make([]DayTile, 0, models.JourneyDays)
	for day := models.FirstJourneyDay; day <= models.JourneyDays; day++ {
		tile := DayTile{
			Day:       day,
			Completed: state.IsDayCompleted(day),
			Badge:     milestoneBadge(day),
		}
		switch {
		case tile.Completed:
			tile.Kind = TileCompleted
		case IsFinal(day):
			tile.Kind = TileFinal
		case IsMilestone(day):
			tile.Kind = TileMilestone
		default:
			tile.Kind = TileRegular
		}
		tiles = append(tiles, tile)
	}
	return tiles
}

// DayHeadline is the caption above a day's detail view.
func DayHeadline(day int) string {
	switch {
	case IsFinal(day):
		return "O GRANDE ÁPICE DA JORNADA"
	case day == models.HalfwayMilestoneDay:
		return "Vitória da Metade"
	case day == models.FirstWeekMilestoneDay:
		return "A Estação de Ouro"
	default:
		return "Caminho de Fé"
	}
}

type JourneyStatus string

const (
	JourneyInProgress JourneyStatus = "em_jornada"
	JourneyFinished   JourneyStatus = "finalizado"
)

func JourneyStatusOf(state models.AppState) JourneyStatus {
	if len(state.CompletedDays) >= models.JourneyDays {
		return JourneyFinished
	}
	return JourneyInProgress
}
