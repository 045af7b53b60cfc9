package models

const (
	FirstJourneyDay = 1
	JourneyDays     = 40

	FirstWeekMilestoneDay = 7
	HalfwayMilestoneDay   = 20
	FinalJourneyDay       = JourneyDays
)

type DayNote struct {
	Failures string `json:"failures"`
	Summary  string `json:"summary"`
}

func IsJourneyDay(day int) bool {
	return day >= FirstJourneyDay && day <= JourneyDays
}
