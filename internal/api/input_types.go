package api

import "github.com/terraincognita07/quaresma/internal/services"

type quizAnswerInput struct {
	Profile string `json:"profile" form:"profile"`
}

type leadInput struct {
	Name string `json:"name" form:"name"`
}

type dayNoteInput struct {
	Failures string `json:"failures" form:"failures"`
	Summary  string `json:"summary" form:"summary"`
}

type candleInput struct {
	PersonName string `json:"personName" form:"personName"`
	Intention  string `json:"intention" form:"intention"`
}

type shareInput struct {
	Greeting  string `json:"greeting" form:"greeting"`
	Verse     string `json:"verse" form:"verse"`
	Reference string `json:"reference" form:"reference"`
	Incentive string `json:"incentive" form:"incentive"`
}

type stateResponse struct {
	services.Snapshot
	Notice string `json:"notice,omitempty"`
}

type dashboardResponse struct {
	services.DashboardView
	Greeting string `json:"greeting"`
}

type dayResponse struct {
	services.DayView
	Notice string `json:"notice,omitempty"`
}

type reflectionResponse struct {
	services.ReflectionView
	Notice string `json:"notice,omitempty"`
}
