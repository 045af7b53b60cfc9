package models

// Generated content is never persisted; it is regenerated each time a view opens.

type DayContent struct {
	Day        int    `json:"day"`
	Reflection string `json:"reflection"`
	Prayer     string `json:"prayer"`
	Purpose    string `json:"purpose"`
	WhyReflect string `json:"whyReflect"`
}

type BibleReflection struct {
	Verse     string `json:"verse"`
	Reference string `json:"reference"`
	History   string `json:"history"`
}

type QuizEncouragement struct {
	Message string `json:"message"`
}

type QuizDiagnostic struct {
	Diagnostic string `json:"diagnostic"`
	Verse      string `json:"verse"`
	Reference  string `json:"reference"`
}

type ShareableWord struct {
	Greeting  string `json:"greeting"`
	Verse     string `json:"verse"`
	Reference string `json:"reference"`
	Incentive string `json:"incentive"`
}

type CandleBlessing struct {
	Blessing string `json:"blessing"`
}
