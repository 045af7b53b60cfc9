package content

import "context"

// Kind names one of the generated content kinds.
type Kind string

const (
	KindDayContent        Kind = "day_content"
	KindBibleReflection   Kind = "bible_reflection"
	KindQuizEncouragement Kind = "quiz_encouragement"
	KindQuizDiagnostic    Kind = "quiz_diagnostic"
	KindShareableWord     Kind = "shareable_word"
	KindCandleBlessing    Kind = "candle_blessing"
)

// Tier selects the model used for a request.
type Tier string

const (
	TierPro   Tier = "pro"
	TierFlash Tier = "flash"
)

// GenerationRequest is one outbound call. Fields lists the string properties the
// response object must carry; all of them are required.
type GenerationRequest struct {
	Kind              Kind
	Tier              Tier
	SystemInstruction string
	Prompt            string
	Fields            []string
}

// Generator issues a single generation call and returns the raw JSON text produced.
type Generator interface {
	Generate(ctx context.Context, request GenerationRequest) (string, error)
}
