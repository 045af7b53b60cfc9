package content

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/models"
)

const (
	FallbackEncouragementMessage = "Seu coração está se abrindo para a verdade. Continue."
	FallbackCandleBlessing       = "Que esta luz ilumine os caminhos e aqueça o coração com a paz de Cristo."
)

// FallbackShareableWord is served whenever the shareable word cannot be generated.
func FallbackShareableWord() models.ShareableWord {
	return models.ShareableWord{
		Greeting:  "Paz e bem!",
		Verse:     "Rasgai os vossos corações, e não as vossas vestes; convertei-vos ao Senhor, vosso Deus.",
		Reference: "Joel 2,13",
		Incentive: "Reserve hoje um minuto de silêncio e oração pela sua família.",
	}
}

// Gateway turns generation calls into typed content. It never returns an error:
// cosmetic kinds fall back to fixed literals and critical kinds return nil.
type Gateway struct {
	generator Generator
	log       *logger.Logger
	now       func() time.Time
}

func NewGateway(generator Generator, log *logger.Logger) *Gateway {
	return &Gateway{
		generator: generator,
		log:       logger.OrNop(log).With("service", "ContentGateway"),
		now:       time.Now,
	}
}

// DayContent returns nil when generation fails; callers render a failure message.
func (gateway *Gateway) DayContent(ctx context.Context, day int, userName string) *models.DayContent {
	var content models.DayContent
	if !gateway.fetch(ctx, dayContentRequest(day, userName), &content) {
		return nil
	}
	content.Day = day
	return &content
}

func (gateway *Gateway) BibleReflection(ctx context.Context, day int) *models.BibleReflection {
	var reflection models.BibleReflection
	if !gateway.fetch(ctx, bibleReflectionRequest(day), &reflection) {
		return nil
	}
	return &reflection
}

func (gateway *Gateway) QuizEncouragement(ctx context.Context, answers []models.VirtueProfile) models.QuizEncouragement {
	var encouragement models.QuizEncouragement
	if !gateway.fetch(ctx, quizEncouragementRequest(answers), &encouragement) {
		return models.QuizEncouragement{Message: FallbackEncouragementMessage}
	}
	return encouragement
}

func (gateway *Gateway) QuizDiagnostic(ctx context.Context, profile models.VirtueProfile, answers []models.VirtueProfile) *models.QuizDiagnostic {
	var diagnostic models.QuizDiagnostic
	if !gateway.fetch(ctx, quizDiagnosticRequest(profile, answers), &diagnostic) {
		return nil
	}
	return &diagnostic
}

func (gateway *Gateway) ShareableWord(ctx context.Context) models.ShareableWord {
	var word models.ShareableWord
	if !gateway.fetch(ctx, shareableWordRequest(), &word) {
		return FallbackShareableWord()
	}
	return word
}

func (gateway *Gateway) CandleBlessing(ctx context.Context, intention string, personName string) models.CandleBlessing {
	var blessing models.CandleBlessing
	if !gateway.fetch(ctx, candleBlessingRequest(intention, personName), &blessing) {
		return models.CandleBlessing{Blessing: FallbackCandleBlessing}
	}
	return blessing
}

// fetch reports whether out was filled from a schema-valid response.
func (gateway *Gateway) fetch(ctx context.Context, request GenerationRequest, out any) (ok bool) {
	fetchID := uuid.NewString()
	started := gateway.now()
	log := gateway.log.With("fetch_id", fetchID, "kind", request.Kind)

	defer func() {
		if recovered := recover(); recovered != nil {
			log.Error("content generation panicked", "panic", fmt.Sprint(recovered))
			ok = false
		}
		elapsed := gateway.now().Sub(started)
		switch {
		case ok:
			recordFetch(request.Kind, outcomeOK, elapsed)
		case isCosmetic(request.Kind):
			recordFetch(request.Kind, outcomeFallback, elapsed)
		default:
			recordFetch(request.Kind, outcomeEmpty, elapsed)
		}
	}()

	if gateway.generator == nil {
		log.Warn("content generator is not configured")
		return false
	}

	text, err := gateway.generator.Generate(ctx, request)
	if err != nil {
		log.Warn("content generation failed", "error", err.Error())
		return false
	}
	if err := decodeStrict(text, request.Fields, out); err != nil {
		log.Warn("content generation returned unusable payload", "error", err.Error())
		return false
	}

	log.Debug("content generated", "elapsed", gateway.now().Sub(started).String())
	return true
}

func isCosmetic(kind Kind) bool {
	switch kind {
	case KindQuizEncouragement, KindCandleBlessing, KindShareableWord:
		return true
	default:
		return false
	}
}
