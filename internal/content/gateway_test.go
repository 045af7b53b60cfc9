package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/quaresma/internal/models"
)

type stubGenerator struct {
	text     string
	err      error
	panicMsg string
	requests []GenerationRequest
}

func (stub *stubGenerator) Generate(_ context.Context, request GenerationRequest) (string, error) {
	stub.requests = append(stub.requests, request)
	if stub.panicMsg != "" {
		panic(stub.panicMsg)
	}
	return stub.text, stub.err
}

func TestGatewayDayContentSetsDayAndUsesProTier(t *testing.T) {
	stub := &stubGenerator{text: `{"reflection":"r","prayer":"p","purpose":"u","whyReflect":"w"}`}
	gateway := NewGateway(stub, nil)

	content := gateway.DayContent(context.Background(), 7, "Maria")
	require.NotNil(t, content)
	assert.Equal(t, models.DayContent{Day: 7, Reflection: "r", Prayer: "p", Purpose: "u", WhyReflect: "w"}, *content)

	require.Len(t, stub.requests, 1)
	assert.Equal(t, KindDayContent, stub.requests[0].Kind)
	assert.Equal(t, TierPro, stub.requests[0].Tier)
	assert.Contains(t, stub.requests[0].Prompt, "Maria")
	assert.Contains(t, stub.requests[0].Prompt, "primeira semana")
}

func TestGatewayCriticalKindsReturnNilOnFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("network down")}
	gateway := NewGateway(stub, nil)
	ctx := context.Background()

	assert.Nil(t, gateway.DayContent(ctx, 3, "Ana"))
	assert.Nil(t, gateway.BibleReflection(ctx, 3))
	assert.Nil(t, gateway.QuizDiagnostic(ctx, models.ProfileFaith, []models.VirtueProfile{models.ProfileFaith}))
}

func TestGatewayCosmeticKindsFallBackOnFailure(t *testing.T) {
	stub := &stubGenerator{err: errors.New("network down")}
	gateway := NewGateway(stub, nil)
	ctx := context.Background()

	encouragement := gateway.QuizEncouragement(ctx, []models.VirtueProfile{models.ProfileAction})
	assert.Equal(t, FallbackEncouragementMessage, encouragement.Message)

	blessing := gateway.CandleBlessing(ctx, "saúde", "João")
	assert.Equal(t, FallbackCandleBlessing, blessing.Blessing)

	word := gateway.ShareableWord(ctx)
	assert.Equal(t, FallbackShareableWord(), word)
	assert.NotEmpty(t, word.Verse)
}

func TestGatewayRejectsSchemaMismatch(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "not json", text: "Paz e bem"},
		{name: "array", text: `[{"verse":"v","reference":"r","history":"h"}]`},
		{name: "missing field", text: `{"verse":"v","reference":"r"}`},
		{name: "wrong type", text: `{"verse":"v","reference":"r","history":3}`},
		{name: "null field", text: `{"verse":"v","reference":null,"history":"h"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := NewGateway(&stubGenerator{text: tt.text}, nil)
			assert.Nil(t, gateway.BibleReflection(context.Background(), 12))
		})
	}
}

func TestGatewayAcceptsValidBibleReflection(t *testing.T) {
	gateway := NewGateway(&stubGenerator{text: " {\"verse\":\"v\",\"reference\":\"Jo 3,16\",\"history\":\"h\"}\n"}, nil)

	reflection := gateway.BibleReflection(context.Background(), 12)
	require.NotNil(t, reflection)
	assert.Equal(t, "Jo 3,16", reflection.Reference)
}

func TestGatewayRecoversFromGeneratorPanic(t *testing.T) {
	gateway := NewGateway(&stubGenerator{panicMsg: "boom"}, nil)
	ctx := context.Background()

	assert.NotPanics(t, func() {
		assert.Nil(t, gateway.DayContent(ctx, 1, "Ana"))
		assert.Equal(t, FallbackCandleBlessing, gateway.CandleBlessing(ctx, "paz", "Ana").Blessing)
	})
}

func TestGatewayWithoutGeneratorFallsBack(t *testing.T) {
	gateway := NewGateway(nil, nil)

	assert.Nil(t, gateway.DayContent(context.Background(), 1, "Ana"))
	assert.Equal(t, FallbackEncouragementMessage, gateway.QuizEncouragement(context.Background(), nil).Message)
}

func TestGatewayDiagnosticPromptCarriesProfileAndAnswers(t *testing.T) {
	stub := &stubGenerator{text: `{"diagnostic":"d","verse":"v","reference":"r"}`}
	gateway := NewGateway(stub, nil)

	answers := []models.VirtueProfile{models.ProfileWisdom, models.ProfileAction, models.ProfileWisdom, models.ProfileFaith}
	diagnostic := gateway.QuizDiagnostic(context.Background(), models.ProfileWisdom, answers)
	require.NotNil(t, diagnostic)
	assert.Equal(t, "d", diagnostic.Diagnostic)

	require.Len(t, stub.requests, 1)
	assert.Equal(t, TierFlash, stub.requests[0].Tier)
	assert.Contains(t, stub.requests[0].Prompt, string(models.ProfileWisdom))
	assert.Equal(t, diagnosticFields, stub.requests[0].Fields)
}
