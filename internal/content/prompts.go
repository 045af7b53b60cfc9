package content

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/quaresma/internal/models"
)

var (
	dayContentFields      = []string{"reflection", "prayer", "purpose", "whyReflect"}
	bibleReflectionFields = []string{"verse", "reference", "history"}
	encouragementFields   = []string{"message"}
	diagnosticFields      = []string{"diagnostic", "verse", "reference"}
	shareableWordFields   = []string{"greeting", "verse", "reference", "incentive"}
	candleBlessingFields  = []string{"blessing"}
)

func dayContentRequest(day int, userName string) GenerationRequest {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Escreva o conteúdo espiritual do dia %d da Quaresma para %s.", day, userName)
	switch day {
	case models.FirstWeekMilestoneDay:
		prompt.WriteString(" Hoje se completa a primeira semana da jornada.")
	case models.HalfwayMilestoneDay:
		prompt.WriteString(" Hoje é a metade exata dos quarenta dias.")
	case models.FinalJourneyDay:
		prompt.WriteString(" Hoje é o último dia da jornada, o dia da vitória.")
	}
	if day == models.FirstWeekMilestoneDay || day == models.HalfwayMilestoneDay || day == models.FinalJourneyDay {
		prompt.WriteString(" Celebre o marco com uma felicitação calorosa.")
	}
	prompt.WriteString(" Use um tom solene, poético e paternal, falando diretamente ao coração.")

	return GenerationRequest{
		Kind:              KindDayContent,
		Tier:              TierPro,
		SystemInstruction: "Você é um diretor espiritual católico. Responda apenas em JSON com reflection, prayer, purpose e whyReflect.",
		Prompt:            prompt.String(),
		Fields:            dayContentFields,
	}
}

func bibleReflectionRequest(day int) GenerationRequest {
	return GenerationRequest{
		Kind:              KindBibleReflection,
		Tier:              TierPro,
		SystemInstruction: "Você é um exegeta acessível. Responda apenas em JSON com verse, reference e history (contexto histórico).",
		Prompt:            fmt.Sprintf("Escolha um versículo para o dia %d da Quaresma e explique seu contexto.", day),
		Fields:            bibleReflectionFields,
	}
}

func quizEncouragementRequest(answers []models.VirtueProfile) GenerationRequest {
	return GenerationRequest{
		Kind:              KindQuizEncouragement,
		Tier:              TierFlash,
		SystemInstruction: "Você é um mentor espiritual breve e inspirador. Responda apenas em JSON com message.",
		Prompt:            fmt.Sprintf("Respostas até agora: %s. Escreva uma única frase de encorajamento para continuar o quiz.", joinProfiles(answers)),
		Fields:            encouragementFields,
	}
}

func quizDiagnosticRequest(profile models.VirtueProfile, answers []models.VirtueProfile) GenerationRequest {
	return GenerationRequest{
		Kind:              KindQuizDiagnostic,
		Tier:              TierFlash,
		SystemInstruction: "Você é um guia espiritual. Responda apenas em JSON com diagnostic (cerca de três frases), verse e reference.",
		Prompt:            fmt.Sprintf("Perfil dominante: %s. Respostas: %s. Escreva o diagnóstico espiritual e um versículo ligado a esse perfil.", profile, joinProfiles(answers)),
		Fields:            diagnosticFields,
	}
}

func shareableWordRequest() GenerationRequest {
	return GenerationRequest{
		Kind:              KindShareableWord,
		Tier:              TierFlash,
		SystemInstruction: "Responda apenas em JSON com greeting, verse, reference e incentive. Seja curto.",
		Prompt:            "Escreva uma pequena palavra bíblica sobre a Quaresma para compartilhar com a família.",
		Fields:            shareableWordFields,
	}
}

func candleBlessingRequest(intention string, personName string) GenerationRequest {
	return GenerationRequest{
		Kind:              KindCandleBlessing,
		Tier:              TierFlash,
		SystemInstruction: "Você é um intercessor bondoso. No máximo duas frases, sem saudações. Responda apenas em JSON com blessing.",
		Prompt:            fmt.Sprintf("Uma vela é acesa por %s com a intenção: %q. Escreva uma bênção curta para este momento.", personName, intention),
		Fields:            candleBlessingFields,
	}
}

func joinProfiles(answers []models.VirtueProfile) string {
	parts := make([]string, 0, len(answers))
	for _, answer := range answers {
		parts = append(parts, string(answer))
	}
	return strings.Join(parts, ", ")
}
