package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/quaresma/internal/models"
	"github.com/terraincognita07/quaresma/internal/services"
)

func (handler *Handler) GetState(c *fiber.Ctx) error {
	return c.JSON(stateResponse{Snapshot: handler.controller.Snapshot()})
}

func (handler *Handler) GetQuiz(c *fiber.Ctx) error {
	return c.JSON(handler.controller.Snapshot().Quiz)
}

func (handler *Handler) StartQuiz(c *fiber.Ctx) error {
	snapshot, err := handler.controller.StartQuiz(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stateResponse{Snapshot: snapshot})
}

func (handler *Handler) AnswerQuiz(c *fiber.Ctx) error {
	input := quizAnswerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	snapshot, err := handler.controller.AnswerQuiz(c.UserContext(), models.VirtueProfile(strings.TrimSpace(input.Profile)))
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stateResponse{Snapshot: snapshot})
}

func (handler *Handler) SubmitLead(c *fiber.Ctx) error {
	input := leadInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	snapshot, err := handler.controller.SubmitLead(c.UserContext(), input.Name)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(handler.quizOutcome(c, snapshot))
}

func (handler *Handler) RetryDiagnostic(c *fiber.Ctx) error {
	snapshot, err := handler.controller.RetryDiagnostic(c.UserContext())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(handler.quizOutcome(c, snapshot))
}

func (handler *Handler) quizOutcome(c *fiber.Ctx, snapshot services.Snapshot) stateResponse {
	response := stateResponse{Snapshot: snapshot}
	if snapshot.View == services.ViewQuiz && snapshot.Quiz.DiagnosticFailed {
		response.Notice = localizedNotice(c, "notice.diagnostic_failed")
	}
	return response
}

func (handler *Handler) RestartQuiz(c *fiber.Ctx) error {
	snapshot, err := handler.controller.RestartQuiz()
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stateResponse{Snapshot: snapshot})
}

func (handler *Handler) StartJourney(c *fiber.Ctx) error {
	snapshot, err := handler.controller.StartJourney()
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stateResponse{Snapshot: snapshot})
}

func (handler *Handler) DismissWelcome(c *fiber.Ctx) error {
	return c.JSON(stateResponse{Snapshot: handler.controller.DismissWelcome()})
}
