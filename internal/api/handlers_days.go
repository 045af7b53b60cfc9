package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	dashboard, err := handler.controller.Dashboard()
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(dashboardResponse{
		DashboardView: dashboard,
		Greeting:      handler.localizedGreeting(c, dashboard.UserName),
	})
}

func (handler *Handler) OpenDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}

	view, err := handler.controller.OpenDay(c.UserContext(), day)
	if err != nil {
		return handler.serviceError(c, err)
	}
	response := dayResponse{DayView: view}
	if view.Content == nil && !view.Stale {
		response.Notice = localizedNotice(c, "notice.day_content_failed")
	}
	return c.JSON(response)
}

func (handler *Handler) CloseDay(c *fiber.Ctx) error {
	snapshot, err := handler.controller.CloseDay()
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(stateResponse{Snapshot: snapshot})
}

func (handler *Handler) CompleteDay(c *fiber.Ctx) error {
	day, err := parseDayParam(c)
	if err != nil {
		return handler.serviceError(c, err)
	}
	note, err := parseDayNote(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	view, err := handler.controller.FinishDay(day, note)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(dayResponse{DayView: view})
}
