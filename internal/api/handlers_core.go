package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/terraincognita07/quaresma/internal/content"
)

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func metricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(content.Registry, promhttp.HandlerOpts{}))
}
