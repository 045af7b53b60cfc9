package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/quaresma/internal/i18n"
	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/services"
)

const (
	generationAttemptLimit  = 10
	generationAttemptWindow = time.Minute
)

type Handler struct {
	controller *services.Controller
	shares     *services.ShareService
	settings   *services.SettingsService
	i18n       *i18n.Manager
	log        *logger.Logger
	limiter    *attemptLimiter
	now        func() time.Time
}

func NewHandler(controller *services.Controller, shares *services.ShareService, settings *services.SettingsService, i18nManager *i18n.Manager, log *logger.Logger) (*Handler, error) {
	if controller == nil {
		return nil, errors.New("controller is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if shares == nil {
		shares = services.NewShareService(nil, ResponseClipboard{}, log)
	}
	if settings == nil {
		settings = services.NewSettingsService(nil, nil, log)
	}

	return &Handler{
		controller: controller,
		shares:     shares,
		settings:   settings,
		i18n:       i18nManager,
		log:        logger.OrNop(log).With("component", "api"),
		limiter:    newAttemptLimiter(),
		now:        time.Now,
	}, nil
}
