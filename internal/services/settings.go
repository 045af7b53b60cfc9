package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/quaresma/internal/logger"
)

const NoticeKeySelectorUnavailable = "notice.key_selector_unavailable"

var (
	ErrKeySelectorUnavailable = errors.New("key selector unavailable")
	ErrKeySelectionFailed     = errors.New("key selection failed")
)

// KeySelector is a host-provided credential picker.
type KeySelector interface {
	SelectKey(ctx context.Context) (string, error)
}

type APIKeyTarget interface {
	SetAPIKey(key string)
}

type SettingsService struct {
	selector KeySelector
	target   APIKeyTarget
	log      *logger.Logger
}

func NewSettingsService(selector KeySelector, target APIKeyTarget, log *logger.Logger) *SettingsService {
	return &SettingsService{
		selector: selector,
		target:   target,
		log:      logger.OrNop(log).With("service", "SettingsService"),
	}
}

// OpenKeySelector asks the host for a key. Without a host selector there is no
// other way to obtain one.
func (service *SettingsService) OpenKeySelector(ctx context.Context) error {
	if service.selector == nil {
		return ErrKeySelectorUnavailable
	}

	key, err := service.selector.SelectKey(ctx)
	if err != nil {
		service.log.Error("key selector failed", "error", err.Error())
		return fmt.Errorf("%w: %v", ErrKeySelectionFailed, err)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	if service.target != nil {
		service.target.SetAPIKey(key)
	}
	service.log.Info("api key replaced")
	return nil
}
