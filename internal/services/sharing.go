package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/quaresma/internal/logger"
	"github.com/terraincognita07/quaresma/internal/models"
)

const (
	ShareTitle     = "Palavra do Dia - Quaresma"
	shareSignature = "🙏 Enviado via: A sua Abençoada Quaresma"

	NoticeShareCopied = "notice.share_copied"
)

var (
	ErrShareCancelled   = errors.New("share cancelled")
	ErrShareUnavailable = errors.New("no share target available")
)

// Sharer is a native share sheet offered by the host.
type Sharer interface {
	Share(ctx context.Context, title string, text string) error
}

type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

type ShareMethod string

const (
	ShareMethodNative    ShareMethod = "native"
	ShareMethodClipboard ShareMethod = "clipboard"
)

type ShareOutcome struct {
	Method ShareMethod `json:"method"`
	Text   string      `json:"text"`
	Notice string      `json:"notice,omitempty"`
	// Cancelled is set when the user dismissed the native sheet.
	Cancelled bool `json:"cancelled,omitempty"`
}

type ShareService struct {
	sharer    Sharer
	clipboard Clipboard
	log       *logger.Logger
}

// NewShareService accepts nil for capabilities the host does not provide.
func NewShareService(sharer Sharer, clipboard Clipboard, log *logger.Logger) *ShareService {
	return &ShareService{
		sharer:    sharer,
		clipboard: clipboard,
		log:       logger.OrNop(log).With("service", "ShareService"),
	}
}

func ShareText(word models.ShareableWord) string {
	return fmt.Sprintf("*%s*\n\n\"%s\"\n— _%s_\n\n%s\n\n%s", word.Greeting, word.Verse, word.Reference, word.Incentive, shareSignature)
}

// Share prefers the native sheet and otherwise copies the text, returning the
// notice key the caller must show right away.
func (service *ShareService) Share(ctx context.Context, word models.ShareableWord) (ShareOutcome, error) {
	text := ShareText(word)

	if service.sharer != nil {
		outcome := ShareOutcome{Method: ShareMethodNative, Text: text}
		err := service.sharer.Share(ctx, ShareTitle, text)
		switch {
		case errors.Is(err, ErrShareCancelled):
			outcome.Cancelled = true
			service.log.Debug("native share cancelled")
		case err != nil:
			service.log.Warn("native share failed", "error", err.Error())
		}
		return outcome, nil
	}

	if service.clipboard == nil {
		return ShareOutcome{Text: text}, ErrShareUnavailable
	}
	if err := service.clipboard.WriteText(ctx, text); err != nil {
		service.log.Warn("clipboard write failed", "error", err.Error())
	}
	return ShareOutcome{Method: ShareMethodClipboard, Text: text, Notice: NoticeShareCopied}, nil
}
