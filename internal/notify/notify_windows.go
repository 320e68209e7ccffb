//go:build windows

package notify

import (
	"github.com/go-toast/toast"
	"github.com/rs/zerolog"

	"moneyshot/internal/winapi"
)

// WindowsNotifier shows toasts and message boxes.
type WindowsNotifier struct {
	appID string
	log   zerolog.Logger
}

func New(log zerolog.Logger) *WindowsNotifier {
	return &WindowsNotifier{
		appID: AppID,
		log:   log.With().Str("component", "notify").Logger(),
	}
}

// Show pushes a toast without blocking the caller.
func (n *WindowsNotifier) Show(title, message string) error {
	go func() {
		notification := toast.Notification{
			AppID:   n.appID,
			Title:   title,
			Message: message,
		}
		if err := notification.Push(); err != nil {
			n.log.Warn().Err(err).Str("title", title).Msg("toast failed")
		}
	}()
	return nil
}

// Alert shows a topmost error message box.
func (n *WindowsNotifier) Alert(title, message string) {
	n.log.Error().Str("title", title).Msg(message)
	winapi.MessageBox(0, title, message, winapi.MB_OK|winapi.MB_ICONERROR|winapi.MB_TOPMOST)
}
