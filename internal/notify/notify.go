package notify

import "github.com/rs/zerolog"

// AppID is the sender name shown on notifications.
const AppID = "MoneyShot"

// Notifier shows a non-blocking notification.
type Notifier interface {
	Show(title, message string) error
}

// Alerter shows a message the user must acknowledge. Alert blocks until
// they do.
type Alerter interface {
	Alert(title, message string)
}

// LogNotifier writes notifications and alerts to a logger. It stands in
// where no desktop notification service exists.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notify").Logger()}
}

func (n *LogNotifier) Show(title, message string) error {
	n.log.Info().Str("title", title).Msg(message)
	return nil
}

func (n *LogNotifier) Alert(title, message string) {
	n.log.Error().Str("title", title).Msg(message)
}
