//go:build !windows

package notify

import "github.com/rs/zerolog"

// New returns a logger-backed notifier outside Windows.
func New(log zerolog.Logger) *LogNotifier {
	return NewLogNotifier(log)
}
