//go:build !windows

package hotkey

import "github.com/rs/zerolog"

// Manager is a no-op outside Windows.
type Manager struct {
	log zerolog.Logger
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "hotkey").Logger()}
}

// Register validates spec and reports ErrUnsupported.
func (m *Manager) Register(spec string, cb func()) (*Binding, error) {
	if _, err := Parse(spec); err != nil {
		return nil, err
	}
	return nil, ErrUnsupported
}

func (m *Manager) UnregisterAll() {}
