//go:build windows

package hotkey

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey"
)

type registration struct {
	Binding
	hk   *hotkey.Hotkey
	done chan struct{}
}

// Manager owns the process's global hotkeys.
type Manager struct {
	log zerolog.Logger

	mu   sync.Mutex
	regs []*registration
}

func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "hotkey").Logger()}
}

// Register parses spec and binds it to cb. cb runs on the manager's
// listener goroutine.
func (m *Manager) Register(spec string, cb func()) (*Binding, error) {
	c, err := Parse(spec)
	if err != nil {
		return nil, err
	}

	var mods []hotkey.Modifier
	if c.Mods&ModCtrl != 0 {
		mods = append(mods, hotkey.ModCtrl)
	}
	if c.Mods&ModAlt != 0 {
		mods = append(mods, hotkey.ModAlt)
	}
	if c.Mods&ModShift != 0 {
		mods = append(mods, hotkey.ModShift)
	}
	if c.Mods&ModWin != 0 {
		mods = append(mods, hotkey.ModWin)
	}

	hk := hotkey.New(mods, hotkey.Key(c.Key))
	if err := hk.Register(); err != nil {
		return nil, fmt.Errorf("hotkey: register %s: %w", c, err)
	}

	r := &registration{
		Binding: Binding{Spec: spec, Combo: c},
		hk:      hk,
		done:    make(chan struct{}),
	}
	go m.listen(r, cb)

	m.mu.Lock()
	m.regs = append(m.regs, r)
	m.mu.Unlock()

	m.log.Debug().Str("spec", spec).Stringer("combo", c).Msg("registered")
	return &r.Binding, nil
}

func (m *Manager) listen(r *registration, cb func()) {
	for {
		select {
		case <-r.done:
			return
		case _, ok := <-r.hk.Keydown():
			if !ok {
				return
			}
			if cb != nil {
				cb()
			}
		}
	}
}

// UnregisterAll releases every hotkey registered so far.
func (m *Manager) UnregisterAll() {
	m.mu.Lock()
	regs := m.regs
	m.regs = nil
	m.mu.Unlock()

	for _, r := range regs {
		close(r.done)
		if err := r.hk.Unregister(); err != nil {
			m.log.Warn().Err(err).Str("spec", r.Spec).Msg("unregister failed")
		}
	}
}
