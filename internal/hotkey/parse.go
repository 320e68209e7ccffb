package hotkey

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrEmptySpec       = errors.New("hotkey: empty hotkey")
	ErrUnknownKey      = errors.New("hotkey: unknown key")
	ErrUnknownModifier = errors.New("hotkey: unknown modifier")
	ErrNoKey           = errors.New("hotkey: no key after modifiers")
)

// Modifier is a bit set with the values RegisterHotKey expects.
type Modifier uint8

const (
	ModAlt Modifier = 1 << iota
	ModCtrl
	ModShift
	ModWin
)

// VK is a Windows virtual-key code.
type VK uint16

const (
	VKSnapshot VK = 0x2C
	VK0        VK = 0x30
	VKF1       VK = 0x70
)

// Combo is a parsed hotkey.
type Combo struct {
	Mods Modifier
	Key  VK
}

var modifierNames = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"shift":   ModShift,
	"win":     ModWin,
	"windows": ModWin,
}

// lookupKey resolves a lower-case key name.
func lookupKey(name string) (VK, bool) {
	switch name {
	case "printscreen", "prtsc", "snapshot":
		return VKSnapshot, true
	}
	if len(name) == 1 && name[0] >= '0' && name[0] <= '9' {
		return VK0 + VK(name[0]-'0'), true
	}
	if len(name) >= 2 && name[0] == 'f' {
		n, err := strconv.Atoi(name[1:])
		if err == nil && n >= 1 && n <= 12 {
			return VKF1 + VK(n-1), true
		}
	}
	return 0, false
}

// Parse reads a spec of the form [Modifier+]*Key, case-insensitively.
// Modifiers are Ctrl, Alt, Shift and Win; keys are PrintScreen, 0-9 and
// F1-F12. When several keys are given the last one wins, and since a
// global hotkey cannot be a two-key chord, Ctrl+Alt is implied if no
// modifier was named. "PrintScreen+2" therefore registers Ctrl+Alt+2.
func Parse(spec string) (Combo, error) {
	if strings.TrimSpace(spec) == "" {
		return Combo{}, ErrEmptySpec
	}

	var c Combo
	keys := 0
	parts := strings.Split(spec, "+")
	for i, part := range parts {
		tok := strings.ToLower(strings.TrimSpace(part))
		if m, ok := modifierNames[tok]; ok {
			c.Mods |= m
			continue
		}
		if k, ok := lookupKey(tok); ok {
			c.Key = k
			keys++
			continue
		}
		if i == len(parts)-1 {
			return Combo{}, fmt.Errorf("%w %q in %q", ErrUnknownKey, part, spec)
		}
		return Combo{}, fmt.Errorf("%w %q in %q", ErrUnknownModifier, part, spec)
	}

	if keys == 0 {
		return Combo{}, fmt.Errorf("%w: %q", ErrNoKey, spec)
	}
	if keys > 1 && c.Mods == 0 {
		c.Mods = ModCtrl | ModAlt
	}
	return c, nil
}

// KeyName is the canonical name of k.
func KeyName(k VK) string {
	switch {
	case k == VKSnapshot:
		return "PrintScreen"
	case k >= VK0 && k <= VK0+9:
		return string(rune('0' + k - VK0))
	case k >= VKF1 && k < VKF1+12:
		return "F" + strconv.Itoa(int(k-VKF1)+1)
	}
	return fmt.Sprintf("0x%02X", uint16(k))
}

// String formats c as Ctrl+Alt+Shift+Win+Key.
func (c Combo) String() string {
	var b strings.Builder
	for _, m := range []struct {
		mod  Modifier
		name string
	}{
		{ModCtrl, "Ctrl"},
		{ModAlt, "Alt"},
		{ModShift, "Shift"},
		{ModWin, "Win"},
	} {
		if c.Mods&m.mod != 0 {
			b.WriteString(m.name)
			b.WriteByte('+')
		}
	}
	b.WriteString(KeyName(c.Key))
	return b.String()
}

// MonitorSpec is the hotkey that captures monitor n (1-based).
func MonitorSpec(n int) string {
	return "PrintScreen+" + strconv.Itoa(n)
}
