// Package autostart applies the startup-related settings to the OS.
package autostart

import "errors"

// ErrUnsupported is returned outside Windows.
var ErrUnsupported = errors.New("autostart: not supported on this platform")

const (
	runKeyPath      = `Software\Microsoft\Windows\CurrentVersion\Run`
	keyboardKeyPath = `Control Panel\Keyboard`
	snippingValue   = "PrintScreenKeyForSnippingEnabled"
)

// Settings is the subset of the configuration applied here.
type Settings struct {
	// Name is the Run value name.
	Name string
	// Exe is the executable to start at logon.
	Exe                string
	RunOnStartup       bool
	DisablePrintScreen bool
}

// RunCommand is the Run value data for exe: the quoted path.
func RunCommand(exe string) string {
	return `"` + exe + `"`
}

// snippingFlag is the DWORD telling Windows whether PrintScreen opens
// the snipping tool.
func snippingFlag(disablePrintScreen bool) uint32 {
	if disablePrintScreen {
		return 0
	}
	return 1
}

// OverridePrintScreen reports whether Apply writes the PrintScreen value.
// prev is what was applied last, nil on the first call. The user's own
// OS setting is left alone unless the option is on or was just turned
// off.
func OverridePrintScreen(s Settings, prev *Settings) bool {
	return s.DisablePrintScreen || (prev != nil && prev.DisablePrintScreen)
}
