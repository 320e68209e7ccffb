//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

// Apply writes the settings to HKEY_CURRENT_USER. The PrintScreen value
// is only written when OverridePrintScreen says so.
func Apply(s Settings, prev *Settings) error {
	err := SetRunOnStartup(s.Name, s.Exe, s.RunOnStartup)
	if OverridePrintScreen(s, prev) {
		err = errors.Join(err, SetPrintScreenOverride(s.DisablePrintScreen))
	}
	return err
}

// SetRunOnStartup adds or removes the Run entry name.
func SetRunOnStartup(name, exe string, enabled bool) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("autostart: open run key: %w", err)
	}
	defer k.Close()

	if enabled {
		if err := k.SetStringValue(name, RunCommand(exe)); err != nil {
			return fmt.Errorf("autostart: set %s: %w", name, err)
		}
		return nil
	}
	if err := k.DeleteValue(name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("autostart: delete %s: %w", name, err)
	}
	return nil
}

// SetPrintScreenOverride stops Windows from opening the snipping tool
// on PrintScreen, so the key reaches our hotkey.
func SetPrintScreenOverride(disable bool) error {
	k, _, err := registry.CreateKey(registry.CURRENT_USER, keyboardKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("autostart: open keyboard key: %w", err)
	}
	defer k.Close()
	if err := k.SetDWordValue(snippingValue, snippingFlag(disable)); err != nil {
		return fmt.Errorf("autostart: set %s: %w", snippingValue, err)
	}
	return nil
}
