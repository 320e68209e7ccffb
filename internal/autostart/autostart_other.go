//go:build !windows

package autostart

func Apply(s Settings, prev *Settings) error { return ErrUnsupported }

func SetRunOnStartup(name, exe string, enabled bool) error { return ErrUnsupported }

func SetPrintScreenOverride(disable bool) error { return ErrUnsupported }
