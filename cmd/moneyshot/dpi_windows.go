//go:build windows

package main

import "golang.org/x/sys/windows"

// Per-monitor DPI awareness must be set before any window or capture
// call, so this runs in init.
func init() {
	user32 := windows.NewLazySystemDLL("user32.dll")

	// Windows 10 1703+: PER_MONITOR_AWARE_V2 (-4), then PER_MONITOR_AWARE (-3).
	ctx := user32.NewProc("SetProcessDpiAwarenessContext")
	if ctx.Find() == nil {
		if r, _, _ := ctx.Call(^uintptr(3)); r != 0 {
			return
		}
		if r, _, _ := ctx.Call(^uintptr(2)); r != 0 {
			return
		}
	}

	// Windows 8.1+: PROCESS_PER_MONITOR_DPI_AWARE, else SYSTEM_DPI_AWARE.
	shcore := windows.NewLazySystemDLL("shcore.dll")
	awareness := shcore.NewProc("SetProcessDpiAwareness")
	if awareness.Find() == nil {
		if r, _, _ := awareness.Call(2); r == 0 {
			return
		}
		awareness.Call(1)
		return
	}

	user32.NewProc("SetProcessDPIAware").Call()
}
