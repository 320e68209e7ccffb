// Package app wires capture, editing, hotkeys and the tray together.
package app

import (
	"errors"
	"fmt"
	"image"
	"os/exec"
	"runtime"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"moneyshot/internal/autostart"
	"moneyshot/internal/capture"
	"moneyshot/internal/config"
	"moneyshot/internal/editor"
	"moneyshot/internal/hotkey"
	"moneyshot/internal/storage"
	"moneyshot/internal/tray"
)

// MaxMonitorHotkeys caps the PrintScreen+N bindings at the digits 1-9.
const MaxMonitorHotkeys = 9

// Hotkeys registers global shortcuts.
type Hotkeys interface {
	Register(spec string, cb func()) (*hotkey.Binding, error)
	UnregisterAll()
}

// Notifier shows toasts and blocking alerts.
type Notifier interface {
	Show(title, message string) error
	Alert(title, message string)
}

// EditorFunc opens an editor over img and blocks until it closes.
type EditorFunc func(img *image.RGBA, opts editor.Options) error

// Deps are the collaborators of an App.
type Deps struct {
	Capturer capture.Capturer
	Selector capture.Selector
	Store    *storage.Service
	Hotkeys  Hotkeys
	Notifier Notifier
	Editor   EditorFunc
	Log      zerolog.Logger
	// Exe is registered to run at logon when RunOnStartup is set.
	Exe string
}

// App runs the capture flows.
type App struct {
	Deps

	cfgPath string

	mu  sync.Mutex
	cfg *config.Settings
	// applied is the last startup state handed to autostart.
	applied *autostart.Settings

	// busy serializes captures so a held hotkey opens one editor.
	busy sync.Mutex

	sleep func(time.Duration)
	// exec starts a program, waiting for it to exit when wait is set.
	exec func(wait bool, name string, args ...string) error
}

func New(cfg *config.Settings, cfgPath string, d Deps) *App {
	if d.Editor == nil {
		d.Editor = editor.Open
	}
	d.Log = d.Log.With().Str("component", "app").Logger()
	return &App{
		Deps:    d,
		cfgPath: cfgPath,
		cfg:     cfg,
		sleep:   time.Sleep,
		exec:    startCommand,
	}
}

// Settings returns the current settings.
func (a *App) Settings() *config.Settings {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// ---------- capture flows ----------

// CaptureFull captures the whole virtual screen and opens the editor.
func (a *App) CaptureFull() {
	a.run("full", func() (*image.RGBA, error) {
		a.sleep(capture.HideDelay)
		return a.Capturer.CaptureFullVirtualScreen()
	})
}

// CaptureRegion freezes the screen, lets the user drag a rectangle over
// it and opens the editor on that rectangle.
func (a *App) CaptureRegion() {
	a.run("region", func() (*image.RGBA, error) {
		a.sleep(capture.HideDelay)
		frozen, err := a.Capturer.CaptureFullVirtualScreen()
		if err != nil {
			return nil, err
		}
		r, ok, err := a.Selector.SelectRegion(frozen)
		if err != nil || !ok {
			return nil, err
		}
		return capture.CropImage(frozen, r), nil
	})
}

// CaptureMonitor captures monitor n (1-based) and opens the editor.
func (a *App) CaptureMonitor(n int) {
	a.run(fmt.Sprintf("monitor %d", n), func() (*image.RGBA, error) {
		a.sleep(capture.MonitorHideDelay)
		return capture.CaptureMonitor(a.Capturer, n)
	})
}

// run performs one capture and edits the result. A nil image with a nil
// error means the user cancelled. Captures arriving while another is in
// progress are dropped.
func (a *App) run(kind string, grab func() (*image.RGBA, error)) {
	if !a.busy.TryLock() {
		a.Log.Debug().Str("kind", kind).Msg("capture already in progress")
		return
	}
	defer a.busy.Unlock()

	img, err := grab()
	if err != nil {
		a.Log.Error().Err(err).Str("kind", kind).Msg("capture failed")
		a.Notifier.Alert("Capture failed", err.Error())
		return
	}
	if img == nil {
		a.Log.Debug().Str("kind", kind).Msg("capture cancelled")
		return
	}
	a.Log.Info().Str("kind", kind).Interface("size", img.Bounds().Size()).Msg("captured")
	a.edit(img)
}

func (a *App) edit(img *image.RGBA) {
	cfg := a.Settings()
	err := a.Editor(img, editor.Options{
		Title:    "MoneyShot Editor",
		Style:    cfg.Style(),
		Saver:    a.Store,
		Notifier: a.Notifier,
		Log:      a.Log,
	})
	if errors.Is(err, editor.ErrUnsupported) {
		// No editor window here: save straight away.
		a.saveDirect(img)
		return
	}
	if err != nil {
		a.Log.Error().Err(err).Msg("editor failed")
		a.Notifier.Alert("Editor failed", err.Error())
	}
}

func (a *App) saveDirect(img *image.RGBA) {
	res, err := a.Store.Save(img)
	if err != nil {
		a.Log.Error().Err(err).Msg("save failed")
		a.Notifier.Alert("Save failed", err.Error())
		return
	}
	if err := a.Notifier.Show("MoneyShot", res.String()); err != nil {
		a.Log.Warn().Err(err).Msg("notification failed")
	}
}

// ---------- hotkeys ----------

// RegisterHotkeys replaces all bindings with the configured capture and
// region hotkeys plus PrintScreen+N for each monitor. Failures are
// logged and skipped. It returns the number of bindings made.
func (a *App) RegisterHotkeys() int {
	a.Hotkeys.UnregisterAll()
	cfg := a.Settings()

	bound := 0
	bind := func(spec string, cb func()) {
		if _, err := a.Hotkeys.Register(spec, func() { go cb() }); err != nil {
			a.Log.Warn().Err(err).Str("spec", spec).Msg("hotkey skipped")
			return
		}
		bound++
	}

	bind(cfg.CaptureHotkey, a.CaptureFull)
	bind(cfg.RegionHotkey, a.CaptureRegion)

	screens, err := a.Capturer.Screens()
	if err != nil {
		a.Log.Warn().Err(err).Msg("no monitor hotkeys")
		return bound
	}
	for i := 1; i <= min(len(screens), MaxMonitorHotkeys); i++ {
		n := i
		bind(hotkey.MonitorSpec(n), func() { a.CaptureMonitor(n) })
	}
	return bound
}

// ---------- settings ----------

// Reload rereads the settings file and applies it to storage and
// hotkeys.
func (a *App) Reload() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		a.Log.Warn().Err(err).Msg("settings reloaded with fallbacks")
	}
	a.mu.Lock()
	a.cfg = cfg
	a.mu.Unlock()

	a.Store.SetOptions(storage.OptionsFrom(cfg))
	a.RegisterHotkeys()
	a.ApplyStartup()
	return err
}

// ApplyStartup syncs the run-at-logon and PrintScreen settings with the
// OS.
func (a *App) ApplyStartup() {
	cfg := a.Settings()
	st := autostart.Settings{
		Name:               config.AppName,
		Exe:                a.Exe,
		RunOnStartup:       cfg.RunOnStartup,
		DisablePrintScreen: cfg.DisablePrintScreen,
	}
	a.mu.Lock()
	prev := a.applied
	a.applied = &st
	a.mu.Unlock()

	err := autostart.Apply(st, prev)
	switch {
	case errors.Is(err, autostart.ErrUnsupported):
		a.Log.Debug().Msg("startup settings not applied on this platform")
	case err != nil:
		a.Log.Warn().Err(err).Msg("apply startup settings")
	}
}

// OpenSettings opens the settings file in the default editor, waits for
// it to close and reloads.
func (a *App) OpenSettings() {
	if err := a.exec(true, settingsEditor(), a.cfgPath); err != nil {
		a.Log.Error().Err(err).Msg("open settings failed")
		a.Notifier.Alert("Settings", "Could not open "+a.cfgPath+": "+err.Error())
		return
	}
	_ = a.Reload()
}

// OpenSaveFolder shows the save directory in the file manager.
func (a *App) OpenSaveFolder() {
	dir := a.Store.Options().Dir
	if err := a.exec(false, fileManager(), dir); err != nil {
		a.Log.Error().Err(err).Str("dir", dir).Msg("open folder failed")
	}
}

// TrayMenu builds the tray menu for the current monitors. onExit runs
// after hotkeys are released.
func (a *App) TrayMenu(onExit func()) tray.Menu {
	cfg := a.Settings()
	m := tray.Menu{
		Tooltip:         "MoneyShot",
		CaptureHotkey:   cfg.CaptureHotkey,
		RegionHotkey:    cfg.RegionHotkey,
		OnCaptureFull:   func() { go a.CaptureFull() },
		OnCaptureRegion: func() { go a.CaptureRegion() },
		OnSettings:      a.OpenSettings,
		OnOpenFolder:    a.OpenSaveFolder,
		OnExit: func() {
			a.Hotkeys.UnregisterAll()
			if onExit != nil {
				onExit()
			}
		},
	}

	screens, err := a.Capturer.Screens()
	if err != nil {
		a.Log.Warn().Err(err).Msg("no monitor menu entries")
		return m
	}
	for i, s := range screens {
		n := i + 1
		m.Monitors = append(m.Monitors, tray.Monitor{
			Label:   capture.MonitorLabel(s, len(screens)),
			OnClick: func() { go a.CaptureMonitor(n) },
		})
	}
	return m
}

func settingsEditor() string {
	if runtime.GOOS == "windows" {
		return "notepad.exe"
	}
	return "xdg-open"
}

func fileManager() string {
	switch runtime.GOOS {
	case "windows":
		return "explorer.exe"
	case "darwin":
		return "open"
	default:
		return "xdg-open"
	}
}

func startCommand(wait bool, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	if wait {
		return cmd.Run()
	}
	return cmd.Start()
}
