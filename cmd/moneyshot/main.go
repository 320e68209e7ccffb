package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"golang.design/x/hotkey/mainthread"

	"moneyshot/internal/app"
	"moneyshot/internal/capture"
	"moneyshot/internal/clipboard"
	"moneyshot/internal/config"
	"moneyshot/internal/hotkey"
	"moneyshot/internal/logging"
	"moneyshot/internal/notify"
	"moneyshot/internal/storage"
	"moneyshot/internal/tray"
)

const version = "1.0.0"

var (
	debug      = flag.Bool("debug", false, "log at debug level and echo logs to stderr")
	configPath = flag.String("config", "", "settings file (default: per-user settings.json)")
	captureArg = flag.String("capture", "", "capture once and exit: full, region or monitor:N")
	showVer    = flag.Bool("version", false, "print the version and exit")
)

func main() {
	flag.Parse()

	if *showVer {
		fmt.Println("MoneyShot v" + version)
		return
	}
	if *configPath == "" {
		*configPath = config.DefaultPath()
	}

	// Global hotkeys and the tray need the main OS thread.
	mainthread.Init(run)
}

func run() {
	level := "info"
	if *debug {
		level = "debug"
	}
	log, closeLog, err := logging.Setup(logging.Options{
		Level:   level,
		Dir:     logging.DefaultDir(*configPath),
		Console: *debug,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "logging:", err)
	}
	defer closeLog()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Warn().Err(err).Str("path", *configPath).Msg("settings loaded with fallbacks")
	}

	notifier := notify.New(log)

	release, err := acquireSingleInstance()
	if err != nil {
		log.Info().Err(err).Msg("another instance is running")
		notifier.Alert("MoneyShot", "MoneyShot is already running.")
		return
	}
	defer release()

	exe, err := os.Executable()
	if err != nil {
		log.Warn().Err(err).Msg("executable path unknown")
	}

	hk := hotkey.NewManager(log)
	a := app.New(cfg, *configPath, app.Deps{
		Capturer: capture.NewCapturer(),
		Selector: capture.NewSelector(),
		Store:    storage.New(storage.OptionsFrom(cfg), clipboard.New()),
		Hotkeys:  hk,
		Notifier: notifier,
		Log:      log,
		Exe:      exe,
	})

	if *captureArg != "" {
		if err := captureOnce(a, *captureArg); err != nil {
			log.Error().Err(err).Msg("capture flag")
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		return
	}

	a.ApplyStartup()
	n := a.RegisterHotkeys()
	log.Info().
		Str("version", version).
		Int("hotkeys", n).
		Str("config", *configPath).
		Str("saveTo", a.Store.Options().Dir).
		Msg("MoneyShot started")

	if !cfg.StartInTray {
		startupToast(notifier, cfg, log)
	}

	t := tray.New(a.TrayMenu(func() {
		log.Info().Msg("exit requested")
	}))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Info().Msg("interrupted")
		t.Quit()
	}()

	mainthread.Call(t.Run)
	hk.UnregisterAll()
}

// captureOnce runs a single capture named by the -capture flag.
func captureOnce(a *app.App, arg string) error {
	switch {
	case arg == "full":
		a.CaptureFull()
	case arg == "region":
		a.CaptureRegion()
	case strings.HasPrefix(arg, "monitor:"):
		n, err := strconv.Atoi(strings.TrimPrefix(arg, "monitor:"))
		if err != nil {
			return fmt.Errorf("invalid monitor in %q", arg)
		}
		a.CaptureMonitor(n)
	default:
		return fmt.Errorf("unknown capture mode %q", arg)
	}
	return nil
}

func startupToast(n app.Notifier, cfg *config.Settings, log zerolog.Logger) {
	msg := fmt.Sprintf("%s captures the screen, %s a region.", cfg.CaptureHotkey, cfg.RegionHotkey)
	if err := n.Show("MoneyShot is running", msg); err != nil {
		log.Warn().Err(err).Msg("startup notification")
	}
}
