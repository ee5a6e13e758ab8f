package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ddushok/mac-shout/audiocapture"
	"github.com/ddushok/mac-shout/config"
	"github.com/ddushok/mac-shout/dictation"
	"github.com/ddushok/mac-shout/history"
	"github.com/ddushok/mac-shout/hotkey"
	"github.com/ddushok/mac-shout/inject"
	"github.com/ddushok/mac-shout/permission"
	"github.com/ddushok/mac-shout/stt"
)

var (
	version = "dev"
	commit  = "none"
)

// App wires the dictation pipeline together and owns its lifecycle.
type App struct {
	cfg      *config.Config
	registry *stt.Registry
	recorder *audiocapture.Recorder
	injector *inject.Injector
	hist     *history.Store
	coord    *dictation.Coordinator
	filter   *hotkey.Filter
}

// logSink reports coordinator events to the log. A UI would subscribe here
// instead.
type logSink struct{}

func (logSink) StateChanged(s dictation.State) {
	if s.Phase == dictation.PhaseError {
		slog.Error("dictation error", "message", s.Err)
		return
	}
	slog.Info("state changed", "phase", s.Phase)
}

func (logSink) Transcript(text string) {
	slog.Info("transcribed", "chars", len(text))
}

// Init builds every component. It returns an error only for failures the
// app cannot run without; optional pieces log and continue.
func (a *App) Init() error {
	cfg, err := config.Load()
	if err != nil {
		// A zero Config would arm keycode 0 (the A key) as the hotkey.
		slog.Error("load config, using defaults", "error", err)
		cfg = config.Default()
	}
	a.cfg = cfg

	perm := permission.System()

	a.setupSTT()
	a.setupHistory()

	recorder, err := audiocapture.NewRecorder(perm)
	if err != nil {
		return err
	}
	a.recorder = recorder
	if cfg.InputDevice != "" {
		if err := recorder.Rebind(cfg.InputDevice); err != nil {
			slog.Warn("bind input device", "device", cfg.InputDevice, "error", err)
		}
	}

	a.injector = inject.New(perm)

	rec := a.registry.Get(cfg.Recognizer)
	if rec == nil {
		slog.Warn("configured recognizer unavailable", "name", cfg.Recognizer)
	}

	var opts []dictation.Option
	if a.hist != nil {
		opts = append(opts, dictation.WithHistorian(a.hist))
	}
	a.coord = dictation.New(a.recorder, rec, a.injector, cfg, logSink{}, opts...)

	hk, err := cfg.Hotkey.HotKey()
	if err != nil {
		return err
	}
	a.filter = hotkey.NewFilter(hk, perm, a.coord.HotkeyDown, a.coord.HotkeyUp)
	return nil
}

func (a *App) setupSTT() {
	a.registry = stt.NewRegistry()

	if a.cfg.ModelPath != "" {
		native, err := stt.NewNative(a.cfg.ModelPath)
		if err != nil {
			slog.Error("load whisper model", "path", a.cfg.ModelPath, "error", err)
		} else {
			a.registry.Register(native)
			slog.Info("registered local whisper model", "path", a.cfg.ModelPath)
		}
	}

	if a.cfg.APIKey != "" {
		a.registry.Register(stt.NewAPI(stt.APIConfig{
			APIKey:  a.cfg.APIKey,
			BaseURL: a.cfg.APIBaseURL,
		}))
		slog.Info("registered whisper API recognizer")
	}

	slog.Info("recognizers initialized", "count", len(a.registry.List()))
}

func (a *App) setupHistory() {
	dir, err := config.DataDir()
	if err != nil {
		slog.Error("get data dir for history", "error", err)
		return
	}
	store, err := history.New(filepath.Join(dir, "history"))
	if err != nil {
		slog.Error("open history store", "error", err)
		return
	}
	a.hist = store
}

// Shutdown releases resources in reverse dependency order.
func (a *App) Shutdown() {
	if a.filter != nil {
		a.filter.Stop()
	}
	if a.recorder != nil {
		a.recorder.Stop()
	}
	if a.registry != nil {
		if err := a.registry.Close(); err != nil {
			slog.Error("close recognizers", "error", err)
		}
	}
	if a.hist != nil {
		if err := a.hist.Close(); err != nil {
			slog.Error("close history store", "error", err)
		}
	}
}

func main() {
	slog.Info("starting mac-shout", "version", version, "commit", commit)

	app := &App{}
	if err := app.Init(); err != nil {
		slog.Error("init", "error", err)
		os.Exit(1)
	}
	if err := app.filter.Start(); err != nil {
		slog.Error("start hotkey filter", "error", err)
		app.Shutdown()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("listening for hotkey",
		"key", app.cfg.Hotkey.KeyCode,
		"modifiers", app.cfg.Hotkey.Modifiers)
	app.coord.Run(ctx)

	slog.Info("shutting down")
	app.Shutdown()
}
