package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/1broseidon/halo/internal/config"
	"github.com/1broseidon/halo/internal/content"
	"github.com/1broseidon/halo/internal/ipc"
	"github.com/1broseidon/halo/internal/platform"
	"github.com/1broseidon/halo/internal/runtimepath"
	"github.com/1broseidon/halo/internal/shell"
)

// controlTimeout bounds how long an IPC goroutine waits for the frame
// loop to pick up and finish a marshalled command.
const controlTimeout = 2 * time.Second

func runOverlay(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var minutes int
	fs.IntVar(&minutes, "minutes", 0, "Countdown minutes (overrides config)")
	fs.IntVar(&minutes, "m", 0, "Countdown minutes (shorthand)")
	var autostart bool
	fs.BoolVar(&autostart, "start", false, "Start the countdown immediately")
	fs.BoolVar(&autostart, "s", false, "Start immediately (shorthand)")
	var colorSpec string
	fs.StringVar(&colorSpec, "color", "", "Circle color as R,G,B (overrides config)")
	fs.StringVar(&colorSpec, "c", "", "Circle color (shorthand)")
	var description string
	fs.StringVar(&description, "description", "", "Text shown under the clock")
	fs.StringVar(&description, "d", "", "Description (shorthand)")
	size := fs.Int("size", 0, "Window size in pixels (overrides config)")
	configPath := fs.String("config", "", "Config file path (default: ~/.config/halo/config.yaml)")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: halo run [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the overlay in the foreground.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	var cfg *config.Config
	var warnings []string
	var err error
	if *configPath == "" {
		cfg, warnings, err = config.Load()
	} else {
		cfg, warnings, err = config.LoadFromPath(*configPath)
	}
	if err != nil {
		log.Printf("failed to load config: %v", err)
		return 1
	}
	for _, w := range warnings {
		log.Printf("config: %s", w)
	}

	applyOverrides(cfg, minutes, autostart, colorSpec, description, *size)
	if clamped := cfg.Clamp(); len(clamped) > 0 {
		for _, w := range clamped {
			log.Printf("config: %s", w)
		}
	}

	logger := newLogger(cfg.LogLevel)

	backend, err := platform.NewLinuxBackendFromDisplay()
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	defer backend.Close()

	tc := content.New(content.Options{
		Minutes:     cfg.Timer.Minutes,
		Autostart:   cfg.Timer.Autostart,
		Background:  cfg.BackgroundColor(),
		Description: cfg.Timer.Description,
	})

	windowSize := cfg.Window.Size
	sh, err := shell.New(backend, tc, shell.Options{
		Title:              "halo",
		Size:               windowSize,
		Background:         cfg.BackgroundColor(),
		MinRadius:          float64(windowSize) * cfg.Animation.MinRadiusFraction,
		MaxRadius:          float64(windowSize) * cfg.Animation.MaxRadiusFraction,
		TransitionRate:     cfg.Animation.TransitionRate,
		ActivationFraction: cfg.Animation.ActivationFraction,
		CloseHold:          time.Duration(cfg.Close.HoldSeconds * float64(time.Second)),
		Logger:             logger,
	})
	if err != nil {
		log.Printf("%v", err)
		return 1
	}
	tc.SetNotifier(sh)

	ctrl := &overlayControl{
		shell:       sh,
		content:     tc,
		configPath:  *configPath,
		description: cfg.Timer.Description,
		started:     time.Now(),
		commands:    make(chan func()),
	}

	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		log.Printf("failed to resolve socket path: %v", err)
		sh.Close()
		return 1
	}
	server := ipc.NewServer(socketPath, ctrl)
	if err := server.Start(); err != nil {
		log.Printf("failed to start IPC server: %v", err)
		sh.Close()
		return 1
	}
	defer server.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	logger.Info("halo running", "size", windowSize, "frame_rate", cfg.Window.FrameRate)

	ticker := time.NewTicker(time.Second / time.Duration(cfg.Window.FrameRate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-sigCh:
			logger.Info("shutting down on signal")
			sh.Close()
			return 0
		case fn := <-ctrl.commands:
			fn()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			alive, err := sh.Frame(now, elapsed)
			if err != nil {
				log.Printf("frame failed: %v", err)
				sh.Close()
				return 1
			}
			if !alive {
				return 0
			}
		}
	}
}

func applyOverrides(cfg *config.Config, minutes int, autostart bool, colorSpec, description string, size int) {
	if minutes > 0 {
		cfg.Timer.Minutes = minutes
	}
	if autostart {
		cfg.Timer.Autostart = true
	}
	if colorSpec != "" {
		cfg.Window.Color = colorSpec
	}
	if description != "" {
		cfg.Timer.Description = description
	}
	if size > 0 {
		cfg.Window.Size = size
	}
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// overlayControl adapts the single-threaded shell to the IPC server.
// Connection goroutines never touch the shell directly; every operation
// is pushed as a closure onto commands and executed by the frame loop
// between frames.
type overlayControl struct {
	shell       *shell.Shell
	content     *content.TimerContent
	configPath  string
	description string
	started     time.Time
	commands    chan func()
}

var errOverlayBusy = errors.New("overlay is not responding")

// do runs fn on the frame loop and waits for it to finish. It gives up
// if the loop does not pick the command up in time, so a wedged overlay
// cannot hang IPC clients.
func (o *overlayControl) do(fn func()) error {
	done := make(chan struct{})
	wrapped := func() {
		fn()
		close(done)
	}
	select {
	case o.commands <- wrapped:
	case <-time.After(controlTimeout):
		return errOverlayBusy
	}
	select {
	case <-done:
		return nil
	case <-time.After(controlTimeout):
		return errOverlayBusy
	}
}

func (o *overlayControl) Status() (ipc.StatusData, error) {
	var data ipc.StatusData
	err := o.do(func() {
		st := o.shell.Status()
		timer := o.content.Timer()
		data = ipc.StatusData{
			Radius:         st.Radius,
			Expanded:       st.Expanded,
			Settled:        st.Settled,
			Dragging:       st.Dragging,
			Gesture:        st.Gesture,
			TimerClock:     timer.Clock(),
			TimerRemaining: timer.Remaining(),
			TimerRunning:   timer.Running(),
			TimerFinished:  timer.Finished(),
			Description:    o.description,
			UptimeSeconds:  int64(time.Since(o.started).Seconds()),
		}
	})
	return data, err
}

func (o *overlayControl) Flash(count int) error {
	return o.do(func() {
		o.shell.Flash(count)
	})
}

func (o *overlayControl) TimerSet(minutes int) error {
	return o.do(func() {
		o.content.Timer().Set(minutes, time.Now())
	})
}

func (o *overlayControl) TimerStart() error {
	return o.do(func() {
		o.content.Timer().Start(time.Now())
	})
}

func (o *overlayControl) TimerStop() error {
	return o.do(func() {
		o.content.Timer().Stop()
	})
}

func (o *overlayControl) TimerReset() error {
	return o.do(func() {
		o.content.Timer().Reset()
	})
}

// Reload re-reads the config and applies the knobs that can change at
// runtime: transition rate and close-hold duration. Window size and
// timer seeding require a restart.
func (o *overlayControl) Reload() error {
	var cfg *config.Config
	var warnings []string
	var err error
	if o.configPath == "" {
		cfg, warnings, err = config.Load()
	} else {
		cfg, warnings, err = config.LoadFromPath(o.configPath)
	}
	if err != nil {
		return fmt.Errorf("reload failed: %w", err)
	}
	for _, w := range warnings {
		log.Printf("config: %s", w)
	}
	return o.do(func() {
		o.shell.SetTransitionRate(cfg.Animation.TransitionRate)
		o.shell.SetCloseHold(time.Duration(cfg.Close.HoldSeconds * float64(time.Second)))
	})
}
