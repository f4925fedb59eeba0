// Package shell implements the frameless circular overlay: window
// shaping, focus-driven radius animation, drag tracking, and the
// press-and-hold close gesture. Content rendered inside the circle is
// supplied by a Content implementation.
package shell

import (
	"fmt"
	"image/color"
	"log/slog"
	"time"

	"github.com/1broseidon/halo/internal/platform"
	"github.com/1broseidon/halo/internal/render"
)

const (
	// DefaultSize is the overlay window edge length in pixels.
	DefaultSize = 400

	// DefaultTransitionRate is the exponential smoothing rate per second.
	DefaultTransitionRate = 8.0

	// arcInset keeps the hold-progress arc inside the shrinking circle.
	arcInset = 4.0

	// arcWidth is the stroke width of the hold-progress arc.
	arcWidth = 4.0
)

// DefaultColorKey is the reserved fully-transparent color. Content must
// never paint it.
var DefaultColorKey = platform.RGB{R: 255, G: 0, B: 255}

// arcColor is the firebrick red of the hold-progress arc.
var arcColor = color.RGBA{R: 255, G: 80, B: 80, A: 255}

// Options configures a Shell. Zero values fall back to defaults.
type Options struct {
	Title      string
	Size       int
	Background color.RGBA

	// MinRadius and MaxRadius default to Size/5 and Size/2.
	MinRadius float64
	MaxRadius float64

	TransitionRate     float64
	ActivationFraction float64
	CloseHold          time.Duration
	ColorKey           platform.RGB
	Logger             *slog.Logger
}

// Shell owns the overlay window and drives all frame-level behavior.
// It is single-threaded: the caller owns the ticker and calls Frame.
type Shell struct {
	backend platform.Backend
	win     platform.WindowID
	content Content
	log     *slog.Logger

	size     int
	bg       color.RGBA
	keyColor color.RGBA

	radius     *Radius
	focus      *FocusAnimator
	drag       *Drag
	gesture    *CloseGesture
	dispatcher *Dispatcher

	closed bool
}

// New creates the overlay window, shapes it, arms color-key
// transparency, and shows it centered on the active monitor.
func New(backend platform.Backend, content Content, opts Options) (*Shell, error) {
	size := opts.Size
	if size <= 0 {
		size = DefaultSize
	}
	minR := opts.MinRadius
	if minR <= 0 {
		minR = float64(size) / 5
	}
	maxR := opts.MaxRadius
	if maxR <= 0 {
		maxR = float64(size) / 2
	}
	rate := opts.TransitionRate
	if rate <= 0 {
		rate = DefaultTransitionRate
	}
	key := opts.ColorKey
	if key == (platform.RGB{}) {
		key = DefaultColorKey
	}
	title := opts.Title
	if title == "" {
		title = "halo"
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	win, err := backend.CreateWindow(title, size)
	if err != nil {
		return nil, fmt.Errorf("failed to create overlay window: %w", err)
	}
	if err := backend.SetCircularRegion(win, size); err != nil {
		_ = backend.DestroyWindow(win)
		return nil, fmt.Errorf("failed to shape overlay window: %w", err)
	}
	if err := backend.SetColorKey(win, key); err != nil {
		log.Warn("color-key transparency unavailable, overlay stays opaque", "error", err)
	}
	if err := backend.RaiseAndCenter(win); err != nil {
		_ = backend.DestroyWindow(win)
		return nil, fmt.Errorf("failed to show overlay window: %w", err)
	}

	bg := opts.Background
	if bg.A == 0 {
		bg = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	}

	s := &Shell{
		backend:  backend,
		win:      win,
		content:  content,
		log:      log,
		size:     size,
		bg:       bg,
		keyColor: color.RGBA{R: key.R, G: key.G, B: key.B, A: 255},
		radius:   NewRadius(minR, maxR, rate),
		gesture:  NewCloseGesture(opts.CloseHold),
	}
	s.focus = NewFocusAnimator(backend, win, s.radius, opts.ActivationFraction)
	s.drag = NewDrag(backend, win)
	s.dispatcher = NewDispatcher(content, s.focus, s.drag, s.gesture, s.radius, size, log)

	log.Info("overlay window created",
		"size", size,
		"min_radius", minR,
		"max_radius", maxR,
	)
	return s, nil
}

// Frame advances the overlay by one frame: drain input, update state,
// draw, present. It returns false once the overlay has shut down, either
// via the close gesture or a window-manager close request. Elapsed is
// the wall time in seconds since the previous frame.
func (s *Shell) Frame(now time.Time, elapsed float64) (bool, error) {
	if s.closed {
		return false, nil
	}

	events, err := s.backend.PollEvents(s.win)
	if err != nil {
		return false, fmt.Errorf("event poll failed: %w", err)
	}

	quit := s.dispatcher.Dispatch(events, now)
	s.focus.Observe()
	s.gesture.Update(now)
	s.radius.Step(elapsed)
	s.content.Tick(now)

	if quit || s.gesture.Phase() == GestureClosed {
		if s.gesture.Phase() == GestureClosed {
			s.log.Info("close gesture completed")
		}
		s.Close()
		return false, nil
	}

	if err := s.draw(now); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Shell) draw(now time.Time) error {
	surface, err := s.backend.Surface(s.win)
	if err != nil {
		return err
	}

	render.Fill(surface, s.keyColor)

	center := float64(s.size) / 2
	render.FillCircle(surface, center, center, s.radius.Current, s.bg)

	s.content.Render(surface, s.dispatcher.View())

	if s.gesture.Phase() == GestureHolding {
		sweep := 360 * s.gesture.Progress(now)
		r := s.radius.Current - arcInset
		if r > 0 && sweep > 0 {
			render.StrokeArc(surface, center, center, r, -90, sweep, arcWidth, arcColor)
		}
	}

	return s.backend.Present(s.win)
}

// SetTransitionRate adjusts the animation smoothing rate at runtime.
// Non-positive rates are ignored.
func (s *Shell) SetTransitionRate(rate float64) {
	if rate > 0 {
		s.radius.Rate = rate
	}
}

// SetCloseHold adjusts the close-gesture hold duration at runtime.
func (s *Shell) SetCloseHold(d time.Duration) {
	s.gesture.SetThreshold(d)
}

// Flash asks the window manager to draw attention to the overlay.
// Implements Notifier for the content layer.
func (s *Shell) Flash(count int) {
	if s.closed {
		return
	}
	if err := s.backend.FlashTaskbar(s.win, count); err != nil {
		s.log.Warn("taskbar flash failed", "error", err)
	}
}

// Status is a point-in-time snapshot of the overlay state.
type Status struct {
	Radius   float64
	Expanded bool
	Settled  bool
	Dragging bool
	Gesture  string
}

// Status reports the current overlay state.
func (s *Shell) Status() Status {
	return Status{
		Radius:   s.radius.Current,
		Expanded: s.radius.Expanded(),
		Settled:  s.radius.Settled(),
		Dragging: s.drag.Active(),
		Gesture:  s.gesture.Phase().String(),
	}
}

// Background returns the overlay's fill color.
func (s *Shell) Background() color.RGBA {
	return s.bg
}

// Close destroys the overlay window. Safe to call more than once.
func (s *Shell) Close() {
	if s.closed {
		return
	}
	s.closed = true
	if err := s.backend.DestroyWindow(s.win); err != nil {
		s.log.Warn("failed to destroy overlay window", "error", err)
	}
}
