package shell

import (
	"image"
	"log/slog"
	"time"

	"github.com/1broseidon/halo/internal/platform"
)

// Dispatcher routes one frame's events to the interaction components.
// Click claims are resolved in a fixed order: content first, then the
// activation zone, then drag.
type Dispatcher struct {
	content Content
	focus   *FocusAnimator
	drag    *Drag
	gesture *CloseGesture
	radius  *Radius
	size    int
	log     *slog.Logger
}

// NewDispatcher wires the event router to its consumers.
func NewDispatcher(content Content, focus *FocusAnimator, drag *Drag, gesture *CloseGesture, radius *Radius, size int, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		content: content,
		focus:   focus,
		drag:    drag,
		gesture: gesture,
		radius:  radius,
		size:    size,
		log:     log,
	}
}

// Dispatch processes a frame's events in order. It returns true when a
// quit event was seen.
func (d *Dispatcher) Dispatch(events []platform.Event, now time.Time) bool {
	quit := false
	for _, ev := range events {
		switch ev.Kind {
		case platform.EventQuit:
			quit = true

		case platform.EventKeyDown:
			if ev.Key == platform.KeyEscape {
				d.gesture.KeyDown(now)
			} else if kh, ok := d.content.(KeyHandler); ok {
				kh.HandleKey(ev.Key)
			}

		case platform.EventKeyUp:
			if ev.Key == platform.KeyEscape {
				d.gesture.KeyUp()
			}

		case platform.EventPointerDown:
			switch ev.Button {
			case platform.ButtonPrimary:
				d.pointerDown(ev)
			case platform.ButtonWheelUp:
				d.content.HandleWheel(true)
			case platform.ButtonWheelDown:
				d.content.HandleWheel(false)
			}

		case platform.EventPointerUp:
			if ev.Button == platform.ButtonPrimary {
				d.drag.End()
			}

		case platform.EventPointerMove:
			if err := d.drag.Track(); err != nil {
				d.log.Warn("drag reposition failed", "error", err)
			}
		}
	}
	return quit
}

// pointerDown resolves a primary press. Clicks outside the current
// circle fall through to whatever is behind the shaped window, so they
// never reach us; the guard covers backends without precise shaping.
func (d *Dispatcher) pointerDown(ev platform.Event) {
	if !d.withinCircle(ev.Pos) {
		return
	}

	if d.content.TryHandleClick(image.Pt(ev.Pos.X, ev.Pos.Y), d.View()) {
		return
	}

	center := platform.Point{X: d.size / 2, Y: d.size / 2}
	if d.focus.TryActivate(ev.Pos, center) {
		return
	}

	_ = d.drag.Begin()
}

func (d *Dispatcher) withinCircle(pos platform.Point) bool {
	dx := float64(pos.X - d.size/2)
	dy := float64(pos.Y - d.size/2)
	r := d.radius.Current
	return dx*dx+dy*dy <= r*r
}

// View snapshots the current geometry for the content layer.
func (d *Dispatcher) View() View {
	return View{
		Size:      d.size,
		Radius:    d.radius.Current,
		MinRadius: d.radius.Min,
		MaxRadius: d.radius.Max,
		Expanded:  d.radius.Expanded(),
		Settled:   d.radius.Settled(),
		HasFocus:  d.focus.HasFocus(),
	}
}
