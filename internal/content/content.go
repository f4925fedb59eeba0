package content

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"time"

	"github.com/1broseidon/halo/internal/platform"
	"github.com/1broseidon/halo/internal/render"
	"github.com/1broseidon/halo/internal/shell"
)

const (
	// completionFlashes is the taskbar flash repeat when the countdown
	// reaches zero.
	completionFlashes = 3

	// alarmHz oscillates the finished-state background toward red.
	alarmHz = 4.0

	// wheelStep is the wheel adjustment in seconds.
	wheelStep = 60
)

var (
	buttonGray = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	alarmRed   = color.RGBA{R: 255, G: 60, B: 60, A: 255}
)

type buttonKind int

const (
	btnStartStop buttonKind = iota
	btnReset
	btnUp
	btnDown
)

type button struct {
	kind buttonKind
	rect image.Rectangle
}

// TimerContent renders the countdown inside the overlay circle and
// consumes the clicks, wheel ticks, and keys the shell forwards.
type TimerContent struct {
	timer       *Timer
	notifier    shell.Notifier
	bg          color.RGBA
	description string

	now      time.Time
	expanded bool
	buttons  []button
}

var (
	_ shell.Content    = (*TimerContent)(nil)
	_ shell.KeyHandler = (*TimerContent)(nil)
)

// Options configures the timer content.
type Options struct {
	Minutes     int
	Autostart   bool
	Background  color.RGBA
	Description string
}

// New creates timer content. The notifier is attached separately once
// the hosting shell exists.
func New(opts Options) *TimerContent {
	t := NewTimer(opts.Minutes)
	c := &TimerContent{
		timer:       t,
		bg:          opts.Background,
		description: opts.Description,
		now:         time.Now(),
	}
	if opts.Autostart {
		t.Start(c.now)
	}
	return c
}

// SetNotifier attaches the attention-flash sink.
func (c *TimerContent) SetNotifier(n shell.Notifier) {
	c.notifier = n
}

// Timer exposes the countdown state for external control surfaces.
func (c *TimerContent) Timer() *Timer {
	return c.timer
}

// Tick advances the countdown and fires the completion flash once.
func (c *TimerContent) Tick(now time.Time) {
	c.now = now
	if c.timer.Tick(now) && c.notifier != nil {
		c.notifier.Flash(completionFlashes)
	}
}

// background returns the circle color for this frame. While finished it
// oscillates between the configured color and alarm red.
func (c *TimerContent) background() color.RGBA {
	if !c.timer.Finished() {
		return c.bg
	}
	secs := float64(c.now.UnixNano()) / float64(time.Second)
	t := (math.Sin(secs*alarmHz) + 1) / 2
	return lerpColor(c.bg, alarmRed, t)
}

// Render draws the circle, digits, description, and buttons. Button
// rectangles are recorded for the next click's hit test.
func (c *TimerContent) Render(dst draw.Image, view shell.View) {
	c.expanded = view.Expanded
	ratio := 1.0
	if view.MaxRadius > 0 {
		ratio = view.Radius / view.MaxRadius
	}

	bg := c.background()
	fg := render.ContrastColor(bg)
	center := view.Center()
	cx, cy := float64(center.X), float64(center.Y)

	render.FillCircle(dst, cx, cy, view.Radius, bg)

	clock := c.timer.Clock()
	if view.Expanded {
		px := float64(view.Size) / 5 * ratio
		scale := textScale(px)
		y := center.Y - int(px)/2 - render.TextHeight()*scale/2
		render.DrawTextScaled(dst, render.CenterTextX(clock, scale, center.X), y, clock, scale, fg)

		if c.description != "" {
			dpx := float64(view.Size) / 10 * ratio
			dscale := textScale(dpx)
			dy := center.Y - render.TextHeight()*dscale/2
			render.DrawTextScaled(dst, render.CenterTextX(c.description, dscale, center.X), dy, c.description, dscale, fg)
		}

		c.drawButtons(dst, view, ratio, fg)
	} else {
		// Compact mode keeps the digits readable at a fixed size.
		px := float64(view.Size) / 8
		scale := textScale(px)
		y := center.Y - render.TextHeight()*scale/2
		render.DrawTextScaled(dst, render.CenterTextX(clock, scale, center.X), y, clock, scale, fg)
		c.buttons = nil
	}
}

func (c *TimerContent) drawButtons(dst draw.Image, view shell.View, ratio float64, fg color.Color) {
	center := view.Center()
	cx, cy := float64(center.X), float64(center.Y)
	r := view.Radius

	w := int(float64(view.Size) / 4 * ratio)
	h := int(float64(view.Size) / 12 * ratio)

	startLabel := "START"
	if c.timer.Running() {
		startLabel = "STOP"
	}

	specs := []struct {
		kind    buttonKind
		label   string
		cx, cy  float64
		sq      bool
	}{
		{kind: btnStartStop, label: startLabel, cx: cx, cy: cy + r*0.4},
		{kind: btnReset, label: "RESET", cx: cx, cy: cy + r*0.6},
		{kind: btnUp, label: "+", cx: cx + r*0.5, cy: cy, sq: true},
		{kind: btnDown, label: "-", cx: cx - r*0.5, cy: cy, sq: true},
	}

	c.buttons = c.buttons[:0]
	for _, sp := range specs {
		bw := w
		if sp.sq {
			bw = h
		}
		rect := image.Rect(
			int(sp.cx)-bw/2, int(sp.cy)-h/2,
			int(sp.cx)-bw/2+bw, int(sp.cy)-h/2+h,
		)
		render.FillRect(dst, rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), buttonGray)

		lx := render.CenterTextX(sp.label, 1, int(sp.cx))
		ly := int(sp.cy) - render.TextHeight()/2
		render.DrawText(dst, lx, ly, sp.label, fg)

		c.buttons = append(c.buttons, button{kind: sp.kind, rect: rect})
	}
}

// TryHandleClick consumes clicks on the expanded-mode buttons.
func (c *TimerContent) TryHandleClick(pos image.Point, view shell.View) bool {
	if !view.Expanded {
		return false
	}
	for _, b := range c.buttons {
		if !pos.In(b.rect) {
			continue
		}
		switch b.kind {
		case btnStartStop:
			c.timer.Toggle(c.now)
		case btnReset:
			c.timer.Reset()
		case btnUp:
			c.timer.Adjust(wheelStep)
		case btnDown:
			c.timer.Adjust(-wheelStep)
		}
		return true
	}
	return false
}

// HandleWheel adjusts the duration by one minute per tick while the
// overlay is expanded and the countdown is stopped.
func (c *TimerContent) HandleWheel(up bool) {
	if !c.expanded {
		return
	}
	if up {
		c.timer.Adjust(wheelStep)
	} else {
		c.timer.Adjust(-wheelStep)
	}
}

// HandleKey resets a stopped countdown on Return.
func (c *TimerContent) HandleKey(key platform.Key) {
	if key == platform.KeyReturn && !c.timer.Running() {
		c.timer.Reset()
	}
}

func textScale(px float64) int {
	s := int(px) / render.TextHeight()
	if s < 1 {
		s = 1
	}
	return s
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: lerpChannel(a.R, b.R, t),
		G: lerpChannel(a.G, b.G, t),
		B: lerpChannel(a.B, b.B, t),
		A: 255,
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}
