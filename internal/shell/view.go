package shell

import (
	"image"
	"image/draw"
	"time"

	"github.com/1broseidon/halo/internal/platform"
)

// View is the geometry handed to the content layer each frame.
type View struct {
	Size      int
	Radius    float64
	MinRadius float64
	MaxRadius float64
	Expanded  bool
	Settled   bool
	HasFocus  bool
}

// Center returns the circle center in window coordinates.
func (v View) Center() image.Point {
	return image.Pt(v.Size/2, v.Size/2)
}

// Content is the application layer hosted inside the overlay. The shell
// owns the window, region, focus, drag, and close gesture; Content owns
// everything drawn inside the circle.
type Content interface {
	// Render draws the content into the surface. The shell has already
	// painted the background circle.
	Render(dst draw.Image, view View)

	// TryHandleClick gives the content first claim on a primary click in
	// window coordinates. Returning true consumes the click so it never
	// activates or drags the overlay.
	TryHandleClick(pos image.Point, view View) bool

	// HandleWheel receives wheel ticks over the overlay.
	HandleWheel(up bool)

	// Tick advances content state once per frame.
	Tick(now time.Time)
}

// KeyHandler is optionally implemented by Content to receive key-down
// events the shell does not consume itself. Escape is reserved for the
// close gesture and never forwarded.
type KeyHandler interface {
	HandleKey(key platform.Key)
}

// Notifier lets content request user attention through the shell.
type Notifier interface {
	Flash(count int)
}
