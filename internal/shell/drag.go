package shell

import (
	"github.com/1broseidon/halo/internal/platform"
)

// Drag moves the overlay window with the pointer. The cursor-to-corner
// offset is captured once when the drag begins, so the window never
// jumps under the cursor no matter how fast it moves.
type Drag struct {
	backend platform.Backend
	win     platform.WindowID
	active  bool
	offsetX int
	offsetY int
}

// NewDrag creates a drag controller for the overlay window.
func NewDrag(backend platform.Backend, win platform.WindowID) *Drag {
	return &Drag{backend: backend, win: win}
}

// Begin starts a drag at the current cursor position.
func (d *Drag) Begin() error {
	cur, err := d.backend.CursorPosition()
	if err != nil {
		return err
	}
	rect, err := d.backend.WindowRect(d.win)
	if err != nil {
		return err
	}

	d.offsetX = cur.X - rect.X
	d.offsetY = cur.Y - rect.Y
	d.active = true
	return nil
}

// Track repositions the window so the captured offset is preserved.
// It is a no-op when no drag is in progress.
func (d *Drag) Track() error {
	if !d.active {
		return nil
	}
	cur, err := d.backend.CursorPosition()
	if err != nil {
		return err
	}
	return d.backend.SetWindowPosition(d.win, cur.X-d.offsetX, cur.Y-d.offsetY)
}

// End finishes the drag.
func (d *Drag) End() {
	d.active = false
}

// Active reports whether a drag is in progress.
func (d *Drag) Active() bool {
	return d.active
}
