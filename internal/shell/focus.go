package shell

import (
	"github.com/1broseidon/halo/internal/platform"
)

// DefaultActivationFraction is the inner-zone size used for re-expansion
// clicks, as a fraction of the current radius.
const DefaultActivationFraction = 1.0 / 3.0

// FocusAnimator couples the radius animation to window focus: losing
// focus collapses the overlay, and only a click on the inner activation
// zone re-expands it.
type FocusAnimator struct {
	backend  platform.Backend
	win      platform.WindowID
	radius   *Radius
	fraction float64
	hasFocus bool
}

// NewFocusAnimator wires focus tracking to a radius animator. A
// non-positive fraction falls back to DefaultActivationFraction.
func NewFocusAnimator(backend platform.Backend, win platform.WindowID, radius *Radius, fraction float64) *FocusAnimator {
	if fraction <= 0 {
		fraction = DefaultActivationFraction
	}
	return &FocusAnimator{
		backend:  backend,
		win:      win,
		radius:   radius,
		fraction: fraction,
	}
}

// Observe collapses the overlay when another window holds focus.
// Focus query failures leave the current state untouched.
func (f *FocusAnimator) Observe() {
	fg, err := f.backend.ForegroundWindow()
	if err != nil {
		return
	}
	f.hasFocus = fg == f.win
	if !f.hasFocus {
		f.radius.Collapse()
	}
}

// HasFocus reports whether the overlay held focus at the last Observe.
func (f *FocusAnimator) HasFocus() bool {
	return f.hasFocus
}

// TryActivate handles a primary click while collapsed. A click within
// the inner activation zone re-expands the overlay, requests focus, and
// consumes the click so it never starts a drag. Clicks elsewhere, or
// while already expanded, are not consumed.
func (f *FocusAnimator) TryActivate(pos, center platform.Point) bool {
	if f.radius.Expanded() {
		return false
	}

	dx := float64(pos.X - center.X)
	dy := float64(pos.Y - center.Y)
	zone := f.radius.Current * f.fraction
	if dx*dx+dy*dy > zone*zone {
		return false
	}

	f.radius.Expand()
	f.hasFocus = true
	_ = f.backend.Activate(f.win)
	return true
}
