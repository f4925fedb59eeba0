package shell

import "time"

// DefaultCloseHold is how long the close key must be held before the
// overlay shuts down.
const DefaultCloseHold = 1500 * time.Millisecond

// GesturePhase is the state of the press-and-hold close gesture.
type GesturePhase int

const (
	GestureIdle GesturePhase = iota
	GestureHolding
	GestureClosed
)

func (p GesturePhase) String() string {
	switch p {
	case GestureIdle:
		return "idle"
	case GestureHolding:
		return "holding"
	case GestureClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// CloseGesture tracks a press-and-hold close gesture. Only a fresh key
// press starts the hold: a key already down when the overlay gains
// focus never generates a press event here, and repeat presses while
// holding are ignored.
type CloseGesture struct {
	phase     GesturePhase
	holdStart time.Time
	threshold time.Duration
}

// NewCloseGesture creates a gesture tracker. A non-positive threshold
// falls back to DefaultCloseHold.
func NewCloseGesture(threshold time.Duration) *CloseGesture {
	if threshold <= 0 {
		threshold = DefaultCloseHold
	}
	return &CloseGesture{threshold: threshold}
}

// KeyDown records a fresh press of the close key.
func (g *CloseGesture) KeyDown(now time.Time) {
	if g.phase == GestureIdle {
		g.phase = GestureHolding
		g.holdStart = now
	}
}

// KeyUp cancels an in-progress hold. A completed gesture stays closed.
func (g *CloseGesture) KeyUp() {
	if g.phase == GestureHolding {
		g.phase = GestureIdle
	}
}

// Update promotes a hold that has reached the threshold.
func (g *CloseGesture) Update(now time.Time) {
	if g.phase == GestureHolding && now.Sub(g.holdStart) >= g.threshold {
		g.phase = GestureClosed
	}
}

// SetThreshold replaces the hold duration. Non-positive values restore
// the default.
func (g *CloseGesture) SetThreshold(d time.Duration) {
	if d <= 0 {
		d = DefaultCloseHold
	}
	g.threshold = d
}

// Phase returns the current gesture phase.
func (g *CloseGesture) Phase() GesturePhase {
	return g.phase
}

// Progress reports hold completion in [0, 1]. It is zero while idle and
// stays 1 once the gesture has closed.
func (g *CloseGesture) Progress(now time.Time) float64 {
	if g.phase == GestureClosed {
		return 1
	}
	if g.phase != GestureHolding {
		return 0
	}
	p := float64(now.Sub(g.holdStart)) / float64(g.threshold)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
