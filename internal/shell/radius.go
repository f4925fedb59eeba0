package shell

import "math"

// settleEpsilon is the band inside which the animation is considered done.
const settleEpsilon = 0.1

// Radius animates the overlay's visible radius toward a target using
// frame-rate independent exponential smoothing.
type Radius struct {
	Current float64
	Target  float64
	Min     float64
	Max     float64
	Rate    float64
}

// NewRadius creates an animator that starts fully expanded.
func NewRadius(min, max, rate float64) *Radius {
	return &Radius{
		Current: max,
		Target:  max,
		Min:     min,
		Max:     max,
		Rate:    rate,
	}
}

// Step advances the animation by elapsed seconds. Zero or negative
// elapsed leaves the state untouched; a huge elapsed converges without
// overshoot because the smoothing factor saturates at 1.
func (r *Radius) Step(elapsed float64) {
	if elapsed <= 0 {
		return
	}
	factor := 1 - math.Exp(-r.Rate*elapsed)
	r.Current += (r.Target - r.Current) * factor

	if r.Current < r.Min {
		r.Current = r.Min
	}
	if r.Current > r.Max {
		r.Current = r.Max
	}
}

// Settled reports whether the animation has effectively reached its target.
func (r *Radius) Settled() bool {
	return math.Abs(r.Current-r.Target) < settleEpsilon
}

// Expand retargets the animation to the full radius.
func (r *Radius) Expand() {
	r.Target = r.Max
}

// Collapse retargets the animation to the resting radius.
func (r *Radius) Collapse() {
	r.Target = r.Min
}

// Expanded reports whether the animation is headed for the full radius.
func (r *Radius) Expanded() bool {
	return r.Target == r.Max
}
