// Package content implements the timer application hosted inside the
// overlay shell: countdown state, digit and button rendering, and the
// finished-state attention effects.
package content

import (
	"fmt"
	"time"
)

const (
	// MinSeconds and MaxSeconds bound the countdown duration (1 to 90
	// minutes). Out-of-range requests are clamped, never rejected.
	MinSeconds = 60
	MaxSeconds = 5400

	// ResetSeconds is the duration the reset action restores.
	ResetSeconds = 300
)

// Timer is the countdown state. It is owned by the frame loop and is
// not safe for concurrent use; external control paths must marshal
// their mutations onto the loop.
type Timer struct {
	seconds  int
	running  bool
	finished bool
	lastTick time.Time
}

// NewTimer creates a timer with the given initial minutes, clamped to
// the 1-90 minute range.
func NewTimer(minutes int) *Timer {
	return &Timer{seconds: clampSeconds(minutes * 60)}
}

// Remaining returns the remaining whole seconds.
func (t *Timer) Remaining() int { return t.seconds }

// Running reports whether the countdown is advancing.
func (t *Timer) Running() bool { return t.running }

// Finished reports whether the countdown has reached zero.
func (t *Timer) Finished() bool { return t.finished }

// Start begins or resumes the countdown. Starting a timer that has
// already reached zero is a no-op; it must be reset or set first.
func (t *Timer) Start(now time.Time) {
	if t.running || t.seconds == 0 {
		return
	}
	t.running = true
	t.finished = false
	t.lastTick = now
}

// Stop pauses the countdown without clearing it.
func (t *Timer) Stop() {
	t.running = false
}

// Toggle starts a stopped timer and stops a running one.
func (t *Timer) Toggle(now time.Time) {
	if t.running {
		t.Stop()
	} else {
		t.Start(now)
	}
}

// Reset stops the timer and restores the default duration.
func (t *Timer) Reset() {
	t.seconds = ResetSeconds
	t.running = false
	t.finished = false
}

// Set replaces the remaining duration, clamped to the valid range. A
// running timer keeps running from the new value.
func (t *Timer) Set(minutes int, now time.Time) {
	t.seconds = clampSeconds(minutes * 60)
	t.finished = false
	t.lastTick = now
}

// Adjust shifts the remaining duration by delta seconds, clamped.
// Ignored while the countdown is running.
func (t *Timer) Adjust(delta int) {
	if t.running {
		return
	}
	t.seconds = clampSeconds(t.seconds + delta)
	t.finished = false
}

// Tick advances the countdown by the whole seconds elapsed since the
// previous tick. It returns true exactly once, on the tick that reaches
// zero.
func (t *Timer) Tick(now time.Time) bool {
	if !t.running {
		return false
	}
	elapsed := now.Sub(t.lastTick)
	if elapsed < time.Second {
		return false
	}

	whole := int(elapsed / time.Second)
	t.lastTick = t.lastTick.Add(time.Duration(whole) * time.Second)

	t.seconds -= whole
	if t.seconds <= 0 {
		t.seconds = 0
		t.running = false
		t.finished = true
		return true
	}
	return false
}

// Clock formats the remaining time as MM:SS.
func (t *Timer) Clock() string {
	return fmt.Sprintf("%02d:%02d", t.seconds/60, t.seconds%60)
}

func clampSeconds(s int) int {
	if s < MinSeconds {
		return MinSeconds
	}
	if s > MaxSeconds {
		return MaxSeconds
	}
	return s
}
