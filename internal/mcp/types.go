package mcp

// OverlayStatusInput is the input for the overlay_status tool.
type OverlayStatusInput struct{}

// OverlayStatusOutput is the output for the overlay_status tool.
type OverlayStatusOutput struct {
	Radius         float64 `json:"radius"`
	Expanded       bool    `json:"expanded"`
	Settled        bool    `json:"settled"`
	Dragging       bool    `json:"dragging"`
	Gesture        string  `json:"gesture"`
	TimerClock     string  `json:"timer_clock"`
	TimerRemaining int     `json:"timer_remaining"`
	TimerRunning   bool    `json:"timer_running"`
	TimerFinished  bool    `json:"timer_finished"`
	Description    string  `json:"description,omitempty"`
	UptimeSeconds  int64   `json:"uptime_seconds"`
}

// OverlayFlashInput is the input for the overlay_flash tool.
type OverlayFlashInput struct {
	Count int `json:"count,omitempty" jsonschema:"Number of flashes to request (default: 1)"`
}

// TimerSetInput is the input for the timer_set tool.
type TimerSetInput struct {
	Minutes int `json:"minutes" jsonschema:"required,Countdown duration in minutes (clamped to 1-90)"`
}

// TimerControlInput is the input for timer_start, timer_stop, and
// timer_reset.
type TimerControlInput struct{}

// TimerStateOutput reports the countdown state after a timer tool call.
type TimerStateOutput struct {
	TimerClock     string `json:"timer_clock"`
	TimerRemaining int    `json:"timer_remaining"`
	TimerRunning   bool   `json:"timer_running"`
	TimerFinished  bool   `json:"timer_finished"`
}
