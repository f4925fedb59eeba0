// Package config loads and validates the overlay configuration from
// ~/.config/halo/config.yaml. Out-of-range values are clamped at load
// time so they never reach the shell; strict validation is reserved for
// the explicit `config validate` path.
package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// WindowConfig controls the overlay window itself.
type WindowConfig struct {
	// Size is the square window edge length in pixels.
	Size int `yaml:"size"`
	// Color is the circle background as "R,G,B" (0-255 each).
	Color string `yaml:"color"`
	// FrameRate paces the frame loop in frames per second.
	FrameRate int `yaml:"frame_rate"`
}

// AnimationConfig controls the focus-driven radius animation.
type AnimationConfig struct {
	// TransitionRate is the exponential smoothing rate per second.
	TransitionRate float64 `yaml:"transition_rate"`
	// MinRadiusFraction and MaxRadiusFraction scale the collapsed and
	// expanded radii relative to the window size.
	MinRadiusFraction float64 `yaml:"min_radius_fraction"`
	MaxRadiusFraction float64 `yaml:"max_radius_fraction"`
	// ActivationFraction sizes the re-expansion click zone relative to
	// the current radius.
	ActivationFraction float64 `yaml:"activation_fraction"`
}

// CloseConfig controls the press-and-hold close gesture.
type CloseConfig struct {
	HoldSeconds float64 `yaml:"hold_seconds"`
}

// TimerConfig seeds the countdown content.
type TimerConfig struct {
	Minutes     int    `yaml:"minutes"`
	Autostart   bool   `yaml:"autostart"`
	Description string `yaml:"description"`
}

// Config is the full halo configuration.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Animation AnimationConfig `yaml:"animation"`
	Close     CloseConfig     `yaml:"close"`
	Timer     TimerConfig     `yaml:"timer"`
	// LogLevel is one of debug, info, warning, error.
	LogLevel string `yaml:"log_level"`
}

// Clamp bounds for every numeric knob.
const (
	MinWindowSize = 100
	MaxWindowSize = 1200

	MinFrameRate = 10
	MaxFrameRate = 240

	MinTransitionRate = 0.1
	MaxTransitionRate = 60.0

	MinRadiusFraction = 0.05
	MaxRadiusFraction = 0.9

	MinHoldSeconds = 0.2
	MaxHoldSeconds = 10.0

	MinTimerMinutes = 1
	MaxTimerMinutes = 90
)

// DefaultColor is the background used when none (or an unparseable one)
// is configured.
const DefaultColor = "0,120,255"

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Size:      400,
			Color:     DefaultColor,
			FrameRate: 60,
		},
		Animation: AnimationConfig{
			TransitionRate:     8.0,
			MinRadiusFraction:  0.2,
			MaxRadiusFraction:  0.5,
			ActivationFraction: 1.0 / 3.0,
		},
		Close: CloseConfig{
			HoldSeconds: 1.5,
		},
		Timer: TimerConfig{
			Minutes: 5,
		},
		LogLevel: "info",
	}
}

// ValidationError reports a config field that failed strict validation.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// ParseColor parses an "R,G,B" triple with each channel in 0-255.
func ParseColor(s string) (color.RGBA, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return color.RGBA{}, fmt.Errorf("color must be \"R,G,B\", got %q", s)
	}
	var ch [3]uint8
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("color channel %q out of range 0-255", strings.TrimSpace(p))
		}
		ch[i] = uint8(v)
	}
	return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 255}, nil
}

// BackgroundColor returns the configured circle color. Call after Clamp;
// an unparseable color falls back to the default.
func (c *Config) BackgroundColor() color.RGBA {
	rgba, err := ParseColor(c.Window.Color)
	if err != nil {
		rgba, _ = ParseColor(DefaultColor)
	}
	return rgba
}

// Validate checks every field strictly, rejecting instead of clamping.
func (c *Config) Validate() error {
	if c.Window.Size < MinWindowSize || c.Window.Size > MaxWindowSize {
		return &ValidationError{Path: "window.size", Err: fmt.Errorf("must be between %d and %d", MinWindowSize, MaxWindowSize)}
	}
	if _, err := ParseColor(c.Window.Color); err != nil {
		return &ValidationError{Path: "window.color", Err: err}
	}
	if c.Window.FrameRate < MinFrameRate || c.Window.FrameRate > MaxFrameRate {
		return &ValidationError{Path: "window.frame_rate", Err: fmt.Errorf("must be between %d and %d", MinFrameRate, MaxFrameRate)}
	}
	if c.Animation.TransitionRate < MinTransitionRate || c.Animation.TransitionRate > MaxTransitionRate {
		return &ValidationError{Path: "animation.transition_rate", Err: fmt.Errorf("must be between %g and %g", MinTransitionRate, MaxTransitionRate)}
	}
	if err := validFraction(c.Animation.MinRadiusFraction); err != nil {
		return &ValidationError{Path: "animation.min_radius_fraction", Err: err}
	}
	if err := validFraction(c.Animation.MaxRadiusFraction); err != nil {
		return &ValidationError{Path: "animation.max_radius_fraction", Err: err}
	}
	if c.Animation.MinRadiusFraction >= c.Animation.MaxRadiusFraction {
		return &ValidationError{Path: "animation.min_radius_fraction", Err: fmt.Errorf("must be smaller than max_radius_fraction")}
	}
	if err := validFraction(c.Animation.ActivationFraction); err != nil {
		return &ValidationError{Path: "animation.activation_fraction", Err: err}
	}
	if c.Close.HoldSeconds < MinHoldSeconds || c.Close.HoldSeconds > MaxHoldSeconds {
		return &ValidationError{Path: "close.hold_seconds", Err: fmt.Errorf("must be between %g and %g", MinHoldSeconds, MaxHoldSeconds)}
	}
	if c.Timer.Minutes < MinTimerMinutes || c.Timer.Minutes > MaxTimerMinutes {
		return &ValidationError{Path: "timer.minutes", Err: fmt.Errorf("must be between %d and %d", MinTimerMinutes, MaxTimerMinutes)}
	}
	if !validLogLevel(c.LogLevel) {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("must be one of: debug, info, warning, error")}
	}
	return nil
}

// Clamp forces every field into its valid range, returning one warning
// per adjustment. After Clamp, Validate always passes.
func (c *Config) Clamp() []string {
	var warnings []string
	def := DefaultConfig()

	c.Window.Size = clampInt(c.Window.Size, MinWindowSize, MaxWindowSize, "window.size", &warnings)
	c.Window.FrameRate = clampInt(c.Window.FrameRate, MinFrameRate, MaxFrameRate, "window.frame_rate", &warnings)
	if _, err := ParseColor(c.Window.Color); err != nil {
		warnings = append(warnings, fmt.Sprintf("window.color: invalid color format, using default (%v)", err))
		c.Window.Color = DefaultColor
	}

	c.Animation.TransitionRate = clampFloat(c.Animation.TransitionRate, MinTransitionRate, MaxTransitionRate, "animation.transition_rate", &warnings)
	c.Animation.MinRadiusFraction = clampFloat(c.Animation.MinRadiusFraction, MinRadiusFraction, MaxRadiusFraction, "animation.min_radius_fraction", &warnings)
	c.Animation.MaxRadiusFraction = clampFloat(c.Animation.MaxRadiusFraction, MinRadiusFraction, MaxRadiusFraction, "animation.max_radius_fraction", &warnings)
	if c.Animation.MinRadiusFraction >= c.Animation.MaxRadiusFraction {
		warnings = append(warnings, "animation: min_radius_fraction not below max_radius_fraction, using defaults")
		c.Animation.MinRadiusFraction = def.Animation.MinRadiusFraction
		c.Animation.MaxRadiusFraction = def.Animation.MaxRadiusFraction
	}
	c.Animation.ActivationFraction = clampFloat(c.Animation.ActivationFraction, MinRadiusFraction, MaxRadiusFraction, "animation.activation_fraction", &warnings)

	c.Close.HoldSeconds = clampFloat(c.Close.HoldSeconds, MinHoldSeconds, MaxHoldSeconds, "close.hold_seconds", &warnings)
	c.Timer.Minutes = clampInt(c.Timer.Minutes, MinTimerMinutes, MaxTimerMinutes, "timer.minutes", &warnings)

	if !validLogLevel(c.LogLevel) {
		warnings = append(warnings, fmt.Sprintf("log_level: unknown level %q, using %q", c.LogLevel, def.LogLevel))
		c.LogLevel = def.LogLevel
	}
	return warnings
}

func validFraction(v float64) error {
	if v < MinRadiusFraction || v > MaxRadiusFraction {
		return fmt.Errorf("must be between %g and %g", MinRadiusFraction, MaxRadiusFraction)
	}
	return nil
}

func validLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warning", "error":
		return true
	}
	return false
}

func clampInt(v, lo, hi int, path string, warnings *[]string) int {
	if v < lo {
		*warnings = append(*warnings, fmt.Sprintf("%s: %d below minimum, using %d", path, v, lo))
		return lo
	}
	if v > hi {
		*warnings = append(*warnings, fmt.Sprintf("%s: %d above maximum, using %d", path, v, hi))
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64, path string, warnings *[]string) float64 {
	if v < lo {
		*warnings = append(*warnings, fmt.Sprintf("%s: %g below minimum, using %g", path, v, lo))
		return lo
	}
	if v > hi {
		*warnings = append(*warnings, fmt.Sprintf("%s: %g above maximum, using %g", path, v, hi))
		return hi
	}
	return v
}
