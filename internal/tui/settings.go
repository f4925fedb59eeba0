package tui

import (
	"fmt"

	"github.com/1broseidon/halo/internal/config"
)

// colorPresets are the circle colors the settings tab cycles through.
var colorPresets = []string{
	"0,120,255",
	"255,120,0",
	"60,180,75",
	"230,25,75",
	"145,30,180",
	"128,128,128",
}

// settingsField is one editable config knob: a label, a value renderer,
// and an adjuster that nudges the field by dir (-1 or +1) within the
// load-time clamp bounds.
type settingsField struct {
	label  string
	value  func(cfg *config.Config) string
	adjust func(cfg *config.Config, dir int)
}

var settingsFields = []settingsField{
	{
		label: "Size",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%d px", cfg.Window.Size)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Window.Size = clampInt(cfg.Window.Size+dir*50, config.MinWindowSize, config.MaxWindowSize)
		},
	},
	{
		label: "Color",
		value: func(cfg *config.Config) string {
			return cfg.Window.Color
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Window.Color = cycleColor(cfg.Window.Color, dir)
		},
	},
	{
		label: "Frame rate",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%d fps", cfg.Window.FrameRate)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Window.FrameRate = clampInt(cfg.Window.FrameRate+dir*10, config.MinFrameRate, config.MaxFrameRate)
		},
	},
	{
		label: "Transition",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%.1f /s", cfg.Animation.TransitionRate)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Animation.TransitionRate = clampFloat(cfg.Animation.TransitionRate+float64(dir)*0.5,
				config.MinTransitionRate, config.MaxTransitionRate)
		},
	},
	{
		label: "Min radius",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%.2f × size", cfg.Animation.MinRadiusFraction)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Animation.MinRadiusFraction = clampFloat(cfg.Animation.MinRadiusFraction+float64(dir)*0.05,
				config.MinRadiusFraction, config.MaxRadiusFraction)
		},
	},
	{
		label: "Max radius",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%.2f × size", cfg.Animation.MaxRadiusFraction)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Animation.MaxRadiusFraction = clampFloat(cfg.Animation.MaxRadiusFraction+float64(dir)*0.05,
				config.MinRadiusFraction, config.MaxRadiusFraction)
		},
	},
	{
		label: "Activation",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%.2f × radius", cfg.Animation.ActivationFraction)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Animation.ActivationFraction = clampFloat(cfg.Animation.ActivationFraction+float64(dir)*0.05,
				config.MinRadiusFraction, config.MaxRadiusFraction)
		},
	},
	{
		label: "Close hold",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%.1f s", cfg.Close.HoldSeconds)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Close.HoldSeconds = clampFloat(cfg.Close.HoldSeconds+float64(dir)*0.1,
				config.MinHoldSeconds, config.MaxHoldSeconds)
		},
	},
	{
		label: "Minutes",
		value: func(cfg *config.Config) string {
			return fmt.Sprintf("%d min", cfg.Timer.Minutes)
		},
		adjust: func(cfg *config.Config, dir int) {
			cfg.Timer.Minutes = clampInt(cfg.Timer.Minutes+dir, config.MinTimerMinutes, config.MaxTimerMinutes)
		},
	},
}

func cycleColor(current string, dir int) string {
	for i, preset := range colorPresets {
		if preset == current {
			next := (i + dir + len(colorPresets)) % len(colorPresets)
			return colorPresets[next]
		}
	}
	// Custom color from a hand-edited file: step to the first preset.
	return colorPresets[0]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
