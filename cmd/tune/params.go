// Package main searches autopilot gains that finish the race fastest.
package main

import (
	"github.com/pthm-cable/neonring/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of autopilot parameters.
// creep_speed is locked: above 1 u/s the turn-around could count a lap.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "steer_gain", Path: "autopilot.steer_gain", Min: 0.02, Max: 0.6, Default: 0.15},
			{Name: "max_correct", Path: "autopilot.max_correct", Min: 0.1, Max: 1.2, Default: 0.5},
			{Name: "deadband", Path: "autopilot.deadband", Min: 0, Max: 0.15, Default: 0.03},
			{Name: "line_offset", Path: "autopilot.line_offset", Min: -4, Max: 4, Default: 0},
			{Name: "align_threshold", Path: "autopilot.align_threshold", Min: 0.15, Max: 1.0, Default: 0.35},
			{Name: "gear_room", Path: "autopilot.gear_room", Min: 0.3, Max: 2.5, Default: 1.0},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = max(spec.Min, min(spec.Max, v[i]))
	}
	return clamped
}

// ApplyToConfig writes parameter values into a Config.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	ap := &cfg.Autopilot
	ap.SteerGain = clamped[0]
	ap.MaxCorrect = clamped[1]
	ap.Deadband = clamped[2]
	ap.LineOffset = clamped[3]
	ap.AlignThreshold = clamped[4]
	ap.GearRoom = clamped[5]
}

// ExtractFromConfig reads the current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	ap := cfg.Autopilot
	return []float64{
		ap.SteerGain,
		ap.MaxCorrect,
		ap.Deadband,
		ap.LineOffset,
		ap.AlignThreshold,
		ap.GearRoom,
	}
}
