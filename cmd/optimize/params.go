// Package main provides CMA-ES optimization for the AI difficulty parameters.
package main

import (
	"github.com/pthm-cable/pong/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Everything that shapes how beatable the AI feels is here; court
// geometry and ball physics are fixed.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "reaction_delay", Path: "ai.reaction_delay", Min: 0.03, Max: 0.40, Default: 0.12},
			{Name: "sigma_base", Path: "ai.sigma_base", Min: 0.0, Max: 40.0, Default: 8.0},
			{Name: "sigma_per_distance", Path: "ai.sigma_per_distance", Min: 0.0, Max: 0.25, Default: 0.05},
			{Name: "sigma_per_speed", Path: "ai.sigma_per_speed", Min: 0.0, Max: 6.0, Default: 1.2},
			{Name: "sigma_max", Path: "ai.sigma_max", Min: 20.0, Max: 200.0, Default: 80.0},
			{Name: "ai_speed", Path: "paddle.ai_speed", Min: 3.0, Max: 10.0, Default: 6.0},
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
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)

	cfg.AI.ReactionDelay = clamped[0]
	cfg.AI.SigmaBase = clamped[1]
	cfg.AI.SigmaPerDistance = clamped[2]
	cfg.AI.SigmaPerSpeed = clamped[3]
	cfg.AI.SigmaMax = clamped[4]
	cfg.Paddle.AISpeed = clamped[5]

	// ReactionDelay feeds Derived.ReactionTicks
	cfg.ComputeDerived()
}
