package sph

import "math"

// Params is the live parameter set read by every step.
type Params struct {
	Gravity            float64 // added to vertical velocity, units/s²
	CollisionDamping   float64 // fraction of speed kept after a wall hit, [0,1]
	SmoothingRadius    float64
	ParticleMass       float64
	TargetDensity      float64
	PressureMultiplier float64
	ParticleRadius     float64 // inset from the walls used by the boundary resolver

	// BruteForce replaces grid queries with an exhaustive scan. It exists to
	// check the grid against, not for production use.
	BruteForce bool
}

// DefaultParams mirrors the values the viewer starts with.
func DefaultParams() Params {
	return Params{
		Gravity:            12,
		CollisionDamping:   0.85,
		SmoothingRadius:    0.35,
		ParticleMass:       1,
		TargetDensity:      2.75,
		PressureMultiplier: 100,
		ParticleRadius:     0.05,
	}
}

func (p Params) Validate() error {
	switch {
	case !(p.SmoothingRadius > 0) || math.IsInf(p.SmoothingRadius, 0):
		return &ConfigError{Field: "smoothing radius", Value: p.SmoothingRadius, Reason: "must be positive and finite"}
	case !(p.ParticleMass > 0) || math.IsInf(p.ParticleMass, 0):
		return &ConfigError{Field: "particle mass", Value: p.ParticleMass, Reason: "must be positive and finite"}
	case !(p.CollisionDamping >= 0 && p.CollisionDamping <= 1):
		return &ConfigError{Field: "collision damping", Value: p.CollisionDamping, Reason: "must be within [0,1]"}
	case !(p.ParticleRadius >= 0) || math.IsInf(p.ParticleRadius, 0):
		return &ConfigError{Field: "particle radius", Value: p.ParticleRadius, Reason: "must be non-negative and finite"}
	case !finite(p.Gravity):
		return &ConfigError{Field: "gravity", Value: p.Gravity, Reason: "must be finite"}
	case !finite(p.TargetDensity):
		return &ConfigError{Field: "target density", Value: p.TargetDensity, Reason: "must be finite"}
	case !finite(p.PressureMultiplier):
		return &ConfigError{Field: "pressure multiplier", Value: p.PressureMultiplier, Reason: "must be finite"}
	}
	return nil
}

// Bounds is the rectangular domain, centered on the origin.
type Bounds struct {
	Width, Height float64
}

func (b Bounds) validate(p Params) error {
	if !(b.Width > 0) || !(b.Height > 0) || math.IsInf(b.Width, 0) || math.IsInf(b.Height, 0) {
		return &ConfigError{Field: "bounds", Value: b, Reason: "width and height must be positive and finite"}
	}
	if 2*p.ParticleRadius > b.Width || 2*p.ParticleRadius > b.Height {
		return &ConfigError{Field: "particle radius", Value: p.ParticleRadius, Reason: "particle does not fit inside the bounds"}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
