package sph

import "gonum.org/v1/gonum/spatial/r2"

// Particle is one fluid sample. Its identity is its index in the store.
type Particle struct {
	Pos, Vel r2.Vec
	Mass     float64
	// Density is recomputed at the start of every step and is only valid
	// between the density pass and the next step.
	Density float64
}

// KineticEnergy is ½·m·|v|² for the particle.
func (p Particle) KineticEnergy() float64 {
	return 0.5 * p.Mass * r2.Norm2(p.Vel)
}
