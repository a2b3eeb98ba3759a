package sph

import "gonum.org/v1/gonum/spatial/r2"

// DensityToPressure is a linear equation of state. Densities below the target
// give negative pressure, which pulls particles together.
func DensityToPressure(density, targetDensity, pressureMultiplier float64) float64 {
	return pressureMultiplier * (density - targetDensity)
}

// SharedPressure is the mean pressure of a pair. It is symmetric in its
// density arguments so pair forces are equal and opposite.
func SharedPressure(densityA, densityB, targetDensity, pressureMultiplier float64) float64 {
	pressureA := DensityToPressure(densityA, targetDensity, pressureMultiplier)
	pressureB := DensityToPressure(densityB, targetDensity, pressureMultiplier)
	return (pressureA + pressureB) / 2
}

// neighbors returns the particles within the smoothing radius of point. The
// returned slice is scratch space reused by the next call.
func (s *Simulation) neighbors(point r2.Vec) []int {
	if s.params.BruteForce {
		s.scratch = BruteForceQuery(point, s.particles, s.params.SmoothingRadius, s.scratch[:0])
	} else {
		s.scratch = s.grid.Query(point, s.particles, s.scratch[:0])
	}
	return s.scratch
}

// densityAt sums kernel-weighted masses around point. A particle sitting at
// point contributes the kernel's peak value.
func (s *Simulation) densityAt(point r2.Vec) float64 {
	radius := s.params.SmoothingRadius
	var density float64
	for _, j := range s.neighbors(point) {
		p := &s.particles[j]
		dist := r2.Norm(r2.Sub(p.Pos, point))
		density += DensityKernel(radius, dist) * p.Mass
	}
	return density
}
