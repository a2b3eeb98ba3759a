package sph

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// pressureForce accumulates the pressure force on particle i from its
// neighbors, using the densities from the current step's density pass.
func (s *Simulation) pressureForce(i int) r2.Vec {
	radius := s.params.SmoothingRadius
	pi := s.particles[i]

	var force r2.Vec
	for _, j := range s.neighbors(pi.Pos) {
		if j == i {
			continue
		}
		pj := &s.particles[j]
		if !(pj.Density > 0) {
			continue
		}
		offset := r2.Sub(pj.Pos, pi.Pos)
		dist := r2.Norm(offset)

		var dir r2.Vec
		if dist == 0 {
			dir = s.randomDirection()
		} else {
			dir = r2.Scale(1/dist, offset)
		}
		slope := DensityKernelDerivative(dist, radius)
		shared := SharedPressure(pj.Density, pi.Density, s.params.TargetDensity, s.params.PressureMultiplier)
		force = r2.Add(force, r2.Scale(shared*slope*pj.Mass/pj.Density, dir))
	}
	return force
}

// randomDirection is a unit vector with a uniformly distributed angle, used
// to separate particles that occupy the same point.
func (s *Simulation) randomDirection() r2.Vec {
	angle := s.rnd.Float64() * 2 * math.Pi
	return r2.Vec{X: math.Cos(angle), Y: math.Sin(angle)}
}
