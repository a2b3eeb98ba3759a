package sph

import "math"

// ResolveCollisions keeps p inside bounds inset by particleRadius. Each axis
// is handled on its own: the position is clamped to the wall and the
// velocity on that axis reflected and scaled by damping.
func ResolveCollisions(p *Particle, bounds Bounds, particleRadius, damping float64) {
	halfX := bounds.Width/2 - particleRadius
	halfY := bounds.Height/2 - particleRadius

	if math.Abs(p.Pos.X) > halfX {
		p.Pos.X = math.Copysign(halfX, p.Pos.X)
		p.Vel.X *= -damping
	}
	if math.Abs(p.Pos.Y) > halfY {
		p.Pos.Y = math.Copysign(halfY, p.Pos.Y)
		p.Vel.Y *= -damping
	}
}
