// Package sph is a 2D smoothed particle hydrodynamics engine. A Simulation
// owns a fixed set of particles and advances them with Step; rendering and
// frame pacing are left to the caller.
//
// A Simulation is not safe for concurrent use. Read its state between steps.
package sph

import (
	"fmt"
	"log/slog"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Simulation is the explicit simulation context: particle store, spatial
// index and live parameters.
type Simulation struct {
	particles []Particle
	bounds    Bounds
	params    Params
	grid      *Grid
	// indexed reports whether grid reflects the current positions.
	indexed bool
	mass    float64

	rnd       *rand.Rand
	logger    *slog.Logger
	onAnomaly AnomalyHook

	scratch []int
	steps   uint64
}

type Option func(*Simulation)

// WithRand sets the random source used for layouts and for separating
// coincident particles.
func WithRand(rnd *rand.Rand) Option {
	return func(s *Simulation) { s.rnd = rnd }
}

// WithSeed is WithRand with a freshly seeded source.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulation) { s.logger = logger }
}

// WithAnomalyHook registers h to observe numeric anomalies. Anomalies are
// logged either way.
func WithAnomalyHook(h AnomalyHook) Option {
	return func(s *Simulation) { s.onAnomaly = h }
}

// New builds count particles from layout. count must match layout.Count().
func New(count int, layout Layout, bounds Bounds, params Params, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := bounds.validate(params); err != nil {
		return nil, err
	}
	if count <= 0 {
		return nil, &ConfigError{Field: "particle count", Value: count, Reason: "must be positive"}
	}
	if n := layout.Count(); n != count {
		return nil, &ConfigError{Field: "particle count", Value: count, Reason: fmt.Sprintf("layout produces %d particles", n)}
	}
	grid, err := NewGrid(bounds, params.SmoothingRadius)
	if err != nil {
		return nil, err
	}

	s := &Simulation{
		bounds: bounds,
		params: params,
		grid:   grid,
		mass:   params.ParticleMass,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewSource(1))
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	positions := layout.Positions(bounds, s.rnd)
	if len(positions) != count {
		return nil, &ConfigError{Field: "layout", Value: len(positions), Reason: fmt.Sprintf("expected %d positions", count)}
	}
	s.particles = make([]Particle, count)
	for i, pos := range positions {
		s.particles[i] = Particle{Pos: pos, Mass: params.ParticleMass}
	}
	return s, nil
}

// SetParameters replaces the live parameters. They are validated and applied
// by the next Step; a changed smoothing radius resizes the grid there.
func (s *Simulation) SetParameters(p Params) {
	s.params = p
	s.indexed = false
}

// Step advances the simulation by dt seconds. A dt that is not a positive
// finite number makes Step a no-op. Invalid parameters are reported as a
// *ConfigError before anything is modified.
func (s *Simulation) Step(dt float64) error {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return nil
	}
	if err := s.prepare(); err != nil {
		return err
	}

	p := s.params
	// Pass 1: gravity and densities, all from the same positions.
	for i := range s.particles {
		pi := &s.particles[i]
		pi.Vel.Y += p.Gravity * dt
		pi.Density = s.densityAt(pi.Pos)
	}

	// Pass 2: pressure acceleration.
	for i := range s.particles {
		density := s.particles[i].Density
		if !(density > 0) {
			s.report(Anomaly{Step: s.steps, Particle: i, Density: density})
			continue
		}
		accel := r2.Scale(1/density, s.pressureForce(i))
		s.particles[i].Vel = r2.Add(s.particles[i].Vel, r2.Scale(dt, accel))
	}

	// Pass 3: move and keep inside the walls.
	for i := range s.particles {
		pi := &s.particles[i]
		pi.Pos = r2.Add(pi.Pos, r2.Scale(dt, pi.Vel))
		ResolveCollisions(pi, s.bounds, p.ParticleRadius, p.CollisionDamping)
	}
	s.indexed = false
	s.steps++
	return nil
}

// prepare validates the live parameters, resizes the grid if the radius
// changed, applies a changed mass and indexes the current positions.
func (s *Simulation) prepare() error {
	if err := s.params.Validate(); err != nil {
		return err
	}
	if err := s.bounds.validate(s.params); err != nil {
		return err
	}
	if s.grid.Radius() != s.params.SmoothingRadius {
		if err := s.grid.Resize(s.bounds, s.params.SmoothingRadius); err != nil {
			return err
		}
		s.indexed = false
		s.logger.Debug("grid resized", "radius", s.params.SmoothingRadius, "cells", s.grid.Cells())
	}
	if s.mass != s.params.ParticleMass {
		for i := range s.particles {
			s.particles[i].Mass = s.params.ParticleMass
		}
		s.mass = s.params.ParticleMass
	}
	if !s.indexed && !s.params.BruteForce {
		s.grid.Rebuild(s.particles)
		s.indexed = true
	}
	return nil
}

func (s *Simulation) report(a Anomaly) {
	s.logger.Warn("non-positive density, pressure skipped",
		"step", a.Step, "particle", a.Particle, "density", a.Density)
	if s.onAnomaly != nil {
		s.onAnomaly(a)
	}
}

// Neighbors returns the indices of particles within the smoothing radius of
// point, using the grid or the exhaustive scan as Params.BruteForce selects.
func (s *Simulation) Neighbors(point r2.Vec) ([]int, error) {
	if err := s.prepare(); err != nil {
		return nil, err
	}
	return append([]int(nil), s.neighbors(point)...), nil
}

// DensityAt samples the density field at point from the current positions.
func (s *Simulation) DensityAt(point r2.Vec) (float64, error) {
	if err := s.prepare(); err != nil {
		return 0, err
	}
	return s.densityAt(point), nil
}

// PressureForce is the pressure force on particle i given the densities
// stored by the last Step.
func (s *Simulation) PressureForce(i int) (r2.Vec, error) {
	if i < 0 || i >= len(s.particles) {
		return r2.Vec{}, fmt.Errorf("sph: particle %d out of range [0,%d)", i, len(s.particles))
	}
	if err := s.prepare(); err != nil {
		return r2.Vec{}, err
	}
	return s.pressureForce(i), nil
}

// Positions returns a copy of every particle position, index-aligned with
// particle identity.
func (s *Simulation) Positions() []r2.Vec {
	pos := make([]r2.Vec, len(s.particles))
	for i, p := range s.particles {
		pos[i] = p.Pos
	}
	return pos
}

// Densities returns a copy of the densities computed by the last Step.
func (s *Simulation) Densities() []float64 {
	d := make([]float64, len(s.particles))
	for i, p := range s.particles {
		d[i] = p.Density
	}
	return d
}

// Particles returns a copy of the particle store.
func (s *Simulation) Particles() []Particle {
	return append([]Particle(nil), s.particles...)
}

func (s *Simulation) Len() int { return len(s.particles) }
func (s *Simulation) Params() Params { return s.params }
func (s *Simulation) Bounds() Bounds { return s.bounds }
func (s *Simulation) Steps() uint64 { return s.steps }
func (s *Simulation) Grid() *Grid { return s.grid }

func (s *Simulation) KineticEnergy() float64 {
	var total float64
	for _, p := range s.particles {
		total += p.KineticEnergy()
	}
	return total
}

// DensityStats summarises the densities from the last Step.
type DensityStats struct {
	Min, Max, Mean float64
}

func (s *Simulation) DensityStats() DensityStats {
	if len(s.particles) == 0 {
		return DensityStats{}
	}
	st := DensityStats{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range s.particles {
		st.Min = math.Min(st.Min, p.Density)
		st.Max = math.Max(st.Max, p.Density)
		st.Mean += p.Density
	}
	st.Mean /= float64(len(s.particles))
	return st
}
