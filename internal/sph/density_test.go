package sph

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestDensityToPressure(t *testing.T) {
	tests := []struct {
		density, target, multiplier, want float64
	}{
		{density: 10, target: 10, multiplier: 100, want: 0},
		{density: 12, target: 10, multiplier: 3, want: 6},
		{density: 8, target: 10, multiplier: 3, want: -6},
		{density: 0, target: 2.75, multiplier: 0, want: 0},
	}
	for _, tt := range tests {
		if got := DensityToPressure(tt.density, tt.target, tt.multiplier); got != tt.want {
			t.Errorf("DensityToPressure(%g, %g, %g) = %g, want %g", tt.density, tt.target, tt.multiplier, got, tt.want)
		}
	}
}

func TestSharedPressureSymmetric(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		a := rnd.Float64() * 50
		b := rnd.Float64() * 50
		target := rnd.Float64() * 20
		mult := rnd.NormFloat64() * 100
		ab := SharedPressure(a, b, target, mult)
		ba := SharedPressure(b, a, target, mult)
		if ab != ba {
			t.Fatalf("SharedPressure(%g, %g) = %g but SharedPressure(%g, %g) = %g", a, b, ab, b, a, ba)
		}
	}
}

func TestDensityIncludesSelf(t *testing.T) {
	p := testParams()
	p.ParticleMass = 2.5
	s := newTestSim(t, GridLayout{Cols: 1, Rows: 1}, Bounds{Width: 4, Height: 4}, p)

	got, err := s.DensityAt(r2.Vec{})
	if err != nil {
		t.Fatal(err)
	}
	want := DensityKernel(p.SmoothingRadius, 0) * p.ParticleMass
	if got != want {
		t.Errorf("density of a lone particle = %g, want %g", got, want)
	}

	far, err := s.DensityAt(r2.Vec{X: 1.5, Y: 1.5})
	if err != nil {
		t.Fatal(err)
	}
	if far != 0 {
		t.Errorf("density outside the radius = %g, want 0", far)
	}
}

func TestDensityGridMatchesBruteForce(t *testing.T) {
	bounds := Bounds{Width: 6, Height: 4}
	p := testParams()
	grid := newTestSim(t, RandomLayout{N: 300}, bounds, p, WithSeed(3))
	p.BruteForce = true
	brute := newTestSim(t, RandomLayout{N: 300}, bounds, p, WithSeed(3))

	rnd := rand.New(rand.NewSource(11))
	for i := 0; i < 200; i++ {
		point := r2.Vec{X: (rnd.Float64() - 0.5) * 7, Y: (rnd.Float64() - 0.5) * 5}
		dg, err := grid.DensityAt(point)
		if err != nil {
			t.Fatal(err)
		}
		db, err := brute.DensityAt(point)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(dg-db) > 1e-9*math.Max(1, db) {
			t.Fatalf("density at %v: grid %g, brute force %g", point, dg, db)
		}
	}
}
