package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"gonum.org/v1/plot/plotter"

	"watersim/internal/sph"
)

func TestRunRecordsEveryStep(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sim, err := sph.New(64, sph.SquareGrid{N: 64, Spacing: spacing}, sph.Bounds{Width: worldWidth, Height: worldHeight},
		sph.DefaultParams(), sph.WithLogger(logger))
	if err != nil {
		t.Fatal(err)
	}
	h, err := run(sim, 20, 1.0/120)
	if err != nil {
		t.Fatal(err)
	}
	if len(h.energy) != 20 || len(h.meanDensity) != 20 || len(h.maxDensity) != 20 {
		t.Fatalf("recorded %d/%d/%d samples, want 20", len(h.energy), len(h.meanDensity), len(h.maxDensity))
	}
	for i := range h.meanDensity {
		if h.maxDensity[i].Y < h.meanDensity[i].Y {
			t.Errorf("step %d: max density %g below mean %g", i, h.maxDensity[i].Y, h.meanDensity[i].Y)
		}
	}
}

func TestRunSurfacesConfigError(t *testing.T) {
	sim, err := sph.New(4, sph.SquareGrid{N: 4, Spacing: spacing}, sph.Bounds{Width: worldWidth, Height: worldHeight},
		sph.DefaultParams(), sph.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	if err != nil {
		t.Fatal(err)
	}
	p := sim.Params()
	p.SmoothingRadius = 0
	sim.SetParameters(p)
	if _, err := run(sim, 1, 0.01); err == nil {
		t.Fatal("run succeeded with a zero radius")
	}
}

func TestSavePlot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "energy.png")
	xys := plotter.XYs{{X: 0, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 1.5}}
	if err := savePlot(path, "Kinetic Energy", "energy", map[string]plotter.XYs{"energy": xys}); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("plot file is empty")
	}
}
