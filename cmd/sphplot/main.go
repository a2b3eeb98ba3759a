package main

import (
	"flag"
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"watersim/internal/sph"
)

const (
	worldWidth  = 16.0
	worldHeight = 9.0
	spacing     = 0.12
)

type history struct {
	energy, meanDensity, maxDensity plotter.XYs
}

func run(sim *sph.Simulation, steps int, dt float64) (history, error) {
	var h history
	for i := 0; i < steps; i++ {
		if err := sim.Step(dt); err != nil {
			return h, fmt.Errorf("step %d: %w", i, err)
		}
		t := float64(i+1) * dt
		st := sim.DensityStats()
		h.energy = append(h.energy, plotter.XY{X: t, Y: sim.KineticEnergy()})
		h.meanDensity = append(h.meanDensity, plotter.XY{X: t, Y: st.Mean})
		h.maxDensity = append(h.maxDensity, plotter.XY{X: t, Y: st.Max})
	}
	return h, nil
}

// savePlot writes one chart with a line per series.
func savePlot(path, title, yLabel string, series map[string]plotter.XYs) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	palette := []color.Color{
		color.RGBA{R: 30, G: 120, B: 220, A: 255},
		color.RGBA{R: 220, G: 60, B: 40, A: 255},
	}
	i := 0
	for _, name := range []string{"energy", "mean", "max"} {
		xys, ok := series[name]
		if !ok {
			continue
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		line.Color = palette[i%len(palette)]
		p.Add(line)
		p.Legend.Add(name, line)
		i++
	}
	return p.Save(8*vg.Inch, 4*vg.Inch, path)
}

func main() {
	count := flag.Int("n", 800, "number of particles")
	steps := flag.Int("steps", 600, "steps to simulate")
	dt := flag.Float64("dt", 1.0/120, "seconds per step")
	seed := flag.Uint64("seed", 1, "random seed")
	random := flag.Bool("random", false, "scatter particles randomly instead of a block")
	brute := flag.Bool("brute", false, "use brute-force neighbor search")
	out := flag.String("out", "data", "output directory")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if err := os.MkdirAll(*out, 0o755); err != nil {
		logger.Error("create output directory", "err", err)
		os.Exit(1)
	}

	params := sph.DefaultParams()
	params.BruteForce = *brute
	var layout sph.Layout = sph.SquareGrid{N: *count, Spacing: spacing}
	if *random {
		layout = sph.RandomLayout{N: *count}
	}
	sim, err := sph.New(*count, layout, sph.Bounds{Width: worldWidth, Height: worldHeight}, params,
		sph.WithSeed(*seed), sph.WithLogger(logger))
	if err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	h, err := run(sim, *steps, *dt)
	if err != nil {
		logger.Error("simulation failed", "err", err)
		os.Exit(1)
	}

	energyPath := filepath.Join(*out, "kinetic_energy.png")
	if err := savePlot(energyPath, "Kinetic Energy", "energy", map[string]plotter.XYs{"energy": h.energy}); err != nil {
		logger.Error("save plot", "path", energyPath, "err", err)
		os.Exit(1)
	}
	densityPath := filepath.Join(*out, "density.png")
	if err := savePlot(densityPath, "Density", "density", map[string]plotter.XYs{"mean": h.meanDensity, "max": h.maxDensity}); err != nil {
		logger.Error("save plot", "path", densityPath, "err", err)
		os.Exit(1)
	}
	logger.Info("plots saved", "steps", *steps, "energy", energyPath, "density", densityPath)
}
