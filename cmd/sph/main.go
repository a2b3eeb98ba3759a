package main

import (
	"flag"
	"log/slog"
	"math"
	"os"

	"github.com/crazy3lf/colorconv"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"watersim/internal/sph"
)

// -------------------------------
// Configurable Parameters
// -------------------------------
const (
	windowWidth  = 1280
	windowHeight = 720
	worldWidth   = 16.0
	worldHeight  = 9.0
	scale        = windowWidth / worldWidth // pixels per world unit

	particleSpacing = 0.12
	substeps        = 3
	maxFrameTime    = 1.0 / 30 // longer frames are clamped, e.g. after a window drag
	radiusStep      = 0.05
)

// -------------------------------
// Viewer State
// -------------------------------
type viewer struct {
	sim    *sph.Simulation
	logger *slog.Logger

	count  int
	random bool
	seed   uint64

	paused      bool
	showGrid    bool
	energy      []float64
	highlighted map[int]bool
}

func (v *viewer) reset(params sph.Params) error {
	var layout sph.Layout = sph.SquareGrid{N: v.count, Spacing: particleSpacing}
	if v.random {
		layout = sph.RandomLayout{N: v.count}
	}
	sim, err := sph.New(v.count, layout, sph.Bounds{Width: worldWidth, Height: worldHeight}, params,
		sph.WithSeed(v.seed), sph.WithLogger(v.logger))
	if err != nil {
		return err
	}
	v.sim = sim
	v.energy = v.energy[:0]
	v.logger.Info("simulation reset", "particles", v.count, "random", v.random, "radius", params.SmoothingRadius)
	return nil
}

func (v *viewer) handleInput() {
	params := v.sim.Params()
	switch {
	case rl.IsKeyPressed(rl.KeySpace):
		v.paused = !v.paused
	case rl.IsKeyPressed(rl.KeyG):
		v.showGrid = !v.showGrid
	case rl.IsKeyPressed(rl.KeyB):
		params.BruteForce = !params.BruteForce
		v.sim.SetParameters(params)
		v.logger.Info("neighbor search", "bruteForce", params.BruteForce)
	case rl.IsKeyPressed(rl.KeyUp):
		params.SmoothingRadius += radiusStep
		v.sim.SetParameters(params)
	case rl.IsKeyPressed(rl.KeyDown):
		// A radius that reaches zero is rejected by the next step and
		// reported below; the previous one stays in effect.
		params.SmoothingRadius -= radiusStep
		v.sim.SetParameters(params)
	case rl.IsKeyPressed(rl.KeyR):
		if err := v.reset(params); err != nil {
			v.logger.Error("reset failed", "err", err)
		}
	}
}

func (v *viewer) update() {
	if v.paused {
		return
	}
	dt := math.Min(float64(rl.GetFrameTime()), maxFrameTime) / substeps
	for i := 0; i < substeps; i++ {
		if err := v.sim.Step(dt); err != nil {
			v.logger.Warn("step rejected", "err", err)
			params := v.sim.Params()
			params.SmoothingRadius = v.sim.Grid().Radius()
			v.sim.SetParameters(params)
			return
		}
	}
	v.energy = append(v.energy, v.sim.KineticEnergy())
	if len(v.energy) > windowWidth {
		v.energy = v.energy[1:]
	}

	v.highlighted = nil
	if v.showGrid {
		ids, err := v.sim.Neighbors(toWorld(rl.GetMousePosition()))
		if err == nil {
			v.highlighted = make(map[int]bool, len(ids))
			for _, id := range ids {
				v.highlighted[id] = true
			}
		}
	}
}

// -------------------------------
// Render
// -------------------------------
func toScreen(p r2.Vec) rl.Vector2 {
	return rl.Vector2{
		X: float32((p.X + worldWidth/2) * scale),
		Y: float32((p.Y + worldHeight/2) * scale),
	}
}

func toWorld(p rl.Vector2) r2.Vec {
	return r2.Vec{
		X: float64(p.X)/scale - worldWidth/2,
		Y: float64(p.Y)/scale - worldHeight/2,
	}
}

// densityColor maps density relative to the target onto a blue→red hue.
func densityColor(density, target float64) rl.Color {
	ratio := 0.0
	if target > 0 {
		ratio = math.Min(density/target, 2) / 2
	}
	r, g, b, err := colorconv.HSVToRGB(240*(1-ratio), 0.8, 1)
	if err != nil {
		return rl.SkyBlue
	}
	return rl.NewColor(r, g, b, 255)
}

func (v *viewer) drawGrid() {
	radius := v.sim.Grid().Radius()
	cols, rows := v.sim.Grid().Dims()
	lineColor := rl.NewColor(40, 40, 60, 255)
	for x := 0; x <= cols; x++ {
		sx := int32(float64(x) * radius * scale)
		rl.DrawLine(sx, 0, sx, windowHeight, lineColor)
	}
	for y := 0; y <= rows; y++ {
		sy := int32(float64(y) * radius * scale)
		rl.DrawLine(0, sy, windowWidth, sy, lineColor)
	}
	mouse := rl.GetMousePosition()
	rl.DrawCircleLines(int32(mouse.X), int32(mouse.Y), float32(radius*scale), rl.Yellow)
}

func (v *viewer) drawEnergy() {
	if len(v.energy) < 2 {
		return
	}
	maxE := 0.0
	for _, e := range v.energy {
		maxE = math.Max(maxE, e)
	}
	if maxE == 0 {
		maxE = 1.0
	}

	graphHeight := float32(100)
	baseY := graphHeight
	for i := 1; i < len(v.energy); i++ {
		y1 := baseY - float32(v.energy[i-1]/maxE)*(graphHeight-5)
		y2 := baseY - float32(v.energy[i]/maxE)*(graphHeight-5)
		rl.DrawLine(int32(i-1), int32(y1), int32(i), int32(y2), rl.NewColor(0, 255, 0, 255))
	}
	rl.DrawText("Kinetic Energy", 5, 5, 10, rl.Green)
}

func (v *viewer) draw() {
	rl.BeginDrawing()
	defer rl.EndDrawing()
	rl.ClearBackground(rl.Black)

	if v.showGrid {
		v.drawGrid()
	}
	params := v.sim.Params()
	for i, p := range v.sim.Particles() {
		c := densityColor(p.Density, params.TargetDensity)
		if v.highlighted[i] {
			c = rl.Yellow
		}
		rl.DrawCircleV(toScreen(p.Pos), float32(params.ParticleRadius*scale), c)
	}
	v.drawEnergy()

	st := v.sim.DensityStats()
	mode := "grid"
	if params.BruteForce {
		mode = "brute force"
	}
	rl.DrawText(rl.TextFormat("radius %.2f  density %.2f / %.2f  search %s", params.SmoothingRadius, st.Mean, st.Max, mode),
		5, windowHeight-20, 10, rl.RayWhite)
	rl.DrawFPS(windowWidth-90, 5)
}

// -------------------------------
// Main
// -------------------------------
func main() {
	count := flag.Int("n", 1200, "number of particles")
	random := flag.Bool("random", false, "scatter particles randomly instead of a block")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	v := &viewer{count: *count, random: *random, seed: *seed, logger: logger}
	if err := v.reset(sph.DefaultParams()); err != nil {
		logger.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	rl.InitWindow(windowWidth, windowHeight, "2D SPH Fluid")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	for !rl.WindowShouldClose() {
		v.handleInput()
		v.update()
		v.draw()
	}
}
