package sph

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

// Layout places the initial particles.
type Layout interface {
	// Count is how many positions Positions will return.
	Count() int
	Positions(bounds Bounds, rnd *rand.Rand) []r2.Vec
}

// GridLayout is a Cols×Rows block of particles, Spacing apart, centered on
// Center.
type GridLayout struct {
	Cols, Rows int
	Spacing    float64
	Center     r2.Vec
}

func (l GridLayout) Count() int {
	if l.Cols <= 0 || l.Rows <= 0 {
		return 0
	}
	return l.Cols * l.Rows
}

func (l GridLayout) Positions(Bounds, *rand.Rand) []r2.Vec {
	pos := make([]r2.Vec, 0, l.Count())
	width := float64(l.Cols-1) * l.Spacing
	height := float64(l.Rows-1) * l.Spacing
	for y := 0; y < l.Rows; y++ {
		for x := 0; x < l.Cols; x++ {
			pos = append(pos, r2.Vec{
				X: l.Center.X - width/2 + float64(x)*l.Spacing,
				Y: l.Center.Y - height/2 + float64(y)*l.Spacing,
			})
		}
	}
	return pos
}

// SquareGrid lays out n particles in the smallest square block that holds
// them, dropping the tail of the last row.
type SquareGrid struct {
	N       int
	Spacing float64
}

func (l SquareGrid) Count() int { return max(l.N, 0) }

func (l SquareGrid) Positions(bounds Bounds, rnd *rand.Rand) []r2.Vec {
	cols := 1
	for cols*cols < l.N {
		cols++
	}
	rows := (l.N + cols - 1) / cols
	pos := GridLayout{Cols: cols, Rows: rows, Spacing: l.Spacing}.Positions(bounds, rnd)
	return pos[:l.Count()]
}

// RandomLayout scatters N particles uniformly over the bounds.
type RandomLayout struct {
	N int
}

func (l RandomLayout) Count() int { return max(l.N, 0) }

func (l RandomLayout) Positions(bounds Bounds, rnd *rand.Rand) []r2.Vec {
	pos := make([]r2.Vec, l.Count())
	for i := range pos {
		pos[i] = r2.Vec{
			X: (rnd.Float64() - 0.5) * bounds.Width,
			Y: (rnd.Float64() - 0.5) * bounds.Height,
		}
	}
	return pos
}
