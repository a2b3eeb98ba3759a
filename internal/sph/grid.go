package sph

import (
	"cmp"
	"math"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	primeA = 4591
	primeB = 3643

	absent = -1

	// maxCells bounds the start table; a radius that is tiny relative to the
	// domain is rejected rather than allocated.
	maxCells = 1 << 24
)

type cellEntry struct {
	index int
	key   int
}

// Grid is a spatial hash over a uniform grid whose cell size equals the
// smoothing radius. Entries are kept sorted by cell key and start maps a key
// to its first entry. Distinct cells may share a key; Query filters by
// distance so collisions only cost extra candidates.
type Grid struct {
	radius     float64
	cols, rows int
	entries    []cellEntry
	start      []int
}

// NewGrid sizes a grid for bounds and radius.
func NewGrid(bounds Bounds, radius float64) (*Grid, error) {
	g := &Grid{}
	if err := g.Resize(bounds, radius); err != nil {
		return nil, err
	}
	return g, nil
}

// Resize recomputes the grid dimensions. It must run whenever the smoothing
// radius changes and before the next Rebuild. On error the grid is unchanged.
func (g *Grid) Resize(bounds Bounds, radius float64) error {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return &ConfigError{Field: "smoothing radius", Value: radius, Reason: "must be positive and finite"}
	}
	cols := max(1, int(math.Ceil(bounds.Width/radius)))
	rows := max(1, int(math.Ceil(bounds.Height/radius)))
	if cols > maxCells/rows {
		return &ConfigError{Field: "smoothing radius", Value: radius, Reason: "too small for the domain"}
	}

	g.radius = radius
	g.cols, g.rows = cols, rows
	n := cols * rows
	if cap(g.start) < n {
		g.start = make([]int, n)
	}
	g.start = g.start[:n]
	g.entries = g.entries[:0]
	for i := range g.start {
		g.start[i] = absent
	}
	return nil
}

func (g *Grid) Radius() float64 { return g.radius }

func (g *Grid) Dims() (cols, rows int) { return g.cols, g.rows }

// Cells is the number of distinct keys, rows*cols.
func (g *Grid) Cells() int { return len(g.start) }

// CellCoord floors pos/radius per axis.
func CellCoord(pos r2.Vec, radius float64) (x, y int) {
	return int(math.Floor(pos.X / radius)), int(math.Floor(pos.Y / radius))
}

// CellHash mixes a cell coordinate. The result can be negative.
func CellHash(x, y int) int {
	return x*primeA + y*primeB
}

// Key reduces the hash of a cell coordinate into [0, Cells()).
func (g *Grid) Key(x, y int) int {
	n := len(g.start)
	k := CellHash(x, y) % n
	if k < 0 {
		k += n
	}
	return k
}

// KeyOf is the key of the cell containing pos.
func (g *Grid) KeyOf(pos r2.Vec) int {
	return g.Key(CellCoord(pos, g.radius))
}

// Rebuild indexes particles from scratch.
func (g *Grid) Rebuild(particles []Particle) {
	g.entries = g.entries[:0]
	for i, p := range particles {
		g.entries = append(g.entries, cellEntry{index: i, key: g.KeyOf(p.Pos)})
	}
	slices.SortStableFunc(g.entries, func(a, b cellEntry) int {
		return cmp.Compare(a.key, b.key)
	})

	for i := range g.start {
		g.start[i] = absent
	}
	for i, e := range g.entries {
		if i == 0 || g.entries[i-1].key != e.key {
			g.start[e.key] = i
		}
	}
}

// Query appends to dst the indices of particles strictly closer than the
// radius to point and returns the extended slice. particles must be the
// slice passed to the last Rebuild, with positions unchanged since.
//
// All nine cells around point are probed. When two of them share a key the
// bucket is scanned once, so no index is reported twice.
func (g *Grid) Query(point r2.Vec, particles []Particle, dst []int) []int {
	cx, cy := CellCoord(point, g.radius)
	var probed [9]int
	n := 0
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			key := g.Key(cx+dx, cy+dy)
			if slices.Contains(probed[:n], key) {
				continue
			}
			probed[n] = key
			n++

			i := g.start[key]
			if i == absent {
				continue
			}
			for ; i < len(g.entries) && g.entries[i].key == key; i++ {
				j := g.entries[i].index
				if r2.Norm(r2.Sub(particles[j].Pos, point)) < g.radius {
					dst = append(dst, j)
				}
			}
		}
	}
	return dst
}

// BruteForceQuery is the exhaustive counterpart of Grid.Query using the same
// distance test.
func BruteForceQuery(point r2.Vec, particles []Particle, radius float64, dst []int) []int {
	for j, p := range particles {
		if r2.Norm(r2.Sub(p.Pos, point)) < radius {
			dst = append(dst, j)
		}
	}
	return dst
}
