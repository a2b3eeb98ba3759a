package sph

import (
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestGridLayoutCentered(t *testing.T) {
	l := GridLayout{Cols: 3, Rows: 3, Spacing: 0.2, Center: r2.Vec{X: 1, Y: -1}}
	pos := l.Positions(Bounds{}, nil)
	if len(pos) != l.Count() || l.Count() != 9 {
		t.Fatalf("got %d positions, Count() = %d, want 9", len(pos), l.Count())
	}
	if !near(pos[0], r2.Vec{X: 0.8, Y: -1.2}) || !near(pos[8], r2.Vec{X: 1.2, Y: -0.8}) {
		t.Errorf("corners = %v, %v", pos[0], pos[8])
	}
	if !near(pos[4], l.Center) {
		t.Errorf("middle = %v, want %v", pos[4], l.Center)
	}
}

func TestLayoutCounts(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
		want   int
	}{
		{"grid", GridLayout{Cols: 4, Rows: 5}, 20},
		{"grid empty", GridLayout{Cols: 0, Rows: 5}, 0},
		{"grid negative", GridLayout{Cols: -2, Rows: -2}, 0},
		{"square exact", SquareGrid{N: 16, Spacing: 0.1}, 16},
		{"square partial", SquareGrid{N: 1000, Spacing: 0.1}, 1000},
		{"random", RandomLayout{N: 7}, 7},
	}
	rnd := rand.New(rand.NewSource(1))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.layout.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}
			if got := len(tt.layout.Positions(Bounds{Width: 1, Height: 1}, rnd)); got != tt.want {
				t.Errorf("len(Positions()) = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRandomLayoutSeeded(t *testing.T) {
	bounds := Bounds{Width: 3, Height: 2}
	a := RandomLayout{N: 50}.Positions(bounds, rand.New(rand.NewSource(9)))
	b := RandomLayout{N: 50}.Positions(bounds, rand.New(rand.NewSource(9)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("position %d differs between equal seeds: %v, %v", i, a[i], b[i])
		}
		if a[i].X < -1.5 || a[i].X > 1.5 || a[i].Y < -1 || a[i].Y > 1 {
			t.Fatalf("position %d = %v outside bounds", i, a[i])
		}
	}
}
