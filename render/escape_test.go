package render

import (
	"testing"

	mandel "github.com/marben/mandelbro"
)

var escapers = []struct {
	name string
	esc  Escaper
}{
	{"uniform", Uniform{}},
	{"early-exit", EarlyExit{}},
}

func point(c complex128) mandel.PlaneGrid {
	return mandel.PlaneGrid{Width: 1, Height: 1, Points: []complex128{c}}
}

func TestEscapeKnownPoints(t *testing.T) {
	tests := []struct {
		name string
		c    complex128
		want int
	}{
		{"origin is in the set", 0, 250},
		{"minus one cycles", -1, 250},
		{"far corner escapes at once", 2 + 2i, 1},
		{"one escapes on the third update", 1, 3},
		{"half escapes on the fifth update", 0.5, 5},
		{"minus two stays on the bound", -2, 250},
	}
	for _, e := range escapers {
		for _, tt := range tests {
			t.Run(e.name+"/"+tt.name, func(t *testing.T) {
				f, err := e.esc.Escape(point(tt.c), mandel.MaxIter, mandel.Bound)
				if err != nil {
					t.Fatalf("Escape() = %v", err)
				}
				if got := f.At(0, 0); got != tt.want {
					t.Errorf("escape(%v) = %d, want %d", tt.c, got, tt.want)
				}
			})
		}
	}
}

func TestEscapeRange(t *testing.T) {
	g, err := mandel.Sample(mandel.NewViewport(48, 36))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range escapers {
		f, err := e.esc.Escape(g, 40, 2)
		if err != nil {
			t.Fatalf("%s: Escape() = %v", e.name, err)
		}
		for i, v := range f.Counts {
			if v < 1 || v > 40 {
				t.Fatalf("%s: cell %d count %d outside [1, 40]", e.name, i, v)
			}
		}
	}
}

func TestEscapeStrategiesAgree(t *testing.T) {
	views := []mandel.Viewport{
		mandel.NewViewport(64, 48),
		mandel.RegionViewport(mandel.SeahorseValley, 40, 40),
		mandel.RegionViewport(mandel.ElephantValley, 37, 23),
		{CenterX: 3, CenterY: 3, Width: 1, Height: 1, PixelWidth: 9, PixelHeight: 9},
	}
	for _, v := range views {
		t.Run(v.String(), func(t *testing.T) {
			g, err := mandel.Sample(v)
			if err != nil {
				t.Fatal(err)
			}
			a, err := Uniform{}.Escape(g, mandel.MaxIter, mandel.Bound)
			if err != nil {
				t.Fatal(err)
			}
			b, err := EarlyExit{}.Escape(g, mandel.MaxIter, mandel.Bound)
			if err != nil {
				t.Fatal(err)
			}
			for i := range a.Counts {
				if a.Counts[i] != b.Counts[i] {
					t.Fatalf("cell %d (%v): uniform %d, early-exit %d", i, g.Points[i], a.Counts[i], b.Counts[i])
				}
			}
		})
	}
}

func TestEscapeMaxIterOne(t *testing.T) {
	for _, e := range escapers {
		f, err := e.esc.Escape(point(2+2i), 1, 2)
		if err != nil {
			t.Fatal(err)
		}
		if got := f.At(0, 0); got != 1 {
			t.Errorf("%s: escape with budget 1 = %d, want 1", e.name, got)
		}
	}
}

func BenchmarkEscape(b *testing.B) {
	g, err := mandel.Sample(mandel.NewViewport(256, 192))
	if err != nil {
		b.Fatal(err)
	}
	for _, e := range escapers {
		b.Run(e.name, func(b *testing.B) {
			for b.Loop() {
				if _, err := e.esc.Escape(g, mandel.MaxIter, mandel.Bound); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
