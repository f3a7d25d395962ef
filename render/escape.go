package render

import (
	mandel "github.com/marben/mandelbro"
)

// Escaper computes escape counts for every cell of a grid.
// Implementations must agree cell for cell.
type Escaper interface {
	Escape(g mandel.PlaneGrid, maxIter int, bound float64) (mandel.IterationField, error)
}

// Uniform applies z = z*z + c to every cell on every step, including cells
// that already escaped, and records the first step at which |z| exceeds the
// bound. Every cell costs maxIter-1 updates regardless of its fate.
type Uniform struct{}

// EarlyExit iterates each cell separately and stops at its escape.
type EarlyExit struct{}

var (
	_ Escaper = Uniform{}
	_ Escaper = EarlyExit{}
)

func (Uniform) Escape(g mandel.PlaneGrid, maxIter int, bound float64) (mandel.IterationField, error) {
	f := mandel.NewIterationField(g.Width, g.Height)
	z := make([]complex128, len(g.Points))
	lim := bound * bound

	for count := 1; count < maxIter; count++ {
		for i, c := range g.Points {
			zi := z[i]*z[i] + c
			z[i] = zi
			if f.Counts[i] == 0 && real(zi)*real(zi)+imag(zi)*imag(zi) > lim {
				f.Counts[i] = count
			}
		}
	}

	for i, v := range f.Counts {
		if v == 0 {
			f.Counts[i] = maxIter
		}
	}
	return f, nil
}

func (EarlyExit) Escape(g mandel.PlaneGrid, maxIter int, bound float64) (mandel.IterationField, error) {
	f := mandel.NewIterationField(g.Width, g.Height)
	lim := bound * bound
	for i, c := range g.Points {
		f.Counts[i] = escapeCount(c, maxIter, lim)
	}
	return f, nil
}

// escapeCount returns the update count after which |z|² first exceeds lim,
// or maxIter if it never does within maxIter-1 updates.
func escapeCount(c complex128, maxIter int, lim float64) int {
	z := complex(0, 0)
	for count := 1; count < maxIter; count++ {
		z = z*z + c
		if real(z)*real(z)+imag(z)*imag(z) > lim {
			return count
		}
	}
	return maxIter
}
