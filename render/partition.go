package render

import (
	"fmt"

	mandel "github.com/marben/mandelbro"
)

// span is a column range [x0, x1).
type span struct {
	x0, x1 int
}

// columnSpans divides width columns into n contiguous spans. The first
// width%n spans get one extra column. Empty spans are omitted, so fewer than
// n spans come back when width < n.
func columnSpans(width, n int) []span {
	if n < 1 {
		n = 1
	}
	base, extra := width/n, width%n

	spans := make([]span, 0, n)
	x := 0
	for i := range n {
		w := base
		if i < extra {
			w++
		}
		if w == 0 {
			continue
		}
		spans = append(spans, span{x, x + w})
		x += w
	}
	return spans
}

// Split cuts g into at most n column partitions, left to right.
// Each partition owns a copy of its points.
func Split(g mandel.PlaneGrid, n int) []mandel.PlaneGrid {
	spans := columnSpans(g.Width, n)
	parts := make([]mandel.PlaneGrid, len(spans))
	for i, s := range spans {
		parts[i] = g.Columns(s.x0, s.x1)
	}
	return parts
}

// Merge concatenates partitions horizontally in the order given.
func Merge(parts []mandel.IterationField) (mandel.IterationField, error) {
	if len(parts) == 0 {
		return mandel.IterationField{}, nil
	}

	h := parts[0].Height
	w := 0
	for i, p := range parts {
		if p.Height != h {
			return mandel.IterationField{}, fmt.Errorf("merge: partition %d has height %d, want %d", i, p.Height, h)
		}
		if len(p.Counts) != p.Width*p.Height {
			return mandel.IterationField{}, fmt.Errorf("merge: partition %d holds %d counts for %dx%d", i, len(p.Counts), p.Width, p.Height)
		}
		w += p.Width
	}

	out := mandel.NewIterationField(w, h)
	x0 := 0
	for _, p := range parts {
		for y := 0; y < h; y++ {
			copy(out.Counts[y*w+x0:y*w+x0+p.Width], p.Counts[y*p.Width:(y+1)*p.Width])
		}
		x0 += p.Width
	}
	return out, nil
}
