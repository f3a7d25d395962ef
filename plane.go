package mandel

// PlaneGrid holds one complex sample per pixel, row-major.
// Row 0 is the top of the view.
type PlaneGrid struct {
	Width, Height int
	Points        []complex128
}

// Sample builds the grid of plane points for v. Columns sweep
// [cx - w/2, cx + w/2] left to right and rows sweep [cy + h/2, cy - h/2]
// top to bottom, both endpoints included.
func Sample(v Viewport) (PlaneGrid, error) {
	if err := v.Validate(); err != nil {
		return PlaneGrid{}, err
	}

	b := v.Bounds()
	xs := linspace(b.Xmin, b.Xmax, v.PixelWidth)
	ys := linspace(b.Ymax, b.Ymin, v.PixelHeight)

	g := PlaneGrid{
		Width:  v.PixelWidth,
		Height: v.PixelHeight,
		Points: make([]complex128, v.PixelWidth*v.PixelHeight),
	}
	for r, y := range ys {
		row := g.Points[r*g.Width : (r+1)*g.Width]
		for c, x := range xs {
			row[c] = complex(x, y)
		}
	}
	return g, nil
}

// At returns the sample at column x, row y.
func (g PlaneGrid) At(x, y int) complex128 {
	return g.Points[y*g.Width+x]
}

// Columns copies columns [x0, x1) into an independent grid.
func (g PlaneGrid) Columns(x0, x1 int) PlaneGrid {
	w := x1 - x0
	out := PlaneGrid{
		Width:  w,
		Height: g.Height,
		Points: make([]complex128, w*g.Height),
	}
	for y := 0; y < g.Height; y++ {
		copy(out.Points[y*w:(y+1)*w], g.Points[y*g.Width+x0:y*g.Width+x1])
	}
	return out
}

// linspace returns n evenly spaced values over [start, end].
// A single value sits at start.
func linspace(start, end float64, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (end - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	// pin the far endpoint against rounding drift
	out[n-1] = end
	return out
}
