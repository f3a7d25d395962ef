package render

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"

	mandel "github.com/marben/mandelbro"
)

// RenderSupersampled renders v at k times its resolution and scales the
// result back down to v's pixel size with a Catmull-Rom filter.
// k == 1 is a plain Render.
func (e *Engine) RenderSupersampled(v mandel.Viewport, k, maxIter int, bound float64) (*mandel.ColorImage, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: supersampling factor %d", mandel.ErrInvalidParams, k)
	}
	if err := v.Validate(); err != nil {
		return nil, err
	}
	if k == 1 {
		return e.Render(v, maxIter, bound)
	}

	hi, err := e.Render(v.Scaled(k), maxIter, bound)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, v.PixelWidth, v.PixelHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), hi, hi.Bounds(), draw.Src, nil)
	return mandel.FromRGBA(dst), nil
}
