package render

import (
	"errors"
	"testing"

	mandel "github.com/marben/mandelbro"
)

func TestRenderSupersampled(t *testing.T) {
	e := New()
	v := mandel.NewViewport(30, 20)

	img, err := e.RenderSupersampled(v, 3, mandel.MaxIter, mandel.Bound)
	if err != nil {
		t.Fatalf("RenderSupersampled() = %v", err)
	}
	if img.Width != 30 || img.Height != 20 {
		t.Errorf("image %dx%d, want 30x20", img.Width, img.Height)
	}
}

func TestRenderSupersampledUniformRegion(t *testing.T) {
	v := mandel.Viewport{CenterX: -0.1, Width: 0.01, Height: 0.01, PixelWidth: 8, PixelHeight: 8}
	img, err := New().RenderSupersampled(v, 2, mandel.MaxIter, mandel.Bound)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b := img.RGB(4, 4)
	if absDiff(r, 250) > 1 || absDiff(g, 247) > 1 || absDiff(b, 240) > 1 {
		t.Errorf("RGB(4, 4) = (%d, %d, %d), want about (250, 247, 240)", r, g, b)
	}
}

func TestRenderSupersampledFactorOne(t *testing.T) {
	e := New()
	v := mandel.NewViewport(16, 12)
	a, err := e.RenderSupersampled(v, 1, mandel.MaxIter, mandel.Bound)
	if err != nil {
		t.Fatal(err)
	}
	b, err := e.Render(v, mandel.MaxIter, mandel.Bound)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, a.Pix[i], b.Pix[i])
		}
	}
}

func TestRenderSupersampledInvalid(t *testing.T) {
	e := New()
	if _, err := e.RenderSupersampled(mandel.NewViewport(8, 8), 0, mandel.MaxIter, mandel.Bound); !errors.Is(err, mandel.ErrInvalidParams) {
		t.Errorf("factor 0: %v, want ErrInvalidParams", err)
	}
	if _, err := e.RenderSupersampled(mandel.Viewport{}, 2, mandel.MaxIter, mandel.Bound); !errors.Is(err, mandel.ErrInvalidViewport) {
		t.Errorf("empty viewport: %v, want ErrInvalidViewport", err)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
