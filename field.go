package mandel

import (
	"image"
	"image/color"
)

// IterationField holds the escape count of every grid cell, row-major.
// A count equal to the iteration budget means the cell did not escape.
type IterationField struct {
	Width, Height int
	Counts        []int
}

// NewIterationField allocates a zeroed w×h field.
func NewIterationField(w, h int) IterationField {
	return IterationField{Width: w, Height: h, Counts: make([]int, w*h)}
}

func (f IterationField) At(x, y int) int {
	return f.Counts[y*f.Width+x]
}

// ColorImage is the rendered artifact: Width×Height RGB triples, row-major.
// It implements image.Image so callers can hand it straight to image/draw.
type ColorImage struct {
	Width, Height int
	Pix           []uint8
}

var _ image.Image = (*ColorImage)(nil)

// NewColorImage allocates a black w×h image.
func NewColorImage(w, h int) *ColorImage {
	return &ColorImage{Width: w, Height: h, Pix: make([]uint8, 3*w*h)}
}

// RGB returns the channels of the pixel at (x, y).
func (m *ColorImage) RGB(x, y int) (r, g, b uint8) {
	i := 3 * (y*m.Width + x)
	return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
}

// SetRGB sets the channels of the pixel at (x, y).
func (m *ColorImage) SetRGB(x, y int, r, g, b uint8) {
	i := 3 * (y*m.Width + x)
	m.Pix[i], m.Pix[i+1], m.Pix[i+2] = r, g, b
}

func (m *ColorImage) ColorModel() color.Model { return color.RGBAModel }

func (m *ColorImage) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

func (m *ColorImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.Bounds()) {
		return color.RGBA{}
	}
	r, g, b := m.RGB(x, y)
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// RGBA converts m to an opaque *image.RGBA.
func (m *ColorImage) RGBA() *image.RGBA {
	img := image.NewRGBA(m.Bounds())
	for i, j := 0, 0; i < len(m.Pix); i, j = i+3, j+4 {
		img.Pix[j] = m.Pix[i]
		img.Pix[j+1] = m.Pix[i+1]
		img.Pix[j+2] = m.Pix[i+2]
		img.Pix[j+3] = 255
	}
	return img
}

// FromRGBA drops the alpha channel of img. Bounds are rebased to the origin.
func FromRGBA(img *image.RGBA) *ColorImage {
	b := img.Bounds()
	m := NewColorImage(b.Dx(), b.Dy())
	for y := 0; y < m.Height; y++ {
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):]
		dst := m.Pix[3*y*m.Width:]
		for x := 0; x < m.Width; x++ {
			dst[3*x] = src[4*x]
			dst[3*x+1] = src[4*x+1]
			dst[3*x+2] = src[4*x+2]
		}
	}
	return m
}
