package mandel

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"testing"
)

func TestColorImageAt(t *testing.T) {
	m := NewColorImage(3, 2)
	m.SetRGB(2, 1, 10, 20, 30)

	if got := m.At(2, 1); got != (color.RGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(2, 1) = %v", got)
	}
	if got := m.At(3, 0); got != (color.RGBA{}) {
		t.Errorf("At out of bounds = %v, want transparent", got)
	}
}

func TestColorImageRGBARoundTrip(t *testing.T) {
	m := NewColorImage(4, 3)
	for i := range m.Pix {
		m.Pix[i] = uint8(i * 7)
	}

	rgba := m.RGBA()
	if rgba.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("Bounds() = %v", rgba.Bounds())
	}
	if rgba.Pix[3] != 255 {
		t.Errorf("alpha = %d, want 255", rgba.Pix[3])
	}

	back := FromRGBA(rgba)
	for i := range m.Pix {
		if back.Pix[i] != m.Pix[i] {
			t.Fatalf("Pix[%d] = %d, want %d", i, back.Pix[i], m.Pix[i])
		}
	}
}

func TestFromRGBAOffsetBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 6, 6))
	draw.Draw(src, image.Rect(2, 2, 4, 4), image.NewUniform(color.RGBA{R: 1, G: 2, B: 3, A: 255}), image.Point{}, draw.Src)

	m := FromRGBA(src.SubImage(image.Rect(2, 2, 4, 4)).(*image.RGBA))
	if m.Width != 2 || m.Height != 2 {
		t.Fatalf("size %dx%d, want 2x2", m.Width, m.Height)
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if r, g, b := m.RGB(x, y); r != 1 || g != 2 || b != 3 {
				t.Errorf("RGB(%d, %d) = (%d, %d, %d), want (1, 2, 3)", x, y, r, g, b)
			}
		}
	}
}

func TestWorkerErrorMatching(t *testing.T) {
	err := error(&WorkerError{Partition: 2, Err: ErrNumericOverflow})
	if !errors.Is(err, ErrWorkerFailure) {
		t.Error("WorkerError does not match ErrWorkerFailure")
	}
	if !errors.Is(err, ErrNumericOverflow) {
		t.Error("WorkerError does not unwrap to its cause")
	}
	if got, want := err.Error(), "partition 2: numeric overflow"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
