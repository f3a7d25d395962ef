package render

import (
	"fmt"
	"math"

	mandel "github.com/marben/mandelbro"
)

// ChannelPolicy decides how a colour channel outside [0, 255] is narrowed to a byte.
type ChannelPolicy int

const (
	// Clamp saturates out of range channels to 0 or 255.
	Clamp ChannelPolicy = iota
	// Wrap truncates toward zero and keeps the low eight bits.
	Wrap
	// Strict fails the colouring with mandel.ErrNumericOverflow.
	Strict
)

func (p ChannelPolicy) String() string {
	switch p {
	case Clamp:
		return "clamp"
	case Wrap:
		return "wrap"
	case Strict:
		return "strict"
	}
	return fmt.Sprintf("ChannelPolicy(%d)", int(p))
}

// Channels maps an escape count to real-valued colour channels:
// red ramps with v, green starts above 85 and blue above 170.
func Channels(v int) (r, g, b float64) {
	f := float64(v)
	r = f
	if v > 85 {
		g = 1.5 * (f - 85)
	}
	if v > 170 {
		b = 3 * (f - 170)
	}
	return r, g, b
}

// Colorize converts escape counts to an RGB image.
// maxIter is the budget the field was computed with; counts above it are
// rejected as a sign of a mismatched field.
func Colorize(f mandel.IterationField, maxIter int, p ChannelPolicy) (*mandel.ColorImage, error) {
	img := mandel.NewColorImage(f.Width, f.Height)
	for i, v := range f.Counts {
		if v < 1 || v > maxIter {
			return nil, fmt.Errorf("colorize: count %d at cell %d outside [1, %d]", v, i, maxIter)
		}
		r, g, b := Channels(v)
		for k, ch := range [3]float64{r, g, b} {
			c, err := p.narrow(ch)
			if err != nil {
				return nil, fmt.Errorf("colorize: cell %d count %d: %w", i, v, err)
			}
			img.Pix[3*i+k] = c
		}
	}
	return img, nil
}

func (p ChannelPolicy) narrow(f float64) (uint8, error) {
	t := math.Trunc(f)
	switch p {
	case Wrap:
		return uint8(int64(t)), nil
	case Strict:
		if t < 0 || t > 255 {
			return 0, fmt.Errorf("%w: channel value %v", mandel.ErrNumericOverflow, f)
		}
		return uint8(t), nil
	default:
		return uint8(max(0, min(255, t))), nil
	}
}
