package mandel

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

const (
	// MaxIter is the default iteration budget. Cells that have not escaped
	// after MaxIter iterations are treated as members of the set.
	MaxIter = 250

	// Bound is the default escape radius.
	Bound = 2.0

	// Partitions is the default number of column partitions evaluated in parallel.
	Partitions = 4

	// ZoomFactor scales width and height on a point zoom in; zooming out divides by it.
	ZoomFactor = 0.7
)

// maxCells bounds PixelWidth*PixelHeight so that the largest per-cell
// buffer (one complex128, 16 bytes) still has a representable size.
const maxCells = math.MaxInt / 16

// Region within the complex plane
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley, dense filaments and repeating "seahorse" curls
	SeahorseValley = Region{Xmin: -0.8, Xmax: -0.7, Ymin: 0.05, Ymax: 0.15}

	// Elephant Valley, large bulb with trunk-like tendrils
	ElephantValley = Region{Xmin: -1.85, Xmax: -1.75, Ymin: -0.10, Ymax: -0.02}

	// Spiral Minibrot, small copy of the set with tight spiral arms
	SpiralMinibrot = Region{Xmin: -0.7435, Xmax: -0.7420, Ymin: 0.1310, Ymax: 0.1325}

	// Triple Spiral, threefold symmetric spiral structure
	TripleSpiral = Region{Xmin: -0.7480, Xmax: -0.7450, Ymin: 0.0950, Ymax: 0.0980}

	// Valley of the Dragon, deep spiral filaments
	ValleyOfTheDragon = Region{Xmin: -0.7400, Xmax: -0.7350, Ymin: 0.1800, Ymax: 0.1850}

	// Minibrot in a Mini-Spiral, copy of the set inside a spiral arm
	MinibrotInMiniSpiral = Region{Xmin: -1.7390, Xmax: -1.7375, Ymin: -0.0235, Ymax: -0.0220}
)

var landmarks = map[string]Region{
	"seahorse-valley":         SeahorseValley,
	"elephant-valley":         ElephantValley,
	"spiral-minibrot":         SpiralMinibrot,
	"triple-spiral":           TripleSpiral,
	"valley-of-the-dragon":    ValleyOfTheDragon,
	"minibrot-in-mini-spiral": MinibrotInMiniSpiral,
}

// Landmark looks up a classic region by name.
func Landmark(name string) (Region, bool) {
	r, ok := landmarks[name]
	return r, ok
}

// LandmarkNames returns the names accepted by Landmark, sorted.
func LandmarkNames() []string {
	return slices.Sorted(maps.Keys(landmarks))
}

// Viewport is the rectangle of the plane being sampled plus the output
// resolution. Transitions return a new Viewport; a Viewport is never
// modified in place.
type Viewport struct {
	CenterX, CenterY float64
	Width, Height    float64

	PixelWidth, PixelHeight int
}

// NewViewport returns the default view: centered on the origin, two units
// wide, height following the pixel aspect ratio.
func NewViewport(pixelWidth, pixelHeight int) Viewport {
	v := Viewport{
		Width:       2,
		PixelWidth:  pixelWidth,
		PixelHeight: pixelHeight,
	}
	if pixelWidth > 0 {
		v.Height = 2 * float64(pixelHeight) / float64(pixelWidth)
	}
	return v
}

// RegionViewport centers a viewport on r. The width is taken from r and the
// height follows the pixel aspect ratio.
func RegionViewport(r Region, pixelWidth, pixelHeight int) Viewport {
	v := NewViewport(pixelWidth, pixelHeight)
	v.CenterX = (r.Xmin + r.Xmax) / 2
	v.CenterY = (r.Ymin + r.Ymax) / 2
	v.Width = math.Abs(r.Xmax - r.Xmin)
	v.Height = v.Width * v.aspect()
	return v
}

// Validate returns an error wrapping ErrInvalidViewport if v cannot be sampled.
func (v Viewport) Validate() error {
	switch {
	case !positive(v.Width):
		return fmt.Errorf("%w: width %v", ErrInvalidViewport, v.Width)
	case !positive(v.Height):
		return fmt.Errorf("%w: height %v", ErrInvalidViewport, v.Height)
	case math.IsNaN(v.CenterX) || math.IsInf(v.CenterX, 0) ||
		math.IsNaN(v.CenterY) || math.IsInf(v.CenterY, 0):
		return fmt.Errorf("%w: center (%v, %v)", ErrInvalidViewport, v.CenterX, v.CenterY)
	case v.PixelWidth < 1 || v.PixelHeight < 1:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidViewport, v.PixelWidth, v.PixelHeight)
	case v.PixelWidth > maxCells/v.PixelHeight:
		return fmt.Errorf("%w: resolution %dx%d is not addressable", ErrInvalidViewport, v.PixelWidth, v.PixelHeight)
	}
	return nil
}

func (v Viewport) String() string {
	return fmt.Sprintf("(%g, %g) %gx%g @ %dx%d", v.CenterX, v.CenterY, v.Width, v.Height, v.PixelWidth, v.PixelHeight)
}

// Bounds returns the plane rectangle covered by v.
func (v Viewport) Bounds() Region {
	return Region{
		Xmin: v.CenterX - v.Width/2,
		Xmax: v.CenterX + v.Width/2,
		Ymin: v.CenterY - v.Height/2,
		Ymax: v.CenterY + v.Height/2,
	}
}

// PixelToPlane converts pixel coordinates to a point in the plane.
// Pixel row 0 is the top of the view, so y decreases as py grows.
func (v Viewport) PixelToPlane(px, py float64) (x, y float64) {
	x = v.CenterX + (px/float64(v.PixelWidth)-0.5)*v.Width
	y = v.CenterY + (0.5-py/float64(v.PixelHeight))*v.Height
	return x, y
}

// PlaneToPixel is the inverse of PixelToPlane.
func (v Viewport) PlaneToPixel(x, y float64) (px, py float64) {
	px = ((x-v.CenterX)/v.Width + 0.5) * float64(v.PixelWidth)
	py = (0.5 - (y-v.CenterY)/v.Height) * float64(v.PixelHeight)
	return px, py
}

// ZoomIn recenters on the pixel (px, py) and shrinks both extents by ZoomFactor.
func (v Viewport) ZoomIn(px, py float64) Viewport {
	n := v
	n.CenterX, n.CenterY = v.PixelToPlane(px, py)
	n.Width = v.Width * ZoomFactor
	n.Height = v.Height * ZoomFactor
	return n
}

// ZoomOut grows both extents by 1/ZoomFactor around the current center.
func (v Viewport) ZoomOut() Viewport {
	n := v
	n.Width = v.Width / ZoomFactor
	n.Height = v.Height / ZoomFactor
	return n
}

// ZoomRect recenters on the midpoint of the pixel rectangle spanned by
// (x0, y0) and (x1, y1). The new width is the rectangle's horizontal plane
// extent; the height follows the pixel aspect ratio. A rectangle with no
// horizontal extent produces a viewport that fails Validate.
func (v Viewport) ZoomRect(x0, y0, x1, y1 float64) Viewport {
	ax, ay := v.PixelToPlane(x0, y0)
	bx, by := v.PixelToPlane(x1, y1)

	n := v
	n.CenterX = (ax + bx) / 2
	n.CenterY = (ay + by) / 2
	n.Width = math.Abs(bx - ax)
	n.Height = n.Width * v.aspect()
	return n
}

// Scaled multiplies the pixel resolution by k, keeping the plane rectangle.
func (v Viewport) Scaled(k int) Viewport {
	n := v
	n.PixelWidth = v.PixelWidth * k
	n.PixelHeight = v.PixelHeight * k
	return n
}

func (v Viewport) aspect() float64 {
	if v.PixelWidth == 0 {
		return 0
	}
	return float64(v.PixelHeight) / float64(v.PixelWidth)
}

func positive(f float64) bool {
	return f > 0 && !math.IsInf(f, 0)
}
