// Package wsrender serves a mandel.Renderer over websockets and provides a
// client that is itself a mandel.Renderer.
//
// A connection carries any number of sequential round trips. The client sends
// a Request as a JSON text message. The server answers with either a binary
// message holding the image, or a JSON text message holding a Failure.
//
// Image frame layout, big endian:
//
//	[uint32 width][uint32 height][width*height RGB triples, row-major]
package wsrender

import (
	"encoding/binary"
	"errors"
	"fmt"

	mandel "github.com/marben/mandelbro"
)

// ErrRemote is returned for server failures that map onto no mandel error.
var ErrRemote = errors.New("remote render failed")

const headerSize = 8

// Request asks for one render.
type Request struct {
	CenterX     float64 `json:"center_x"`
	CenterY     float64 `json:"center_y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	PixelWidth  int     `json:"pixel_width"`
	PixelHeight int     `json:"pixel_height"`
	MaxIter     int     `json:"max_iter"`
	Bound       float64 `json:"bound"`
}

func newRequest(v mandel.Viewport, maxIter int, bound float64) Request {
	return Request{
		CenterX:     v.CenterX,
		CenterY:     v.CenterY,
		Width:       v.Width,
		Height:      v.Height,
		PixelWidth:  v.PixelWidth,
		PixelHeight: v.PixelHeight,
		MaxIter:     maxIter,
		Bound:       bound,
	}
}

// Viewport returns the viewport described by r.
func (r Request) Viewport() mandel.Viewport {
	return mandel.Viewport{
		CenterX:     r.CenterX,
		CenterY:     r.CenterY,
		Width:       r.Width,
		Height:      r.Height,
		PixelWidth:  r.PixelWidth,
		PixelHeight: r.PixelHeight,
	}
}

// Failure reports a failed render.
type Failure struct {
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

const (
	kindInvalidViewport = "invalid_viewport"
	kindInvalidParams   = "invalid_params"
	kindNumericOverflow = "numeric_overflow"
	kindWorkerFailure   = "worker_failure"
	kindInternal        = "internal"
)

func newFailure(err error) Failure {
	kind := kindInternal
	switch {
	case errors.Is(err, mandel.ErrInvalidViewport):
		kind = kindInvalidViewport
	case errors.Is(err, mandel.ErrInvalidParams):
		kind = kindInvalidParams
	case errors.Is(err, mandel.ErrNumericOverflow):
		kind = kindNumericOverflow
	case errors.Is(err, mandel.ErrWorkerFailure):
		kind = kindWorkerFailure
	}
	return Failure{Kind: kind, Error: err.Error()}
}

// Err converts f back into an error matching the mandel sentinel of its kind.
func (f Failure) Err() error {
	var sentinel error
	switch f.Kind {
	case kindInvalidViewport:
		sentinel = mandel.ErrInvalidViewport
	case kindInvalidParams:
		sentinel = mandel.ErrInvalidParams
	case kindNumericOverflow:
		sentinel = mandel.ErrNumericOverflow
	case kindWorkerFailure:
		sentinel = mandel.ErrWorkerFailure
	default:
		sentinel = ErrRemote
	}
	return fmt.Errorf("%w: %s", sentinel, f.Error)
}

func encodeImage(img *mandel.ColorImage) []byte {
	b := make([]byte, headerSize+len(img.Pix))
	binary.BigEndian.PutUint32(b[0:4], uint32(img.Width))
	binary.BigEndian.PutUint32(b[4:8], uint32(img.Height))
	copy(b[headerSize:], img.Pix)
	return b
}

func decodeImage(b []byte) (*mandel.ColorImage, error) {
	if len(b) < headerSize {
		return nil, fmt.Errorf("image frame too short: %d bytes", len(b))
	}
	w := int(binary.BigEndian.Uint32(b[0:4]))
	h := int(binary.BigEndian.Uint32(b[4:8]))
	if want := 3 * w * h; len(b)-headerSize != want {
		return nil, fmt.Errorf("image frame %dx%d carries %d pixel bytes, want %d", w, h, len(b)-headerSize, want)
	}
	img := mandel.NewColorImage(w, h)
	copy(img.Pix, b[headerSize:])
	return img, nil
}
