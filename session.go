package mandel

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Session holds the state a viewer keeps between renders: the current
// viewport and the last image. Every action computes a new viewport, renders
// it, and commits both only if the render succeeds.
//
// Session is safe for concurrent use; actions are serialized.
type Session struct {
	renderer Renderer
	maxIter  int
	bound    float64

	mu       sync.Mutex
	viewport Viewport
	image    *ColorImage
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithMaxIter sets the iteration budget used for every render.
func WithMaxIter(n int) SessionOption {
	return func(s *Session) {
		s.maxIter = n
	}
}

// WithBound sets the escape radius used for every render.
func WithBound(b float64) SessionOption {
	return func(s *Session) {
		s.bound = b
	}
}

// NewSession starts at the default viewport for the given resolution.
// Nothing is rendered until the first action; call Reset for the initial image.
func NewSession(r Renderer, pixelWidth, pixelHeight int, opts ...SessionOption) *Session {
	s := &Session{
		renderer: r,
		maxIter:  MaxIter,
		bound:    Bound,
		viewport: NewViewport(pixelWidth, pixelHeight),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Viewport returns the current viewport.
func (s *Session) Viewport() Viewport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewport
}

// Image returns the last successfully rendered image, or nil.
func (s *Session) Image() *ColorImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.image
}

// Reset returns to the default view.
func (s *Session) Reset() (*ColorImage, error) {
	return s.apply("reset", func(v Viewport) Viewport {
		return NewViewport(v.PixelWidth, v.PixelHeight)
	})
}

// ZoomIn zooms toward the pixel (px, py).
func (s *Session) ZoomIn(px, py float64) (*ColorImage, error) {
	return s.apply("zoom in", func(v Viewport) Viewport {
		return v.ZoomIn(px, py)
	})
}

// ZoomOut widens the view around the current center.
func (s *Session) ZoomOut() (*ColorImage, error) {
	return s.apply("zoom out", Viewport.ZoomOut)
}

// ZoomRect zooms onto the pixel rectangle spanned by two corners.
func (s *Session) ZoomRect(x0, y0, x1, y1 float64) (*ColorImage, error) {
	return s.apply("zoom rect", func(v Viewport) Viewport {
		return v.ZoomRect(x0, y0, x1, y1)
	})
}

// Goto jumps to a plane region, typically one returned by Landmark.
func (s *Session) Goto(r Region) (*ColorImage, error) {
	return s.apply("goto", func(v Viewport) Viewport {
		return RegionViewport(r, v.PixelWidth, v.PixelHeight)
	})
}

// HighQuality renders the current view at twice the resolution.
// The viewport itself is unchanged, so later actions continue at the
// normal resolution.
func (s *Session) HighQuality() (*ColorImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	img, err := s.render("high quality", s.viewport.Scaled(2))
	if err != nil {
		return nil, err
	}
	s.image = img
	return img, nil
}

func (s *Session) apply(action string, next func(Viewport) Viewport) (*ColorImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := next(s.viewport)
	img, err := s.render(action, v)
	if err != nil {
		return nil, err
	}
	s.viewport = v
	s.image = img
	return img, nil
}

func (s *Session) render(action string, v Viewport) (*ColorImage, error) {
	start := time.Now()
	img, err := s.renderer.Render(v, s.maxIter, s.bound)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", action, err)
	}
	Logger().Debug("session render", slog.String("action", action), slog.String("viewport", v.String()), slog.Duration("took", time.Since(start)))
	return img, nil
}
