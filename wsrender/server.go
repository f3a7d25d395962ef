package wsrender

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	mandel "github.com/marben/mandelbro"
)

const (
	// DefaultMaxPixels caps the resolution a remote caller may request.
	DefaultMaxPixels = 4096 * 4096

	// DefaultMaxIter caps the iteration budget a remote caller may request.
	// Renders cannot be cancelled, so the budget bounds the work per request.
	DefaultMaxIter = 16 * mandel.MaxIter
)

// Server is an http.Handler that upgrades to a websocket and answers render
// requests with the wrapped Renderer, one at a time per connection.
type Server struct {
	renderer       mandel.Renderer
	maxPixels      int
	maxIter        int
	originPatterns []string
}

// Option configures a Server.
type Option func(*Server)

// WithMaxPixels caps PixelWidth*PixelHeight of accepted requests.
// Larger requests fail as invalid viewports without rendering.
func WithMaxPixels(n int) Option {
	return func(s *Server) {
		s.maxPixels = n
	}
}

// WithMaxIter caps the iteration budget of accepted requests.
// Larger budgets fail as invalid parameters without rendering.
func WithMaxIter(n int) Option {
	return func(s *Server) {
		s.maxIter = n
	}
}

// WithOriginPatterns allows cross-origin browser connections from hosts
// matching the given patterns.
func WithOriginPatterns(patterns ...string) Option {
	return func(s *Server) {
		s.originPatterns = patterns
	}
}

// Handler returns a Server rendering with r.
func Handler(r mandel.Renderer, opts ...Option) *Server {
	s := &Server{
		renderer:  r,
		maxPixels: DefaultMaxPixels,
		maxIter:   DefaultMaxIter,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: s.originPatterns,
	})
	if err != nil {
		mandel.Logger().Warn("websocket accept", slog.String("remote", r.RemoteAddr), slog.Any("err", err))
		return
	}
	defer c.CloseNow()

	log := mandel.Logger().With(slog.String("remote", r.RemoteAddr))
	log.Info("render client connected")

	if err := s.serve(r.Context(), c); err != nil {
		log.Warn("render client dropped", slog.Any("err", err))
		return
	}
	log.Info("render client disconnected")
}

// serve answers requests until the peer closes the connection.
func (s *Server) serve(ctx context.Context, c *websocket.Conn) error {
	for {
		var req Request
		if err := wsjson.Read(ctx, c, &req); err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				return nil
			}
			return fmt.Errorf("read request: %w", err)
		}

		img, err := s.render(req)
		if err != nil {
			mandel.Logger().Debug("render request failed", slog.Any("err", err))
			if err := wsjson.Write(ctx, c, newFailure(err)); err != nil {
				return fmt.Errorf("write failure: %w", err)
			}
			continue
		}

		if err := c.Write(ctx, websocket.MessageBinary, encodeImage(img)); err != nil {
			return fmt.Errorf("write image: %w", err)
		}
	}
}

func (s *Server) render(req Request) (*mandel.ColorImage, error) {
	v := req.Viewport()
	if err := v.Validate(); err != nil {
		return nil, err
	}
	// Validate guarantees PixelHeight >= 1; dividing avoids overflowing the product.
	if s.maxPixels > 0 && v.PixelWidth > s.maxPixels/v.PixelHeight {
		return nil, fmt.Errorf("%w: %dx%d exceeds limit of %d pixels", mandel.ErrInvalidViewport, v.PixelWidth, v.PixelHeight, s.maxPixels)
	}
	if s.maxIter > 0 && req.MaxIter > s.maxIter {
		return nil, fmt.Errorf("%w: max iterations %d exceeds limit of %d", mandel.ErrInvalidParams, req.MaxIter, s.maxIter)
	}
	img, err := s.renderer.Render(v, req.MaxIter, req.Bound)
	if err != nil {
		return nil, err
	}
	if img == nil {
		return nil, errors.New("renderer returned no image")
	}
	return img, nil
}
