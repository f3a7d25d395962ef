// Package render implements the escape-time engine: the column-partitioned
// parallel iteration over a plane grid and the mapping of escape counts
// to colours.
package render

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"golang.org/x/sync/errgroup"

	mandel "github.com/marben/mandelbro"
)

// Engine renders viewports. It keeps no state between calls; each call
// spawns its own set of partition workers and joins them before returning.
type Engine struct {
	workers int
	escaper Escaper
	policy  ChannelPolicy
}

var _ mandel.Renderer = (*Engine)(nil)

// New returns an Engine with four partitions, early-exit iteration and
// clamped colour channels unless overridden by opts.
func New(opts ...Option) *Engine {
	e := defaultEngine()
	for _, opt := range opts {
		opt(&e)
	}
	return &e
}

// Workers returns the number of column partitions per evaluation.
func (e *Engine) Workers() int { return e.workers }

// Render samples v, evaluates the grid and colours the result.
func (e *Engine) Render(v mandel.Viewport, maxIter int, bound float64) (*mandel.ColorImage, error) {
	start := time.Now()
	if err := checkParams(maxIter, bound); err != nil {
		return nil, err
	}

	g, err := mandel.Sample(v)
	if err != nil {
		return nil, fmt.Errorf("sample: %w", err)
	}

	f, err := e.Evaluate(g, maxIter, bound)
	if err != nil {
		return nil, err
	}

	img, err := Colorize(f, maxIter, e.policy)
	if err != nil {
		return nil, err
	}

	mandel.Logger().Debug("rendered",
		slog.String("viewport", v.String()),
		slog.Int("max_iter", maxIter),
		slog.Float64("bound", bound),
		slog.Duration("took", time.Since(start)))
	return img, nil
}

// Evaluate splits g into column partitions, runs the escaper on each
// concurrently and merges the results in column order. The first failing
// partition fails the whole evaluation and no field is returned.
func (e *Engine) Evaluate(g mandel.PlaneGrid, maxIter int, bound float64) (mandel.IterationField, error) {
	if err := checkParams(maxIter, bound); err != nil {
		return mandel.IterationField{}, err
	}

	parts := Split(g, e.workers)
	results := make([]mandel.IterationField, len(parts))

	var eg errgroup.Group
	for i, p := range parts {
		eg.Go(func() error {
			f, err := e.escapePartition(p, maxIter, bound)
			if err != nil {
				mandel.Logger().Warn("partition failed", slog.Int("partition", i), slog.Any("err", err))
				return &mandel.WorkerError{Partition: i, Err: err}
			}
			results[i] = f
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return mandel.IterationField{}, err
	}

	mandel.Logger().Debug("partitions joined", slog.Int("partitions", len(parts)), slog.Int("width", g.Width), slog.Int("height", g.Height))
	return Merge(results)
}

func (e *Engine) escapePartition(p mandel.PlaneGrid, maxIter int, bound float64) (f mandel.IterationField, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()

	f, err = e.escaper.Escape(p, maxIter, bound)
	if err != nil {
		return mandel.IterationField{}, err
	}
	if f.Width != p.Width || f.Height != p.Height || len(f.Counts) != p.Width*p.Height {
		return mandel.IterationField{}, fmt.Errorf("escaper returned %dx%d field for %dx%d partition", f.Width, f.Height, p.Width, p.Height)
	}
	return f, nil
}

func checkParams(maxIter int, bound float64) error {
	if maxIter < 1 {
		return fmt.Errorf("%w: max iterations %d", mandel.ErrInvalidParams, maxIter)
	}
	if !(bound > 0) || math.IsInf(bound, 0) {
		return fmt.Errorf("%w: bound %v", mandel.ErrInvalidParams, bound)
	}
	return nil
}
