package render

import mandel "github.com/marben/mandelbro"

// Option configures an Engine.
//
// Example:
//
//	e := render.New(
//	    render.WithWorkers(8),
//	    render.WithEscaper(render.Uniform{}),
//	    render.WithChannelPolicy(render.Strict),
//	)
type Option func(*Engine)

func defaultEngine() Engine {
	return Engine{
		workers: mandel.Partitions,
		escaper: EarlyExit{},
		policy:  Clamp,
	}
}

// WithWorkers sets the number of column partitions evaluated concurrently.
// Values below one are ignored.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.workers = n
		}
	}
}

// WithEscaper selects the escape iteration strategy. EarlyExit is the default.
func WithEscaper(esc Escaper) Option {
	return func(e *Engine) {
		if esc != nil {
			e.escaper = esc
		}
	}
}

// WithChannelPolicy selects how colour channels are narrowed. Clamp is the default.
func WithChannelPolicy(p ChannelPolicy) Option {
	return func(e *Engine) {
		e.policy = p
	}
}
