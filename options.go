package xmeans

import (
	"log/slog"
)

const (
	defaultMaxIterations = 256
	defaultSplitOffset   = 0.001
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	maxIterations    int
	parallelism      int
	squaredTolerance bool
	splitOffset      float64
}

// Option configures XMeans construction behavior.
type Option func(*options)

// WithMaxIterations caps the reassign/recenter loop of a single refinement
// call. K-Means displacement is non-increasing on well-posed inputs, so the
// cap only guards against floating-point oscillation; when it is hit the
// best state reached is kept and a warning is logged.
func WithMaxIterations(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxIterations = n
		}
	}
}

// WithParallelism sets the number of workers for the per-point assignment
// step. Results are identical for any worker count; values <= 1 keep the
// step serial.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithSquaredTolerance makes the refiner compare squared center
// displacements against the squared tolerance, avoiding a square root per
// center per iteration. Only the internal comparison changes; reported
// convergence semantics stay the same.
func WithSquaredTolerance(enabled bool) Option {
	return func(o *options) {
		o.squaredTolerance = enabled
	}
}

// WithSplitOffset sets the per-coordinate perturbation used to seed the two
// child centers of a tentative split (child A = parent - offset, child B =
// parent + offset in every dimension).
func WithSplitOffset(offset float64) Option {
	return func(o *options) {
		if offset > 0 {
			o.splitOffset = offset
		}
	}
}

// WithMetricsCollector configures a metrics collector for monitoring
// operations. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
//
// Example with JSON logging:
//
//	logger := xmeans.NewJSONLogger(slog.LevelInfo)
//	xm, _ := xmeans.New(data, centers, kmax, tol, xmeans.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		maxIterations:    defaultMaxIterations,
		parallelism:      1,
		splitOffset:      defaultSplitOffset,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
