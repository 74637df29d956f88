package xmeans

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordRefinement is called after each parameter refinement pass.
	// iterations is the number of reassign/recenter loops run.
	RecordRefinement(iterations int, duration time.Duration)

	// RecordSplitEvaluation is called after each per-cluster split decision.
	RecordSplitEvaluation(accepted bool, duration time.Duration)

	// RecordRun is called once per completed run.
	// clusters is the final cluster count, err is nil if successful.
	RecordRun(clusters int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRefinement(int, time.Duration)       {}
func (NoopMetricsCollector) RecordSplitEvaluation(bool, time.Duration) {}
func (NoopMetricsCollector) RecordRun(int, time.Duration, error)       {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RefinementCount      atomic.Int64
	RefinementIterations atomic.Int64
	RefinementTotalNanos atomic.Int64
	SplitCount           atomic.Int64
	SplitAccepted        atomic.Int64
	RunCount             atomic.Int64
	RunErrors            atomic.Int64
	RunTotalNanos        atomic.Int64
}

// RecordRefinement implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRefinement(iterations int, duration time.Duration) {
	b.RefinementCount.Add(1)
	b.RefinementIterations.Add(int64(iterations))
	b.RefinementTotalNanos.Add(duration.Nanoseconds())
}

// RecordSplitEvaluation implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSplitEvaluation(accepted bool, duration time.Duration) {
	b.SplitCount.Add(1)
	if accepted {
		b.SplitAccepted.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(clusters int, duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RefinementCount:      b.RefinementCount.Load(),
		RefinementIterations: b.RefinementIterations.Load(),
		RefinementAvgNanos:   b.getAvgRefinementNanos(),
		SplitCount:           b.SplitCount.Load(),
		SplitAccepted:        b.SplitAccepted.Load(),
		RunCount:             b.RunCount.Load(),
		RunErrors:            b.RunErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRefinementNanos() int64 {
	count := b.RefinementCount.Load()
	if count == 0 {
		return 0
	}
	return b.RefinementTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RefinementCount      int64
	RefinementIterations int64
	RefinementAvgNanos   int64
	SplitCount           int64
	SplitAccepted        int64
	RunCount             int64
	RunErrors            int64
}
