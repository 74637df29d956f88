package xmeans

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/xmeans/dataset"
	"github.com/hupe1980/xmeans/internal/criterion"
	"github.com/hupe1980/xmeans/internal/refine"
	"github.com/hupe1980/xmeans/model"
)

// XMeans clusters a fixed dataset, discovering the cluster count between
// the number of initial centers and a configured maximum.
//
// An XMeans instance owns its run state exclusively and must not be shared
// across concurrent Run calls. The dataset is never mutated and must outlive
// the instance.
type XMeans struct {
	data    *dataset.Dataset
	centers [][]float64
	kmax    int
	opts    options
	refiner *refine.Refiner
}

// New validates the inputs and creates a run. The initial centers are
// copied; kmax bounds the final cluster count and must be at least the
// number of initial centers.
func New(data *dataset.Dataset, initialCenters [][]float64, kmax int, tolerance float64, optFns ...Option) (*XMeans, error) {
	if data == nil || data.Len() == 0 {
		return nil, ErrEmptyDataset
	}
	if len(initialCenters) == 0 {
		return nil, ErrNoInitialCenters
	}
	if kmax <= 0 || kmax < len(initialCenters) {
		return nil, &ErrInvalidClusterBound{Max: kmax, Initial: len(initialCenters)}
	}
	if tolerance <= 0 {
		return nil, ErrInvalidTolerance
	}

	dim := data.Dim()
	centers := make([][]float64, len(initialCenters))
	for i, c := range initialCenters {
		if len(c) != dim {
			return nil, &ErrDimensionMismatch{Expected: dim, Actual: len(c)}
		}
		centers[i] = slices.Clone(c)
	}

	opts := applyOptions(optFns)

	return &XMeans{
		data:    data,
		centers: centers,
		kmax:    kmax,
		opts:    opts,
		refiner: refine.New(data, refine.Config{
			Tolerance:     tolerance,
			Squared:       opts.squaredTolerance,
			MaxIterations: opts.maxIterations,
			Parallelism:   opts.parallelism,
		}),
	}, nil
}

// Run executes the algorithm: refine the current clustering, then attempt to
// split each cluster, and repeat until a full pass leaves the cluster count
// unchanged or the maximum is reached. The final clustering covers every
// dataset index exactly once.
func (x *XMeans) Run(ctx context.Context) (*model.Clustering, error) {
	start := time.Now()

	clustering, err := x.run(ctx)

	k := 0
	if clustering != nil {
		k = clustering.K()
	}
	x.opts.metricsCollector.RecordRun(k, time.Since(start), err)
	x.opts.logger.LogRun(ctx, k, err)

	return clustering, err
}

func (x *XMeans) run(ctx context.Context) (*model.Clustering, error) {
	// Refinement mutates centers in place; work on a copy so repeated Run
	// calls start from the same seeds.
	centers := make([][]float64, len(x.centers))
	for i, c := range x.centers {
		centers[i] = slices.Clone(c)
	}

	clusters, err := x.improveParameters(ctx, centers, nil)
	if err != nil {
		return nil, err
	}

	for len(centers) < x.kmax {
		next, err := x.improveStructure(ctx, centers, clusters)
		if err != nil {
			return nil, err
		}
		if len(next) == len(centers) {
			break
		}

		// Membership is stale against the new center set; the next
		// refinement re-derives it globally.
		centers = next
		clusters, err = x.improveParameters(ctx, centers, nil)
		if err != nil {
			return nil, err
		}
	}

	return &model.Clustering{Centers: centers, Clusters: clusters}, nil
}

// improveParameters runs one refinement pass and records its stats.
func (x *XMeans) improveParameters(ctx context.Context, centers [][]float64, subset []int) ([][]int, error) {
	start := time.Now()

	clusters, stats, err := x.refiner.Improve(ctx, centers, subset)
	if err != nil {
		return nil, err
	}

	x.opts.metricsCollector.RecordRefinement(stats.Iterations, time.Since(start))
	x.opts.logger.LogRefinement(ctx, len(centers), stats.Iterations, stats.Converged)

	return clusters, nil
}

// improveStructure decides for every cluster whether to keep it or replace
// it with two refined children, and returns the resulting center set.
// Splits stop as soon as the running center count reaches the maximum.
func (x *XMeans) improveStructure(ctx context.Context, centers [][]float64, clusters [][]int) ([][]float64, error) {
	budget := x.kmax - len(centers)
	next := make([][]float64, 0, len(centers))

	for i := range centers {
		if budget == 0 {
			next = append(next, centers[i])
			continue
		}

		children, accepted, err := x.evaluateSplit(ctx, i, centers[i], clusters[i])
		if err != nil {
			return nil, err
		}

		if accepted {
			next = append(next, children...)
			budget--
		} else {
			next = append(next, centers[i])
		}
	}

	return next, nil
}

// evaluateSplit refines two perturbed children over the parent's own points
// and accepts the split unless the parent's score strictly exceeds the
// children's. Degenerate child models (an empty child, or too few points to
// estimate variance) reject the split outright.
func (x *XMeans) evaluateSplit(ctx context.Context, index int, parent []float64, members []int) ([][]float64, bool, error) {
	start := time.Now()

	children := make([][]float64, 2)
	children[0] = slices.Clone(parent)
	children[1] = slices.Clone(parent)
	for d := range parent {
		children[0][d] -= x.opts.splitOffset
		children[1][d] += x.opts.splitOffset
	}

	childClusters, _, err := x.refiner.Improve(ctx, children, members)
	if err != nil {
		return nil, false, err
	}

	accepted := false
	var parentScore, childScore float64

	childScore, childErr := criterion.Score(x.data, children, childClusters)
	if childErr == nil {
		var parentErr error
		parentScore, parentErr = criterion.Score(x.data, [][]float64{parent}, [][]int{members})
		if parentErr == nil {
			accepted = parentScore <= childScore
		}
	}

	x.opts.metricsCollector.RecordSplitEvaluation(accepted, time.Since(start))
	x.opts.logger.LogSplit(ctx, index, parentScore, childScore, accepted)

	return children, accepted, nil
}
