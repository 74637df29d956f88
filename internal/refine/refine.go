// Package refine implements the K-Means inner loop: alternately reassign
// points to their nearest center and recompute centers as member centroids
// until the largest center displacement drops below the tolerance.
package refine

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/xmeans/dataset"
	"github.com/hupe1980/xmeans/distance"
)

// minParallelPoints is the point count below which parallel assignment is
// not worth the goroutine overhead.
const minParallelPoints = 2048

// Config controls a Refiner.
type Config struct {
	// Tolerance is the convergence threshold on the maximum center
	// displacement between consecutive iterations.
	Tolerance float64

	// Squared selects squared-distance convergence: displacement is measured
	// as squared Euclidean distance and compared against Tolerance², which
	// avoids a square root per center per iteration. Assignment always uses
	// squared distance; the flag affects only convergence measurement.
	Squared bool

	// MaxIterations caps the reassign/recenter loop. When hit, the best
	// state reached so far is returned with Stats.Converged false.
	MaxIterations int

	// Parallelism is the number of workers for the assignment step.
	// Values <= 1 keep the step serial.
	Parallelism int
}

// Stats reports how a refinement call ran.
type Stats struct {
	Iterations    int
	Converged     bool
	Displacements []float64
}

// Refiner refines clusterings over one dataset.
type Refiner struct {
	data      *dataset.Dataset
	cfg       Config
	tolerance float64       // pre-squared when cfg.Squared
	moveDist  distance.Func // displacement metric matching tolerance
}

// New creates a Refiner for the given dataset.
func New(data *dataset.Dataset, cfg Config) *Refiner {
	tolerance := cfg.Tolerance
	moveDist := distance.Euclidean
	if cfg.Squared {
		tolerance = cfg.Tolerance * cfg.Tolerance
		moveDist = distance.SquaredEuclidean
	}
	return &Refiner{
		data:      data,
		cfg:       cfg,
		tolerance: tolerance,
		moveDist:  moveDist,
	}
}

// Improve refines centers in place until convergence and returns the final
// cluster memberships. A nil subset means the whole dataset is considered;
// otherwise only the given dataset indexes are assigned.
//
// Membership slices are rebuilt from scratch on every iteration; the caller
// owns the centers and must pass copies if the originals matter.
func (r *Refiner) Improve(ctx context.Context, centers [][]float64, subset []int) ([][]int, Stats, error) {
	var stats Stats
	var clusters [][]int

	for {
		if err := ctx.Err(); err != nil {
			return clusters, stats, err
		}

		var err error
		clusters, err = r.assign(ctx, centers, subset)
		if err != nil {
			return clusters, stats, err
		}

		change := r.updateCenters(centers, clusters)
		stats.Iterations++
		stats.Displacements = append(stats.Displacements, change)

		if change <= r.tolerance {
			stats.Converged = true
			return clusters, stats, nil
		}
		if stats.Iterations >= r.cfg.MaxIterations {
			return clusters, stats, nil
		}
	}
}

// Assign performs a single assignment pass without moving centers.
func (r *Refiner) Assign(ctx context.Context, centers [][]float64, subset []int) ([][]int, error) {
	return r.assign(ctx, centers, subset)
}

func (r *Refiner) assign(ctx context.Context, centers [][]float64, subset []int) ([][]int, error) {
	n := r.data.Len()
	if subset != nil {
		n = len(subset)
	}

	at := func(i int) int {
		if subset != nil {
			return subset[i]
		}
		return i
	}

	assignments := make([]int, n)

	if r.cfg.Parallelism > 1 && n >= minParallelPoints {
		g, gctx := errgroup.WithContext(ctx)
		chunk := (n + r.cfg.Parallelism - 1) / r.cfg.Parallelism

		for start := 0; start < n; start += chunk {
			start := start
			end := min(start+chunk, n)
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				for i := start; i < end; i++ {
					assignments[i] = NearestCenter(r.data.At(at(i)), centers)
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < n; i++ {
			assignments[i] = NearestCenter(r.data.At(at(i)), centers)
		}
	}

	// Rebuild membership lists in dataset order so results are identical
	// regardless of worker count.
	clusters := make([][]int, len(centers))
	for i := range clusters {
		clusters[i] = []int{}
	}
	for i := 0; i < n; i++ {
		c := assignments[i]
		clusters[c] = append(clusters[c], at(i))
	}

	return clusters, nil
}

// NearestCenter returns the index of the center closest to point by
// Euclidean distance. Ties resolve to the lowest index: the scan only
// updates on strict improvement. Squared distance is used internally,
// which preserves the ordering.
func NearestCenter(point []float64, centers [][]float64) int {
	best := 0
	bestDist := distance.SquaredEuclidean(point, centers[0])

	for i := 1; i < len(centers); i++ {
		if d := distance.SquaredEuclidean(point, centers[i]); d < bestDist {
			best = i
			bestDist = d
		}
	}

	return best
}

// updateCenters recomputes each center as the mean of its members and
// returns the maximum displacement. A cluster with no members keeps its
// previous center, contributing zero displacement.
func (r *Refiner) updateCenters(centers [][]float64, clusters [][]int) float64 {
	dim := r.data.Dim()
	var maxChange float64

	total := make([]float64, dim)
	for i, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}

		for d := range total {
			total[d] = 0
		}
		for _, idx := range cluster {
			point := r.data.At(idx)
			for d, v := range point {
				total[d] += v
			}
		}

		inv := 1.0 / float64(len(cluster))
		for d := range total {
			total[d] *= inv
		}

		if change := r.moveDist(centers[i], total); change > maxChange {
			maxChange = change
		}
		copy(centers[i], total)
	}

	return maxChange
}
