package refine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/xmeans/dataset"
)

func twoBlobs(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New([][]float64{
		{0, 0}, {0, 1}, {1, 0},
		{10, 10}, {10, 11}, {11, 10},
	})
	require.NoError(t, err)
	return ds
}

func defaultConfig() Config {
	return Config{Tolerance: 0.001, MaxIterations: 256}
}

func TestNearestCenter(t *testing.T) {
	centers := [][]float64{{0, 0}, {10, 10}}

	assert.Equal(t, 0, NearestCenter([]float64{1, 1}, centers))
	assert.Equal(t, 1, NearestCenter([]float64{9, 9}, centers))

	// Equidistant point resolves to the lowest index.
	assert.Equal(t, 0, NearestCenter([]float64{5, 5}, centers))
}

func TestImprove(t *testing.T) {
	ctx := context.Background()

	t.Run("TwoBlobs", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		centers := [][]float64{{0, 0}, {10, 10}}
		clusters, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)
		assert.True(t, stats.Converged)

		assert.ElementsMatch(t, []int{0, 1, 2}, clusters[0])
		assert.ElementsMatch(t, []int{3, 4, 5}, clusters[1])

		assert.InDelta(t, 1.0/3.0, centers[0][0], 1e-9)
		assert.InDelta(t, 1.0/3.0, centers[0][1], 1e-9)
		assert.InDelta(t, 31.0/3.0, centers[1][0], 1e-9)
	})

	t.Run("SubsetRestriction", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		// Only the second blob is considered; the far first blob must not
		// appear in any cluster.
		centers := [][]float64{{9, 9}, {12, 12}}
		clusters, _, err := r.Improve(ctx, centers, []int{3, 4, 5})
		require.NoError(t, err)

		var members []int
		for _, c := range clusters {
			members = append(members, c...)
		}
		assert.ElementsMatch(t, []int{3, 4, 5}, members)
	})

	t.Run("EmptyClusterKeepsCenter", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		// Second center is so far away it never attracts a point.
		centers := [][]float64{{5, 5}, {1000, 1000}}
		clusters, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)
		assert.True(t, stats.Converged)

		assert.Len(t, clusters[0], 6)
		assert.Empty(t, clusters[1])
		assert.Equal(t, []float64{1000, 1000}, centers[1])
	})

	t.Run("MonotonicDisplacement", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		centers := [][]float64{{0, 0}, {2, 2}}
		_, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)

		for i := 1; i < len(stats.Displacements); i++ {
			assert.LessOrEqual(t, stats.Displacements[i], stats.Displacements[i-1]+1e-9,
				"displacement increased at iteration %d", i)
		}
	})

	t.Run("AssignmentIdempotent", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		centers := [][]float64{{0, 0}, {10, 10}}
		clusters, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)
		require.True(t, stats.Converged)

		again, err := r.Assign(ctx, centers, nil)
		require.NoError(t, err)
		assert.Equal(t, clusters, again)
	})

	t.Run("SquaredTolerance", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, Config{Tolerance: 0.001, Squared: true, MaxIterations: 256})

		centers := [][]float64{{0, 0}, {10, 10}}
		clusters, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)
		assert.True(t, stats.Converged)
		assert.ElementsMatch(t, []int{0, 1, 2}, clusters[0])
		assert.ElementsMatch(t, []int{3, 4, 5}, clusters[1])
	})

	t.Run("IterationCap", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, Config{Tolerance: 1e-15, MaxIterations: 1})

		centers := [][]float64{{0, 0}, {2, 2}}
		clusters, stats, err := r.Improve(ctx, centers, nil)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Iterations)
		assert.False(t, stats.Converged)
		assert.Len(t, clusters, 2)
	})

	t.Run("ContextCanceled", func(t *testing.T) {
		ds := twoBlobs(t)
		r := New(ds, defaultConfig())

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		centers := [][]float64{{0, 0}}
		_, _, err := r.Improve(canceled, centers, nil)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestImproveParallelMatchesSerial(t *testing.T) {
	ctx := context.Background()

	// Large enough to cross the parallel threshold.
	points := make([][]float64, 0, 4096)
	for i := 0; i < 2048; i++ {
		points = append(points, []float64{float64(i % 13), float64(i % 7)})
		points = append(points, []float64{100 + float64(i%11), 100 + float64(i%5)})
	}
	ds, err := dataset.New(points)
	require.NoError(t, err)

	seed := func() [][]float64 {
		return [][]float64{{0, 0}, {90, 90}}
	}

	serial := New(ds, Config{Tolerance: 0.001, MaxIterations: 256, Parallelism: 1})
	parallel := New(ds, Config{Tolerance: 0.001, MaxIterations: 256, Parallelism: 4})

	cs, ss := seed(), seed()
	clustersSerial, _, err := serial.Improve(ctx, cs, nil)
	require.NoError(t, err)
	clustersParallel, _, err := parallel.Improve(ctx, ss, nil)
	require.NoError(t, err)

	assert.Equal(t, clustersSerial, clustersParallel)
	assert.Equal(t, cs, ss)
}
