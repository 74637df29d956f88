package criterion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/xmeans/dataset"
)

func TestScoreDegenerate(t *testing.T) {
	ds, err := dataset.New([][]float64{{0, 0}, {1, 1}})
	require.NoError(t, err)

	t.Run("EmptyCluster", func(t *testing.T) {
		_, err := Score(ds, [][]float64{{0, 0}, {1, 1}}, [][]int{{0, 1}, {}})
		require.ErrorIs(t, err, ErrDegenerateModel)
	})

	t.Run("AsManyClustersAsPoints", func(t *testing.T) {
		_, err := Score(ds, [][]float64{{0, 0}, {1, 1}}, [][]int{{0}, {1}})
		require.ErrorIs(t, err, ErrDegenerateModel)
	})
}

func TestScoreCoincidentPoints(t *testing.T) {
	// All points on the center: sigma hits the floor instead of ln(0).
	ds, err := dataset.New([][]float64{{1, 1}, {1, 1}, {1, 1}})
	require.NoError(t, err)

	score, err := Score(ds, [][]float64{{1, 1}}, [][]int{{0, 1, 2}})
	require.NoError(t, err)
	assert.False(t, score != score, "score must not be NaN")
}

func TestScorePrefersTrueStructure(t *testing.T) {
	t.Run("SeparatedBlobs", func(t *testing.T) {
		ds, err := dataset.New([][]float64{
			{0, 0}, {0, 1}, {1, 0},
			{10, 10}, {10, 11}, {11, 10},
		})
		require.NoError(t, err)

		one, err := Score(ds,
			[][]float64{{11.0 / 3, 11.0 / 3}},
			[][]int{{0, 1, 2, 3, 4, 5}})
		require.NoError(t, err)

		two, err := Score(ds,
			[][]float64{{1.0 / 3, 1.0 / 3}, {31.0 / 3, 31.0 / 3}},
			[][]int{{0, 1, 2}, {3, 4, 5}})
		require.NoError(t, err)

		assert.Greater(t, two, one)
	})

	t.Run("UnimodalBlob", func(t *testing.T) {
		ds, err := dataset.New([][]float64{
			{5, 5}, {5.1, 4.9}, {4.9, 5.1}, {5.05, 5.0}, {4.95, 5.0},
			{5.0, 5.1}, {5.0, 4.9}, {5.1, 5.1}, {4.9, 4.9}, {5.05, 4.95},
		})
		require.NoError(t, err)

		all := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
		one, err := Score(ds, [][]float64{{5, 5}}, [][]int{all})
		require.NoError(t, err)

		// An arbitrary halving of the same points.
		two, err := Score(ds,
			[][]float64{{4.95, 4.95}, {5.05, 5.05}},
			[][]int{{4, 6, 8, 2, 5}, {0, 1, 3, 7, 9}})
		require.NoError(t, err)

		assert.Greater(t, one, two)
	})
}

func TestScoreDeterministic(t *testing.T) {
	ds, err := dataset.New([][]float64{{0, 0}, {0, 1}, {1, 0}, {4, 4}})
	require.NoError(t, err)

	centers := [][]float64{{0.25, 0.25}, {4, 4}}
	clusters := [][]int{{0, 1, 2}, {3}}

	a, err := Score(ds, centers, clusters)
	require.NoError(t, err)
	b, err := Score(ds, centers, clusters)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
