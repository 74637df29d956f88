package distance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Simple", []float64{1, 2, 3}, []float64{4, 5, 6}, 27},
		{"Zero", []float64{0, 0, 0}, []float64{0, 0, 0}, 0},
		{"Identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 0},
		{"Mixed", []float64{1, -1}, []float64{-1, 1}, 8}, // (1 - -1)^2 + (-1 - 1)^2 = 4 + 4 = 8
		{"Empty", []float64{}, []float64{}, 0},
		{"Single", []float64{2}, []float64{5}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredEuclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
	}{
		{"Axis", []float64{0, 0}, []float64{2, 0}, 2},
		{"Pythagorean", []float64{0, 0}, []float64{3, 4}, 5},
		{"Identical", []float64{1, 2}, []float64{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Euclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestSquaredConsistency(t *testing.T) {
	a := []float64{0.3, -1.7, 2.9, 0.01}
	b := []float64{-0.4, 1.1, 2.8, -3.2}

	d := Euclidean(a, b)
	assert.InDelta(t, d*d, SquaredEuclidean(a, b), 1e-12)
	assert.InDelta(t, math.Sqrt(SquaredEuclidean(a, b)), d, 1e-12)
}

func TestMetric(t *testing.T) {
	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "Euclidean", MetricEuclidean.String())
		assert.Equal(t, "SquaredEuclidean", MetricSquaredEuclidean.String())
		assert.Equal(t, "Unknown(42)", Metric(42).String())
	})

	t.Run("Provider", func(t *testing.T) {
		f, err := Provider(MetricEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 5.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

		f, err = Provider(MetricSquaredEuclidean)
		require.NoError(t, err)
		assert.InDelta(t, 25.0, f([]float64{0, 0}, []float64{3, 4}), 1e-12)

		_, err = Provider(Metric(42))
		require.Error(t, err)
	})
}
