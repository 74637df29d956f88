package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ds, err := New([][]float64{{0, 0}, {1, 2}, {3, 4}})
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Len())
		assert.Equal(t, 2, ds.Dim())
		assert.Equal(t, []float64{1, 2}, ds.At(1))
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("ZeroDimension", func(t *testing.T) {
		_, err := New([][]float64{{}})
		require.ErrorIs(t, err, ErrInvalidDimension)
	})

	t.Run("Ragged", func(t *testing.T) {
		_, err := New([][]float64{{0, 0}, {1, 2, 3}})
		var rp *ErrRaggedPoint
		require.True(t, errors.As(err, &rp))
		assert.Equal(t, 1, rp.Index)
		assert.Equal(t, 2, rp.Expected)
		assert.Equal(t, 3, rp.Actual)
	})

	t.Run("CopiesInput", func(t *testing.T) {
		p := []float64{1, 1}
		ds, err := New([][]float64{p})
		require.NoError(t, err)
		p[0] = 99
		assert.Equal(t, []float64{1, 1}, ds.At(0))
	})
}

func TestFromFlat(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ds, err := FromFlat([]float64{0, 0, 1, 2, 3, 4}, 2)
		require.NoError(t, err)
		assert.Equal(t, 3, ds.Len())
		assert.Equal(t, []float64{3, 4}, ds.At(2))
	})

	t.Run("BadStride", func(t *testing.T) {
		_, err := FromFlat([]float64{0, 0, 1}, 2)
		require.Error(t, err)
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := FromFlat(nil, 2)
		require.ErrorIs(t, err, ErrEmpty)
	})

	t.Run("InvalidDimension", func(t *testing.T) {
		_, err := FromFlat([]float64{1}, 0)
		require.ErrorIs(t, err, ErrInvalidDimension)
	})
}
