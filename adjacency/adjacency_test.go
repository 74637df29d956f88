package adjacency

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Run("SetHasErase", func(t *testing.T) {
		l := New(5)
		assert.Equal(t, 5, l.Len())

		require.NoError(t, l.SetConnection(1, 3))

		has, err := l.HasConnection(1, 3)
		require.NoError(t, err)
		assert.True(t, has)

		// Directed: the reverse edge does not exist.
		has, err = l.HasConnection(3, 1)
		require.NoError(t, err)
		assert.False(t, has)

		require.NoError(t, l.EraseConnection(1, 3))
		has, err = l.HasConnection(1, 3)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("IdempotentMutation", func(t *testing.T) {
		l := New(3)
		require.NoError(t, l.SetConnection(0, 1))
		require.NoError(t, l.SetConnection(0, 1))

		d, err := l.Degree(0)
		require.NoError(t, err)
		assert.Equal(t, 1, d)

		require.NoError(t, l.EraseConnection(0, 2)) // never existed
	})

	t.Run("Neighbors", func(t *testing.T) {
		l := New(10)
		for _, to := range []int{7, 2, 5, 2} {
			require.NoError(t, l.SetConnection(4, to))
		}

		n, err := l.Neighbors(4)
		require.NoError(t, err)
		assert.Equal(t, []int{2, 5, 7}, n)

		n, err = l.Neighbors(0)
		require.NoError(t, err)
		assert.Empty(t, n)
	})

	t.Run("OutOfRange", func(t *testing.T) {
		l := New(2)
		require.Error(t, l.SetConnection(-1, 0))
		require.Error(t, l.SetConnection(0, 2))
		require.Error(t, l.EraseConnection(2, 0))
		_, err := l.HasConnection(0, 5)
		require.Error(t, err)
		_, err = l.Neighbors(9)
		require.Error(t, err)
		_, err = l.Degree(-3)
		require.Error(t, err)
	})
}
