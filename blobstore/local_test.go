package blobstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeUnderTest(t *testing.T, kind string) Store {
	t.Helper()
	switch kind {
	case "local":
		s, err := NewLocalStore(t.TempDir())
		require.NoError(t, err)
		return s
	case "memory":
		return NewMemoryStore()
	default:
		t.Fatalf("unknown store kind %q", kind)
		return nil
	}
}

func TestStores(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{"local", "memory"} {
		t.Run(kind, func(t *testing.T) {
			t.Run("PutOpenRoundTrip", func(t *testing.T) {
				s := storeUnderTest(t, kind)
				data := []byte("snapshot-bytes")
				require.NoError(t, s.Put(ctx, "run-1", data))

				blob, err := s.Open(ctx, "run-1")
				require.NoError(t, err)
				defer func() { _ = blob.Close() }()

				assert.Equal(t, int64(len(data)), blob.Size())
				got, err := ReadAll(ctx, blob)
				require.NoError(t, err)
				assert.Equal(t, data, got)
			})

			t.Run("PutOverwrites", func(t *testing.T) {
				s := storeUnderTest(t, kind)
				require.NoError(t, s.Put(ctx, "x", []byte("old")))
				require.NoError(t, s.Put(ctx, "x", []byte("new")))

				blob, err := s.Open(ctx, "x")
				require.NoError(t, err)
				defer func() { _ = blob.Close() }()

				got, err := ReadAll(ctx, blob)
				require.NoError(t, err)
				assert.Equal(t, []byte("new"), got)
			})

			t.Run("OpenMissing", func(t *testing.T) {
				s := storeUnderTest(t, kind)
				_, err := s.Open(ctx, "nope")
				require.ErrorIs(t, err, ErrNotFound)
			})

			t.Run("Delete", func(t *testing.T) {
				s := storeUnderTest(t, kind)
				require.NoError(t, s.Put(ctx, "gone", []byte("x")))
				require.NoError(t, s.Delete(ctx, "gone"))
				_, err := s.Open(ctx, "gone")
				require.ErrorIs(t, err, ErrNotFound)

				// Deleting again is not an error.
				require.NoError(t, s.Delete(ctx, "gone"))
			})

			t.Run("List", func(t *testing.T) {
				s := storeUnderTest(t, kind)
				require.NoError(t, s.Put(ctx, "run-1", []byte("a")))
				require.NoError(t, s.Put(ctx, "run-2", []byte("b")))
				require.NoError(t, s.Put(ctx, "other", []byte("c")))

				names, err := s.List(ctx, "run-")
				require.NoError(t, err)
				assert.ElementsMatch(t, []string{"run-1", "run-2"}, names)

				all, err := s.List(ctx, "")
				require.NoError(t, err)
				assert.Len(t, all, 3)
			})
		})
	}
}
