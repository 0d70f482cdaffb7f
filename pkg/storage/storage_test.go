package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageBackends(t *testing.T) {
	local, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	backends := map[string]Storage{
		"local":  local,
		"memory": NewMemory(),
	}

	for name, store := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			// Missing keys.
			_, err := store.Read(ctx, "projects/missing.json")
			assert.ErrorIs(t, err, ErrNotFound)
			err = store.Delete(ctx, "projects/missing.json")
			assert.ErrorIs(t, err, ErrNotFound)
			exists, err := store.Exists(ctx, "projects/missing.json")
			require.NoError(t, err)
			assert.False(t, exists)

			// Write then read back.
			require.NoError(t, store.Write(ctx, "projects/a.json", []byte(`{"id":"a"}`)))
			require.NoError(t, store.Write(ctx, "projects/b.json", []byte(`{"id":"b"}`)))
			data, err := store.Read(ctx, "projects/a.json")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"a"}`, string(data))

			exists, err = store.Exists(ctx, "projects/a.json")
			require.NoError(t, err)
			assert.True(t, exists)

			// Overwrite is last-writer-wins.
			require.NoError(t, store.Write(ctx, "projects/a.json", []byte(`{"id":"a2"}`)))
			data, err = store.Read(ctx, "projects/a.json")
			require.NoError(t, err)
			assert.Equal(t, `{"id":"a2"}`, string(data))

			paths, err := store.List(ctx, "projects")
			require.NoError(t, err)
			assert.ElementsMatch(t, []string{"projects/a.json", "projects/b.json"}, paths)

			// Listing an absent prefix is empty, not an error.
			paths, err = store.List(ctx, "nope")
			require.NoError(t, err)
			assert.Empty(t, paths)

			require.NoError(t, store.Delete(ctx, "projects/a.json"))
			exists, err = store.Exists(ctx, "projects/a.json")
			require.NoError(t, err)
			assert.False(t, exists)
		})
	}
}
