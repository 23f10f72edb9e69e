package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stylist/internal/common"
)

func TestSQLiteStorage_Embeddings(t *testing.T) {
	store, cleanup := createTestStorage(t)
	defer cleanup()
	ctx := context.Background()

	_, err := store.GetEmbedding(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)

	vec := []float64{0.25, -0.5, 1.125}
	require.NoError(t, store.SaveEmbedding(ctx, "k1", "text-embedding-3-small", vec))

	got, err := store.GetEmbedding(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, vec, got)

	// Replacing an entry keeps a single row.
	require.NoError(t, store.SaveEmbedding(ctx, "k1", "text-embedding-3-small", []float64{1, 2}))
	got, err = store.GetEmbedding(ctx, "k1")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, got)

	n, err := store.CountEmbeddings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	assert.ErrorIs(t, store.SaveEmbedding(ctx, "k2", "m", nil), ErrEmptySlice)
	assert.ErrorIs(t, store.SaveEmbedding(ctx, "", "m", vec), ErrEmptyString)
}
