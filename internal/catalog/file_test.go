package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stylist/internal/common"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestFileSource_SingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `[
		{"id": 1, "title": "Tee", "price": "20", "inventory_count": 3},
		{"id": 2, "title": "Broken", "price": "n/a", "inventory_count": 3}
	]`)

	items, err := NewFileSource(path, nil).Products(context.Background(), "any-shop")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}

func TestFileSource_WrappedObject(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.json")
	writeFile(t, path, `{"products": [{"id": "a", "title": "Scarf", "price": 15, "inventory_count": 1}]}`)

	items, err := NewFileSource(path, nil).Products(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Scarf", items[0].Title)
}

func TestFileSource_Directory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "boutique.json"), `[{"id": "x", "title": "Hat", "price": 30, "inventory_count": 2}]`)
	src := NewFileSource(dir, nil)

	items, err := src.Products(context.Background(), "boutique")
	require.NoError(t, err)
	require.Len(t, items, 1)

	_, err = src.Products(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)

	_, err = src.Products(context.Background(), "../boutique")
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)
}

func TestFileSource_Errors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, `not json`)

	_, err := NewFileSource(bad, nil).Products(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)

	_, err = NewFileSource(filepath.Join(dir, "nope.json"), nil).Products(context.Background(), "")
	assert.ErrorIs(t, err, common.ErrCatalogUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewFileSource(bad, nil).Products(ctx, "")
	assert.ErrorIs(t, err, context.Canceled)
}
