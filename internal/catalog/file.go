package catalog

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/Veraticus/stylist/internal/common"
	"github.com/Veraticus/stylist/internal/model"
)

// FileSource reads catalogs from JSON files. When Path is a directory each shop
// is read from <Path>/<shopID>.json; otherwise every shop shares the one file.
// A file holds either an array of products or an object with a "products" array.
type FileSource struct {
	Logger *slog.Logger
	Path   string
}

// NewFileSource creates a FileSource for path.
func NewFileSource(path string, logger *slog.Logger) *FileSource {
	return &FileSource{Path: path, Logger: logger}
}

// Products implements Source.
func (s *FileSource) Products(ctx context.Context, shopID string) ([]model.CatalogItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := s.resolve(shopID)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}

	raws, err := decodeProducts(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrCatalogUnavailable, path, err)
	}

	return Normalize(raws, s.Logger), nil
}

func (s *FileSource) resolve(shopID string) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrCatalogUnavailable, err)
	}
	if !info.IsDir() {
		return s.Path, nil
	}
	if shopID == "" || shopID != filepath.Base(shopID) {
		return "", fmt.Errorf("%w: invalid shop id %q", common.ErrCatalogUnavailable, shopID)
	}
	return filepath.Join(s.Path, shopID+".json"), nil
}

func decodeProducts(data []byte) ([]RawProduct, error) {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		var raws []RawProduct
		if err := json.Unmarshal(data, &raws); err != nil {
			return nil, err
		}
		return raws, nil
	}

	var wrapper struct {
		Products []RawProduct `json:"products"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, err
	}
	return wrapper.Products, nil
}
