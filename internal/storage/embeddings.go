package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Veraticus/stylist/internal/common"
)

// GetEmbedding returns the memoized vector for key, or common.ErrNotFound.
func (s *SQLiteStorage) GetEmbedding(ctx context.Context, key string) ([]float64, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(key, "key"); err != nil {
		return nil, err
	}

	var blob []byte
	err := s.db.QueryRowContext(ctx, `SELECT vector FROM embeddings WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get embedding: %w", err)
	}

	var vector []float64
	if err := msgpack.Unmarshal(blob, &vector); err != nil {
		return nil, fmt.Errorf("failed to decode embedding %s: %w", key, err)
	}
	return vector, nil
}

// SaveEmbedding memoizes vector under key. Existing entries are replaced.
func (s *SQLiteStorage) SaveEmbedding(ctx context.Context, key, model string, vector []float64) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	if err := validateVector(vector); err != nil {
		return err
	}

	blob, err := msgpack.Marshal(vector)
	if err != nil {
		return fmt.Errorf("failed to encode embedding: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO embeddings (key, model, dimensions, vector)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			model = excluded.model,
			dimensions = excluded.dimensions,
			vector = excluded.vector,
			created_at = CURRENT_TIMESTAMP
	`, key, model, len(vector), blob)
	if err != nil {
		return fmt.Errorf("failed to save embedding: %w", err)
	}
	return nil
}

// CountEmbeddings returns the number of memoized vectors.
func (s *SQLiteStorage) CountEmbeddings(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return n, nil
}
