package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"

	"github.com/Veraticus/stylist/internal/model"
)

// History read bounds.
const (
	DefaultHistoryLimit = 10
	MaxHistoryLimit     = 50
)

// SaveRecommendation appends a completed recommendation to the history log.
func (s *SQLiteStorage) SaveRecommendation(ctx context.Context, record *model.RecommendationRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateRecord(record); err != nil {
		return err
	}

	prefs, err := json.Marshal(record.Preferences)
	if err != nil {
		return fmt.Errorf("failed to encode preferences: %w", err)
	}

	productIDs := record.ProductIDs
	if productIDs == nil {
		productIDs = []string{}
	}
	ids, err := json.Marshal(productIDs)
	if err != nil {
		return fmt.Errorf("failed to encode product ids: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO recommendations (id, shop_id, preferences, advice, product_ids, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.ID, record.ShopID, string(prefs), record.Advice, string(ids), record.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}

	return nil
}

// GetRecentRecommendations returns up to limit records for shopID, newest first.
// A non-positive limit selects DefaultHistoryLimit; larger values are capped.
func (s *SQLiteStorage) GetRecentRecommendations(ctx context.Context, shopID string, limit int) ([]model.RecommendationRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(shopID, "shopID"); err != nil {
		return nil, err
	}

	switch {
	case limit <= 0:
		limit = DefaultHistoryLimit
	case limit > MaxHistoryLimit:
		limit = MaxHistoryLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, shop_id, preferences, advice, product_ids, created_at
		FROM recommendations
		WHERE shop_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, shopID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.RecommendationRecord, 0, limit)
	for rows.Next() {
		var (
			record     model.RecommendationRecord
			prefs      string
			productIDs string
			createdAt  time.Time
		)
		if err := rows.Scan(&record.ID, &record.ShopID, &prefs, &record.Advice, &productIDs, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan recommendation: %w", err)
		}
		if err := json.Unmarshal([]byte(prefs), &record.Preferences); err != nil {
			return nil, fmt.Errorf("failed to decode preferences for %s: %w", record.ID, err)
		}
		if err := json.Unmarshal([]byte(productIDs), &record.ProductIDs); err != nil {
			return nil, fmt.Errorf("failed to decode product ids for %s: %w", record.ID, err)
		}
		record.CreatedAt = createdAt
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recommendations: %w", err)
	}

	return records, nil
}
