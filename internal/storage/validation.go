// Package storage provides the data persistence layer for stylist.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/stylist/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidRecord = errors.New("invalid recommendation record")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateVector ensures an embedding is present.
func validateVector(v []float64) error {
	if len(v) == 0 {
		return fmt.Errorf("%w: vector", ErrEmptySlice)
	}
	return nil
}

// validateRecord validates a recommendation record before it is persisted.
func validateRecord(record *model.RecommendationRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record", ErrNilParameter)
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("%w: missing ID", ErrInvalidRecord)
	}
	if strings.TrimSpace(record.ShopID) == "" {
		return fmt.Errorf("%w: missing shop ID", ErrInvalidRecord)
	}
	if record.CreatedAt.IsZero() {
		return fmt.Errorf("%w: missing creation time", ErrInvalidRecord)
	}
	return nil
}
