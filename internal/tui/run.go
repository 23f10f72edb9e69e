package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Veraticus/stylist/internal/model"
)

var (
	// ErrNoHistory is returned when there is nothing to restore.
	ErrNoHistory = errors.New("no recommendations recorded")
	// ErrRestoreCanceled is returned when the user leaves the picker without choosing.
	ErrRestoreCanceled = errors.New("restore canceled")
)

// PickRecord runs the restore picker until the user chooses a record or
// cancels. Options are passed to the underlying program, e.g. to set input and
// output.
func PickRecord(ctx context.Context, shopID string, records []model.RecommendationRecord, opts ...tea.ProgramOption) (model.RecommendationRecord, error) {
	if len(records) == 0 {
		return model.RecommendationRecord{}, fmt.Errorf("%w for shop %q", ErrNoHistory, shopID)
	}

	program := tea.NewProgram(
		NewRestoreModel(shopID, records),
		append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...,
	)

	final, err := program.Run()
	if err != nil {
		return model.RecommendationRecord{}, fmt.Errorf("failed to run picker: %w", err)
	}

	m, ok := final.(RestoreModel)
	if !ok {
		return model.RecommendationRecord{}, fmt.Errorf("unexpected picker model %T", final)
	}
	record, ok := m.Choice()
	if !ok {
		return model.RecommendationRecord{}, ErrRestoreCanceled
	}
	return record, nil
}
