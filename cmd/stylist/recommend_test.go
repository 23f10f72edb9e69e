package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/stylist/internal/model"
)

func TestApplyPreferenceFlags(t *testing.T) {
	restored := model.Preferences{
		BudgetTier: model.BudgetMidRange,
		Size:       "M",
		Style:      "formal",
		Occasion:   "wedding",
		Weather:    "warm",
	}

	tests := []struct {
		name        string
		start       model.Preferences
		want        model.Preferences
		args        []string
		onlyChanged bool
		wantErr     bool
	}{
		{
			name: "defaults without restore",
			args: []string{"--shop", "demo"},
			want: model.Preferences{BudgetTier: model.BudgetUnbounded},
		},
		{
			name: "all flags without restore",
			args: []string{"--shop", "demo", "--budget", "under_50", "--size", "S", "--style", "boho", "--occasion", "festival", "--weather", "hot"},
			want: model.Preferences{BudgetTier: model.BudgetUnderLow, Size: "S", Style: "boho", Occasion: "festival", Weather: "hot"},
		},
		{
			name:        "restore keeps the record",
			args:        []string{"--shop", "demo", "--restore"},
			start:       restored,
			onlyChanged: true,
			want:        restored,
		},
		{
			name:        "restore with overrides",
			args:        []string{"--shop", "demo", "--restore", "--weather", "rainy", "--budget", "any"},
			start:       restored,
			onlyChanged: true,
			want:        model.Preferences{BudgetTier: model.BudgetUnbounded, Size: "M", Style: "formal", Occasion: "wedding", Weather: "rainy"},
		},
		{
			name:        "restore can clear a field",
			args:        []string{"--shop", "demo", "--restore", "--size", ""},
			start:       restored,
			onlyChanged: true,
			want:        model.Preferences{BudgetTier: model.BudgetMidRange, Style: "formal", Occasion: "wedding", Weather: "warm"},
		},
		{
			name:    "unknown budget",
			args:    []string{"--shop", "demo", "--budget", "lavish"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := recommendCmd()
			require.NoError(t, cmd.ParseFlags(tt.args))

			prefs := tt.start
			err := applyPreferenceFlags(cmd, &prefs, tt.onlyChanged)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, prefs)
		})
	}
}
