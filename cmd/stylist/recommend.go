package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Veraticus/stylist/internal/cli"
	"github.com/Veraticus/stylist/internal/model"
	"github.com/Veraticus/stylist/internal/storage"
	"github.com/Veraticus/stylist/internal/tui"
)

func recommendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend an outfit from the terminal",
		Long: `Recommend an outfit from the terminal.

With --restore, pick one of the shop's recent recommendations and run it again
with the same preferences. Preference flags given alongside --restore override
the restored values.`,
		Example: `  stylist recommend --shop demo --budget under_50 --style casual --occasion brunch --weather warm
  stylist recommend --shop demo --budget "50-150" --size M
  stylist recommend --shop demo --restore
  stylist recommend --shop demo --restore --weather rainy`,
		RunE: runRecommend,
	}

	cmd.Flags().String("shop", "", "shop identifier (required)")
	cmd.Flags().String("budget", string(model.BudgetUnbounded), "budget tier: under_50, mid_range, any")
	cmd.Flags().String("size", "", "preferred size")
	cmd.Flags().String("style", "", "style, e.g. casual, boho, formal")
	cmd.Flags().String("occasion", "", "occasion, e.g. wedding, office")
	cmd.Flags().String("weather", "", "expected weather, e.g. warm, rainy")
	cmd.Flags().Bool("restore", false, "pick a recent recommendation for the shop and run it again")
	_ = cmd.MarkFlagRequired("shop")

	return cmd
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	shopID, _ := cmd.Flags().GetString("shop")
	restore, _ := cmd.Flags().GetBool("restore")

	var prefs model.Preferences
	if !restore {
		if err := applyPreferenceFlags(cmd, &prefs, false); err != nil {
			return err
		}
	}

	p, err := buildPipeline(cmd.Context(), nil)
	if err != nil {
		return fmt.Errorf("failed to initialize pipeline: %w", err)
	}
	defer p.Close()

	if restore {
		records, err := p.store.GetRecentRecommendations(cmd.Context(), shopID, storage.DefaultHistoryLimit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		record, err := tui.PickRecord(cmd.Context(), shopID, records,
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()),
		)
		if errors.Is(err, tui.ErrRestoreCanceled) {
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Nothing restored."))
			return err
		}
		if err != nil {
			return err
		}

		prefs = record.Preferences
		if err := applyPreferenceFlags(cmd, &prefs, true); err != nil {
			return err
		}
	}

	rec, err := p.recommender.Recommend(cmd.Context(), shopID, prefs)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderRecommendation(rec))
	return err
}

// applyPreferenceFlags copies the preference flags into prefs. With
// onlyChanged set, flags the user did not pass leave prefs untouched.
func applyPreferenceFlags(cmd *cobra.Command, prefs *model.Preferences, onlyChanged bool) error {
	flags := cmd.Flags()
	use := func(name string) bool {
		return !onlyChanged || flags.Changed(name)
	}

	if use("budget") {
		budget, _ := flags.GetString("budget")
		tier, err := model.ParseBudgetTier(budget)
		if err != nil {
			return err
		}
		prefs.BudgetTier = tier
	}

	for _, f := range []struct {
		dst  *string
		name string
	}{
		{&prefs.Size, "size"},
		{&prefs.Style, "style"},
		{&prefs.Occasion, "occasion"},
		{&prefs.Weather, "weather"},
	} {
		if use(f.name) {
			*f.dst, _ = flags.GetString(f.name)
		}
	}
	return nil
}
