package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Veraticus/stylist/internal/model"
)

// RenderRecommendation formats a recommendation result for the terminal.
func RenderRecommendation(rec model.Recommendation) string {
	var b strings.Builder

	b.WriteString(FormatTitle("Outfit for " + rec.Preferences.BudgetTier.Label()))
	b.WriteString("\n")

	if rec.Error != nil {
		b.WriteString(FormatWarning(*rec.Error))
		b.WriteString("\n")
		return b.String()
	}

	if rec.Recommendation != nil && *rec.Recommendation != "" {
		b.WriteString(RenderBox("Stylist says", *rec.Recommendation))
		b.WriteString("\n\n")
	}

	if len(rec.ColorPalette) > 0 {
		b.WriteString(RenderPalette(rec.ColorPalette))
		b.WriteString("\n\n")
	}

	if len(rec.Products) == 0 {
		b.WriteString(SubtleStyle.Render("No products selected."))
		b.WriteString("\n")
		return b.String()
	}

	for i, p := range rec.Products {
		b.WriteString(renderProduct(i+1, p))
		b.WriteString("\n")
	}
	return b.String()
}

// RenderPalette renders palette entries as a row of chips.
func RenderPalette(colors []string) string {
	chips := make([]string, 0, len(colors))
	for _, c := range colors {
		chips = append(chips, SwatchStyle.Render(c))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		BoldStyle.Render(PaletteIcon+" Palette"),
		lipgloss.JoinHorizontal(lipgloss.Top, chips...),
	)
}

func renderProduct(n int, p model.ScoredCandidate) string {
	line := fmt.Sprintf("%d. %s  %s", n, BoldStyle.Render(p.Title), AccentStyle.Render(fmt.Sprintf("$%.2f", p.Price)))
	if p.HasScore() {
		line += "  " + SubtleStyle.Render(fmt.Sprintf("match %d%%", p.ScorePercent()))
	}
	if len(p.Tags) > 0 {
		line += "\n   " + SubtleStyle.Render(TagIcon+" "+strings.Join(p.Tags, ", "))
	}
	return line
}

// RenderHistory formats stored recommendations, newest first.
func RenderHistory(records []model.RecommendationRecord) string {
	if len(records) == 0 {
		return FormatInfo("No recommendations recorded yet.") + "\n"
	}

	var b strings.Builder
	for _, r := range records {
		header := fmt.Sprintf("%s  %s  %s",
			SubtleStyle.Render(r.CreatedAt.Local().Format("2006-01-02 15:04")),
			BoldStyle.Render(r.Preferences.BudgetTier.Label()),
			DescribePreferences(r.Preferences),
		)
		b.WriteString(header)
		b.WriteString("\n")
		if r.Advice != "" {
			b.WriteString("   " + r.Advice + "\n")
		}
		if len(r.ProductIDs) > 0 {
			b.WriteString("   " + SubtleStyle.Render("products: "+strings.Join(r.ProductIDs, ", ")) + "\n")
		}
	}
	return b.String()
}

// DescribePreferences joins the free-text preferences with slashes.
func DescribePreferences(p model.Preferences) string {
	var parts []string
	for _, v := range []string{p.Style, p.Occasion, p.Weather, p.Size} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, " / ")
}
