package llm

import (
	"fmt"
	"strings"

	"github.com/Veraticus/stylist/internal/model"
)

// PromptCandidateLimit caps how many ranked candidates are shown to the generator.
const PromptCandidateLimit = 20

// BuildPrompt renders the stylist request for prefs over the leading ranked candidates.
func BuildPrompt(prefs model.Preferences, candidates model.ScoredCandidates) string {
	var sb strings.Builder

	sb.WriteString("A client is looking for an outfit. Their stated preferences:\n")
	fmt.Fprintf(&sb, "Budget: %s\n", prefs.BudgetTier.Label())
	writePreference(&sb, "Size", prefs.Size)
	writePreference(&sb, "Style", prefs.Style)
	writePreference(&sb, "Occasion", prefs.Occasion)
	writePreference(&sb, "Weather", prefs.Weather)

	sb.WriteString("\nAvailable products:\n")
	for i, c := range candidates.TopN(PromptCandidateLimit) {
		fmt.Fprintf(&sb, "%d. %s - $%.2f", i+1, c.Title, c.Price)
		if len(c.Tags) > 0 {
			fmt.Fprintf(&sb, " - Tags: %s", strings.Join(c.Tags, ", "))
		}
		if c.HasScore() {
			fmt.Fprintf(&sb, " - Match: %d%%", c.ScorePercent())
		}
		sb.WriteString("\n")
	}

	sb.WriteString(`
Put together an outfit from the products above. Provide:
1. A short styling narrative explaining why the pieces work together for this client.
2. A color palette of 3-4 colors.
3. Between 2 and 5 products that go together, using their EXACT titles from the list.

Respond with a JSON object in exactly this shape:
{"recommendation_text": "...", "color_palette": ["...", "..."], "recommended_titles": ["...", "..."]}`)

	return sb.String()
}

func writePreference(sb *strings.Builder, label, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = "no preference"
	}
	fmt.Fprintf(sb, "%s: %s\n", label, value)
}
