package model

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// BudgetTier is the shopper's stated spending bracket.
type BudgetTier string

// Budget tiers. The string values are the canonical keys used in storage and the API.
const (
	BudgetUnderLow  BudgetTier = "under_50"
	BudgetMidRange  BudgetTier = "mid_range"
	BudgetUnbounded BudgetTier = "any"
)

// Price ceilings for the bounded tiers.
const (
	UnderLowCeiling = 50.0
	MidRangeCeiling = 150.0
)

var budgetLabels = map[BudgetTier]string{
	BudgetUnderLow:  "Under 50",
	BudgetMidRange:  "50-150",
	BudgetUnbounded: "Any",
}

// ParseBudgetTier accepts either a canonical key or a display label, case-insensitively.
func ParseBudgetTier(s string) (BudgetTier, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for tier, label := range budgetLabels {
		if needle == string(tier) || needle == strings.ToLower(label) {
			return tier, nil
		}
	}
	switch needle {
	case "under $50", "under50":
		return BudgetUnderLow, nil
	case "$50-$150", "$50 - $150", "50 - 150":
		return BudgetMidRange, nil
	case "unbounded", "no limit":
		return BudgetUnbounded, nil
	}
	return "", fmt.Errorf("unknown budget tier %q", s)
}

// Valid reports whether t is one of the known tiers.
func (t BudgetTier) Valid() bool {
	_, ok := budgetLabels[t]
	return ok
}

// Label returns the human readable name of the tier.
func (t BudgetTier) Label() string {
	if label, ok := budgetLabels[t]; ok {
		return label
	}
	return string(t)
}

// Ceiling returns the price ceiling for the tier. The second value is false
// for the unbounded tier.
func (t BudgetTier) Ceiling() (float64, bool) {
	switch t {
	case BudgetUnderLow:
		return UnderLowCeiling, true
	case BudgetMidRange:
		return MidRangeCeiling, true
	default:
		return 0, false
	}
}

// Preferences are the shopper's stated wishes for one request.
type Preferences struct {
	BudgetTier BudgetTier `json:"budget_tier" validate:"required,budget_tier"`
	Size       string     `json:"size" validate:"max=64"`
	Style      string     `json:"style" validate:"max=128"`
	Occasion   string     `json:"occasion" validate:"max=128"`
	Weather    string     `json:"weather" validate:"max=128"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func preferencesValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		_ = validate.RegisterValidation("budget_tier", func(fl validator.FieldLevel) bool {
			return BudgetTier(fl.Field().String()).Valid()
		})
	})
	return validate
}

// Validate checks that the budget tier is known and free-text fields are bounded.
func (p Preferences) Validate() error {
	if err := preferencesValidator().Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	return nil
}

// Keywords returns the non-empty, lower-cased style, occasion and weather terms.
func (p Preferences) Keywords() []string {
	keywords := make([]string, 0, 3)
	for _, k := range []string{p.Style, p.Occasion, p.Weather} {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}
