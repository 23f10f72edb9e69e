package engine

import (
	"sort"
	"strings"

	"github.com/Veraticus/stylist/internal/model"
)

// MaxRecommendations is the largest number of products returned for a request.
const MaxRecommendations = 5

// FallbackCount is how many products the semantic and keyword tiers contribute.
const FallbackCount = 3

// Tier identifies which selection strategy produced the final products.
type Tier string

// Selection tiers, in precedence order.
const (
	TierExact     Tier = "exact"
	TierSubstring Tier = "substring"
	TierSemantic  Tier = "semantic"
	TierKeyword   Tier = "keyword"
	TierNone      Tier = "none"
)

// Selector resolves the generator's picks against ranked candidates.
type Selector struct {
	maxResults int
}

// NewSelector creates a Selector returning at most maxResults products.
// Values outside 1..MaxRecommendations fall back to MaxRecommendations.
func NewSelector(maxResults int) Selector {
	if maxResults <= 0 || maxResults > MaxRecommendations {
		maxResults = MaxRecommendations
	}
	return Selector{maxResults: maxResults}
}

// Select returns the products for pick. The first tier that yields a match
// wins: exact title, substring title, top scored candidates, then tag overlap
// with the shopper's keywords. The result has unique ids, never exceeds the
// cap and is empty only when there are no candidates.
func (s Selector) Select(pick model.AiPick, ranked model.ScoredCandidates, prefs model.Preferences) (model.ScoredCandidates, Tier) {
	if s.maxResults == 0 {
		s = NewSelector(0)
	}
	if len(ranked) == 0 {
		return model.ScoredCandidates{}, TierNone
	}

	titles := normalizedTitles(pick.Titles)

	if matches := exactMatches(titles, ranked); len(matches) > 0 {
		return s.finalize(matches), TierExact
	}

	if len(titles) > 0 {
		if matches := substringMatches(titles, ranked); len(matches) > 0 {
			return s.finalize(matches), TierSubstring
		}
	}

	fallback := min(FallbackCount, s.maxResults)

	if ranked.AnyScored() {
		return s.finalize(ranked.TopN(fallback)), TierSemantic
	}

	return s.finalize(keywordMatches(prefs.Keywords(), ranked).TopN(fallback)), TierKeyword
}

// finalize removes repeated ids, keeping the first, and applies the cap.
func (s Selector) finalize(candidates model.ScoredCandidates) model.ScoredCandidates {
	out := make(model.ScoredCandidates, 0, min(len(candidates), s.maxResults))
	seen := make(map[string]struct{}, len(candidates))
	for _, c := range candidates {
		if len(out) == s.maxResults {
			break
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizedTitles(titles []string) []string {
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if t = normalize(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func exactMatches(titles []string, ranked model.ScoredCandidates) model.ScoredCandidates {
	var matches model.ScoredCandidates
	for _, title := range titles {
		for _, c := range ranked {
			if normalize(c.Title) == title {
				matches = append(matches, c)
				break
			}
		}
	}
	return matches
}

func substringMatches(titles []string, ranked model.ScoredCandidates) model.ScoredCandidates {
	var matches model.ScoredCandidates
	for _, title := range titles {
		for _, c := range ranked {
			candidate := normalize(c.Title)
			if candidate == "" {
				continue
			}
			if strings.Contains(candidate, title) || strings.Contains(title, candidate) {
				matches = append(matches, c)
			}
		}
	}
	return matches
}

// keywordMatches orders candidates by how many keywords appear in their tags,
// cheapest first among equals.
func keywordMatches(keywords []string, ranked model.ScoredCandidates) model.ScoredCandidates {
	type scored struct {
		candidate model.ScoredCandidate
		hits      int
	}

	entries := make([]scored, len(ranked))
	for i, c := range ranked {
		entries[i] = scored{candidate: c, hits: tagHits(keywords, c.Tags)}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].hits != entries[j].hits {
			return entries[i].hits > entries[j].hits
		}
		return entries[i].candidate.Price < entries[j].candidate.Price
	})

	out := make(model.ScoredCandidates, len(entries))
	for i, e := range entries {
		out[i] = e.candidate
	}
	return out
}

func tagHits(keywords, tags []string) int {
	hits := 0
	for _, kw := range keywords {
		for _, tag := range tags {
			if strings.Contains(strings.ToLower(tag), kw) {
				hits++
				break
			}
		}
	}
	return hits
}
