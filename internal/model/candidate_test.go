package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoredCandidates(t *testing.T) {
	items := []CatalogItem{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	unscored := Unscored(items)
	assert.False(t, unscored.AnyScored())
	assert.Equal(t, []string{"a", "b", "c"}, unscored.IDs())
	assert.Equal(t, 0, unscored[0].ScorePercent())

	scored := ScoredCandidates{NewScoredCandidate(items[0], 0.876), unscored[1]}
	assert.True(t, scored.AnyScored())
	assert.Equal(t, 88, scored[0].ScorePercent())

	assert.Equal(t, []string{"a", "b"}, unscored.TopN(2).IDs())
	assert.Len(t, unscored.TopN(10), 3)
	assert.Empty(t, unscored.TopN(0))
}
