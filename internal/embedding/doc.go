// Package embedding turns catalog items into comparable text, embeds that text
// through a provider and scores candidates by cosine similarity. Provider
// failures are soft: callers get "no vector" rather than an error, so semantic
// ranking can degrade without breaking a recommendation.
package embedding
