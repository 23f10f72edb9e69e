package llm

import (
	"regexp"
	"strings"

	"github.com/goccy/go-json"

	"github.com/Veraticus/stylist/internal/model"
)

// pickPayload is the JSON shape the generator is asked to return.
type pickPayload struct {
	RecommendationText string   `json:"recommendation_text"`
	ColorPalette       []string `json:"color_palette"`
	RecommendedTitles  []string `json:"recommended_titles"`
}

var fencePattern = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")

// ParsePick reads the generator's answer. Stages are tried in order: the whole
// text as JSON after removing code fences, then the first JSON object embedded
// in prose, then the raw text as narrative. It always returns a usable pick.
func ParsePick(raw string) model.AiPick {
	if pick, ok := parseStructured(raw); ok {
		return pick
	}
	if pick, ok := parseEmbeddedObject(raw); ok {
		return pick
	}
	return rawTextPick(raw)
}

func parseStructured(raw string) (model.AiPick, bool) {
	pick, ok := decodePick(stripCodeFences(raw))
	pick.Source = model.PickStructured
	return pick, ok
}

// parseEmbeddedObject finds the first JSON object in raw that decodes to a
// pick. Decoding stops at the end of that object, so trailing prose (even with
// braces) is ignored; a brace in leading prose moves the search forward.
func parseEmbeddedObject(raw string) (model.AiPick, bool) {
	for i := strings.IndexByte(raw, '{'); i >= 0; {
		var payload pickPayload
		if err := json.NewDecoder(strings.NewReader(raw[i:])).Decode(&payload); err == nil {
			if pick, ok := toPick(payload); ok {
				pick.Source = model.PickPartiallyRecovered
				return pick, true
			}
		}

		next := strings.IndexByte(raw[i+1:], '{')
		if next < 0 {
			break
		}
		i += next + 1
	}
	return model.AiPick{}, false
}

func rawTextPick(raw string) model.AiPick {
	return model.AiPick{
		Source:       model.PickRawText,
		Narrative:    strings.TrimSpace(raw),
		ColorPalette: []string{},
		Titles:       []string{},
	}
}

// stripCodeFences removes markdown fence lines such as ```json and ```.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = fencePattern.ReplaceAllString(s, "")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodePick(text string) (model.AiPick, bool) {
	if !strings.HasPrefix(text, "{") {
		return model.AiPick{}, false
	}

	var payload pickPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return model.AiPick{}, false
	}
	return toPick(payload)
}

// toPick converts a decoded payload. A payload with no usable field is not a pick.
func toPick(payload pickPayload) (model.AiPick, bool) {
	pick := model.AiPick{
		Narrative:    strings.TrimSpace(payload.RecommendationText),
		ColorPalette: compact(payload.ColorPalette),
		Titles:       compact(payload.RecommendedTitles),
	}
	if pick.Narrative == "" && len(pick.ColorPalette) == 0 && len(pick.Titles) == 0 {
		return model.AiPick{}, false
	}
	return pick, true
}

// compact trims entries and drops empty ones, always returning a non-nil slice.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
