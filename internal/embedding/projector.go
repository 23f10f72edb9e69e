package embedding

import (
	"html"
	"regexp"
	"strings"

	"github.com/Veraticus/stylist/internal/model"
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// Project builds the text that represents item for semantic comparison:
// title, cleaned description, tags, category, vendor and options, in that order.
func Project(item model.CatalogItem) string {
	parts := make([]string, 0, 5+len(item.Options))

	parts = appendPart(parts, item.Title)
	parts = appendPart(parts, CleanDescription(item.Description))
	parts = appendPart(parts, strings.Join(item.Tags, " "))
	parts = appendPart(parts, item.Category)
	parts = appendPart(parts, item.Vendor)

	for _, opt := range item.Options {
		name := strings.TrimSpace(opt.Name)
		values := make([]string, 0, len(opt.Values))
		for _, v := range opt.Values {
			if v = strings.TrimSpace(v); v != "" {
				values = append(values, v)
			}
		}
		if name == "" || len(values) == 0 {
			continue
		}
		parts = append(parts, name+": "+strings.Join(values, ", "))
	}

	return strings.Join(parts, " ")
}

// CleanDescription strips HTML markup, decodes entities and collapses whitespace.
func CleanDescription(s string) string {
	s = markupPattern.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return collapseWhitespace(s)
}

func appendPart(parts []string, s string) []string {
	if s = collapseWhitespace(s); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
