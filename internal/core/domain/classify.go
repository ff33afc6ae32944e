package domain

import "strings"

// categoryKeywords maps each category to the keyword list that triggers
// it. Matching is plain substring search over the lower-cased input, so
// short keywords can over-match inside longer words ("art" in "startup").
// That imprecision is accepted; the classifier is a cheap heuristic, not
// a model.
var categoryKeywords = map[string][]string{
	"psychology":    {"psychology", "mental health", "mindfulness", "therapy", "cognitive"},
	"founder_story": {"founder", "startup", "entrepreneur", "business", "company"},
	"lifestyle":     {"lifestyle", "wellness", "fitness", "health", "travel"},
	"tech":          {"technology", "ai", "software", "coding", "developer"},
	"product":       {"product", "design", "ux", "interface", "features"},
	"finance":       {"finance", "investing", "money", "crypto", "stocks"},
	"education":     {"learning", "education", "tutorial", "course", "teaching"},
	"entertainment": {"entertainment", "movie", "music", "gaming", "art"},
}

// CategoryGeneral is emitted when no keyword list matches.
const CategoryGeneral = "general"

// Classify assigns category tags to a text. A category is emitted when
// any of its keywords occurs as a substring of the lower-cased input.
// Texts matching nothing get the single category "general". The result
// order is deterministic (sorted by category name).
func Classify(text string) []string {
	lower := strings.ToLower(text)

	var matched []string
	for _, category := range categoryNames {
		for _, kw := range categoryKeywords[category] {
			if strings.Contains(lower, kw) {
				matched = append(matched, category)
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{CategoryGeneral}
	}
	return matched
}

// categoryNames is the sorted iteration order for Classify.
var categoryNames = []string{
	"education",
	"entertainment",
	"finance",
	"founder_story",
	"lifestyle",
	"product",
	"psychology",
	"tech",
}
