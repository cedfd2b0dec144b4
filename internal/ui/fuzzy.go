package ui

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions caps the label suggestions shown under the name input.
const maxSuggestions = 5

// rankSuggestions orders names by fuzzy match quality against query. Names
// that do not match are dropped; an empty query keeps the original order.
func rankSuggestions(names []string, query string) []string {
	query = strings.TrimSpace(strings.ToLower(query))
	if len(names) == 0 {
		return nil
	}
	if query == "" {
		return capSuggestions(append([]string(nil), names...))
	}
	targets := make([]string, len(names))
	for i, name := range names {
		targets[i] = strings.ToLower(name)
	}
	matches := fuzzy.Find(query, targets)
	ranked := make([]string, 0, len(matches))
	for _, match := range matches {
		if match.Index >= 0 && match.Index < len(names) {
			ranked = append(ranked, names[match.Index])
		}
	}
	return capSuggestions(ranked)
}

func capSuggestions(names []string) []string {
	if len(names) > maxSuggestions {
		return names[:maxSuggestions]
	}
	return names
}
