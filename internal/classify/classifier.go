// Package classify assigns categories to line items and derives lookup keys
// from raw item identifiers. Both operations are pure functions.
package classify

import (
	"strings"

	"github.com/partscout/partscout/internal/model"
)

// KeySeparator splits a raw item identifier into a lot prefix and the part
// number used as the lookup key.
const KeySeparator = "_"

// Classify assigns exactly one category to an item. Exclusion keywords win
// over everything, then automotive terms, then tools; anything unmatched is
// Unknown. Deterministic: the same item always yields the same category.
func Classify(item model.LineItem) model.Category {
	desc := strings.ToLower(item.Description)

	if matchesAny(desc, exclusionKeywords) {
		return model.CategoryUnknown
	}
	if matchesAny(desc, automotiveKeywords) {
		return model.CategoryAutomotive
	}
	if matchesAny(desc, toolKeywords) {
		return model.CategoryTool
	}
	return model.CategoryUnknown
}

// ExtractKey returns the part number used to query external sources: the
// substring after the first separator, or the whole identifier when no
// separator is present.
func ExtractKey(identifier string) string {
	if idx := strings.Index(identifier, KeySeparator); idx != -1 {
		return identifier[idx+1:]
	}
	return identifier
}

func matchesAny(desc string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(desc, kw) {
			return true
		}
	}
	return false
}
