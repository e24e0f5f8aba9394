package model

import (
	"sort"
	"strings"
)

// ResolutionStatus is the outcome of resolving a part against the sources.
type ResolutionStatus string

// Resolution outcomes.
const (
	StatusFound    ResolutionStatus = "FOUND"
	StatusNotFound ResolutionStatus = "NOT_FOUND"
)

// Export sentinels for rows that were never resolved.
const (
	MakesNotFound     = "NOT_FOUND"
	MakesNotProcessed = "NOT_PROCESSED"
	MakesNotATool     = "N/A (Tool)"
	MakesUnknownItem  = "UNKNOWN_CATEGORY"
	SourceNone        = "NONE"
)

// ResolutionResult is the outcome of resolving one automotive line item.
type ResolutionResult struct {
	Status ResolutionStatus `json:"status"`
	Source string           `json:"source"`
	Makes  []string         `json:"makes,omitempty"`
}

// NewFoundResult builds a Found result with makes deduplicated and sorted.
func NewFoundResult(source string, makes []string) *ResolutionResult {
	seen := make(map[string]bool, len(makes))
	unique := make([]string, 0, len(makes))
	for _, m := range makes {
		m = strings.TrimSpace(m)
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		unique = append(unique, m)
	}
	sort.Strings(unique)

	return &ResolutionResult{
		Status: StatusFound,
		Source: source,
		Makes:  unique,
	}
}

// NewNotFoundResult builds the NotFound sentinel result.
func NewNotFoundResult() *ResolutionResult {
	return &ResolutionResult{
		Status: StatusNotFound,
		Source: SourceNone,
	}
}

// MakesString renders the make list for export and event payloads.
func (r *ResolutionResult) MakesString() string {
	if r == nil || r.Status != StatusFound {
		return MakesNotFound
	}
	return strings.Join(r.Makes, ", ")
}
