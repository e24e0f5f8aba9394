// Package model defines the core domain types for the enrichment engine.
package model

// Category is the classification assigned to a line item.
type Category string

// Categories assigned by the classifier.
const (
	CategoryAutomotive Category = "Automotive"
	CategoryTool       Category = "Tool"
	CategoryUnknown    Category = "Unknown"
)

// LineItem is one row of the input file. It is immutable once loaded and
// identified by its 0-based position in the original file.
type LineItem struct {
	ItemNumber  string  `json:"item_num"`
	Description string  `json:"description"`
	Index       int     `json:"index"`
	Quantity    int     `json:"qty"`
	UnitRetail  float64 `json:"unit_retail"`
	ExtRetail   float64 `json:"ext_retail"`
}

// EnrichedRow is a LineItem plus everything the engine learned about it.
// This is the unit emitted to observers and written to the export artifact.
type EnrichedRow struct {
	Item       LineItem          `json:"item"`
	Category   Category          `json:"category"`
	LookupKey  string            `json:"lookup_key,omitempty"`
	Resolution *ResolutionResult `json:"resolution,omitempty"`
}

// Resolved reports whether a lookup was attempted and produced makes.
func (r EnrichedRow) Resolved() bool {
	return r.Resolution != nil && r.Resolution.Status == StatusFound
}
