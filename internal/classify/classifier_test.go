package classify

import (
	"testing"

	"github.com/partscout/partscout/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        model.Category
	}{
		{
			name:        "brake pads are automotive",
			description: "Front Brake Pads Ceramic",
			want:        model.CategoryAutomotive,
		},
		{
			name:        "alternator is automotive",
			description: "ALTERNATOR 12V 160A",
			want:        model.CategoryAutomotive,
		},
		{
			name:        "socket set is a tool",
			description: "40pc Socket Set 1/4in Drive",
			want:        model.CategoryTool,
		},
		{
			name:        "torque wrench is a tool",
			description: "Digital Torque Wrench 1/2\"",
			want:        model.CategoryTool,
		},
		{
			name:        "unmatched description is unknown",
			description: "Mystery box assorted",
			want:        model.CategoryUnknown,
		},
		{
			name:        "empty description is unknown",
			description: "",
			want:        model.CategoryUnknown,
		},
		{
			name:        "classification is case insensitive",
			description: "fuel PUMP assembly",
			want:        model.CategoryAutomotive,
		},
		{
			name:        "exclusion beats automotive keyword",
			description: "Brake Caliper Coffee Mug Novelty",
			want:        model.CategoryUnknown,
		},
		{
			name:        "automotive wins when both match",
			description: "Oil Filter Wrench Cap Type For Filter Removal",
			want:        model.CategoryAutomotive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := model.LineItem{Description: tt.description}
			if got := Classify(item); got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.description, got, tt.want)
			}
		})
	}
}

func TestExtractKey(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
		want       string
	}{
		{
			name:       "strips prefix before first underscore",
			identifier: "AZ_12345-ABC",
			want:       "12345-ABC",
		},
		{
			name:       "only first underscore splits",
			identifier: "WH_BRK_9921",
			want:       "BRK_9921",
		},
		{
			name:       "no underscore returns identifier unchanged",
			identifier: "12345",
			want:       "12345",
		},
		{
			name:       "trailing underscore yields empty key",
			identifier: "AZ_",
			want:       "",
		},
		{
			name:       "empty identifier",
			identifier: "",
			want:       "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractKey(tt.identifier); got != tt.want {
				t.Errorf("ExtractKey(%q) = %q, want %q", tt.identifier, got, tt.want)
			}
		})
	}
}
