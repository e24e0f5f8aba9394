package resolve

import "strings"

// knownMakes is the vocabulary of manufacturer names the extractors accept.
// Anything outside this set is treated as noise from the source markup.
var knownMakes = map[string]bool{
	"FORD": true, "CHEVROLET": true, "CHEVY": true, "DODGE": true,
	"TOYOTA": true, "HONDA": true, "NISSAN": true,
	"BMW": true, "MERCEDES": true, "AUDI": true, "VOLKSWAGEN": true,
	"SUBARU": true, "MAZDA": true,
	"HYUNDAI": true, "KIA": true, "JEEP": true, "CHRYSLER": true,
	"BUICK": true, "CADILLAC": true,
	"ACURA": true, "INFINITI": true, "LEXUS": true, "LINCOLN": true,
	"VOLVO": true, "SAAB": true,
	"MITSUBISHI": true, "ISUZU": true, "SUZUKI": true, "PONTIAC": true,
	"OLDSMOBILE": true, "SATURN": true, "MERCURY": true, "PLYMOUTH": true,
	"EAGLE": true, "GEO": true,
}

// genericTerms are words the markup scanners occasionally pick up that are
// never manufacturer names.
var genericTerms = map[string]bool{
	"part": true, "parts": true, "auto": true, "car": true,
	"vehicle": true, "search": true, "catalog": true, "home": true,
}

// isKnownMake reports whether the word is a recognized manufacturer.
func isKnownMake(word string) bool {
	return knownMakes[strings.ToUpper(word)]
}

// normalizeMake converts a raw make token to its display form.
func normalizeMake(make string) string {
	upper := strings.ToUpper(make)
	if upper == "CHEVY" {
		return "Chevrolet"
	}
	if len(upper) <= 3 {
		// Short names like BMW, KIA, GEO stay upper-cased.
		return upper
	}
	return upper[:1] + strings.ToLower(upper[1:])
}

// isValidMake filters out generic catalog terms and single characters.
func isValidMake(make string) bool {
	return len(make) > 1 && !genericTerms[strings.ToLower(make)]
}
