package trials

import (
	"strings"
	"unicode"
)

// Normalize cleans a candidate parameter set before merging. It is pure:
// the input is not modified and every value maps to exactly one output.
//   - empty strings become null
//   - location gets country aliasing and per-word title casing
//   - other strings get their first letter capitalized, remainder untouched
//   - non-string values pass through unchanged
//
// Unknown keys are normalized by the same rules; whether they survive the
// merge is Params.Merge's concern, not this function's.
func Normalize(candidate Params) Params {
	out := make(Params, len(candidate))
	for key, value := range candidate {
		s, ok := value.(string)
		if !ok {
			out[key] = value
			continue
		}
		if s == "" {
			out[key] = nil
			continue
		}
		if key == "location" {
			out[key] = NormalizeLocation(s)
			continue
		}
		out[key] = capitalize(s)
	}
	return out
}

// NormalizeLocation applies the location aliasing rules: "us" and
// "united states" collapse to the canonical "United States"; anything else
// is title-cased per word. Empty input stays empty.
func NormalizeLocation(s string) string {
	if s == "" {
		return s
	}
	switch strings.ToLower(s) {
	case "us", "united states":
		return "United States"
	}
	return titleCase(s)
}

// capitalize upper-cases the first letter and leaves the rest of the string
// as-is.
func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// titleCase capitalizes the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}
