package schema

import "strings"

// UnknownCategory fills empty demographic cells during categorical coercion.
const UnknownCategory = "UNKNOWN"

// NormalizeCategory trims a raw categorical cell and maps empty, "(null)" and
// "U" spellings seen in the feed to UnknownCategory.
func NormalizeCategory(raw string) string {
	v := strings.TrimSpace(raw)
	switch strings.ToUpper(v) {
	case "", "(NULL)", "U", "UNKNOWN":
		return UnknownCategory
	}
	return strings.ToUpper(v)
}

// TitleBorough formats an upper-cased borough name for chart labels,
// e.g. "STATEN ISLAND" to "Staten Island".
func TitleBorough(boro string) string {
	words := strings.Fields(strings.ToLower(boro))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
