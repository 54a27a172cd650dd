package usecase

import "strings"

// ResolveKey returns a product's identity. An explicit non-empty feed
// key wins verbatim; otherwise the key is derived from the display
// fields so catalogs without explicit keys still join with snapshots.
func ResolveKey(explicit, name, packagingFormat string) string {
	if explicit != "" {
		return explicit
	}
	return DerivedKey(name, packagingFormat)
}

// DerivedKey builds the fallback identity lower(trim(name)+"__"+trim(pf)).
// It must stay in sync with whatever the scraper derives, which uses the
// same formula.
func DerivedKey(name, packagingFormat string) string {
	return strings.ToLower(strings.TrimSpace(name) + "__" + strings.TrimSpace(packagingFormat))
}

// NormalizeKey prepares a key for comparison. All lookups and group
// keys go through here; feed keys vary in case and whitespace.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
