// Package normalize prepares incoming request fields before validation and
// uniqueness checks. It never validates and never touches storage.
package normalize

import "strings"

// Key cleans a value used as a lookup key: trimmed, inner whitespace
// collapsed to single spaces, lower-cased.
func Key(in string) string {
	return strings.ToLower(Text(in))
}

// Text cleans free-form text: trimmed and whitespace-collapsed, case kept.
func Text(in string) string {
	return strings.Join(strings.Fields(in), " ")
}

// TextPtr applies Text to an optional field, mapping empty results to nil.
func TextPtr(in *string) *string {
	if in == nil {
		return nil
	}
	cleaned := Text(*in)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
