package linkage

import "strings"

// NormalizeText is the matching key of a display string: trimmed, inner
// whitespace collapsed to single spaces, lower-cased.
func NormalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// scopedKey joins a normalized scope and text into one map key.
func scopedKey(scope, text string) string {
	return scope + "\x00" + text
}
