package main

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizePlaceName standardizes user-typed place names before they travel
// upstream: surrounding whitespace is trimmed, diacritical marks are folded
// away ("São Paulo" becomes "Sao Paulo") and the result is lowercased. A
// whitespace-only input normalizes to the empty string, which the
// orchestrator treats as invalid.
func normalizePlaceName(s string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", nil
	}
	if !utf8.ValidString(trimmed) {
		return "", fmt.Errorf("input string is not valid UTF-8")
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, trimmed)
	if err != nil {
		return "", err
	}
	return strings.ToLower(result), nil
}
