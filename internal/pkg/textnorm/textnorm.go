// Package textnorm converts extracted page text into the canonical form that
// is stored and matched against.
package textnorm

import (
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dropNUL = runes.Remove(runes.Predicate(func(r rune) bool { return r == 0 }))

// Normalize forces raw into valid, NFC-composed UTF-8. Invalid byte sequences
// become U+FFFD and NUL runes are dropped. It never fails.
func Normalize(raw []byte) string {
	return NormalizeString(string(raw))
}

// NormalizeString is Normalize for text already held as a string.
func NormalizeString(s string) string {
	if s == "" {
		return ""
	}
	// NUL goes before NFC so a NUL between a letter and its combining mark
	// cannot block composition.
	t := transform.Chain(unicode.UTF8.NewDecoder(), dropNUL, norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		// unreachable for well-behaved transformers; keep the guarantee anyway
		return norm.NFC.String(strings.ReplaceAll(strings.ToValidUTF8(s, "\uFFFD"), "\x00", ""))
	}
	return out
}
