// Package snippet finds literal, whitespace-tolerant query matches in page
// text and renders each one with a few words of surrounding context.
package snippet

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"pdfsearch/internal/pkg/textnorm"
)

// ContextWords is the maximum number of words kept on each side of a match.
const ContextWords = 5

// spaceRunes is exactly the set isSpace accepts: ASCII whitespace, VT, NEL
// and every Unicode separator (NBSP, thin space, ...).
const (
	spaceRunes = `\s\v\x{85}\p{Z}`
	spaceClass = `[` + spaceRunes + `]`
	wordClass  = `[^` + spaceRunes + `]`
)

// ErrEmptyQuery is returned by Compile for a query with no words in it.
var ErrEmptyQuery = errors.New("query is empty")

// Pattern is a compiled, case-insensitive matcher for a literal query.
type Pattern struct {
	display string
	core    string
	re      *regexp.Regexp
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || unicode.In(r, unicode.Z)
}

// Compile escapes every word of query and joins the words with a
// one-or-more-whitespace wildcard, so "foo bar" also matches "foo\n  bar".
func Compile(query string) (*Pattern, error) {
	display := strings.TrimFunc(textnorm.NormalizeString(query), isSpace)
	words := strings.FieldsFunc(display, isSpace)
	if len(words) == 0 {
		return nil, ErrEmptyQuery
	}

	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = regexp.QuoteMeta(w)
	}
	core := strings.Join(escaped, spaceClass+`+`)

	window := `(` + wordClass + `*(?:` + spaceClass + wordClass + `*){0,` + strconv.Itoa(ContextWords) + `})`
	re, err := regexp.Compile(`(?i)` + window + core + window)
	if err != nil {
		return nil, err
	}
	return &Pattern{
		display: display,
		core:    core,
		re:      re,
	}, nil
}

// Display is the query as shown inside a snippet: trimmed, with its own
// inner spacing kept.
func (p *Pattern) Display() string {
	return p.display
}

// String returns the escaped, whitespace-tolerant core of the pattern.
func (p *Pattern) String() string {
	return p.core
}
