// Package ingredient canonicalizes free-text ingredient names so recipes
// can be looked up by ingredient token.
package ingredient

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/franz/recipedb/internal/listlit"
)

var separatorRun = regexp.MustCompile(`[_-]+`)

// Normalize canonicalizes one raw ingredient token. The steps run in a
// fixed order: trim, lowercase, turn each run of '_' or '-' into a single
// space, then collapse each whitespace run into a single space.
//
// Trimming happens first, so a token with a leading or trailing separator
// keeps a leading or trailing space ("-salt" becomes " salt").
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ToLower(s)
	s = separatorRun.ReplaceAllString(s, " ")
	return collapseWhitespace(s)
}

// collapseWhitespace replaces every run of Unicode whitespace with one
// ASCII space
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}

	return b.String()
}

// Tokens parses an ingredients cell and returns its normalized, non-empty
// tokens in source order. Duplicates are kept.
func Tokens(cell string) []string {
	items := listlit.Parse(cell)
	tokens := make([]string, 0, len(items))
	for _, item := range items {
		if n := Normalize(item); n != "" {
			tokens = append(tokens, n)
		}
	}
	return tokens
}
