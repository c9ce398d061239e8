// Collabscout - Creator Collaboration Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/collabscout

package recommend

import (
	"strings"
	"unicode"

	"github.com/tomtom215/collabscout/internal/graph"
)

// isTokenRune reports whether r belongs to a token. Hashtags (#art) and
// channel paths (/music) stay whole; everything else separates tokens.
func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '#' || r == '/'
}

// Tokenize returns the case-folded token set of text.
func Tokenize(text string) Set[string] {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isTokenRune(r)
	})
	return NewSet(fields...)
}

// TopicTokens returns the token set of the concatenated text of posts.
func TopicTokens(posts []graph.Post) Set[string] {
	tokens := make(Set[string])
	for i := range posts {
		for tok := range Tokenize(posts[i].Text) {
			tokens[tok] = struct{}{}
		}
	}
	return tokens
}
