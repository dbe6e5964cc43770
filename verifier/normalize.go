/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"regexp"
	"strings"
)

var (
	// word tokens: letters/digits, allowing clinical abbreviations
	tokenRe = regexp.MustCompile(`[a-z0-9]+`)

	// hyphenation at line breaks: "perfor-\nated" -> "perforated"
	hyphenBreakRe = regexp.MustCompile(`(\w)-\s+(\w)`)

	punctRe = regexp.MustCompile(`[[:punct:]]`)
	wsRe    = regexp.MustCompile(`\s+`)

	nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)
)

var typographicFolder = strings.NewReplacer(
	"­", "", // soft hyphen
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
	"–", "-", "—", "-",
)

// canon returns a whitespace- and punctuation-tolerant canonical form:
// typographic characters folded to ASCII, line-wrap hyphenation undone,
// punctuation replaced by spaces, whitespace collapsed, lower-cased.
func canon(s string) string {
	s = strings.TrimSpace(s)
	s = typographicFolder.Replace(s)
	s = hyphenBreakRe.ReplaceAllString(s, "$1$2")
	s = strings.ToLower(s)
	s = punctRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
}

// compact is the most tolerant form: canon with everything but letters
// and digits removed.
func compact(s string) string {
	return nonAlnumRe.ReplaceAllString(canon(s), "")
}

func tokens(s string) []string {
	return tokenRe.FindAllString(canon(s), -1)
}

const (
	// fuzzyMinTokens is the minimum quote length, in tokens, for the
	// sliding-window check. Shorter quotes must match via containment.
	fuzzyMinTokens = 6
	// fuzzyMinRatio is the fraction of quote tokens that must appear
	// in order within a window of the chunk.
	fuzzyMinRatio = 0.80
	// fuzzySlack widens the window beyond the quote length to absorb
	// interleaved noise tokens.
	fuzzySlack = 10
)

// tokenFuzzyMatch reports whether enough of the quote's tokens appear,
// in order, within some window of the block's tokens.
func tokenFuzzyMatch(quote, block string) bool {
	qt := tokens(quote)
	if len(qt) < fuzzyMinTokens {
		return false
	}
	bt := tokens(block)

	win := len(qt) + fuzzySlack
	last := len(bt) - win
	if last < 0 {
		last = 0
	}
	for i := 0; i <= last; i++ {
		end := i + win
		if end > len(bt) {
			end = len(bt)
		}
		j, hits := 0, 0
		for _, tok := range bt[i:end] {
			if j < len(qt) && tok == qt[j] {
				hits++
				j++
			}
			if j == len(qt) {
				break
			}
		}
		if float64(hits)/float64(len(qt)) >= fuzzyMinRatio {
			return true
		}
	}
	return false
}
