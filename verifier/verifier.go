/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package verifier

import (
	"strings"

	"chainguard.dev/rubricaf/evidence"
)

// Result classifies the outcome of verifying one citation.
type Result string

const (
	// ExactMatch means the quote appears verbatim in the cited chunk.
	ExactMatch Result = "EXACT_MATCH"
	// FuzzyMatch means the quote appears only after normalization or
	// token-level matching.
	FuzzyMatch Result = "FUZZY_MATCH"
	// NotFound means the cited chunk exists but does not contain the
	// quote. This is the strongest fabrication signal.
	NotFound Result = "NOT_FOUND"
	// ChunkMissing means the cited chunk id does not resolve in the
	// evidence source at all.
	ChunkMissing Result = "CHUNK_MISSING"
)

// Grounded reports whether the result supports the citation.
func (r Result) Grounded() bool {
	return r == ExactMatch || r == FuzzyMatch
}

// Verify checks a single citation against an evidence source. The cited
// id may carry decoration around the chunk id (models sometimes emit
// "chunk p03_c01" or "p03_c01 (page 3)"); the embedded id is extracted
// before lookup. Verification against a restricted View reports
// ChunkMissing for ids outside the view even when the full pack holds
// them, which is exactly the leak we want to catch.
func Verify(citedID, quote string, src evidence.Lookuper) Result {
	chunk, ok := src.Lookup(evidence.ExtractID(citedID))
	if !ok {
		return ChunkMissing
	}
	return Match(quote, chunk.Content)
}

// Match classifies how a quote relates to a block of text, from most to
// least strict: raw containment, canonical containment, compacted
// containment, then the in-order token window check.
func Match(quote, block string) Result {
	q := strings.TrimSpace(quote)
	if q == "" || block == "" {
		return NotFound
	}
	if strings.Contains(block, q) {
		return ExactMatch
	}
	if qc := canon(q); qc != "" && strings.Contains(canon(block), qc) {
		return FuzzyMatch
	}
	if qc := compact(q); qc != "" && strings.Contains(compact(block), qc) {
		return FuzzyMatch
	}
	if tokenFuzzyMatch(q, block) {
		return FuzzyMatch
	}
	return NotFound
}
