/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package laj

import (
	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/verifier"
)

// CitationCheck records the programmatic verification outcome for one
// citation. These results are computed before any model call and shown
// to the model, so the prompt can demand they be reflected in the
// grounding metrics.
type CitationCheck struct {
	ChunkID string          `json:"id"`
	Quote   string          `json:"quote"`
	Result  verifier.Result `json:"result"`
}

// runChecks verifies every citation of the judgment against the
// restricted evidence view.
func runChecks(j *dimension.Judgment, view *evidence.View) []CitationCheck {
	checks := make([]CitationCheck, 0, len(j.Citations))
	for _, c := range j.Citations {
		checks = append(checks, CitationCheck{
			ChunkID: c.ChunkID,
			Quote:   c.Quote,
			Result:  verifier.Verify(c.ChunkID, c.Quote, view),
		})
	}
	return checks
}

// anyUngrounded reports whether any citation failed verification.
func anyUngrounded(checks []CitationCheck) bool {
	for _, c := range checks {
		if !c.Result.Grounded() {
			return true
		}
	}
	return false
}

// allExact reports whether every citation matched verbatim. False when
// there are no citations.
func allExact(checks []CitationCheck) bool {
	if len(checks) == 0 {
		return false
	}
	for _, c := range checks {
		if c.Result != verifier.ExactMatch {
			return false
		}
	}
	return true
}
