/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dimension

import (
	"fmt"
	"strings"

	"chainguard.dev/rubricaf/rubric"
)

const (
	// MaxCitations bounds the number of citations per judgment.
	MaxCitations = 3
	// MaxQuoteWords bounds the length of each cited quote.
	MaxQuoteWords = 25
)

// EvidenceType labels the polarity of a citation.
type EvidenceType string

const (
	// Positive evidence supports a higher rating for the dimension.
	Positive EvidenceType = "positive"
	// Negative evidence counts against the dimension.
	Negative EvidenceType = "negative"
)

// Valid reports whether t is a recognized evidence type.
func (t EvidenceType) Valid() bool {
	return t == Positive || t == Negative
}

// Citation links one rationale statement to a quoted passage of evidence.
type Citation struct {
	// ChunkID is the id of the cited chunk.
	ChunkID string `json:"id"`

	// Quote is a verbatim excerpt from the cited chunk, at most
	// MaxQuoteWords words.
	Quote string `json:"quote"`

	// Type labels whether the quote supports or undermines the dimension.
	Type EvidenceType `json:"evidence_type"`
}

// Words returns the number of whitespace-separated words in the quote.
func (c Citation) Words() int {
	return len(strings.Fields(c.Quote))
}

// Judgment is the validated output of one dimension agent run.
type Judgment struct {
	// DimensionID identifies the rubric dimension this judgment covers.
	DimensionID rubric.DimensionID `json:"dimension_id"`

	// Rating is the evidence level found for the dimension.
	Rating rubric.Rating `json:"rating"`

	// Rationale explains the rating in terms of the cited evidence.
	Rationale string `json:"rationale"`

	// Citations ground the rationale in the evidence pack. Empty only
	// when Uncertainty is set.
	Citations []Citation `json:"evidence"`

	// Uncertainty is set when the evidence was sparse, contradictory or
	// ambiguous, or when a guard found the draft internally inconsistent.
	Uncertainty bool `json:"uncertainty"`

	// Caveat carries an optional free-text qualification of the rating.
	Caveat string `json:"caveat,omitempty"`
}

// CitedIDs returns the chunk ids cited by the judgment, in citation order.
func (j *Judgment) CitedIDs() []string {
	ids := make([]string, 0, len(j.Citations))
	for _, c := range j.Citations {
		ids = append(ids, c.ChunkID)
	}
	return ids
}

// Draft is the raw judgment shape produced by the reasoning collaborator,
// before contract validation.
type Draft struct {
	Rating      string     `json:"rating" jsonschema:"description=One of GOOD SOME LITTLE,required"`
	Rationale   string     `json:"rationale" jsonschema:"description=Explanation of the rating grounded in the cited evidence,required"`
	Evidence    []Citation `json:"evidence" jsonschema:"description=Cited quotes supporting the rating"`
	Uncertainty bool       `json:"uncertainty" jsonschema:"description=True when evidence is sparse or ambiguous"`
	Caveat      string     `json:"caveat,omitempty" jsonschema:"description=Optional qualification of the rating"`
}

// UnresolvedCitationError reports a citation whose chunk id does not
// resolve in the evidence pack. This is a programming contract violation
// by the reasoning collaborator, not a judgement outcome.
type UnresolvedCitationError struct {
	DimensionID rubric.DimensionID
	ChunkID     string
}

func (e *UnresolvedCitationError) Error() string {
	return fmt.Sprintf("dimension %s cited unknown chunk %q", e.DimensionID, e.ChunkID)
}

// ContractViolationError reports a draft judgment that breaks the output
// contract in a way other than an unresolvable citation.
type ContractViolationError struct {
	DimensionID rubric.DimensionID
	Reason      string
}

func (e *ContractViolationError) Error() string {
	return fmt.Sprintf("dimension %s violated output contract: %s", e.DimensionID, e.Reason)
}
