/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dimension

import (
	"context"
	"fmt"
	"strings"

	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/reasoner"
	"chainguard.dev/rubricaf/rubric"
	"github.com/chainguard-dev/clog"
)

// Agent evaluates one rubric dimension against an evidence pack.
type Agent struct {
	descriptor rubric.Descriptor
	engine     reasoner.Interface[*Request, *Draft]
}

// New creates an agent for the given rubric dimension. The engine is the
// opaque reasoning collaborator; the agent owns only the output contract.
func New(descriptor rubric.Descriptor, engine reasoner.Interface[*Request, *Draft]) (*Agent, error) {
	if err := descriptor.Validate(); err != nil {
		return nil, fmt.Errorf("invalid descriptor: %w", err)
	}
	if engine == nil {
		return nil, fmt.Errorf("dimension %s: engine cannot be nil", descriptor.ID)
	}
	return &Agent{descriptor: descriptor, engine: engine}, nil
}

// DimensionID returns the dimension this agent evaluates.
func (a *Agent) DimensionID() rubric.DimensionID {
	return a.descriptor.ID
}

// Descriptor returns a copy of the agent's rubric configuration.
func (a *Agent) Descriptor() rubric.Descriptor {
	return a.descriptor
}

// Run produces exactly one judgment for the pack. An empty pack is not an
// error: absence of evidence is itself a signal under the rubric, so the
// agent returns rating LITTLE with uncertainty set, without consulting
// the reasoning collaborator.
func (a *Agent) Run(ctx context.Context, pack *evidence.Pack) (*Judgment, error) {
	log := clog.FromContext(ctx).With("dimension", a.descriptor.ID)

	if pack == nil || pack.Len() == 0 {
		log.Warn("Empty evidence pack, returning LITTLE with uncertainty")
		return &Judgment{
			DimensionID: a.descriptor.ID,
			Rating:      rubric.RatingLittle,
			Rationale:   "No evidence was available for this report; the dimension cannot be assessed.",
			Uncertainty: true,
		}, nil
	}

	draft, err := a.engine.Produce(ctx, &Request{
		Descriptor: a.descriptor,
		Chunks:     pack.Chunks(),
	})
	if err != nil {
		return nil, fmt.Errorf("dimension %s: %w", a.descriptor.ID, err)
	}

	judgment, err := a.validate(draft, pack)
	if err != nil {
		return nil, err
	}

	a.applyGuards(ctx, judgment)

	log.With("rating", judgment.Rating).
		With("citations", len(judgment.Citations)).
		With("uncertainty", judgment.Uncertainty).
		Info("Dimension judgment complete")
	return judgment, nil
}

// validate coerces a draft into a well-formed Judgment or fails with a
// contract error. Cited ids are normalized to bare chunk ids so that
// downstream lookups and the restricted meta-judge view stay consistent.
func (a *Agent) validate(draft *Draft, pack *evidence.Pack) (*Judgment, error) {
	if draft == nil {
		return nil, &ContractViolationError{DimensionID: a.descriptor.ID, Reason: "empty draft"}
	}

	rating := rubric.Rating(strings.ToUpper(strings.TrimSpace(draft.Rating)))
	if !rating.Valid() {
		return nil, &ContractViolationError{
			DimensionID: a.descriptor.ID,
			Reason:      fmt.Sprintf("unknown rating %q", draft.Rating),
		}
	}

	if len(draft.Evidence) > MaxCitations {
		return nil, &ContractViolationError{
			DimensionID: a.descriptor.ID,
			Reason:      fmt.Sprintf("%d citations exceeds the maximum of %d", len(draft.Evidence), MaxCitations),
		}
	}
	if len(draft.Evidence) == 0 && !draft.Uncertainty {
		return nil, &ContractViolationError{
			DimensionID: a.descriptor.ID,
			Reason:      "no citations without the uncertainty flag",
		}
	}

	citations := make([]Citation, 0, len(draft.Evidence))
	for _, c := range draft.Evidence {
		if !c.Type.Valid() {
			return nil, &ContractViolationError{
				DimensionID: a.descriptor.ID,
				Reason:      fmt.Sprintf("unknown evidence type %q", c.Type),
			}
		}
		if c.Words() > MaxQuoteWords {
			return nil, &ContractViolationError{
				DimensionID: a.descriptor.ID,
				Reason:      fmt.Sprintf("quote of %d words exceeds the maximum of %d", c.Words(), MaxQuoteWords),
			}
		}

		id := evidence.ExtractID(c.ChunkID)
		if _, ok := pack.Lookup(id); !ok {
			return nil, &UnresolvedCitationError{DimensionID: a.descriptor.ID, ChunkID: c.ChunkID}
		}
		citations = append(citations, Citation{
			ChunkID: id,
			Quote:   strings.TrimSpace(c.Quote),
			Type:    c.Type,
		})
	}

	return &Judgment{
		DimensionID: a.descriptor.ID,
		Rating:      rating,
		Rationale:   strings.TrimSpace(draft.Rationale),
		Citations:   citations,
		Uncertainty: draft.Uncertainty,
		Caveat:      strings.TrimSpace(draft.Caveat),
	}, nil
}

// applyGuards runs the lexical sanity checks over a validated judgment.
// Guards never change the rating or the evidence labels; they only
// escalate uncertainty so borderline outputs stay visible downstream.
func (a *Agent) applyGuards(ctx context.Context, j *Judgment) {
	log := clog.FromContext(ctx).With("dimension", a.descriptor.ID)

	if len(j.Citations) == 0 {
		// A rating without quoted support is not auditable.
		j.Uncertainty = true
		return
	}

	// A "negative" quote that carries neither a cue phrase nor a subject
	// reference is likely a mislabelled systems or uncertainty statement.
	cues := a.descriptor.Polarity.NegativeCues
	subjects := a.descriptor.Polarity.SubjectTokens
	if len(cues) > 0 || len(subjects) > 0 {
		for _, c := range j.Citations {
			if c.Type != Negative {
				continue
			}
			q := strings.ToLower(c.Quote)
			if !containsAny(q, cues) && !containsWord(q, subjects) {
				log.With("chunk", c.ChunkID).
					Warn("Negative citation lacks cue and subject tokens, escalating uncertainty")
				j.Uncertainty = true
			}
		}
	}

	var hasPositive, hasNegative bool
	for _, c := range j.Citations {
		switch c.Type {
		case Positive:
			hasPositive = true
		case Negative:
			hasNegative = true
		}
	}

	if j.Rating == rubric.RatingGood && !hasPositive {
		j.Uncertainty = true
	}
	if j.Rating == rubric.RatingLittle && !hasNegative {
		j.Uncertainty = true
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// containsWord matches tokens on word boundaries so that short subject
// tokens like "we" or "he" do not fire inside unrelated words.
func containsWord(s string, tokens []string) bool {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	for _, w := range words {
		for _, tok := range tokens {
			if w == tok {
				return true
			}
		}
	}
	return false
}
