/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package rubric defines the per-dimension evaluation configuration.
//
// Each Descriptor is pure data: the judgement question an agent must answer,
// the criteria for its three rating levels, the polarity rules for labeling
// evidence, and the scope lists the meta-judge checks fidelity against.
// New dimensions are added by configuration, never by changing agent or
// orchestration code.
package rubric

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DimensionID identifies one rubric axis, e.g. "D1".
type DimensionID string

// Rating is one of the three enumerated evidence levels. There are no
// free-form scores.
type Rating string

const (
	// RatingGood indicates strong evidence for the dimension.
	RatingGood Rating = "GOOD"
	// RatingSome indicates partial or mixed evidence.
	RatingSome Rating = "SOME"
	// RatingLittle indicates little or no evidence.
	RatingLittle Rating = "LITTLE"
)

// Ratings lists the valid rating levels in descending order of evidence.
func Ratings() []Rating {
	return []Rating{RatingGood, RatingSome, RatingLittle}
}

// Valid reports whether r is one of the enumerated levels.
func (r Rating) Valid() bool {
	switch r {
	case RatingGood, RatingSome, RatingLittle:
		return true
	}
	return false
}

// PolarityRules describe what counts as positive and negative evidence for
// a dimension, plus optional lexical cue lists used by post-hoc agent
// guards (e.g. blame cues for a blame-language dimension).
type PolarityRules struct {
	// Positive describes evidence that supports the dimension.
	Positive string `yaml:"positive" json:"positive"`
	// Negative describes evidence that counts against the dimension.
	Negative string `yaml:"negative" json:"negative"`
	// NegativeCues are lexical markers expected inside genuinely negative
	// quotes. When set, a negative-labeled quote containing neither a cue
	// nor a subject token escalates the judgment's uncertainty.
	NegativeCues []string `yaml:"negative_cues,omitempty" json:"negative_cues,omitempty"`
	// SubjectTokens are words referring to the people or teams a negative
	// quote must implicate for the cue guard to accept it.
	SubjectTokens []string `yaml:"subject_tokens,omitempty" json:"subject_tokens,omitempty"`
}

// Descriptor is the static configuration for one dimension. Immutable once
// loaded; agents and the meta-judge only ever read it.
type Descriptor struct {
	ID                DimensionID       `yaml:"id" json:"id"`
	Name              string            `yaml:"name" json:"name"`
	JudgementQuestion string            `yaml:"judgement_question" json:"judgement_question"`
	RatingCriteria    map[Rating]string `yaml:"rating_criteria" json:"rating_criteria"`
	Polarity          PolarityRules     `yaml:"polarity" json:"polarity"`
	InScope           []string          `yaml:"in_scope,omitempty" json:"in_scope,omitempty"`
	OutOfScope        []string          `yaml:"out_of_scope,omitempty" json:"out_of_scope,omitempty"`
}

// Validate checks the descriptor is complete enough to drive an agent.
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("descriptor missing id")
	}
	if d.Name == "" {
		return fmt.Errorf("descriptor %s: missing name", d.ID)
	}
	if d.JudgementQuestion == "" {
		return fmt.Errorf("descriptor %s: missing judgement question", d.ID)
	}
	for _, r := range Ratings() {
		if d.RatingCriteria[r] == "" {
			return fmt.Errorf("descriptor %s: missing criteria for rating %s", d.ID, r)
		}
	}
	return nil
}

// Load decodes a YAML descriptor list and validates every entry, including
// id uniqueness across the set.
func Load(r io.Reader) ([]*Descriptor, error) {
	var descs []*Descriptor
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&descs); err != nil {
		return nil, fmt.Errorf("decoding rubric config: %w", err)
	}

	seen := make(map[DimensionID]struct{}, len(descs))
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[d.ID]; dup {
			return nil, fmt.Errorf("duplicate dimension id %s", d.ID)
		}
		seen[d.ID] = struct{}{}
	}
	return descs, nil
}

// LoadFile reads rubric configuration from a YAML file.
func LoadFile(path string) ([]*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rubric config: %w", err)
	}
	defer f.Close()
	return Load(f)
}
