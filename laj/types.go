/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package laj

import (
	"chainguard.dev/rubricaf/rubric"
)

// Metric names one axis of the meta-evaluation basket.
type Metric string

const (
	// RubricFidelity asks whether the rationale addresses the dimension's
	// judgement question and declared scope.
	RubricFidelity Metric = "rubric_fidelity"
	// EvidenceGrounding asks whether every citation verifies against its
	// cited chunk.
	EvidenceGrounding Metric = "evidence_grounding"
	// ReasoningQuality asks whether the rationale logically connects the
	// cited evidence to the stated rating.
	ReasoningQuality Metric = "reasoning_quality"
	// ValuesAlignment asks whether the rationale stays consistent with
	// the review framework's stated values.
	ValuesAlignment Metric = "values_alignment"
	// Transparency asks whether sparse or ambiguous evidence was
	// acknowledged through the uncertainty flag and the rationale.
	Transparency Metric = "transparency"
	// HallucinationScreening asks whether the rationale asserts facts
	// not present in the cited evidence.
	HallucinationScreening Metric = "hallucination_screening"
)

// Metrics returns the full basket in canonical order.
func Metrics() []Metric {
	return []Metric{
		RubricFidelity,
		EvidenceGrounding,
		ReasoningQuality,
		ValuesAlignment,
		Transparency,
		HallucinationScreening,
	}
}

// Score is a per-metric or overall verdict.
type Score string

const (
	ScorePass Score = "PASS"
	ScoreWarn Score = "WARN"
	ScoreFail Score = "FAIL"
)

// Valid reports whether s is a recognized score.
func (s Score) Valid() bool {
	return s == ScorePass || s == ScoreWarn || s == ScoreFail
}

// Flag marks an audit condition detected during meta-evaluation. Flags
// are emitted whenever their trigger holds, independent of the overall
// verdict.
type Flag string

const (
	// FlagMissingEvidence marks a judgment with no citations at all.
	FlagMissingEvidence Flag = "missing_evidence"
	// FlagPoorGrounding marks a judgment with at least one citation that
	// did not verify against its chunk.
	FlagPoorGrounding Flag = "poor_grounding"
	// FlagRubricMismatch marks a rationale judged to be answering a
	// different dimension's question.
	FlagRubricMismatch Flag = "rubric_mismatch"
	// FlagHallucinationRisk marks unsupported factual claims or
	// unverifiable quotes.
	FlagHallucinationRisk Flag = "hallucination_risk"
)

// MetaJudgment is the meta-judge's verdict over one dimension judgment.
type MetaJudgment struct {
	// DimensionID identifies the judgment this verdict covers.
	DimensionID rubric.DimensionID `json:"dimension_id"`

	// MetricScores holds one score per metric in the basket.
	MetricScores map[Metric]Score `json:"metric_scores"`

	// Notes holds short actionable notes per metric.
	Notes map[Metric]string `json:"notes"`

	// Overall aggregates the basket. EvidenceGrounding and
	// HallucinationScreening are hard gates: either failing forces FAIL.
	Overall Score `json:"overall"`

	// Flags lists triggered audit conditions, sorted.
	Flags []Flag `json:"flags"`
}

// Flagged reports whether the given flag was raised.
func (m *MetaJudgment) Flagged(f Flag) bool {
	for _, got := range m.Flags {
		if got == f {
			return true
		}
	}
	return false
}
