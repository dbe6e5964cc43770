/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package laj

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/reasoner"
	"chainguard.dev/rubricaf/rubric"
	"github.com/chainguard-dev/clog"
)

// Judge scores the quality of dimension judgments.
type Judge struct {
	engine reasoner.Interface[*Request, *Draft]
}

// New creates a meta-judge backed by the given reasoning collaborator.
func New(engine reasoner.Interface[*Request, *Draft]) (*Judge, error) {
	if engine == nil {
		return nil, errors.New("engine cannot be nil")
	}
	return &Judge{engine: engine}, nil
}

// Evaluate scores one judgment against the restricted evidence view. The
// view must contain only the chunks the judgment cites; passing a wider
// view weakens the grounding metrics.
func (jd *Judge) Evaluate(ctx context.Context, judgment *dimension.Judgment, view *evidence.View, descriptor rubric.Descriptor) (*MetaJudgment, error) {
	if judgment == nil {
		return nil, errors.New("judgment cannot be nil")
	}
	if view == nil {
		return nil, errors.New("evidence view cannot be nil")
	}
	log := clog.FromContext(ctx).With("dimension", judgment.DimensionID)

	checks := runChecks(judgment, view)

	draft, err := jd.engine.Produce(ctx, &Request{
		Descriptor: descriptor,
		Judgment:   judgment,
		Checks:     checks,
		Blocks:     evidence.RenderBlocks(view.Chunks()),
	})
	if err != nil {
		return nil, fmt.Errorf("meta-judge for %s: %w", judgment.DimensionID, err)
	}

	scores, notes := parseMetrics(ctx, draft)
	meta := &MetaJudgment{
		DimensionID:  judgment.DimensionID,
		MetricScores: scores,
		Notes:        notes,
	}

	jd.applyGuards(ctx, meta, judgment, checks)

	log.With("overall", meta.Overall).
		With("flags", len(meta.Flags)).
		Info("Meta-judgment complete")
	return meta, nil
}

// parseMetrics coerces the model draft into a full score map. Unknown
// metric names are dropped; metrics the model omitted are filled as WARN
// so that a lazy evaluator can never quietly pass a judgment.
func parseMetrics(ctx context.Context, draft *Draft) (map[Metric]Score, map[Metric]string) {
	log := clog.FromContext(ctx)
	scores := make(map[Metric]Score, len(Metrics()))
	notes := make(map[Metric]string, len(Metrics()))

	if draft != nil {
		known := Metrics()
		for _, m := range draft.Metrics {
			metric := Metric(strings.ToLower(strings.TrimSpace(m.Metric)))
			if !slices.Contains(known, metric) {
				log.With("metric", m.Metric).Warn("Dropping unknown metric from meta-evaluation")
				continue
			}
			score := Score(strings.ToUpper(strings.TrimSpace(m.Score)))
			if !score.Valid() {
				log.With("metric", metric).With("score", m.Score).
					Warn("Dropping metric with unknown score")
				continue
			}
			if _, dup := scores[metric]; dup {
				continue
			}
			scores[metric] = score
			notes[metric] = strings.TrimSpace(m.Notes)
		}
	}

	for _, metric := range Metrics() {
		if _, ok := scores[metric]; !ok {
			scores[metric] = ScoreWarn
			notes[metric] = "Metric was not scored by the evaluator."
		}
	}
	return scores, notes
}

// applyGuards enforces the code-owned gates over the model's scores and
// derives the overall verdict and flags.
func (jd *Judge) applyGuards(ctx context.Context, meta *MetaJudgment, judgment *dimension.Judgment, checks []CitationCheck) {
	log := clog.FromContext(ctx).With("dimension", judgment.DimensionID)
	scores, notes := meta.MetricScores, meta.Notes

	ungrounded := anyUngrounded(checks)
	missing := len(judgment.Citations) == 0

	if ungrounded {
		// Fabricated or unresolvable quotes are the hard gate: no model
		// score can override them.
		scores[EvidenceGrounding] = ScoreFail
		scores[HallucinationScreening] = ScoreFail
		if notes[EvidenceGrounding] == "" {
			notes[EvidenceGrounding] = "One or more cited quotes did not verify against the cited chunk."
		}
		log.Warn("Ungrounded citations force grounding and hallucination FAIL")
	} else if scores[HallucinationScreening] == ScoreFail {
		// The model may only fail hallucination screening when the
		// programmatic checks agree that something did not verify.
		scores[HallucinationScreening] = ScoreWarn
		notes[HallucinationScreening] = "No programmatic grounding issues detected; treat as potential overreach rather than hallucination."
		log.Info("Clamped hallucination FAIL to WARN: programmatic checks were clean")
	}

	if missing {
		// A judgment without citations can never pass the grounding
		// metrics, but absence of evidence alone is not fabrication
		// either: both metrics land on WARN regardless of how the
		// model scored them.
		scores[EvidenceGrounding] = ScoreWarn
		scores[HallucinationScreening] = ScoreWarn
		if notes[EvidenceGrounding] == "" {
			notes[EvidenceGrounding] = "Judgment cites no evidence; grounding cannot be assessed."
		}
	}

	// A confident rating on at most one non-verbatim citation must at
	// least warn on transparency.
	if !judgment.Uncertainty && len(checks) <= 1 && !allExact(checks) {
		if scores[Transparency] == ScorePass {
			scores[Transparency] = ScoreWarn
			if notes[Transparency] == "" {
				notes[Transparency] = "Confident rating with minimal verbatim support and no uncertainty flag."
			}
		}
	}

	if missing {
		meta.addFlag(FlagMissingEvidence)
	}
	if ungrounded {
		meta.addFlag(FlagPoorGrounding)
		meta.addFlag(FlagHallucinationRisk)
	}
	if scores[RubricFidelity] == ScoreFail {
		meta.addFlag(FlagRubricMismatch)
	}
	if scores[HallucinationScreening] == ScoreFail {
		meta.addFlag(FlagHallucinationRisk)
	}
	slices.Sort(meta.Flags)

	meta.Overall = overall(scores)
}

// overall derives the aggregate verdict: the grounding metrics are hard
// gates, anything short of a clean basket is WARN.
func overall(scores map[Metric]Score) Score {
	if scores[EvidenceGrounding] == ScoreFail || scores[HallucinationScreening] == ScoreFail {
		return ScoreFail
	}
	for _, metric := range Metrics() {
		if scores[metric] != ScorePass {
			return ScoreWarn
		}
	}
	return ScorePass
}

func (m *MetaJudgment) addFlag(f Flag) {
	if !m.Flagged(f) {
		m.Flags = append(m.Flags, f)
	}
}
