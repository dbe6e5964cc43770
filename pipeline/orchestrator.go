/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/laj"
	"chainguard.dev/rubricaf/metrics"
	"chainguard.dev/rubricaf/rubric"
	"github.com/chainguard-dev/clog"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

const (
	defaultConcurrency      = 4
	defaultDimensionTimeout = 3 * time.Minute
)

// Pipeline runs every dimension agent over one evidence pack and audits
// each judgment with the meta-judge.
type Pipeline struct {
	agents       []*dimension.Agent
	judge        *laj.Judge
	limit        int
	timeout      time.Duration
	model        string
	genaiMetrics *metrics.GenAI
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithConcurrency bounds how many dimensions run at once in each stage,
// which is how external model rate limits are respected.
func WithConcurrency(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return fmt.Errorf("concurrency must be positive, got %d", n)
		}
		p.limit = n
		return nil
	}
}

// WithDimensionTimeout caps the wall-clock time of each agent run and each
// meta-judge evaluation.
func WithDimensionTimeout(d time.Duration) Option {
	return func(p *Pipeline) error {
		if d <= 0 {
			return fmt.Errorf("timeout must be positive, got %v", d)
		}
		p.timeout = d
		return nil
	}
}

// WithModelLabel records the model identifier in the report metadata.
func WithModelLabel(model string) Option {
	return func(p *Pipeline) error {
		p.model = model
		return nil
	}
}

// New builds a pipeline over the given agents and meta-judge.
func New(agents []*dimension.Agent, judge *laj.Judge, opts ...Option) (*Pipeline, error) {
	if len(agents) == 0 {
		return nil, errors.New("at least one dimension agent is required")
	}
	if judge == nil {
		return nil, errors.New("meta-judge cannot be nil")
	}
	seen := make(map[rubric.DimensionID]struct{}, len(agents))
	for _, a := range agents {
		if a == nil {
			return nil, errors.New("nil dimension agent")
		}
		if _, dup := seen[a.DimensionID()]; dup {
			return nil, fmt.Errorf("duplicate agent for dimension %s", a.DimensionID())
		}
		seen[a.DimensionID()] = struct{}{}
	}

	p := &Pipeline{
		agents:       agents,
		judge:        judge,
		limit:        defaultConcurrency,
		timeout:      defaultDimensionTimeout,
		genaiMetrics: metrics.NewGenAI("rubricaf.pipeline"),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Run evaluates the pack against every dimension and returns the assembled
// report. Per-dimension failures are recorded as AGENT_ERROR rows rather
// than returned; Run itself fails only on a nil pack or when the parent
// context is already done before any work starts.
func (p *Pipeline) Run(ctx context.Context, pack *evidence.Pack) (*Report, error) {
	if pack == nil {
		return nil, errors.New("evidence pack cannot be nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline run aborted: %w", err)
	}
	log := clog.FromContext(ctx).With("report", pack.ReportID())
	started := time.Now().UTC()

	// Each goroutine owns exactly one slot, so the slice needs no lock.
	entries := make([]*Entry, len(p.agents))

	// Plain groups rather than WithContext: one dimension's failure must
	// not cancel its siblings' in-flight evaluations.
	var judgeGroup errgroup.Group
	judgeGroup.SetLimit(p.limit)
	for i, agent := range p.agents {
		judgeGroup.Go(func() error {
			entries[i] = p.runAgent(ctx, agent, pack)
			return nil
		})
	}
	_ = judgeGroup.Wait()

	var metaGroup errgroup.Group
	metaGroup.SetLimit(p.limit)
	for i, agent := range p.agents {
		if entries[i].Status != StatusOK {
			continue
		}
		metaGroup.Go(func() error {
			p.runMetaJudge(ctx, agent, pack, entries[i])
			return nil
		})
	}
	_ = metaGroup.Wait()

	report := &Report{
		Meta: RunMeta{
			ReportID:   pack.ReportID(),
			PackHash:   pack.Hash(),
			Model:      p.model,
			StartedAt:  started,
			FinishedAt: time.Now().UTC(),
		},
		Dimensions: make(map[rubric.DimensionID]*Entry, len(entries)),
	}
	for _, e := range entries {
		report.Dimensions[e.DimensionID] = e
	}

	log.With("dimensions", len(entries)).
		With("failed", report.Failed()).
		Info("Pipeline run complete")
	return report, nil
}

// runAgent executes one dimension agent under the per-dimension timeout
// and converts any failure into an AGENT_ERROR entry.
func (p *Pipeline) runAgent(ctx context.Context, agent *dimension.Agent, pack *evidence.Pack) *Entry {
	actx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	judgment, err := agent.Run(actx, pack)
	if err != nil {
		cause := classify(actx, err)
		clog.FromContext(ctx).With("dimension", agent.DimensionID()).
			With("cause", cause).
			Errorf("Dimension agent failed: %v", err)
		dimensionRuns.WithLabelValues(string(agent.DimensionID()), string(StatusAgentError), cause).Inc()
		return &Entry{
			DimensionID: agent.DimensionID(),
			Status:      StatusAgentError,
			Cause:       cause,
			Error:       err.Error(),
		}
	}

	dimensionRuns.WithLabelValues(string(agent.DimensionID()), string(StatusOK), "").Inc()
	return &Entry{
		DimensionID: agent.DimensionID(),
		Status:      StatusOK,
		Judgment:    judgment,
	}
}

// runMetaJudge audits one OK entry in place. The view handed to the judge
// is restricted to the chunks the judgment cites; the judge never sees the
// full pack. A judge failure demotes the entry to AGENT_ERROR but keeps
// the judgment for audit.
func (p *Pipeline) runMetaJudge(ctx context.Context, agent *dimension.Agent, pack *evidence.Pack, entry *Entry) {
	jctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	view := pack.View(entry.Judgment.CitedIDs()...)
	meta, err := p.judge.Evaluate(jctx, entry.Judgment, view, agent.Descriptor())
	if err != nil {
		cause := CauseMetaJudgmentFailure
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(jctx.Err(), context.DeadlineExceeded) {
			cause = CauseTimeout
		}
		clog.FromContext(ctx).With("dimension", entry.DimensionID).
			With("cause", cause).
			Errorf("Meta-judge failed: %v", err)
		dimensionRuns.WithLabelValues(string(entry.DimensionID), string(StatusAgentError), cause).Inc()
		entry.Status = StatusAgentError
		entry.Cause = cause
		entry.Error = err.Error()
		return
	}

	metaVerdicts.WithLabelValues(string(entry.DimensionID), string(meta.Overall)).Inc()
	p.genaiMetrics.RecordVerdict(ctx, p.model, string(meta.Overall),
		attribute.String("dimension", string(entry.DimensionID)))
	entry.Meta = meta
}

// classify maps an agent failure to its recorded cause. Timeouts are kept
// distinct from model or contract failures so a slow dimension is never
// confused with a badly-behaved one.
func classify(ctx context.Context, err error) string {
	var contract *dimension.ContractViolationError
	var unresolved *dimension.UnresolvedCitationError
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(ctx.Err(), context.DeadlineExceeded):
		return CauseTimeout
	case errors.As(err, &contract):
		return CauseContractViolation
	case errors.As(err, &unresolved):
		return CauseUnresolvedCitation
	default:
		return CauseReasoningError
	}
}
