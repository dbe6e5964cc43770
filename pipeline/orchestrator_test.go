/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/laj"
	"chainguard.dev/rubricaf/rubric"
	"github.com/google/go-cmp/cmp"
)

// agentEngine is a deterministic reasoning stub for dimension agents.
type agentEngine struct {
	draft *dimension.Draft
	err   error
	delay time.Duration
}

func (s *agentEngine) Produce(ctx context.Context, _ *dimension.Request) (*dimension.Draft, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.draft, nil
}

// blockingEngine never returns before its context expires.
type blockingEngine struct{}

func (blockingEngine) Produce(ctx context.Context, _ *dimension.Request) (*dimension.Draft, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

// judgeEngine is a deterministic reasoning stub for the meta-judge.
type judgeEngine struct {
	err error

	mu    sync.Mutex
	calls []*laj.Request
}

func (s *judgeEngine) Produce(_ context.Context, req *laj.Request) (*laj.Draft, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	d := &laj.Draft{Overall: "PASS"}
	for _, m := range laj.Metrics() {
		d.Metrics = append(d.Metrics, laj.MetricDraft{Metric: string(m), Score: "PASS"})
	}
	return d, nil
}

func testPack(t *testing.T) *evidence.Pack {
	t.Helper()
	pack, err := evidence.NewPack("INC-2024-117", []evidence.Chunk{{
		ID:      "p02_c01",
		Kind:    evidence.KindText,
		Page:    2,
		Content: "Escalation pathways were unclear, and the registrar was not contacted until the second deterioration.",
	}, {
		ID:      "p05_c03",
		Kind:    evidence.KindText,
		Page:    5,
		Content: "Staff described feeling unsupported during the night shift.",
	}})
	if err != nil {
		t.Fatalf("NewPack() = %v", err)
	}
	return pack
}

func descriptorByID(t *testing.T, id rubric.DimensionID) rubric.Descriptor {
	t.Helper()
	for _, d := range rubric.Builtin() {
		if d.ID == id {
			return *d
		}
	}
	t.Fatalf("builtin descriptor %s not found", id)
	return rubric.Descriptor{}
}

func goodDraft() *dimension.Draft {
	return &dimension.Draft{
		Rating:    "SOME",
		Rationale: "Escalation failures are identified but not analysed systemically.",
		Evidence: []dimension.Citation{{
			ChunkID: "p02_c01",
			Quote:   "Escalation pathways were unclear",
			Type:    dimension.Negative,
		}},
	}
}

func newAgent(t *testing.T, id rubric.DimensionID, engine *agentEngine) *dimension.Agent {
	t.Helper()
	a, err := dimension.New(descriptorByID(t, id), engine)
	if err != nil {
		t.Fatalf("dimension.New(%s) = %v", id, err)
	}
	return a
}

func newJudge(t *testing.T, engine *judgeEngine) *laj.Judge {
	t.Helper()
	j, err := laj.New(engine)
	if err != nil {
		t.Fatalf("laj.New() = %v", err)
	}
	return j
}

func TestRunAssemblesAllDimensions(t *testing.T) {
	pack := testPack(t)
	agents := []*dimension.Agent{
		newAgent(t, "D1", &agentEngine{draft: goodDraft()}),
		newAgent(t, "D2", &agentEngine{draft: goodDraft()}),
		newAgent(t, "D3", &agentEngine{draft: goodDraft()}),
	}
	judge := &judgeEngine{}

	p, err := New(agents, newJudge(t, judge), WithConcurrency(3), WithModelLabel("stub-model"))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report, err := p.Run(context.Background(), pack)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if got := len(report.Dimensions); got != 3 {
		t.Fatalf("report has %d dimensions, want 3", got)
	}
	for _, id := range []rubric.DimensionID{"D1", "D2", "D3"} {
		e, ok := report.Dimensions[id]
		if !ok {
			t.Fatalf("report missing dimension %s", id)
		}
		if e.Status != StatusOK {
			t.Errorf("dimension %s status = %s (%s)", id, e.Status, e.Error)
		}
		if e.Judgment == nil || e.Meta == nil {
			t.Errorf("dimension %s missing judgment or meta-judgment", id)
		}
		if e.Meta != nil && e.Meta.Overall != laj.ScorePass {
			t.Errorf("dimension %s overall = %s, want PASS", id, e.Meta.Overall)
		}
	}
	if report.Meta.PackHash != pack.Hash() {
		t.Errorf("PackHash = %q, want %q", report.Meta.PackHash, pack.Hash())
	}
	if report.Meta.Model != "stub-model" {
		t.Errorf("Model = %q, want stub-model", report.Meta.Model)
	}
	if report.Failed() {
		t.Error("Failed() = true for an all-OK report")
	}
}

func TestRunRestrictsJudgeView(t *testing.T) {
	pack := testPack(t)
	judge := &judgeEngine{}
	p, err := New(
		[]*dimension.Agent{newAgent(t, "D2", &agentEngine{draft: goodDraft()})},
		newJudge(t, judge),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	if _, err := p.Run(context.Background(), pack); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if len(judge.calls) != 1 {
		t.Fatalf("judge called %d times, want 1", len(judge.calls))
	}
	blocks := judge.calls[0].Blocks
	if !strings.Contains(blocks, "Escalation pathways were unclear") {
		t.Errorf("judge view missing the cited chunk:\n%s", blocks)
	}
	if strings.Contains(blocks, "night shift") {
		t.Errorf("judge view leaks an uncited chunk:\n%s", blocks)
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	pack := testPack(t)

	tests := []struct {
		name      string
		engine    *agentEngine
		wantCause string
	}{{
		name:      "reasoning error",
		engine:    &agentEngine{err: errors.New("model unavailable")},
		wantCause: CauseReasoningError,
	}, {
		name: "contract violation",
		engine: &agentEngine{draft: &dimension.Draft{
			Rating:    "EXCELLENT",
			Rationale: "Uses a rating outside the rubric scale.",
		}},
		wantCause: CauseContractViolation,
	}, {
		name: "unresolved citation",
		engine: &agentEngine{draft: &dimension.Draft{
			Rating:    "SOME",
			Rationale: "Cites a chunk that does not exist.",
			Evidence: []dimension.Citation{{
				ChunkID: "p09_c09",
				Quote:   "not in the pack",
				Type:    dimension.Negative,
			}},
		}},
		wantCause: CauseUnresolvedCitation,
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			agents := []*dimension.Agent{
				newAgent(t, "D1", tc.engine),
				newAgent(t, "D2", &agentEngine{draft: goodDraft()}),
			}
			p, err := New(agents, newJudge(t, &judgeEngine{}))
			if err != nil {
				t.Fatalf("New() = %v", err)
			}
			report, err := p.Run(context.Background(), pack)
			if err != nil {
				t.Fatalf("Run() = %v", err)
			}

			failed := report.Dimensions["D1"]
			if failed.Status != StatusAgentError {
				t.Fatalf("D1 status = %s, want AGENT_ERROR", failed.Status)
			}
			if failed.Cause != tc.wantCause {
				t.Errorf("D1 cause = %q, want %q", failed.Cause, tc.wantCause)
			}
			if failed.Error == "" {
				t.Error("D1 entry has no error detail")
			}
			if sibling := report.Dimensions["D2"]; sibling.Status != StatusOK {
				t.Errorf("sibling D2 status = %s (%s), want OK", sibling.Status, sibling.Error)
			}
			if !report.Failed() {
				t.Error("Failed() = false despite an AGENT_ERROR row")
			}
		})
	}
}

func TestRunRecordsTimeoutCause(t *testing.T) {
	pack := testPack(t)
	slow, err := dimension.New(descriptorByID(t, "D1"), blockingEngine{})
	if err != nil {
		t.Fatalf("dimension.New() = %v", err)
	}
	agents := []*dimension.Agent{
		slow,
		newAgent(t, "D2", &agentEngine{draft: goodDraft()}),
	}

	p, err := New(agents, newJudge(t, &judgeEngine{}), WithDimensionTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report, err := p.Run(context.Background(), pack)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	failed := report.Dimensions["D1"]
	if failed.Status != StatusAgentError || failed.Cause != CauseTimeout {
		t.Errorf("D1 = {status %s, cause %q}, want AGENT_ERROR/timeout", failed.Status, failed.Cause)
	}
	if sibling := report.Dimensions["D2"]; sibling.Status != StatusOK {
		t.Errorf("sibling D2 status = %s, want OK", sibling.Status)
	}
}

func TestRunRetainsJudgmentOnJudgeFailure(t *testing.T) {
	pack := testPack(t)
	p, err := New(
		[]*dimension.Agent{newAgent(t, "D2", &agentEngine{draft: goodDraft()})},
		newJudge(t, &judgeEngine{err: errors.New("judge unavailable")}),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report, err := p.Run(context.Background(), pack)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	e := report.Dimensions["D2"]
	if e.Status != StatusAgentError || e.Cause != CauseMetaJudgmentFailure {
		t.Errorf("entry = {status %s, cause %q}, want AGENT_ERROR/meta_judgment_failure", e.Status, e.Cause)
	}
	if e.Judgment == nil {
		t.Error("judgment dropped on judge failure; it must be retained for audit")
	}
	if e.Meta != nil {
		t.Error("meta-judgment present despite judge failure")
	}
}

func TestRunOrderIndependent(t *testing.T) {
	pack := testPack(t)

	build := func(concurrency int, delays map[rubric.DimensionID]time.Duration) *Report {
		var agents []*dimension.Agent
		for _, id := range []rubric.DimensionID{"D1", "D2", "D3", "D4"} {
			agents = append(agents, newAgent(t, id, &agentEngine{
				draft: goodDraft(),
				delay: delays[id],
			}))
		}
		p, err := New(agents, newJudge(t, &judgeEngine{}), WithConcurrency(concurrency))
		if err != nil {
			t.Fatalf("New() = %v", err)
		}
		report, err := p.Run(context.Background(), pack)
		if err != nil {
			t.Fatalf("Run() = %v", err)
		}
		return report
	}

	// Same agents, different concurrency and completion order.
	serial := build(1, nil)
	staggered := build(4, map[rubric.DimensionID]time.Duration{
		"D1": 30 * time.Millisecond,
		"D3": 10 * time.Millisecond,
	})

	if diff := cmp.Diff(serial.Entries(), staggered.Entries()); diff != "" {
		t.Errorf("assembled entries depend on completion order (-serial +staggered):\n%s", diff)
	}
}

func TestRunRejectsDoneContext(t *testing.T) {
	pack := testPack(t)
	engine := &agentEngine{draft: goodDraft()}
	p, err := New(
		[]*dimension.Agent{newAgent(t, "D1", engine)},
		newJudge(t, &judgeEngine{}),
	)
	if err != nil {
		t.Fatalf("New() = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := p.Run(ctx, pack)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() = %v, want wrapped context.Canceled", err)
	}
	if report != nil {
		t.Errorf("Run() returned a report alongside the error: %+v", report)
	}
}

func TestNewValidation(t *testing.T) {
	agent := newAgent(t, "D1", &agentEngine{draft: goodDraft()})
	judge := newJudge(t, &judgeEngine{})

	tests := []struct {
		name   string
		agents []*dimension.Agent
		judge  *laj.Judge
		opts   []Option
	}{{
		name:   "no agents",
		agents: nil,
		judge:  judge,
	}, {
		name:   "nil judge",
		agents: []*dimension.Agent{agent},
		judge:  nil,
	}, {
		name:   "duplicate dimension",
		agents: []*dimension.Agent{agent, newAgent(t, "D1", &agentEngine{draft: goodDraft()})},
		judge:  judge,
	}, {
		name:   "non-positive concurrency",
		agents: []*dimension.Agent{agent},
		judge:  judge,
		opts:   []Option{WithConcurrency(0)},
	}, {
		name:   "non-positive timeout",
		agents: []*dimension.Agent{agent},
		judge:  judge,
		opts:   []Option{WithDimensionTimeout(0)},
	}}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.agents, tc.judge, tc.opts...); err == nil {
				t.Error("New() succeeded, want error")
			}
		})
	}
}

func TestWriteSummary(t *testing.T) {
	pack := testPack(t)
	agents := []*dimension.Agent{
		newAgent(t, "D1", &agentEngine{err: errors.New("model unavailable")}),
		newAgent(t, "D2", &agentEngine{draft: goodDraft()}),
	}
	p, err := New(agents, newJudge(t, &judgeEngine{}))
	if err != nil {
		t.Fatalf("New() = %v", err)
	}
	report, err := p.Run(context.Background(), pack)
	if err != nil {
		t.Fatalf("Run() = %v", err)
	}

	var sb strings.Builder
	if err := WriteSummary(&sb, report); err != nil {
		t.Fatalf("WriteSummary() = %v", err)
	}
	out := sb.String()

	for _, want := range []string{
		"## INC-2024-117",
		"Dimension",
		"AGENT_ERROR",
		"reasoning_error",
		"SOME",
		"PASS",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("summary missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "D1") || !strings.Contains(out, "D2") {
		t.Errorf("summary missing a dimension row:\n%s", out)
	}
}
