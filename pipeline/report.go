/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/laj"
	"chainguard.dev/rubricaf/rubric"
)

// Status tags the outcome of one dimension's run.
type Status string

const (
	// StatusOK marks a dimension that produced both a judgment and a
	// meta-judgment.
	StatusOK Status = "OK"

	// StatusAgentError marks a dimension whose run failed; the Cause field
	// says how.
	StatusAgentError Status = "AGENT_ERROR"
)

// Failure causes recorded on AGENT_ERROR rows. A timeout is deliberately
// distinguished from a low rating or a model refusal.
const (
	CauseTimeout             = "timeout"
	CauseContractViolation   = "contract_violation"
	CauseUnresolvedCitation  = "unresolved_citation"
	CauseReasoningError      = "reasoning_error"
	CauseMetaJudgmentFailure = "meta_judgment_failure"
)

// Entry is one dimension's row in the assembled report.
type Entry struct {
	DimensionID rubric.DimensionID `json:"dimension_id"`
	Status      Status             `json:"status"`

	// Cause and Error describe the failure on AGENT_ERROR rows.
	Cause string `json:"cause,omitempty"`
	Error string `json:"error,omitempty"`

	// Judgment is present on OK rows, and retained on meta-judgment
	// failures so the agent's output is never silently discarded.
	Judgment *dimension.Judgment `json:"judgment,omitempty"`

	// Meta is the audit verdict over the judgment, present on OK rows.
	Meta *laj.MetaJudgment `json:"meta_judgment,omitempty"`
}

// RunMeta records provenance for one pipeline run.
type RunMeta struct {
	ReportID   string    `json:"report_id"`
	PackHash   string    `json:"pack_hash"`
	Model      string    `json:"model,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// Report is the assembled two-layer output for one evidence pack.
type Report struct {
	Meta       RunMeta                       `json:"_meta"`
	Dimensions map[rubric.DimensionID]*Entry `json:"dimensions"`
}

// Entries returns the report rows sorted by dimension id, independent of
// the order in which dimensions completed.
func (r *Report) Entries() []*Entry {
	out := make([]*Entry, 0, len(r.Dimensions))
	for _, e := range r.Dimensions {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		return strings.Compare(string(a.DimensionID), string(b.DimensionID))
	})
	return out
}

// Failed reports whether any dimension ended in AGENT_ERROR.
func (r *Report) Failed() bool {
	for _, e := range r.Dimensions {
		if e.Status != StatusOK {
			return true
		}
	}
	return false
}

// Write serializes the report as indented JSON.
func (r *Report) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
