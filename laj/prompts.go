/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package laj

import (
	"fmt"

	"chainguard.dev/rubricaf/dimension"
	"chainguard.dev/rubricaf/promptbuilder"
	"chainguard.dev/rubricaf/rubric"
)

// metaPrompt is the meta-evaluation prompt. The evidence placeholder
// carries ONLY the chunks the judgment cites.
var metaPrompt = promptbuilder.MustNewPrompt(`<task>
You are a meta-evaluator. Your job is to assess the QUALITY of a dimension-agent's
output, not to re-review the original report.

You MUST NOT introduce new evidence from outside the supplied evidence blocks.
You MUST NOT re-grade the report for the dimension; only judge whether the agent
output is rubric-faithful, well-grounded, coherent, values-aligned, transparent
about uncertainty, and free of unsupported claims.
</task>

{{definition}}

<agent_output>
{{agent_output}}
</agent_output>

<quote_checks>
Programmatic verification of each cited quote against its chunk
(EXACT_MATCH / FUZZY_MATCH / NOT_FOUND / CHUNK_MISSING):
{{quote_checks}}
</quote_checks>

{{evidence}}

<metric_basket>
- rubric_fidelity: does the rationale address this dimension's judgement question and declared scope, not a neighboring dimension's concerns?
- evidence_grounding: does every citation verify against the referenced evidence block?
- reasoning_quality: is the rationale non-circular, and does it logically connect the cited evidence to the stated rating (e.g. a LITTLE rating must not rest on positive evidence only)?
- values_alignment: does the rationale avoid contradicting the review framework's values (e.g. moralizing about individual fault)?
- transparency: if evidence was sparse or ambiguous, is uncertainty set and does the rationale say so explicitly? A confident rating built on one weak citation without uncertainty is WARN or FAIL.
- hallucination_screening: does the rationale assert facts about the report that are NOT present in the supplied evidence blocks?
</metric_basket>

<output_format>
Return STRICT JSON ONLY in the following schema:

{
  "overall": "PASS" | "WARN" | "FAIL",
  "metrics": [
    {
      "metric": "rubric_fidelity",
      "score": "PASS" | "WARN" | "FAIL",
      "notes": "short, actionable notes (<= 2 sentences)"
    }
  ]
}

Scoring guidance:
- PASS: clearly meets the metric
- WARN: partially meets; minor gaps
- FAIL: materially fails; unreliable

Rules:
- Provide ALL 6 metrics exactly once, using the metric names from the basket.
- Keep notes short and actionable.
- If the programmatic quote checks report NOT_FOUND or CHUNK_MISSING, reflect this in evidence_grounding and hallucination_screening.
- hallucination_screening is ONLY about unsupported factual assertions about the report content:
  - PASS if the rationale stays within what is supported by the provided evidence blocks, even if the critique is generic.
  - WARN if evidence is thin but not demonstrably false.
  - FAIL only if the rationale asserts facts that are not present in the provided evidence blocks, OR the quote checks report unverifiable quotes.
- Do NOT use hallucination_screening to penalise "insufficient specificity", "weak emphasis", or "could have cited more examples". Those belong in rubric_fidelity / reasoning_quality.
</output_format>

Respond with only the JSON object, no additional text.`)

// Prompt returns the meta-evaluation template, for wiring a reasoning
// collaborator that will receive *Request bindings.
func Prompt() *promptbuilder.Prompt {
	return metaPrompt
}

// Request carries one meta-evaluation's inputs into the prompt.
type Request struct {
	// Descriptor is the rubric dimension the judgment claims to cover.
	Descriptor rubric.Descriptor

	// Judgment is the dimension agent output under review.
	Judgment *dimension.Judgment

	// Checks are the programmatic quote verification outcomes.
	Checks []CitationCheck

	// Blocks is the rendered text of the cited chunks only.
	Blocks string
}

// Bind implements promptbuilder.Bindable for Request
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	prompt, err := prompt.BindXML("definition", struct {
		XMLName struct{} `xml:"target_dimension"`
		Content string   `xml:",chardata"`
	}{
		Content: fmt.Sprintf("%s: %s\nJudgement question: %s",
			r.Descriptor.ID, r.Descriptor.Name, r.Descriptor.JudgementQuestion),
	})
	if err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindJSON("agent_output", r.Judgment); err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindJSON("quote_checks", r.Checks); err != nil {
		return nil, err
	}

	blocks := r.Blocks
	if blocks == "" {
		blocks = "[NO EVIDENCE BLOCKS PROVIDED]"
	}
	return prompt.BindXML("evidence", struct {
		XMLName struct{} `xml:"cited_evidence_blocks"`
		Content string   `xml:",chardata"`
	}{
		Content: blocks,
	})
}

// Draft is the raw meta-judgment shape produced by the model, before the
// code-level guards run.
type Draft struct {
	Overall string        `json:"overall" jsonschema:"description=Suggested overall verdict; recomputed from the metric scores,required"`
	Metrics []MetricDraft `json:"metrics" jsonschema:"description=One entry per quality metric,required"`
}

// MetricDraft is one scored metric in a Draft.
type MetricDraft struct {
	Metric string `json:"metric" jsonschema:"description=Metric name,required"`
	Score  string `json:"score" jsonschema:"description=One of PASS WARN FAIL,required"`
	Notes  string `json:"notes" jsonschema:"description=Short justification for the score"`
}
