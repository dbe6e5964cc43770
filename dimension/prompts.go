/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package dimension

import (
	"fmt"
	"strings"

	"chainguard.dev/rubricaf/evidence"
	"chainguard.dev/rubricaf/promptbuilder"
	"chainguard.dev/rubricaf/rubric"
)

// agentPrompt is the shared prompt for all dimension agents. The
// dimension-specific sections come from the RubricDescriptor at bind time.
var agentPrompt = promptbuilder.MustNewPrompt(`<task>
You are an expert reviewer applying a structured learning-response review rubric.
Assess ONE dimension of the learning response, using ONLY the evidence provided.
Do not infer intent beyond the text, and restrict yourself to the considerations
listed in the scope section.
</task>

{{dimension}}

{{question}}

{{criteria}}

{{scope}}

{{polarity}}

{{evidence}}

<output_format>
Return STRICT JSON ONLY (no markdown, no extra text) with this schema:

{
  "rating": "GOOD" | "SOME" | "LITTLE",
  "rationale": "string",
  "evidence": [
    {
      "id": "pXX_cYY" | "pXX_tYY",
      "quote": "verbatim excerpt from the evidence, <= 25 words",
      "evidence_type": "positive" | "negative"
    }
  ],
  "uncertainty": true | false
}

Rules:
- Every evidence item MUST include a verbatim quote taken from the cited evidence block (<= 25 words).
- Cite at most 3 evidence items.
- If rating is GOOD: include at least one "positive" evidence item.
- If rating is LITTLE: include at least one "negative" evidence item if one exists; if none exists, evidence may be [] but set uncertainty to true.
- If rating is SOME: include one item of the most salient type; include both if mixed evidence exists.
- If the evidence is sparse, contradictory or ambiguous, set uncertainty to true and state the ambiguity in the rationale.
- If you cannot find any relevant excerpt to quote, set evidence to [] AND set uncertainty to true.
- Do not invent quotes. Do not paraphrase quotes.
</output_format>

Respond with only the JSON object, no additional text.`)

// Prompt returns the shared agent template, for wiring a reasoning
// collaborator that will receive *Request bindings.
func Prompt() *promptbuilder.Prompt {
	return agentPrompt
}

// Request carries one dimension agent invocation's inputs into the prompt.
type Request struct {
	// Descriptor is the rubric dimension being evaluated.
	Descriptor rubric.Descriptor

	// Chunks are the evidence blocks, in pack order.
	Chunks []evidence.Chunk
}

// Bind implements promptbuilder.Bindable for Request
func (r *Request) Bind(prompt *promptbuilder.Prompt) (*promptbuilder.Prompt, error) {
	prompt, err := prompt.BindXML("dimension", struct {
		XMLName struct{} `xml:"dimension"`
		Content string   `xml:",chardata"`
	}{
		Content: fmt.Sprintf("%s: %s", r.Descriptor.ID, r.Descriptor.Name),
	})
	if err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindXML("question", struct {
		XMLName struct{} `xml:"judgement_question"`
		Content string   `xml:",chardata"`
	}{
		Content: r.Descriptor.JudgementQuestion,
	}); err != nil {
		return nil, err
	}

	var criteria strings.Builder
	for _, rating := range rubric.Ratings() {
		fmt.Fprintf(&criteria, "%s evidence: %s\n", rating, r.Descriptor.RatingCriteria[rating])
	}
	if prompt, err = prompt.BindXML("criteria", struct {
		XMLName struct{} `xml:"rating_criteria"`
		Content string   `xml:",chardata"`
	}{
		Content: strings.TrimRight(criteria.String(), "\n"),
	}); err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindXML("scope", struct {
		XMLName struct{} `xml:"scope"`
		Content string   `xml:",chardata"`
	}{
		Content: "In scope: " + strings.Join(r.Descriptor.InScope, "; ") +
			"\nOut of scope (do NOT cite as evidence for this dimension): " +
			strings.Join(r.Descriptor.OutOfScope, "; "),
	}); err != nil {
		return nil, err
	}

	if prompt, err = prompt.BindXML("polarity", struct {
		XMLName struct{} `xml:"evidence_type_labels"`
		Content string   `xml:",chardata"`
	}{
		Content: fmt.Sprintf("positive = %s\nnegative = %s",
			r.Descriptor.Polarity.Positive, r.Descriptor.Polarity.Negative),
	}); err != nil {
		return nil, err
	}

	return prompt.BindXML("evidence", struct {
		XMLName struct{} `xml:"evidence"`
		Content string   `xml:",chardata"`
	}{
		Content: evidence.RenderBlocks(r.Chunks),
	})
}
