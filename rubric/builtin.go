/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

// Builtin returns the default descriptor set for reviewing incident learning
// responses. Callers get fresh copies; the returned descriptors are safe to
// hold for the lifetime of a run.
func Builtin() []*Descriptor {
	out := make([]*Descriptor, len(builtins))
	for i := range builtins {
		d := builtins[i]
		out[i] = &d
	}
	return out
}

var builtins = []Descriptor{{
	ID:                "D1",
	Name:              "Compassionate engagement with people affected",
	JudgementQuestion: "Does the learning response demonstrate compassionate engagement with the people affected by the incident?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Clear, documented evidence of empathy, communication with those affected, support offered, and a candid tone.",
		RatingSome:   "Partial or indirect evidence of engagement; some empathy or communication documented but incomplete.",
		RatingLittle: "Little or no documented engagement; narration is purely clinical or procedural.",
	},
	Polarity: PolarityRules{
		Positive: "The quote directly demonstrates compassionate engagement (empathy, support, candour).",
		Negative: "The quote exemplifies clinical or process-focused documentation supporting the conclusion that compassionate engagement is not documented.",
	},
	InScope:    []string{"empathy", "communication with those affected", "support offered", "duty of candour tone"},
	OutOfScope: []string{"clinical correctness", "blame framing", "systems analysis"},
}, {
	ID:                "D2",
	Name:              "Systems approach to contributory factors",
	JudgementQuestion: "Does the learning response analyse contributory factors through system conditions and interactions rather than individual shortcomings?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Contributory factors framed as system conditions, latent factors, and work-as-done interactions.",
		RatingSome:   "Mixed framing: some system conditions identified alongside person-centred explanations.",
		RatingLittle: "Analysis centres on individual acts and omissions with little system context.",
	},
	Polarity: PolarityRules{
		Positive: "The quote identifies system conditions, latent factors, or interactions between parts of the system.",
		Negative: "The quote explains the incident primarily through individual action or omission.",
	},
	InScope:    []string{"system conditions", "latent factors", "work-as-done", "interactions between services"},
	OutOfScope: []string{"compassion", "tone toward individuals", "clinical correctness"},
}, {
	ID:                "D3",
	Name:              "Quality and appropriateness of learning actions",
	JudgementQuestion: "Are the learning actions specific, feasible, risk-relevant, and linked to the identified contributory factors?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Actions are specific, feasible, tied to contributory factors, and proportionate to risk.",
		RatingSome:   "Actions present but partly generic, weakly linked to factors, or of unclear feasibility.",
		RatingLittle: "Actions absent, vague, or safety clutter with no link to the analysis.",
	},
	Polarity: PolarityRules{
		Positive: "The quote shows a specific, feasible action linked to a contributory factor.",
		Negative: "The quote shows a generic, unfeasible, or untraceable action, or the absence of one.",
	},
	InScope:    []string{"specificity of actions", "feasibility", "linkage to contributory factors", "risk relevance"},
	OutOfScope: []string{"blame language", "compassion", "narrative style"},
}, {
	ID:                "D4",
	Name:              "Blame language avoided",
	JudgementQuestion: "Does the learning response avoid person-focused blame language in favour of neutral or system framing?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "No blame-oriented language; issues discussed in neutral or system terms.",
		RatingSome:   "Mostly neutral framing but at least one genuine blame-oriented statement present.",
		RatingLittle: "Person-focused blame or judgemental descriptors recur through the response.",
	},
	Polarity: PolarityRules{
		Positive: "Neutral or systems/process framing; discusses issues without attributing fault to people.",
		Negative: "Blame-oriented language attributing fault to an individual or team, or judgemental descriptors about people.",
		NegativeCues: []string{
			"failed", "should have", "should've", "did not", "didn't",
			"non-compliance", "neglig", "careless", "incompet", "to blame", "fault",
		},
		SubjectTokens: []string{
			"staff", "team", "sho", "doctor", "nurse", "consultant",
			"they", "he", "she", "we",
		},
	},
	InScope:    []string{"tone", "framing", "attribution of responsibility"},
	OutOfScope: []string{"clinical correctness", "whether described actions were in fact erroneous"},
}, {
	ID:                "D5",
	Name:              "Local rationality",
	JudgementQuestion: "Does the learning response explain why actions made sense at the time, given the information and constraints available?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Decisions explained from the perspective of those involved at the time, with their information and constraints.",
		RatingSome:   "Some attention to the view at the time, mixed with outcome-driven reasoning.",
		RatingLittle: "Reasoning judges decisions purely against the known outcome.",
	},
	Polarity: PolarityRules{
		Positive: "The quote reconstructs what was known or constrained at the time of the decision.",
		Negative: "The quote argues from the outcome or from counterfactual certainty.",
	},
	InScope:    []string{"information available at the time", "constraints and pressures", "perspective of those involved"},
	OutOfScope: []string{"whether the outcome could have been avoided", "blame"},
}, {
	ID:                "D6",
	Name:              "Hindsight bias and counterfactual certainty avoided",
	JudgementQuestion: "Is the learning response cautious about outcome attribution, recognising uncertainty and avoiding definitive unsupported counterfactual claims?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Uncertainty acknowledged; counterfactual claims qualified or avoided.",
		RatingSome:   "Occasional unqualified counterfactuals alongside otherwise cautious language.",
		RatingLittle: "Confident counterfactual assertions about what would have happened pervade the response.",
	},
	Polarity: PolarityRules{
		Positive: "The quote acknowledges uncertainty or qualifies outcome attribution.",
		Negative: "The quote asserts a definitive counterfactual outcome without support.",
	},
	InScope:    []string{"outcome attribution", "expressions of certainty", "counterfactual claims"},
	OutOfScope: []string{"quality of actions", "compassion"},
}, {
	ID:                "D7",
	Name:              "Improvement actions",
	JudgementQuestion: "Are improvement actions system-focused, evidence-informed, collaboratively developed, and given ownership and monitoring?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "System-focused actions with named ownership, monitoring, and evidence of collaborative development.",
		RatingSome:   "Actions partly system-focused or lacking ownership/monitoring detail.",
		RatingLittle: "Generic compliance-heavy actions, or none, with no ownership or monitoring.",
	},
	Polarity: PolarityRules{
		Positive: "The quote shows a system-focused action with ownership, monitoring, or collaborative development.",
		Negative: "The quote shows a generic, compliance-only action or missing ownership.",
	},
	InScope:    []string{"system focus of actions", "ownership", "monitoring", "collaborative development"},
	OutOfScope: []string{"narrative style", "blame language"},
}, {
	ID:                "D8",
	Name:              "Communication quality and usability",
	JudgementQuestion: "Is the response clearly structured and readable, with jargon managed and learning and actions easy to extract?",
	RatingCriteria: map[Rating]string{
		RatingGood:   "Clear structure, readable narrative, jargon explained, learning and actions easy to find.",
		RatingSome:   "Readable in parts; structure or jargon management inconsistent.",
		RatingLittle: "Hard to follow; learning and actions cannot be readily extracted.",
	},
	Polarity: PolarityRules{
		Positive: "The quote demonstrates clear structure, plain language, or extractable learning.",
		Negative: "The quote demonstrates unexplained jargon, poor structure, or buried learning.",
	},
	InScope:    []string{"structure", "readability", "jargon management", "extractability of learning and actions"},
	OutOfScope: []string{"clinical correctness", "blame framing", "action feasibility"},
}}
