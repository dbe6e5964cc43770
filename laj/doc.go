/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package laj implements the meta-judge that scores the QUALITY of a
// dimension judgment, not the underlying report. It sees only the
// evidence the judgment cites: that restriction is load-bearing, because
// the grounding metrics are meaningless if the judge can draw on chunks
// the agent never cited.
//
// Each evaluation runs the programmatic citation checks first, feeds
// their outcomes into the model prompt, and then applies code-level
// guards over the model's scores. The guards own the hard gates: the
// model can neither pass a judgment with fabricated quotes nor fail one
// for hallucination when the programmatic checks found its citations
// clean.
package laj
