/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package dimension implements the per-dimension review agents. Each
// agent takes an evidence pack and one rubric descriptor, asks its
// reasoning collaborator for a draft judgment, and then enforces the
// output contract: a valid rating, one to three citations that resolve
// in the pack, and quotes within the word bound.
//
// The contract layer never decides ratings. Lexical guards only escalate
// the uncertainty flag when the draft's evidence polarity looks
// mislabelled, leaving borderline cases visible to the meta-judge and to
// human reviewers rather than silently correcting them.
package dimension
