/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package verifier performs programmatic citation verification: it checks
// that a quoted passage actually appears in the chunk it cites, without
// any model involvement.
//
// Matching is deliberately lexical rather than semantic. The point is to
// catch fabricated quotes, and a semantic matcher would itself need
// independent validation. The tolerance ladder is: raw containment, then
// containment under punctuation- and whitespace-folding normalization,
// then an in-order token overlap check for longer quotes that survive OCR
// damage.
package verifier
