/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"regexp"
)

// Kind distinguishes text chunks from table-derived chunks.
type Kind string

const (
	// KindText is a chunk of running text from the source report.
	KindText Kind = "text"
	// KindTable is a chunk holding the linearized textual rendering of an
	// extracted table.
	KindTable Kind = "table"
)

// Chunk is the smallest addressable unit of evidence. Content is set by the
// ingestion collaborator and never modified afterwards.
type Chunk struct {
	// ID is the stable chunk identifier, unique within its Pack. Ingestion
	// owns the format (e.g. "p03_c01", "p02_t01" or "T1-p3-c2"); the pipeline
	// treats it as opaque.
	ID string `json:"id"`

	// Kind is text or table.
	Kind Kind `json:"kind"`

	// Page is the 1-based source page number.
	Page int `json:"page"`

	// Content is the literal chunk text. For table chunks this is the
	// linearized markdown rendering produced at ingestion time.
	Content string `json:"content"`

	// Hash is the stable content hash, computed at pack construction for
	// audit replay. Ignored on input.
	Hash string `json:"hash,omitempty"`
}

// FormatID builds a chunk id in the conventional "pPP_cNN" / "pPP_tNN" form
// used by the default ingestion collaborator.
func FormatID(page, index int, kind Kind) string {
	marker := "c"
	if kind == KindTable {
		marker = "t"
	}
	return fmt.Sprintf("p%02d_%s%02d", page, marker, index)
}

// citedIDRe recognizes conventional chunk ids embedded in looser citation
// strings such as "Text p03_c01" or "[Table p02_t01 | page 2]".
var citedIDRe = regexp.MustCompile(`(?i)(p\d{1,3}_[ct]\d{1,3})`)

// ExtractID pulls a conventional chunk id out of a citation string. Returns
// the input unchanged when no conventional id is embedded, so that opaque id
// schemes pass through untouched.
func ExtractID(cited string) string {
	if m := citedIDRe.FindString(cited); m != "" {
		return m
	}
	return cited
}

// stableHash returns a short stable hash of the value's canonical JSON
// encoding. Used for chunk and pack content hashes.
func stableHash(v any) string {
	payload, err := json.Marshal(v)
	if err != nil {
		// Only non-serializable values can land here; all callers pass
		// plain strings and slices.
		return ""
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])[:16]
}
