/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// InvalidChunkError reports a chunk that cannot be admitted into a Pack.
type InvalidChunkError struct {
	ID     string
	Reason string
}

func (e *InvalidChunkError) Error() string {
	return fmt.Sprintf("invalid chunk %q: %s", e.ID, e.Reason)
}

// Pack is the immutable, addressable evidence corpus for one source report.
// Construct with NewPack; there are no mutation operations, any "update"
// means building a new pack.
type Pack struct {
	reportID string
	chunks   []Chunk
	byID     map[string]int
	hash     string
}

// NewPack validates the supplied chunks and builds a pack over them.
// Chunk order is preserved as source order. Fails with *InvalidChunkError
// when two chunks share an id, an id is empty, a page is non-positive, or a
// kind is unrecognized.
func NewPack(reportID string, chunks []Chunk) (*Pack, error) {
	byID := make(map[string]int, len(chunks))
	owned := make([]Chunk, len(chunks))
	hashes := make([]string, 0, len(chunks))

	for i, c := range chunks {
		if c.ID == "" {
			return nil, &InvalidChunkError{ID: c.ID, Reason: "empty id"}
		}
		if _, dup := byID[c.ID]; dup {
			return nil, &InvalidChunkError{ID: c.ID, Reason: "duplicate id"}
		}
		if c.Page < 1 {
			return nil, &InvalidChunkError{ID: c.ID, Reason: fmt.Sprintf("non-positive page %d", c.Page)}
		}
		switch c.Kind {
		case KindText, KindTable:
		default:
			return nil, &InvalidChunkError{ID: c.ID, Reason: fmt.Sprintf("unknown kind %q", c.Kind)}
		}

		c.Hash = stableHash(c.Content)
		owned[i] = c
		byID[c.ID] = i
		hashes = append(hashes, c.Hash)
	}

	return &Pack{
		reportID: reportID,
		chunks:   owned,
		byID:     byID,
		hash:     stableHash(struct {
			ReportID string   `json:"report_id"`
			Chunks   []string `json:"chunks"`
		}{reportID, hashes}),
	}, nil
}

// ReportID returns the id of the source report this pack was built from.
func (p *Pack) ReportID() string { return p.reportID }

// Hash returns the stable pack-level content hash for audit and versioning.
func (p *Pack) Hash() string { return p.hash }

// Len returns the number of chunks in the pack.
func (p *Pack) Len() int { return len(p.chunks) }

// Lookup resolves a chunk by id in constant time.
func (p *Pack) Lookup(id string) (Chunk, bool) {
	i, ok := p.byID[id]
	if !ok {
		return Chunk{}, false
	}
	return p.chunks[i], true
}

// Chunks returns the chunks in source order. The returned slice is a copy;
// callers cannot alter pack content through it.
func (p *Pack) Chunks() []Chunk {
	out := make([]Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

// View builds a read-only projection containing only the chunks whose ids
// are listed, in pack source order and deduplicated. Ids that do not resolve
// are simply absent from the view, which is how a downstream verifier
// observes a missing chunk. The projection is built fresh on every call.
func (p *Pack) View(ids ...string) *View {
	seen := make(map[string]struct{}, len(ids))
	keep := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if i, ok := p.byID[id]; ok {
			keep[i] = struct{}{}
		}
	}

	v := &View{byID: make(map[string]int, len(keep))}
	for i, c := range p.chunks {
		if _, ok := keep[i]; !ok {
			continue
		}
		v.byID[c.ID] = len(v.chunks)
		v.chunks = append(v.chunks, c)
	}
	return v
}

// packJSON is the serialized pack form exchanged with the ingestion
// collaborator.
type packJSON struct {
	ReportID string  `json:"report_id"`
	PackHash string  `json:"pack_hash,omitempty"`
	Chunks   []Chunk `json:"chunks"`
}

// ReadPack decodes a serialized pack and validates it via NewPack.
func ReadPack(r io.Reader) (*Pack, error) {
	var pj packJSON
	if err := json.NewDecoder(r).Decode(&pj); err != nil {
		return nil, fmt.Errorf("decoding evidence pack: %w", err)
	}
	return NewPack(pj.ReportID, pj.Chunks)
}

// LoadPack reads a serialized pack from a file.
func LoadPack(path string) (*Pack, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening evidence pack: %w", err)
	}
	defer f.Close()
	return ReadPack(f)
}

// Write serializes the pack in the same JSON form ReadPack accepts,
// human-inspectable and stable for audit.
func (p *Pack) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(packJSON{
		ReportID: p.reportID,
		PackHash: p.hash,
		Chunks:   p.chunks,
	})
}
