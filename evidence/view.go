/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

// View is a read-only projection of a Pack restricted to an explicit chunk
// id set. It deliberately carries no reference back to the pack it was built
// from: a consumer holding a View can only see the chunks it was given.
type View struct {
	chunks []Chunk
	byID   map[string]int
}

// Len returns the number of chunks visible through the view.
func (v *View) Len() int { return len(v.chunks) }

// Lookup resolves a chunk by id within the view.
func (v *View) Lookup(id string) (Chunk, bool) {
	i, ok := v.byID[id]
	if !ok {
		return Chunk{}, false
	}
	return v.chunks[i], true
}

// Chunks returns the visible chunks in pack source order, as a copy.
func (v *View) Chunks() []Chunk {
	out := make([]Chunk, len(v.chunks))
	copy(out, v.chunks)
	return out
}

// Lookuper resolves chunk ids to chunks. Both *Pack and *View satisfy it,
// so citation verification can run against either the full corpus or a
// restricted projection.
type Lookuper interface {
	Lookup(id string) (Chunk, bool)
}

var (
	_ Lookuper = (*Pack)(nil)
	_ Lookuper = (*View)(nil)
)
