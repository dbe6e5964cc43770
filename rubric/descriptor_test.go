/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package rubric

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRatingValid(t *testing.T) {
	for _, r := range Ratings() {
		if !r.Valid() {
			t.Errorf("Rating(%q).Valid() = false", r)
		}
	}
	for _, r := range []Rating{"", "good", "EXCELLENT", "4"} {
		if r.Valid() {
			t.Errorf("Rating(%q).Valid() = true, wanted false", r)
		}
	}
}

func TestBuiltinDescriptors(t *testing.T) {
	descs := Builtin()
	if len(descs) != 8 {
		t.Fatalf("Builtin() returned %d descriptors, wanted 8", len(descs))
	}

	seen := make(map[DimensionID]struct{})
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			t.Errorf("builtin %s invalid: %v", d.ID, err)
		}
		if _, dup := seen[d.ID]; dup {
			t.Errorf("duplicate builtin id %s", d.ID)
		}
		seen[d.ID] = struct{}{}
	}

	// The blame dimension carries cue lists for the polarity guard.
	var d4 *Descriptor
	for _, d := range descs {
		if d.ID == "D4" {
			d4 = d
		}
	}
	if d4 == nil {
		t.Fatal("builtin set missing D4")
	}
	if len(d4.Polarity.NegativeCues) == 0 || len(d4.Polarity.SubjectTokens) == 0 {
		t.Error("D4 polarity cue lists are empty")
	}
}

func TestBuiltinReturnsCopies(t *testing.T) {
	a := Builtin()
	a[0].Name = "tampered"
	b := Builtin()
	if b[0].Name == "tampered" {
		t.Error("mutating one Builtin() result leaked into the next")
	}
}

const rubricYAML = `
- id: D9
  name: Test dimension
  judgement_question: Is this a test?
  rating_criteria:
    GOOD: strong
    SOME: partial
    LITTLE: weak
  polarity:
    positive: supports
    negative: contradicts
  in_scope: [testing]
`

func TestLoad(t *testing.T) {
	descs, err := Load(strings.NewReader(rubricYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(descs) != 1 {
		t.Fatalf("Load() returned %d descriptors, wanted 1", len(descs))
	}
	d := descs[0]
	if d.ID != "D9" || d.RatingCriteria[RatingSome] != "partial" {
		t.Errorf("Load() decoded %+v", d)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rubric.yaml")
	require.NoError(t, os.WriteFile(path, []byte(rubricYAML), 0o644), "failed to write rubric file")

	descs, err := LoadFile(path)
	require.NoError(t, err, "failed to load rubric file")
	require.Len(t, descs, 1)
	require.Equal(t, DimensionID("D9"), descs[0].ID)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err, "expected an error for a missing file")
}

func TestLoadRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{{
		name: "missing criteria",
		yaml: `
- id: D9
  name: Test
  judgement_question: q
  rating_criteria:
    GOOD: strong
  polarity: {positive: p, negative: n}
`,
	}, {
		name: "duplicate ids",
		yaml: rubricYAML + rubricYAML[1:],
	}, {
		name: "missing question",
		yaml: `
- id: D9
  name: Test
  rating_criteria: {GOOD: g, SOME: s, LITTLE: l}
  polarity: {positive: p, negative: n}
`,
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tt.yaml)); err == nil {
				t.Error("Load() succeeded, wanted error")
			}
		})
	}
}
