/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleChunks() []Chunk {
	return []Chunk{
		{ID: "p01_c01", Kind: KindText, Page: 1, Content: "The patient was admitted overnight."},
		{ID: "p02_c01", Kind: KindText, Page: 2, Content: "the escalation pathway was not documented"},
		{ID: "p02_t01", Kind: KindTable, Page: 2, Content: "| action | owner |\n| --- | --- |\n| review | ward |"},
	}
}

func TestNewPackValidation(t *testing.T) {
	tests := []struct {
		name   string
		chunks []Chunk
		wantID string
	}{{
		name: "duplicate id",
		chunks: []Chunk{
			{ID: "p01_c01", Kind: KindText, Page: 1, Content: "a"},
			{ID: "p01_c01", Kind: KindText, Page: 1, Content: "b"},
		},
		wantID: "p01_c01",
	}, {
		name:   "empty id",
		chunks: []Chunk{{Kind: KindText, Page: 1, Content: "a"}},
	}, {
		name:   "zero page",
		chunks: []Chunk{{ID: "p00_c01", Kind: KindText, Page: 0, Content: "a"}},
		wantID: "p00_c01",
	}, {
		name:   "negative page",
		chunks: []Chunk{{ID: "x", Kind: KindText, Page: -3, Content: "a"}},
		wantID: "x",
	}, {
		name:   "unknown kind",
		chunks: []Chunk{{ID: "x", Kind: Kind("figure"), Page: 1, Content: "a"}},
		wantID: "x",
	}}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPack("r1", tt.chunks)
			if err == nil {
				t.Fatal("NewPack() succeeded, wanted *InvalidChunkError")
			}
			var ice *InvalidChunkError
			if !errors.As(err, &ice) {
				t.Fatalf("NewPack() error = %v, wanted *InvalidChunkError", err)
			}
			if ice.ID != tt.wantID {
				t.Errorf("InvalidChunkError.ID = %q, wanted %q", ice.ID, tt.wantID)
			}
		})
	}
}

func TestPackLookupAndOrder(t *testing.T) {
	pack, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}

	if pack.Len() != 3 {
		t.Errorf("Len() = %d, wanted 3", pack.Len())
	}
	if pack.ReportID() != "r1" {
		t.Errorf("ReportID() = %q, wanted %q", pack.ReportID(), "r1")
	}

	c, ok := pack.Lookup("p02_c01")
	if !ok {
		t.Fatal("Lookup(p02_c01) = not found")
	}
	if c.Content != "the escalation pathway was not documented" {
		t.Errorf("Lookup content = %q", c.Content)
	}
	if c.Hash == "" {
		t.Error("chunk hash not populated at construction")
	}

	if _, ok := pack.Lookup("p09_c01"); ok {
		t.Error("Lookup(p09_c01) resolved, wanted miss")
	}

	// Source order is preserved.
	var ids []string
	for _, c := range pack.Chunks() {
		ids = append(ids, c.ID)
	}
	want := []string{"p01_c01", "p02_c01", "p02_t01"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("Chunks() order (-want +got):\n%s", diff)
	}
}

func TestPackChunksReturnsCopy(t *testing.T) {
	pack, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}

	got := pack.Chunks()
	got[0].Content = "tampered"

	again, _ := pack.Lookup("p01_c01")
	if again.Content == "tampered" {
		t.Error("mutating Chunks() result altered pack content")
	}
}

func TestPackHashStable(t *testing.T) {
	a, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}
	b, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}
	if a.Hash() != b.Hash() {
		t.Errorf("pack hash unstable: %q vs %q", a.Hash(), b.Hash())
	}

	changed := sampleChunks()
	changed[1].Content += " on page two"
	c, err := NewPack("r1", changed)
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}
	if c.Hash() == a.Hash() {
		t.Error("pack hash did not change with content")
	}
}

func TestViewRestriction(t *testing.T) {
	pack, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}

	// Unknown ids are silently absent; duplicates collapse.
	v := pack.View("p02_c01", "p02_c01", "nope", "p02_t01")

	if v.Len() != 2 {
		t.Fatalf("View.Len() = %d, wanted 2", v.Len())
	}
	if _, ok := v.Lookup("p01_c01"); ok {
		t.Error("view leaked a chunk that was not requested")
	}
	if _, ok := v.Lookup("nope"); ok {
		t.Error("view resolved an id missing from the pack")
	}

	var ids []string
	for _, c := range v.Chunks() {
		ids = append(ids, c.ID)
	}
	want := []string{"p02_c01", "p02_t01"}
	if diff := cmp.Diff(want, ids); diff != "" {
		t.Errorf("View.Chunks() (-want +got):\n%s", diff)
	}
}

func TestPackJSONRoundTrip(t *testing.T) {
	pack, err := NewPack("r1", sampleChunks())
	if err != nil {
		t.Fatalf("NewPack() error = %v", err)
	}

	var buf bytes.Buffer
	if err := pack.Write(&buf); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	got, err := ReadPack(&buf)
	if err != nil {
		t.Fatalf("ReadPack() error = %v", err)
	}

	if got.ReportID() != pack.ReportID() {
		t.Errorf("ReportID = %q, wanted %q", got.ReportID(), pack.ReportID())
	}
	if got.Hash() != pack.Hash() {
		t.Errorf("Hash = %q, wanted %q", got.Hash(), pack.Hash())
	}
	if diff := cmp.Diff(pack.Chunks(), got.Chunks()); diff != "" {
		t.Errorf("chunks after round trip (-want +got):\n%s", diff)
	}
}
