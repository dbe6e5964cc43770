/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

import (
	"strings"
	"testing"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		cited string
		want  string
	}{
		{"p03_c01", "p03_c01"},
		{"Text p03_c01", "p03_c01"},
		{"Table p02_t01", "p02_t01"},
		{"[Text p12_c04 | page 12]", "p12_c04"},
		{"TEXT P03_C01", "P03_C01"},
		// Opaque id schemes pass through untouched.
		{"T1-p3-c2", "T1-p3-c2"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExtractID(tt.cited); got != tt.want {
			t.Errorf("ExtractID(%q) = %q, wanted %q", tt.cited, got, tt.want)
		}
	}
}

func TestFormatID(t *testing.T) {
	if got := FormatID(3, 1, KindText); got != "p03_c01" {
		t.Errorf("FormatID(3, 1, text) = %q", got)
	}
	if got := FormatID(2, 10, KindTable); got != "p02_t10" {
		t.Errorf("FormatID(2, 10, table) = %q", got)
	}
}

func TestRenderBlock(t *testing.T) {
	c := Chunk{ID: "p03_c02", Kind: KindText, Page: 3, Content: "some text"}
	got := RenderBlock(c)
	want := "[Text p03_c02 | page 3]\nsome text"
	if got != want {
		t.Errorf("RenderBlock() = %q, wanted %q", got, want)
	}

	c = Chunk{ID: "p02_t01", Kind: KindTable, Page: 2, Content: "| a |"}
	if got := RenderBlock(c); !strings.HasPrefix(got, "[Table p02_t01 | page 2]") {
		t.Errorf("RenderBlock() table label = %q", got)
	}
}

func TestRenderMarkdownTable(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		if got := RenderMarkdownTable(nil, nil); got != "(Empty table)" {
			t.Errorf("RenderMarkdownTable(nil, nil) = %q", got)
		}
	})

	t.Run("with header", func(t *testing.T) {
		got := RenderMarkdownTable([]string{"action", "owner"}, [][]string{
			{"review\npathway", "ward"},
			{"audit"},
		})
		lines := strings.Split(got, "\n")
		if lines[0] != "| action | owner |" {
			t.Errorf("header row = %q", lines[0])
		}
		if lines[1] != "| --- | --- |" {
			t.Errorf("separator row = %q", lines[1])
		}
		// Embedded newlines flattened, short rows padded.
		if lines[2] != "| review pathway | ward |" {
			t.Errorf("row 1 = %q", lines[2])
		}
		if lines[3] != "| audit |  |" {
			t.Errorf("row 2 = %q", lines[3])
		}
	})

	t.Run("headerless fallback", func(t *testing.T) {
		got := RenderMarkdownTable(nil, [][]string{{"x", "y"}})
		if !strings.HasPrefix(got, "| col1 | col2 |") {
			t.Errorf("fallback header = %q", got)
		}
	})

	t.Run("truncation", func(t *testing.T) {
		rows := make([][]string, 20)
		for i := range rows {
			rows[i] = []string{"v"}
		}
		got := RenderMarkdownTable([]string{"h"}, rows)
		if !strings.Contains(got, "(Truncated: showing 12 of 20 rows.)") {
			t.Errorf("missing truncation marker in:\n%s", got)
		}
	})
}
