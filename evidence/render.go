/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package evidence

import (
	"fmt"
	"strings"
)

// maxTableRows bounds the rows included in a rendered table so prompt size
// stays bounded regardless of source table size.
const maxTableRows = 12

// BlockLabel returns the bracketed header used when a chunk is rendered into
// a prompt, e.g. "[Text p03_c01 | page 3]".
func BlockLabel(c Chunk) string {
	label := "Text"
	if c.Kind == KindTable {
		label = "Table"
	}
	return fmt.Sprintf("[%s %s | page %d]", label, c.ID, c.Page)
}

// RenderBlock renders one chunk as a labeled evidence block.
func RenderBlock(c Chunk) string {
	return BlockLabel(c) + "\n" + c.Content
}

// RenderBlocks renders every chunk visible through the lookup source as a
// double-newline separated sequence of labeled blocks, in source order.
func RenderBlocks(chunks []Chunk) string {
	blocks := make([]string, 0, len(chunks))
	for _, c := range chunks {
		blocks = append(blocks, RenderBlock(c))
	}
	return strings.Join(blocks, "\n\n")
}

// normalizeCell flattens a table cell to a single line without otherwise
// "improving" its content.
func normalizeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\n", " ")
	cell = strings.ReplaceAll(cell, "\r", " ")
	return strings.TrimSpace(cell)
}

// RenderMarkdownTable produces the linearized table rendering used as table
// chunk content. Rows beyond the bound are truncated with an explicit
// marker. Intended for ingestion collaborators building table chunks.
func RenderMarkdownTable(header []string, rows [][]string) string {
	if len(header) == 0 && len(rows) == 0 {
		return "(Empty table)"
	}

	cols := len(header)
	if cols == 0 {
		cols = len(rows[0])
		header = make([]string, cols)
		for i := range header {
			header[i] = fmt.Sprintf("col%d", i+1)
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		b.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = normalizeCell(cells[i])
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
	}

	writeRow(header)
	b.WriteString("|")
	for i := 0; i < cols; i++ {
		b.WriteString(" --- |")
	}
	b.WriteString("\n")

	shown := rows
	if len(shown) > maxTableRows {
		shown = shown[:maxTableRows]
	}
	for _, row := range shown {
		writeRow(row)
	}

	if len(rows) > maxTableRows {
		fmt.Fprintf(&b, "\n(Truncated: showing %d of %d rows.)\n", maxTableRows, len(rows))
	}

	return strings.TrimRight(b.String(), "\n")
}
