/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package pipeline

import (
	"fmt"
	"io"
	"strings"

	"chainguard.dev/rubricaf/laj"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// newSummaryTable creates a table writer with the formatting shared by all
// run summaries.
func newSummaryTable(headers []string, w io.Writer) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
		MaxWidth: 100,
		Behavior: tw.Behavior{TrimSpace: tw.Off},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}

// WriteSummary renders the report as a markdown table, one row per
// dimension in id order.
func WriteSummary(w io.Writer, r *Report) error {
	if _, err := fmt.Fprintf(w, "## %s\n\n", r.Meta.ReportID); err != nil {
		return err
	}

	table := newSummaryTable([]string{"Dimension", "Status", "Rating", "Overall", "Flags", "Detail"}, w)
	for _, e := range r.Entries() {
		rating, overall, flags, detail := "-", "-", "-", ""
		switch e.Status {
		case StatusOK:
			rating = string(e.Judgment.Rating)
			overall = string(e.Meta.Overall)
			if e.Meta.Overall == laj.ScoreFail {
				overall = fmt.Sprintf("❌ %s", overall)
			}
			if len(e.Meta.Flags) > 0 {
				names := make([]string, 0, len(e.Meta.Flags))
				for _, f := range e.Meta.Flags {
					names = append(names, string(f))
				}
				flags = strings.Join(names, ", ")
			}
			if e.Judgment.Uncertainty {
				detail = "uncertain"
			}
		case StatusAgentError:
			if e.Judgment != nil {
				rating = string(e.Judgment.Rating)
			}
			detail = e.Cause
		}
		if err := table.Append([]string{
			string(e.DimensionID), string(e.Status), rating, overall, flags, detail,
		}); err != nil {
			return err
		}
	}
	return table.Render()
}
