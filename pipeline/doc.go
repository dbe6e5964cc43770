/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package pipeline fans one evidence pack out to every dimension agent,
// audits each resulting judgment with the meta-judge, and assembles the
// combined report.
//
// The two stages run with bounded concurrency and per-dimension wall-clock
// timeouts. Failures are isolated: one dimension's contract violation or
// timeout becomes an AGENT_ERROR row in the report and never cancels or
// blocks its siblings. The assembled report always carries a row for every
// requested dimension, keyed by dimension id, so the output is identical
// regardless of completion order.
package pipeline
