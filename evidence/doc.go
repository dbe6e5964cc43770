/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package evidence provides the addressable evidence corpus that grounds every
judgment in the pipeline.

A Pack holds the text and table chunks extracted from exactly one source
report. Packs are immutable once constructed: downstream consumers look
chunks up by id but can never alter content, which is what makes cited
quotes checkable after the fact.

A View is a read-only projection of a Pack restricted to an explicit id set.
The meta-judge receives a View containing only the chunks a dimension agent
cited, so its grounding assessment cannot draw on material the agent never
referenced.
*/
package evidence
