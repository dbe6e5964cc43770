/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package result recovers structured JSON from model response text, which
// may arrive bare, wrapped in markdown fences, or embedded in prose.
package result

import (
	"encoding/json"
	"strings"
)

// ExtractJSON returns the JSON payload of a model response. It prefers a
// fenced ```json block, then strips stray fences, then falls back to the
// outermost brace pair so a response with prose around the object still
// parses.
func ExtractJSON(responseText string) string {
	if block, ok := fencedBlock(responseText); ok {
		return block
	}

	text := strings.TrimSpace(responseText)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if json.Valid([]byte(text)) {
		return text
	}

	// Recovery: the outermost {...} span.
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}
	return text
}

// fencedBlock extracts the content of the first ```json fence, if any.
func fencedBlock(text string) (string, bool) {
	var out []string
	inBlock := false
	for _, line := range strings.Split(text, "\n") {
		switch {
		case !inBlock && strings.TrimSpace(line) == "```json":
			inBlock = true
		case inBlock && strings.TrimSpace(line) == "```":
			return strings.TrimSpace(strings.Join(out, "\n")), true
		case inBlock:
			out = append(out, line)
		}
	}
	if inBlock {
		// Unterminated fence; treat accumulated lines as the payload.
		return strings.TrimSpace(strings.Join(out, "\n")), true
	}
	return "", false
}

// Extract parses the JSON payload of a model response into T.
func Extract[T any](responseText string) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(ExtractJSON(responseText)), &out); err != nil {
		return out, err
	}
	return out, nil
}
