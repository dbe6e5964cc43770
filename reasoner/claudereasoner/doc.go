/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package claudereasoner implements reasoner.Interface on top of the
// Anthropic SDK. Responses are streamed and accumulated into a single
// message, and transient API errors (rate limits, overload) are retried
// with exponential backoff.
package claudereasoner
