/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package openaireasoner implements reasoner.Interface on top of the
// OpenAI SDK using the Chat Completions API. Transient API errors
// (rate limits, server errors) are retried with exponential backoff.
package openaireasoner
