/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package geminireasoner implements reasoner.Interface on top of the
// Google GenAI SDK. Responses are requested as JSON, optionally with a
// response schema, and transient Vertex AI errors are retried with
// exponential backoff.
package geminireasoner
