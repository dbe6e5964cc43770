/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package reasoner defines the provider-neutral contract for single-shot
// structured model calls: bind a request into a prompt, send it, and parse
// the JSON response into a typed value.
//
// Provider implementations live in the claudereasoner, openaireasoner and
// geminireasoner subpackages. Evaluation code should depend only on
// Interface so that provider selection stays a wiring concern.
package reasoner

import (
	"context"

	"chainguard.dev/rubricaf/promptbuilder"
)

// Interface is the contract for structured model calls.
type Interface[Request promptbuilder.Bindable, Response any] interface {
	// Produce binds the request into the configured prompt, sends it to
	// the model, and parses the structured response.
	Produce(ctx context.Context, request Request) (Response, error)
}
