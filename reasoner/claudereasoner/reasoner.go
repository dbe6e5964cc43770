/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package claudereasoner

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/rubricaf/metrics"
	"chainguard.dev/rubricaf/promptbuilder"
	"chainguard.dev/rubricaf/reasoner"
	"chainguard.dev/rubricaf/result"
	"chainguard.dev/rubricaf/retry"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/chainguard-dev/clog"
)

// claude is the private implementation of reasoner.Interface.
type claude[Request promptbuilder.Bindable, Response any] struct {
	client             anthropic.Client
	modelName          string
	systemInstructions *promptbuilder.Prompt
	prompt             *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates a Claude-backed reasoner for the given prompt.
func New[Request promptbuilder.Bindable, Response any](
	client anthropic.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (reasoner.Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	// Unified meter across all reasoners, with model name as a dimension.
	genaiMetrics := metrics.NewGenAI("rubricaf.agents")

	c := &claude[Request, Response]{
		client:       client,
		modelName:    "claude-sonnet-4-5",
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.0, // deterministic by default; this is an audit tool
		genaiMetrics: genaiMetrics,
		retryConfig:  retry.DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return c, nil
}

// Produce implements reasoner.Interface.
func (e *claude[Request, Response]) Produce(ctx context.Context, request Request) (response Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return response, fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := boundPrompt.Build()
	if err != nil {
		return response, fmt.Errorf("failed to build prompt: %w", err)
	}

	log.With("model", e.modelName).
		With("prompt_length", len(prompt)).
		Info("Starting Claude call")

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(e.modelName),
		MaxTokens: e.maxTokens,
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{
				anthropic.NewTextBlock(prompt),
			},
		}},
	}
	params.Temperature = anthropic.Float(e.temperature)

	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	// Stream the response with retry for transient errors.
	message, err := retry.Do(ctx, e.retryConfig, "stream_message", isRetryableClaudeError, func() (anthropic.Message, error) {
		stream := e.client.Messages.NewStreaming(ctx, params)
		var msg anthropic.Message
		for stream.Next() {
			event := stream.Current()
			if err := msg.Accumulate(event); err != nil {
				return msg, fmt.Errorf("failed to accumulate event: %w", err)
			}
		}
		if err := stream.Err(); err != nil {
			return msg, err
		}
		return msg, nil
	})
	if err != nil {
		return response, fmt.Errorf("failed to stream Claude response: %w", err)
	}

	if message.Usage.InputTokens > 0 || message.Usage.OutputTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, message.Usage.InputTokens, message.Usage.OutputTokens)
	}

	var textContent string
	for _, content := range message.Content {
		if content.Type == "text" {
			textContent = content.Text
		}
	}
	if textContent == "" {
		return response, errors.New("no content in Claude's response")
	}

	resp, err := result.Extract[Response](textContent)
	if err != nil {
		log.With("response", textContent).
			With("error", err).
			Error("Failed to parse Claude response")
		return response, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Info("Successfully completed Claude call")
	return resp, nil
}
