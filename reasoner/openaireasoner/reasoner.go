/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package openaireasoner

import (
	"context"
	"errors"
	"fmt"

	"chainguard.dev/rubricaf/metrics"
	"chainguard.dev/rubricaf/promptbuilder"
	"chainguard.dev/rubricaf/reasoner"
	"chainguard.dev/rubricaf/result"
	"chainguard.dev/rubricaf/retry"
	"github.com/chainguard-dev/clog"
	"github.com/openai/openai-go"
)

// gpt is the private implementation of reasoner.Interface.
type gpt[Request promptbuilder.Bindable, Response any] struct {
	client             openai.Client
	modelName          string
	systemInstructions *promptbuilder.Prompt
	prompt             *promptbuilder.Prompt
	maxTokens          int64
	temperature        float64
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates an OpenAI-backed reasoner for the given prompt.
func New[Request promptbuilder.Bindable, Response any](
	client openai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (reasoner.Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt cannot be nil")
	}

	// Unified meter across all reasoners, with model name as a dimension.
	genaiMetrics := metrics.NewGenAI("rubricaf.agents")

	g := &gpt[Request, Response]{
		client:       client,
		modelName:    "gpt-4.1",
		prompt:       prompt,
		maxTokens:    8192,
		temperature:  0.0, // deterministic by default; this is an audit tool
		genaiMetrics: genaiMetrics,
		retryConfig:  retry.DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return g, nil
}

// Produce implements reasoner.Interface.
func (e *gpt[Request, Response]) Produce(ctx context.Context, request Request) (response Response, err error) {
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
		Info("Starting OpenAI call")

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return response, fmt.Errorf("building system prompt: %w", err)
		}
		messages = append(messages, openai.SystemMessage(systemPrompt))
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(e.modelName),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(e.maxTokens),
		Temperature:         openai.Float(e.temperature),
	}

	completion, err := retry.Do(ctx, e.retryConfig, "chat_completion", isRetryableOpenAIError, func() (*openai.ChatCompletion, error) {
		return e.client.Chat.Completions.New(ctx, params)
	})
	if err != nil {
		return response, fmt.Errorf("failed to complete OpenAI chat: %w", err)
	}

	if completion.Usage.PromptTokens > 0 || completion.Usage.CompletionTokens > 0 {
		e.genaiMetrics.RecordTokens(ctx, e.modelName, completion.Usage.PromptTokens, completion.Usage.CompletionTokens)
	}

	if len(completion.Choices) == 0 {
		return response, errors.New("no choices in OpenAI response")
	}
	textContent := completion.Choices[0].Message.Content
	if textContent == "" {
		return response, errors.New("no content in OpenAI response")
	}

	resp, err := result.Extract[Response](textContent)
	if err != nil {
		log.With("response", textContent).
			With("error", err).
			Error("Failed to parse OpenAI response")
		return response, fmt.Errorf("failed to parse response: %w", err)
	}

	log.Info("Successfully completed OpenAI call")
	return resp, nil
}
