/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package geminireasoner

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
	"google.golang.org/genai"
)

// gemini is the private implementation of reasoner.Interface.
type gemini[Request promptbuilder.Bindable, Response any] struct {
	client             *genai.Client
	prompt             *promptbuilder.Prompt
	model              string
	temperature        float32
	maxOutputTokens    int32
	systemInstructions *promptbuilder.Prompt
	responseMIMEType   string
	responseSchema     *genai.Schema
	genaiMetrics       *metrics.GenAI
	retryConfig        retry.Config
}

// New creates a Gemini-backed reasoner for the given prompt.
func New[Request promptbuilder.Bindable, Response any](
	client *genai.Client,
	prompt *promptbuilder.Prompt,
	opts ...Option[Request, Response],
) (reasoner.Interface[Request, Response], error) {
	if prompt == nil {
		return nil, errors.New("prompt is required")
	}

	// Unified meter across all reasoners, with model name as a dimension.
	genaiMetrics := metrics.NewGenAI("rubricaf.agents")

	g := &gemini[Request, Response]{
		client:           client,
		prompt:           prompt,
		model:            "gemini-2.5-flash",
		temperature:      0.0, // deterministic by default; this is an audit tool
		maxOutputTokens:  8192,
		responseMIMEType: "application/json",
		genaiMetrics:     genaiMetrics,
		retryConfig:      retry.DefaultConfig(),
	}

	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	return g, nil
}

// Produce implements reasoner.Interface.
func (e *gemini[Request, Response]) Produce(ctx context.Context, request Request) (resp Response, err error) {
	log := clog.FromContext(ctx)

	boundPrompt, err := request.Bind(e.prompt)
	if err != nil {
		return resp, fmt.Errorf("failed to bind request to prompt: %w", err)
	}

	prompt, err := boundPrompt.Build()
	if err != nil {
		return resp, fmt.Errorf("failed to build prompt: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     ptr(e.temperature),
		MaxOutputTokens: e.maxOutputTokens,
	}
	if e.systemInstructions != nil {
		systemPrompt, err := e.systemInstructions.Build()
		if err != nil {
			return resp, fmt.Errorf("building system prompt: %w", err)
		}
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{
				Text: systemPrompt,
			}},
		}
	}
	if e.responseMIMEType != "" {
		config.ResponseMIMEType = e.responseMIMEType
	}
	if e.responseSchema != nil {
		config.ResponseSchema = e.responseSchema
	}

	log.With("model", e.model).
		With("prompt_length", len(prompt)).
		Info("Starting Gemini call")

	contents := []*genai.Content{{
		Role: "user",
		Parts: []*genai.Part{{
			Text: prompt,
		}},
	}}

	response, err := retry.Do(ctx, e.retryConfig, "generate_content", isRetryableVertexError, func() (*genai.GenerateContentResponse, error) {
		return e.client.Models.GenerateContent(ctx, e.model, contents, config)
	})
	if err != nil {
		return resp, fmt.Errorf("failed to generate content with model %q: %w", e.model, err)
	}

	if response != nil && response.UsageMetadata != nil {
		e.genaiMetrics.RecordTokens(ctx, e.model,
			int64(response.UsageMetadata.PromptTokenCount),
			int64(response.UsageMetadata.CandidatesTokenCount))
	}

	if len(response.Candidates) == 0 {
		return resp, errors.New("no content generated - no candidates")
	}
	candidate := response.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return resp, errors.New("no content generated - empty candidate")
	}

	var responseText string
	for _, part := range candidate.Content.Parts {
		if part.Text != "" && !part.Thought {
			responseText = part.Text
		}
	}
	if responseText == "" {
		return resp, errors.New("no text content found in response")
	}

	extractedResponse, err := result.Extract[Response](responseText)
	if err != nil {
		log.With("response", responseText).With("error", err).Error("Failed to parse Gemini response")
		return resp, fmt.Errorf("failed to parse Gemini response: %w", err)
	}

	log.Info("Successfully completed Gemini call")
	return extractedResponse, nil
}

// ptr is a helper function to create a pointer to a value
func ptr[T any](v T) *T {
	return &v
}
