/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

// GenAI provides OpenTelemetry metrics for generative AI operations.
// It includes counters for token usage (prompt and completion) and for
// model verdicts, with support for graceful degradation if metric
// creation fails.
type GenAI struct {
	meter            metric.Meter
	promptTokens     metric.Int64Counter
	completionTokens metric.Int64Counter
	verdictCounter   metric.Int64Counter
	attrEnricher     AttributeEnricher
}

// NewGenAI creates a new GenAI metrics instance with the specified meter name.
// Uses graceful degradation: if any metric counter fails to initialize, logs a warning
// and uses a no-op counter instead of failing entirely.
//
// The meterName should be unified across all reasoners (e.g., "rubricaf.agents")
// with the model name serving as a dimension on the recorded metrics to differentiate
// between different models (Claude, GPT, Gemini, etc.).
func NewGenAI(meterName string) *GenAI {
	meter := otel.Meter(meterName, metric.WithInstrumentationVersion("1.0.0"))

	// Create prompt tokens counter with graceful degradation
	promptTokens, err := meter.Int64Counter("genai.token.prompt",
		metric.WithDescription("The number of prompt tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create prompt tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		promptTokens = noop.Int64Counter{}
	}

	// Create completion tokens counter with graceful degradation
	completionTokens, err := meter.Int64Counter("genai.token.completion",
		metric.WithDescription("The number of completion tokens used"),
		metric.WithUnit("{tokens}"))
	if err != nil {
		slog.Warn("Failed to create completion tokens counter, metrics will be disabled", "error", err, "meter", meterName)
		completionTokens = noop.Int64Counter{}
	}

	// Create verdict counter with graceful degradation
	verdictCounter, err := meter.Int64Counter("genai.verdicts",
		metric.WithDescription("The number of verdicts produced, by kind"),
		metric.WithUnit("{verdicts}"))
	if err != nil {
		slog.Warn("Failed to create verdict counter, metrics will be disabled", "error", err, "meter", meterName)
		verdictCounter = noop.Int64Counter{}
	}

	return &GenAI{
		meter:            meter,
		promptTokens:     promptTokens,
		completionTokens: completionTokens,
		verdictCounter:   verdictCounter,
	}
}

// SetAttributeEnricher sets the attribute enricher for this metrics instance.
// The enricher is called before recording each metric to add contextual attributes
// (e.g., report, dimension).
func (m *GenAI) SetAttributeEnricher(enricher AttributeEnricher) {
	m.attrEnricher = enricher
}

// RecordTokens records prompt and completion token usage with optional enrichment.
// The model parameter is added as a base attribute, and the enricher (if set)
// can add additional contextual attributes.
func (m *GenAI) RecordTokens(ctx context.Context, model string, promptTokens, completionTokens int64, attrs ...attribute.KeyValue) {
	// Base attributes
	baseAttrs := []attribute.KeyValue{
		attribute.String("model", model),
	}

	// Enrich with application-specific attributes
	if m.attrEnricher != nil {
		baseAttrs = m.attrEnricher(ctx, baseAttrs)
	}

	baseAttrs = append(baseAttrs, attrs...)

	// Record token metrics
	m.promptTokens.Add(ctx, promptTokens, metric.WithAttributes(baseAttrs...))
	m.completionTokens.Add(ctx, completionTokens, metric.WithAttributes(baseAttrs...))
}

// RecordVerdict records a single verdict of the given kind (e.g., a rating
// or an overall score) with optional enrichment.
func (m *GenAI) RecordVerdict(ctx context.Context, model, kind string, attrs ...attribute.KeyValue) {
	// Base attributes
	baseAttrs := []attribute.KeyValue{
		attribute.String("model", model),
		attribute.String("verdict", kind),
	}

	// Enrich with application-specific attributes
	if m.attrEnricher != nil {
		baseAttrs = m.attrEnricher(ctx, baseAttrs)
	}

	baseAttrs = append(baseAttrs, attrs...)

	m.verdictCounter.Add(ctx, 1, metric.WithAttributes(baseAttrs...))
}
