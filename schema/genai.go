/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package schema

import (
	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

// Genai reflects T and converts the result into the schema shape the
// Gemini API expects for structured JSON output.
func Genai[T any]() *genai.Schema {
	return ToGenai(ReflectType[T]())
}

// ToGenai converts a reflected JSON schema into a *genai.Schema. Only the
// subset the structured-output API understands is carried over: type,
// description, enum values, required properties, and nested object/array
// shapes.
func ToGenai(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genai.Type(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	for _, v := range s.Enum {
		if str, ok := v.(string); ok {
			out.Enum = append(out.Enum, str)
		}
	}
	if s.Items != nil {
		out.Items = ToGenai(s.Items)
	}
	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = ToGenai(pair.Value)
		}
	}
	return out
}
