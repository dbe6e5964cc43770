/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package promptbuilder

import (
	"fmt"
	"maps"
)

// stringLiteral only accepts untyped string constants, which keeps template
// text and literal bindings under developer control at compile time.
type stringLiteral string

// Prompt is an immutable template with named placeholders. Binding methods
// return a new Prompt; the receiver is never modified, so a package-level
// template can be shared across concurrent requests.
type Prompt struct {
	template string
	bindings map[string]binding
}

// NewPrompt parses a template literal and registers one unbound binding per
// distinct {{name}} placeholder.
func NewPrompt(template stringLiteral) (*Prompt, error) {
	bindings := make(map[string]binding)
	parsed, err := walkTemplate(string(template), func(name string) (string, error) {
		if _, ok := bindings[name]; !ok {
			bindings[name] = &unboundBinding{name: name}
		}
		return fmt.Sprintf("{{%s}}", name), nil
	})
	if err != nil {
		return nil, err
	}
	return &Prompt{template: parsed, bindings: bindings}, nil
}

// MustNewPrompt is NewPrompt for package-level template variables; it panics
// on a malformed template.
func MustNewPrompt(template stringLiteral) *Prompt {
	p, err := NewPrompt(template)
	if err != nil {
		panic(err)
	}
	return p
}

// Placeholders returns the set of placeholder names in the template.
func (p *Prompt) Placeholders() map[string]struct{} {
	names := make(map[string]struct{}, len(p.bindings))
	for name := range p.bindings {
		names[name] = struct{}{}
	}
	return names
}

// with returns a copy of the prompt with one binding replaced.
func (p *Prompt) with(name string, b binding) (*Prompt, error) {
	existing, ok := p.bindings[name]
	if !ok {
		return nil, fmt.Errorf("binding %q not found in template", name)
	}
	if _, unbound := existing.(*unboundBinding); !unbound {
		return nil, fmt.Errorf("binding %q already bound", name)
	}
	next := &Prompt{template: p.template, bindings: maps.Clone(p.bindings)}
	next.bindings[name] = b
	return next, nil
}

// BindStringLiteral attaches a developer-controlled literal string.
func (p *Prompt) BindStringLiteral(name string, value stringLiteral) (*Prompt, error) {
	return p.with(name, &literalBinding{val: string(value)})
}

// BindXML attaches structured data rendered as indented XML.
func (p *Prompt) BindXML(name string, data any) (*Prompt, error) {
	return p.with(name, &xmlBinding{data: data})
}

// BindJSON attaches structured data rendered as indented JSON.
func (p *Prompt) BindJSON(name string, data any) (*Prompt, error) {
	return p.with(name, &jsonBinding{data: data})
}

// BindYAML attaches structured data rendered as YAML.
func (p *Prompt) BindYAML(name string, data any) (*Prompt, error) {
	return p.with(name, &yamlBinding{data: data})
}

// Build renders the final prompt. It fails if any placeholder is unbound or
// a binding's encoder rejects its value.
func (p *Prompt) Build() (string, error) {
	values := make(map[string]string, len(p.bindings))
	for name, b := range p.bindings {
		val, err := b.value()
		if err != nil {
			return "", err
		}
		values[name] = val
	}
	return walkTemplate(p.template, func(name string) (string, error) {
		return values[name], nil
	})
}
