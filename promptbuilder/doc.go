/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

/*
Package promptbuilder constructs model prompts from developer-owned template
literals with {{placeholder}} bindings, in the spirit of prepared statements.

Templates are declared once per agent and bound per request: evidence blocks,
rubric data, and agent output are attached through BindJSON, BindYAML, or
BindXML so runtime content is always routed through an encoder rather than
concatenated into the template. Build refuses to produce a prompt while any
placeholder remains unbound.

Request types implement Bindable so an executor can bind request data into
its configured template without knowing the template's shape.
*/
package promptbuilder
