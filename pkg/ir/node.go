// SPDX-License-Identifier: Apache-2.0

// Package ir defines the tagged union of SQL operations the replay and
// lint engine understands. Values are produced by a SQL parsing front end
// (or a Liquibase changeset bridge) that lives outside this module; ir
// only describes the shape of what that front end hands to the core.
package ir

// Node is implemented by every statement variant the engine understands.
// The set of implementers is closed: adding a new DDL form the engine
// should model is a code change to this package, not a plugin.
type Node interface {
	isNode()
}

// QualifiedName is a schema-qualified object name. Upstream normalization
// guarantees Schema is always set by the time a Node reaches this
// package.
type QualifiedName struct {
	Schema string
	Name   string
}

// Key returns the canonical catalog key "schema.name".
func (q QualifiedName) Key() string {
	return q.Schema + "." + q.Name
}

// Display returns a user-facing name, omitting the schema prefix when it
// matches defaultSchema.
func (q QualifiedName) Display(defaultSchema string) string {
	if q.Schema == defaultSchema {
		return q.Name
	}
	return q.Key()
}

// Span is the source location a statement was parsed from, in both line
// and byte-offset coordinates so callers can report either.
type Span struct {
	StartLine   int
	EndLine     int
	StartOffset int
	EndOffset   int
}

// Located pairs a Node with the source span it was parsed from.
type Located struct {
	Node Node
	Span Span
}
