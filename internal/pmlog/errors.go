package pmlog

import (
	"fmt"

	"github.com/proseengine/core/internal/position"
)

// SchemaError covers unknown node/mark types, content-expression
// violations, and missing required attributes.
type SchemaError struct{ Msg string }

func (e *SchemaError) Error() string { return "schema: " + e.Msg }

// NewSchemaError wraps msg as a SchemaError.
func NewSchemaError(msg string) *SchemaError { return &SchemaError{Msg: msg} }

// RangeError covers out-of-bounds positions and invalid paths.
type RangeError struct {
	Pos int
	Msg string
}

func (e *RangeError) Error() string { return fmt.Sprintf("range: position %d: %s", e.Pos, e.Msg) }

// NewRangeError wraps a position.RangeError-shaped condition.
func NewRangeError(pos int, msg string) *RangeError { return &RangeError{Pos: pos, Msg: msg} }

// StepError covers a step Apply rejection.
type StepError struct{ Msg string }

func (e *StepError) Error() string { return "step: " + e.Msg }

// NewStepError wraps msg as a StepError.
func NewStepError(msg string) *StepError { return &StepError{Msg: msg} }

// ParseError covers an HTML parse producing an element the schema cannot
// accept at that context; caught per-element during HTML import.
type ParseError struct {
	Msg string
	Rng *position.Range
}

func (e *ParseError) Error() string { return "parse: " + e.Msg }

// Range implements the ranged-diagnostic interface consumed by
// Logger.Diagnostics, mirroring loc.ErrorWithRange.
func (e *ParseError) Range() position.Range {
	if e.Rng != nil {
		return *e.Rng
	}
	return position.Range{}
}

// NewParseError wraps msg as a ParseError, optionally anchored to rng.
func NewParseError(msg string, rng *position.Range) *ParseError {
	return &ParseError{Msg: msg, Rng: rng}
}

// QuotaError is raised when a transaction would exceed maxLength; the
// transaction is rejected at dispatch and never applied.
type QuotaError struct{ Limit, Would int }

func (e *QuotaError) Error() string {
	return fmt.Sprintf("quota: transaction would grow document to %d characters, exceeding maxLength %d", e.Would, e.Limit)
}

// PluginError wraps a hook panic/error; the plugin is quarantined for the
// remainder of the hook cycle but not unloaded.
type PluginError struct {
	Name string
	Err  error
}

func (e *PluginError) Error() string { return fmt.Sprintf("plugin %q: %v", e.Name, e.Err) }
func (e *PluginError) Unwrap() error { return e.Err }
