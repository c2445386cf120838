// Package clserror defines the typed errors surfaced by the classification
// pipeline. Lookup misses are not errors anywhere in the core; these types
// cover genuine failures only.
package clserror

import "fmt"

// ParseError represents a field that could not be parsed from a raw record.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s='%s': %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReferenceDataError represents missing or unloadable reference data (the
// merchant catalog, the verified-classification table). This is the one
// condition that must abort a classification run: classifying everything as
// unclassified would silently corrupt accuracy metrics.
type ReferenceDataError struct {
	Source string
	Err    error
}

func (e *ReferenceDataError) Error() string {
	return fmt.Sprintf("reference data unavailable (%s): %v", e.Source, e.Err)
}

func (e *ReferenceDataError) Unwrap() error {
	return e.Err
}

// StoreError wraps a storage read or write failure.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s failed: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
