// Package parsererror defines the typed errors surfaced by the parsing and
// analysis engines.
package parsererror

import "fmt"

// ExtractionError represents a failure to pull a specific field out of
// receipt text. Extraction misses are not errors (the field is simply
// absent); this type is reserved for genuinely malformed input handed to
// a helper that expected better.
type ExtractionError struct {
	Field string
	Value string
	Err   error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract %s from '%s': %v", e.Field, e.Value, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// InvalidPatternError reports a malformed regular expression handed to the
// pattern search. The search engine recovers by returning an empty result
// set; this error travels alongside so callers can report the rejection.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid search pattern '%s': %v", e.Pattern, e.Err)
}

func (e *InvalidPatternError) Unwrap() error {
	return e.Err
}

// UnknownFieldError reports a field name outside the record schema.
// Unlike unknown algorithm names, this is a broken calling contract and is
// surfaced to the caller rather than recovered.
type UnknownFieldError struct {
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("unknown record field: %s", e.Field)
}

// UnknownAlgorithmError reports an unrecognized search or sort algorithm
// name. The engines fall back to their defaults instead of failing the
// request; the error exists so the fallback can be logged.
type UnknownAlgorithmError struct {
	Kind      string // "search" or "sort"
	Algorithm string
}

func (e *UnknownAlgorithmError) Error() string {
	return fmt.Sprintf("unknown %s algorithm: %s", e.Kind, e.Algorithm)
}

// InvalidFormatError represents an input file that could not be read as the
// expected plain-text receipt format.
type InvalidFormatError struct {
	FilePath string
	Msg      string
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid input file '%s': %s", e.FilePath, e.Msg)
}
