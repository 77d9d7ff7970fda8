package errors

import (
	"errors"
	"fmt"
)

// Error kinds. Every fatal error surfaced by the CLI matches exactly one of
// these with errors.Is.
var (
	// ErrIO reports that the profile (or an output file) could not be read or written.
	ErrIO = errors.New("i/o error")

	// ErrSchema reports that the document does not match the profile structure.
	ErrSchema = errors.New("schema error")

	// ErrConfig reports invalid configuration, flags or filter expressions.
	ErrConfig = errors.New("configuration error")
)

// SchemaError is a structural decoding failure located by a JSON path
// relative to the document root, e.g. ".kernels.nodes[0].start_time".
type SchemaError struct {
	Path string
	Err  error
}

func (e *SchemaError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", ErrSchema, e.Err)
	}
	return fmt.Sprintf("%v at $%s: %v", ErrSchema, e.Path, e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is makes every SchemaError match ErrSchema.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// SchemaAt prefixes segment to the location of err. Errors that are not yet
// a *SchemaError become one rooted at segment.
func SchemaAt(segment string, err error) error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*SchemaError); ok {
		return &SchemaError{Path: segment + se.Path, Err: se.Err}
	}
	return &SchemaError{Path: segment, Err: err}
}

// Schema marks err as a schema error without a location.
func Schema(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*SchemaError); ok {
		return err
	}
	return &SchemaError{Err: err}
}

// IO marks err as an i/o failure while keeping the underlying cause
// reachable through errors.Is and errors.As.
func IO(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// Config builds a configuration error.
func Config(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfig, fmt.Sprintf(format, args...))
}
