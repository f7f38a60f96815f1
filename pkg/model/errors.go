package model

import "fmt"

// NotFoundError indicates that no model document exists at the given path.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("model document not found: %s", e.Path)
}

// ParseError indicates that the file at Path is not a valid model document.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model document %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ValidationError indicates that a mutation would leave the document in an
// inconsistent state (duplicate part name, unknown directive, ...).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
