package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"time"
)

// Error types for the bmgrep search pipeline
type ErrorType string

const (
	// Input source errors
	ErrorTypeNotFound   ErrorType = "not_found"
	ErrorTypePermission ErrorType = "permission"
	ErrorTypeIO         ErrorType = "io"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// InputError represents a failure to obtain the search buffer from a named
// source. The Type field distinguishes not-found, access-denied, and other
// I/O failures so callers can map each to its own user-facing message.
type InputError struct {
	Type       ErrorType
	Path       string
	Operation  string
	Underlying error
	Timestamp  time.Time
}

// NewInputError creates a new input error, classifying the underlying error
// into not-found, permission, or generic I/O.
func NewInputError(op, path string, err error) *InputError {
	errorType := ErrorTypeIO
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		errorType = ErrorTypeNotFound
	case stderrors.Is(err, fs.ErrPermission):
		errorType = ErrorTypePermission
	}

	return &InputError{
		Type:       errorType,
		Path:       path,
		Operation:  op,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *InputError) Error() string {
	return fmt.Sprintf("%s %s failed for %s: %v", e.Type, e.Operation, e.Path, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *InputError) Unwrap() error {
	return e.Underlying
}

// UserMessage returns the message shown to the user for this failure class.
func (e *InputError) UserMessage() string {
	switch e.Type {
	case ErrorTypeNotFound:
		return fmt.Sprintf("file not found: %s", e.Path)
	case ErrorTypePermission:
		return fmt.Sprintf("access denied: %s", e.Path)
	default:
		return fmt.Sprintf("could not read %s: %v", e.Path, e.Underlying)
	}
}

// IsNotFound reports whether err is an InputError for a missing source.
func IsNotFound(err error) bool {
	var ie *InputError
	return stderrors.As(err, &ie) && ie.Type == ErrorTypeNotFound
}

// IsPermission reports whether err is an InputError for a denied source.
func IsPermission(err error) bool {
	var ie *InputError
	return stderrors.As(err, &ie) && ie.Type == ErrorTypePermission
}

// ConfigError represents a configuration error
type ConfigError struct {
	Path       string
	Underlying error
	Timestamp  time.Time
}

// NewConfigError creates a new config error
func NewConfigError(path string, err error) *ConfigError {
	return &ConfigError{
		Path:       path,
		Underlying: err,
		Timestamp:  time.Now(),
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error in %s: %v", e.Path, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}
