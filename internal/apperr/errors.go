// Package apperr defines the error kinds surfaced by leadflow: configuration,
// parse and external-service failures.
package apperr

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a required configuration value that is missing.
// It is fatal at startup.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: missing required value %s", e.Key)
}

// NewConfigurationError returns a ConfigurationError for key.
func NewConfigurationError(key string) *ConfigurationError {
	return &ConfigurationError{Key: key}
}

// ParseError wraps a failure to decode lead input (CSV, XLSX, email list).
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err as a ParseError for the given input source.
func NewParseError(source string, err error) *ParseError {
	return &ParseError{Source: source, Err: err}
}

// ExternalServiceError wraps a failure of the sink, the text-generation
// service or the SMTP relay.
type ExternalServiceError struct {
	Service string
	Op      string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Service, e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// NewExternalServiceError wraps err as an ExternalServiceError.
// A nil err yields nil.
func NewExternalServiceError(service, op string, err error) error {
	if err == nil {
		return nil
	}
	return &ExternalServiceError{Service: service, Op: op, Err: err}
}

// IsConfiguration returns true if err (or any error in its chain) is a
// ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsParse returns true if err (or any error in its chain) is a ParseError.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}

// IsExternal returns true if err (or any error in its chain) is an
// ExternalServiceError.
func IsExternal(err error) bool {
	var ee *ExternalServiceError
	return errors.As(err, &ee)
}

// UserMessage renders err as a short message suitable for the dashboard.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ce *ConfigurationError
	if errors.As(err, &ce) {
		return fmt.Sprintf("Configuration error: %s is not set.", ce.Key)
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return fmt.Sprintf("Could not read %s input: %v", pe.Source, pe.Err)
	}
	var ee *ExternalServiceError
	if errors.As(err, &ee) {
		return fmt.Sprintf("%s failed during %s: %v", ee.Service, ee.Op, ee.Err)
	}
	return err.Error()
}
