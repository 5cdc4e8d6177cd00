package atom

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned in strict mode when there is nothing to parse
var ErrEmptyInput = errors.New("empty input")

// MalformedDocumentError reports input that is not well-formed XML
type MalformedDocumentError struct {
	Err error
}

// Error implements the error interface
func (e *MalformedDocumentError) Error() string {
	return fmt.Sprintf("malformed document: %v", e.Err)
}

// Unwrap returns the underlying parser error
func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// MissingFieldError reports a mandatory element or attribute that is absent.
// Scope is the path of the construct holding the field, e.g. "feed/entry/author".
type MissingFieldError struct {
	Scope string
	Field string
}

// Error implements the error interface
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing mandatory field %q", e.Scope, e.Field)
}

// InvalidValueError reports a mandatory field whose value can't be parsed
type InvalidValueError struct {
	Scope string
	Field string
	Value string
	Err   error
}

// Error implements the error interface
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("%s: invalid value %q for field %q: %v", e.Scope, e.Value, e.Field, e.Err)
}

// Unwrap returns the parse error
func (e *InvalidValueError) Unwrap() error {
	return e.Err
}

// InvalidEnumError reports an attribute value outside of its enumeration, e.g. an unknown text type
type InvalidEnumError struct {
	Scope string
	Field string
	Value string
}

// Error implements the error interface
func (e *InvalidEnumError) Error() string {
	return fmt.Sprintf("%s: unrecognized value %q for field %q", e.Scope, e.Value, e.Field)
}

// IsMalformed checks if an error is a MalformedDocumentError
func IsMalformed(err error) bool {
	var malformedErr *MalformedDocumentError
	return errors.As(err, &malformedErr)
}

// IsMissingField checks if an error is a MissingFieldError
func IsMissingField(err error) bool {
	var missingErr *MissingFieldError
	return errors.As(err, &missingErr)
}

// IsInvalidValue checks if an error is an InvalidValueError
func IsInvalidValue(err error) bool {
	var invalidErr *InvalidValueError
	return errors.As(err, &invalidErr)
}

// IsInvalidEnum checks if an error is an InvalidEnumError
func IsInvalidEnum(err error) bool {
	var enumErr *InvalidEnumError
	return errors.As(err, &enumErr)
}
