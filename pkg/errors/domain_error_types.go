package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DomainErrorType represents the category of domain error
type DomainErrorType string

const (
	// DomainValidationError indicates input validation failure
	DomainValidationError DomainErrorType = "VALIDATION_ERROR"

	// DomainBusinessRuleError indicates a business rule violation
	DomainBusinessRuleError DomainErrorType = "BUSINESS_RULE_ERROR"

	// DomainNotFoundError indicates a resource was not found
	DomainNotFoundError DomainErrorType = "NOT_FOUND"

	// DomainConflictError indicates a conflict with existing state
	DomainConflictError DomainErrorType = "CONFLICT"

	// DomainInfrastructureError indicates an infrastructure-level failure
	DomainInfrastructureError DomainErrorType = "INFRASTRUCTURE_ERROR"
)

// DomainError represents a domain-specific error with rich context
type DomainError struct {
	Type      DomainErrorType        `json:"type"`
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Retryable bool                   `json:"retryable"`
}

// NewDomainError creates a new domain error
func NewDomainError(errorType DomainErrorType, code string, message string) *DomainError {
	return &DomainError{
		Type:    errorType,
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s:%s] %s: %v", e.Type, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s:%s] %s", e.Type, e.Code, e.Message)
}

// WithCause adds a cause to the error
func (e *DomainError) WithCause(cause error) *DomainError {
	e.Cause = cause
	return e
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	e.Details[key] = value
	return e
}

// WithRetryable sets whether the error is retryable
func (e *DomainError) WithRetryable(retryable bool) *DomainError {
	e.Retryable = retryable
	return e
}

// Is matches another DomainError by type and code
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// Unwrap returns the underlying cause
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Sentinels for errors.Is. Never add details to these directly; use the
// constructors below, which return fresh copies.
var (
	ErrModelNotFound = NewDomainError(
		DomainNotFoundError,
		"MODEL_NOT_FOUND",
		"Model not found",
	)

	ErrInvalidModelDocument = NewDomainError(
		DomainValidationError,
		"INVALID_MODEL_DOCUMENT",
		"Model document is invalid",
	)

	ErrModelValidationFailed = NewDomainError(
		DomainBusinessRuleError,
		"MODEL_VALIDATION_FAILED",
		"Model has validation errors",
	)

	ErrUnsupportedSchemaVersion = NewDomainError(
		DomainValidationError,
		"UNSUPPORTED_SCHEMA_VERSION",
		"Model document schema version is not supported",
	)

	ErrUnsupportedFormat = NewDomainError(
		DomainValidationError,
		"UNSUPPORTED_FORMAT",
		"Model document format is not supported",
	)

	ErrInvalidModelID = NewDomainError(
		DomainValidationError,
		"INVALID_MODEL_ID",
		"Model id is not a valid UUID",
	)

	ErrModelVersionConflict = NewDomainError(
		DomainConflictError,
		"MODEL_VERSION_CONFLICT",
		"Model was modified concurrently",
	)

	ErrStorageFailure = NewDomainError(
		DomainInfrastructureError,
		"STORAGE_FAILURE",
		"Model storage operation failed",
	).WithRetryable(true)

	ErrEventPublishFailed = NewDomainError(
		DomainInfrastructureError,
		"EVENT_PUBLISH_FAILED",
		"Failed to publish domain event",
	).WithRetryable(true)
)

// NewModelNotFoundError reports a missing model
func NewModelNotFoundError(modelID string) *DomainError {
	return clone(ErrModelNotFound).WithDetail("model_id", modelID)
}

// NewInvalidDocumentError reports a document that could not be decoded or checked
func NewInvalidDocumentError(reason string, cause error) *DomainError {
	return clone(ErrInvalidModelDocument).WithDetail("reason", reason).WithCause(cause)
}

// NewUnsupportedSchemaError reports a document whose schema version is unknown
func NewUnsupportedSchemaError(version int) *DomainError {
	return clone(ErrUnsupportedSchemaVersion).WithDetail("schema_version", version)
}

// NewUnsupportedFormatError reports an unknown serialization format
func NewUnsupportedFormatError(format string) *DomainError {
	return clone(ErrUnsupportedFormat).WithDetail("format", format)
}

// NewInvalidModelIDError reports an unparseable model id
func NewInvalidModelIDError(id string, cause error) *DomainError {
	return clone(ErrInvalidModelID).WithDetail("model_id", id).WithCause(cause)
}

// NewVersionConflictError reports a save against a stale model version
func NewVersionConflictError(modelID string, expected, actual int) *DomainError {
	return clone(ErrModelVersionConflict).
		WithDetail("model_id", modelID).
		WithDetail("expected_version", expected).
		WithDetail("stored_version", actual)
}

// IsConflict reports whether err is a conflict domain error
func IsConflict(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Type == DomainConflictError
}

// NewStorageError wraps a backend failure
func NewStorageError(backend, operation string, cause error) *DomainError {
	return clone(ErrStorageFailure).
		WithDetail("backend", backend).
		WithDetail("operation", operation).
		WithCause(cause)
}

// NewEventPublishError wraps a publisher failure
func NewEventPublishError(cause error) *DomainError {
	return clone(ErrEventPublishFailed).WithCause(cause)
}

func clone(e *DomainError) *DomainError {
	out := NewDomainError(e.Type, e.Code, e.Message)
	out.Retryable = e.Retryable
	return out
}

// IsNotFound reports whether err is a not-found domain error
func IsNotFound(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Type == DomainNotFoundError
}

// IsRetryable reports whether err is a retryable domain error
func IsRetryable(err error) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Retryable
}

// ValidationErrors aggregates multiple validation errors
type ValidationErrors struct {
	Errors []*DomainError `json:"errors"`
}

// NewValidationErrors creates a new validation errors collection
func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]*DomainError, 0),
	}
}

// Add adds a validation error
func (v *ValidationErrors) Add(field string, message string) {
	err := NewDomainError(DomainValidationError, "FIELD_VALIDATION_ERROR", message).
		WithDetail("field", field)
	v.Errors = append(v.Errors, err)
}

// AddError adds a pre-existing domain error
func (v *ValidationErrors) AddError(err *DomainError) {
	v.Errors = append(v.Errors, err)
}

// HasErrors returns true if there are validation errors
func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// Codes returns the error codes in order
func (v *ValidationErrors) Codes() []string {
	codes := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		codes[i] = err.Code
	}
	return codes
}

// Error implements the error interface
func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return ""
	}

	messages := make([]string, len(v.Errors))
	for i, err := range v.Errors {
		messages[i] = err.Message
	}
	return fmt.Sprintf("Validation failed: %s", strings.Join(messages, "; "))
}

// Is lets errors.Is match ErrModelValidationFailed against a ValidationErrors
func (v *ValidationErrors) Is(target error) bool {
	return target == ErrModelValidationFailed
}

// ToMap groups messages by their "field" detail
func (v *ValidationErrors) ToMap() map[string][]string {
	result := make(map[string][]string)

	for _, err := range v.Errors {
		field, ok := err.Details["field"].(string)
		if !ok {
			field = "general"
		}
		result[field] = append(result[field], err.Message)
	}

	return result
}
