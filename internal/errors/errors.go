// Package errors provides error handling for Caravel.
//
// Nothing in the router core propagates errors to the caller; these
// types exist so internal layers can tag failures with a code and a
// category, and so the pieces that surface text to the user can format
// it consistently.
package errors

import (
	"errors"
	"strings"
)

// ============================================================
// Error Categories
// ============================================================

// Category defines the type of error for handling decisions.
type Category int

const (
	// CategoryRecoverable errors are absorbed locally (classifier
	// fallback, handler failure carried in-band).
	CategoryRecoverable Category = iota

	// CategoryUser errors are due to user input.
	CategoryUser

	// CategorySystem errors are system-level (bad config, catalog DB
	// unavailable).
	CategorySystem
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryRecoverable:
		return "recoverable"
	case CategoryUser:
		return "user"
	case CategorySystem:
		return "system"
	default:
		return "unknown"
	}
}

// ============================================================
// AppError - Main Error Type
// ============================================================

// AppError is the main error type for all Caravel errors.
type AppError struct {
	// Code is a unique error code for programmatic handling
	Code string

	// Message is a user-friendly error message
	Message string

	// Category determines how the error should be handled
	Category Category

	// Inner is the underlying error
	Inner error
}

// Error returns the error message.
func (e *AppError) Error() string {
	var sb strings.Builder

	if e.Code != "" {
		sb.WriteString("[")
		sb.WriteString(e.Code)
		sb.WriteString("] ")
	}

	sb.WriteString(e.Message)

	if e.Inner != nil {
		innerMsg := e.Inner.Error()
		if innerMsg != "" && innerMsg != e.Message {
			sb.WriteString(": ")
			sb.WriteString(innerMsg)
		}
	}

	return sb.String()
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Inner
}

// Is checks if the target error is contained in this error.
func (e *AppError) Is(target error) bool {
	return errors.Is(e.Inner, target)
}

// ============================================================
// Error Constructors
// ============================================================

// New creates a new AppError.
func New(code, message string, category Category) *AppError {
	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
	}
}

// Wrap wraps an existing error with context.
func Wrap(err error, code, message string, category Category) *AppError {
	if err == nil {
		return nil
	}

	return &AppError{
		Code:     code,
		Message:  message,
		Category: category,
		Inner:    err,
	}
}

// ============================================================
// Error Codes
// ============================================================

const (
	// Classifier errors
	CodeClassifierUnavailable = "CLASSIFIER_UNAVAILABLE"
	CodeUnknownIntent         = "UNKNOWN_INTENT"

	// Handler errors
	CodeHandlerNotFound = "HANDLER_NOT_FOUND"
	CodeHandlerFailed   = "HANDLER_FAILED"

	// Approval errors
	CodeNoPendingApproval = "NO_PENDING_APPROVAL"

	// Catalog errors
	CodeCatalogUnavailable = "CATALOG_UNAVAILABLE"

	// Config errors
	CodeConfigInvalid = "CONFIG_INVALID"
)

// ============================================================
// Helpers
// ============================================================

// GetCategory extracts the category from an error.
// Returns CategorySystem for non-AppError errors.
func GetCategory(err error) Category {
	if err == nil {
		return CategoryRecoverable
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Category
	}

	return CategorySystem
}

// GetCode extracts the error code from an error. Returns "" for
// non-AppError errors.
func GetCode(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}

// FormatUserMessage formats a user-friendly error message.
func FormatUserMessage(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}

	return err.Error()
}
