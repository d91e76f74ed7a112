package services

import (
	"errors"
	"fmt"

	"github.com/SAP-F-2025/comprehension-service/internal/content"
	apperrors "github.com/SAP-F-2025/comprehension-service/internal/errors"
	"gorm.io/gorm"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden - insufficient permissions")
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Session specific errors
	ErrSessionNotFound = errors.New("session not found")
	ErrItemNotFound    = errors.New("item not found")

	// Participant specific errors
	ErrParticipantNotFound = errors.New("participant not found")

	// Export specific errors
	ErrUnknownExportModel  = errors.New("unknown export model")
	ErrUnknownExportFormat = errors.New("unknown export format")
)

// ===== CUSTOM ERROR TYPES =====

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// ===== ERROR HELPERS =====

func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrParticipantNotFound) ||
		errors.Is(err, content.ErrItemNotFound) ||
		errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUnauthorized checks if error represents an "unauthorized" condition
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnknownExportModel) ||
		errors.Is(err, ErrUnknownExportFormat) {
		return true
	}
	var ve apperrors.ValidationErrors
	if errors.As(err, &ve) {
		return true
	}
	var single *apperrors.ValidationError
	return errors.As(err, &single)
}

// IsSequence reports a submit or start that the session's state does not
// allow.
func IsSequence(err error) bool {
	return apperrors.IsSequence(err)
}

func IsConfig(err error) bool {
	return apperrors.IsConfig(err)
}

func notFound(sentinel error, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func validationFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrValidationFailed, err)
}
