package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/support-chatbot/internal/domain"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError, mapping the
// chatbot error taxonomy onto stable codes and HTTP statuses.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPrefix):
		return NewDomainError("INVALID_PREFIX", "ticket prefix must be one of INC, REQ, CRQ, PBI, RLM", http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrInvalidStatus):
		return NewDomainError("INVALID_STATUS", "status must be one of Open, In Progress, Resolved, Closed", http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrNoTicketIDFound):
		return NewDomainError("NO_TICKET_ID", "no ticket identifier found in message", http.StatusBadRequest, nil)
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, pgx.ErrNoRows):
		if de, ok := NewNotFound("ticket", nil).(*DomainError); ok {
			return de
		}
	case errors.Is(err, domain.ErrClassificationUnavailable):
		return &DomainError{
			Code:       "CLASSIFICATION_UNAVAILABLE",
			Message:    "message classification is temporarily unavailable",
			HTTPStatus: http.StatusServiceUnavailable,
			Err:        err,
		}
	case errors.Is(err, domain.ErrTicketCreationFailed):
		return &DomainError{
			Code:       "TICKET_CREATION_FAILED",
			Message:    "unable to create a ticket for this message",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}

	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func MapError(err error) error {
	return ToDomainError(err)
}
