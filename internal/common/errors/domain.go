package commonerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCategory string

const (
	CategoryValidation   ErrorCategory = "VALIDATION"
	CategoryNotFound     ErrorCategory = "NOT_FOUND"
	CategoryConflict     ErrorCategory = "CONFLICT"
	CategoryUnauthorized ErrorCategory = "UNAUTHORIZED"
	CategoryInternal     ErrorCategory = "INTERNAL"
)

// DomainError is the only error type that crosses the service boundary.
// Anything else reaching the HTTP layer is treated as an internal fault.
type DomainError interface {
	error
	Code() string
	Category() ErrorCategory
	HTTPStatus() int
	Message() string
	Unwrap() error
	WithCause(cause error) DomainError
}

type domainError struct {
	code     string
	category ErrorCategory
	status   int
	message  string
	cause    error
}

func (e *domainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

func (e *domainError) Code() string {
	return e.code
}

func (e *domainError) Category() ErrorCategory {
	return e.category
}

func (e *domainError) HTTPStatus() int {
	return e.status
}

func (e *domainError) Message() string {
	return e.message
}

func (e *domainError) Unwrap() error {
	return e.cause
}

func (e *domainError) WithCause(cause error) DomainError {
	return &domainError{
		code:     e.code,
		category: e.category,
		status:   e.status,
		message:  e.message,
		cause:    cause,
	}
}

func NewDomainError(code string, category ErrorCategory, status int, message string) DomainError {
	return &domainError{
		code:     code,
		category: category,
		status:   status,
		message:  message,
	}
}

func IsDomainError(err error) bool {
	var de DomainError
	return errors.As(err, &de)
}

func AsDomainError(err error) (DomainError, bool) {
	var de DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

var (
	ErrMissingRequiredEnv = NewDomainError(
		"MISSING_REQUIRED_ENV",
		CategoryValidation,
		http.StatusInternalServerError,
		"missing required environment variable",
	)

	ErrInvalidSessionSecret = NewDomainError(
		"INVALID_SESSION_SECRET",
		CategoryValidation,
		http.StatusInternalServerError,
		"SESSION_SECRET must be at least 32 bytes",
	)

	ErrInvalidEmail = NewDomainError(
		"INVALID_EMAIL",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid email format",
	)

	ErrWeakPassword = NewDomainError(
		"WEAK_PASSWORD",
		CategoryValidation,
		http.StatusBadRequest,
		"password must be at least 8 characters",
	)

	ErrEmailTaken = NewDomainError(
		"EMAIL_TAKEN",
		CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)

	ErrInvalidCredentials = NewDomainError(
		"INVALID_CREDENTIALS",
		CategoryUnauthorized,
		http.StatusUnauthorized,
		"invalid email or password",
	)

	ErrMissingField = NewDomainError(
		"MISSING_FIELD",
		CategoryValidation,
		http.StatusBadRequest,
		"required field is missing",
	)

	ErrInvalidQuantity = NewDomainError(
		"INVALID_QUANTITY",
		CategoryValidation,
		http.StatusBadRequest,
		"quantity must be an integer",
	)

	ErrInvalidPayload = NewDomainError(
		"INVALID_PAYLOAD",
		CategoryValidation,
		http.StatusBadRequest,
		"invalid payload",
	)

	ErrDatabaseError = NewDomainError(
		"DATABASE_ERROR",
		CategoryInternal,
		http.StatusInternalServerError,
		"database operation failed",
	)
)
