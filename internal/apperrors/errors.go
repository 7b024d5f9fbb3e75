package apperrors

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not found")
	ErrAuthentication = errors.New("authentication error")
	ErrConflict       = errors.New("conflict")
	ErrForbidden      = errors.New("forbidden")
)

// kindError carries a user-facing message and unwraps to one of the sentinel kinds above.
type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string {
	return e.message
}

func (e *kindError) Unwrap() error {
	return e.kind
}

func newKindError(kind error, format string, args ...any) error {
	return &kindError{kind: kind, message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) error {
	return newKindError(ErrValidation, format, args...)
}

func NewNotFoundError(format string, args ...any) error {
	return newKindError(ErrNotFound, format, args...)
}

func NewAuthenticationError(format string, args ...any) error {
	return newKindError(ErrAuthentication, format, args...)
}

func NewConflictError(format string, args ...any) error {
	return newKindError(ErrConflict, format, args...)
}

func NewForbiddenError(format string, args ...any) error {
	return newKindError(ErrForbidden, format, args...)
}

// IsDomain reports whether err belongs to one of the known kinds, i.e. whether its message is safe
// to show to a client.
func IsDomain(err error) bool {
	return StatusCode(err) != http.StatusInternalServerError
}

func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
