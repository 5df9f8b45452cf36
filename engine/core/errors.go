package core

import (
	"errors"
	"net/http"

	"github.com/teamdesk/teamdesk/pkg/i18n"
)

// Error is a code-carrying, already-localized error. The HTTP layer
// maps Code straight to a status; anything that is not an *Error
// degrades to 500.
type Error struct {
	Code    int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewValidationError returns a 400 error rendered from key, falling
// back to the generic validation message when the key is
// untranslated.
func NewValidationError(lang, key string) *Error {
	return newError(lang, http.StatusBadRequest, key, "errors.validation.message")
}

// NewValidationMessage returns a 400 error with an already-rendered
// message, for request binding failures.
func NewValidationMessage(message string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: message}
}

// NewNotFoundError returns a localized 404 error.
func NewNotFoundError(lang string) *Error {
	return newError(lang, http.StatusNotFound, "", "errors.notFound.message")
}

// NewForbiddenError returns a localized 403 error.
func NewForbiddenError(lang string) *Error {
	return newError(lang, http.StatusForbidden, "", "errors.forbidden.message")
}

// NewUnauthorizedError returns a localized 401 error.
func NewUnauthorizedError(lang string) *Error {
	return newError(lang, http.StatusUnauthorized, "", "errors.unauthorized.message")
}

func newError(lang string, code int, key, fallbackKey string) *Error {
	message := ""
	if key != "" && i18n.Exists(lang, key) {
		message = i18n.Translate(lang, key, nil)
	}
	if message == "" {
		message = i18n.Translate(lang, fallbackKey, nil)
	}
	return &Error{Code: code, Message: message}
}

// CodeOf returns the error's status code, 500 for anything
// unclassified.
func CodeOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return http.StatusInternalServerError
}

// IsNotFound reports whether err is a 404 domain error.
func IsNotFound(err error) bool {
	return CodeOf(err) == http.StatusNotFound
}

// IsValidation reports whether err is a 400 domain error.
func IsValidation(err error) bool {
	return CodeOf(err) == http.StatusBadRequest
}
