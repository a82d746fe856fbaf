package apierr

import (
	"errors"
	"fmt"
	"net/http"

	pkgerrors "github.com/yungbote/viralscript-backend/internal/pkg/errors"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

// FromError maps the pipeline error taxonomy onto an HTTP status and code.
// Fetch and generation failures are normally absorbed by fallbacks; if one
// escapes it is reported as a bad gateway.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	var verr *pkgerrors.ValidationError
	if errors.As(err, &verr) {
		return New(http.StatusBadRequest, "validation_failed", err)
	}
	var perr *pkgerrors.PersistenceError
	if errors.As(err, &perr) {
		return New(http.StatusInternalServerError, "persistence_failed", err)
	}
	var ferr *pkgerrors.FetchError
	var gerr *pkgerrors.GenerationError
	if errors.As(err, &ferr) || errors.As(err, &gerr) {
		return New(http.StatusBadGateway, "upstream_failed", err)
	}
	if errors.Is(err, pkgerrors.ErrNotFound) {
		return New(http.StatusNotFound, "not_found", err)
	}
	if errors.Is(err, pkgerrors.ErrInvalidArgument) {
		return New(http.StatusBadRequest, "invalid_request", err)
	}
	return New(http.StatusInternalServerError, "internal_error", err)
}
