package apierr

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/auth"
	"github.com/nhattm/gameshelf/internal/services/catalog"
)

// ErrorResponse is the JSON body sent for any failed request
type ErrorResponse struct {
	Message string `json:"message"`
}

const internalErrorMessage = "something went wrong with the server"

// httpError combines an HTTP status code with a client-facing message
type httpError struct {
	status  int
	message string
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.message
}

// WriteError writes an error response to the response writer. Errors with
// no client-facing mapping are logged in full; the client only ever sees
// the generic message.
func WriteError(w http.ResponseWriter, logger *slog.Logger, err error) {
	he := toHTTPError(err)
	if he.status == http.StatusInternalServerError && !isPrebuilt(err) && logger != nil {
		logger.Error("unhandled error", slog.String("error", err.Error()))
	}
	if he.status == http.StatusNotModified {
		// 304 responses carry no body
		w.WriteHeader(he.status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Message: he.message})
}

// isPrebuilt reports whether err already carries its HTTP shape and so
// has no server-side detail worth logging
func isPrebuilt(err error) bool {
	var he *httpError
	return errors.As(err, &he)
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for pre-built HTTP errors
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrPasswordMismatch),
		errors.Is(err, model.ErrUsernameTaken),
		errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusBadRequest, err.Error()}
	case errors.Is(err, auth.ErrUnauthorized):
		return &httpError{http.StatusUnauthorized, err.Error()}

	// Catalog errors
	case errors.Is(err, catalog.ErrMissingName),
		errors.Is(err, catalog.ErrMissingAuthor),
		errors.Is(err, catalog.ErrMissingReleaseDate),
		errors.Is(err, catalog.ErrInvalidCategory):
		return &httpError{http.StatusBadRequest, err.Error()}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, err.Error()}
	case errors.Is(err, model.ErrGameNotModified):
		return &httpError{http.StatusNotModified, ""}

	default:
		return &httpError{http.StatusInternalServerError, internalErrorMessage}
	}
}

// NewInvalidRequestError creates a bad request error with the given message
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, message}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, auth.ErrUnauthorized.Error()}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, internalErrorMessage}
}
