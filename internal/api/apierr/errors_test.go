package apierr

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhattm/gameshelf/internal/model"
	"github.com/nhattm/gameshelf/internal/services/auth"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"invalid credentials", auth.ErrInvalidCredentials, http.StatusBadRequest},
		{"unauthorized", auth.ErrUnauthorized, http.StatusUnauthorized},
		{"game not found", model.ErrGameNotFound, http.StatusNotFound},
		{"username taken", model.ErrUsernameTaken, http.StatusBadRequest},
		{"prebuilt bad request", NewInvalidRequestError("nope"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WriteError(rr, nil, tt.err)
			assert.Equal(t, tt.status, rr.Code)
			assert.Contains(t, rr.Body.String(), "message")
		})
	}
}

func TestWriteErrorNotModifiedHasNoBody(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteError(rr, nil, model.ErrGameNotModified)
	assert.Equal(t, http.StatusNotModified, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestWriteErrorLogsUnmappedErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rr := httptest.NewRecorder()
	WriteError(rr, logger, errors.New("redis connection refused"))

	// Client sees only the generic message
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), internalErrorMessage)
	assert.NotContains(t, rr.Body.String(), "redis")

	// Full detail goes to the server log
	assert.Contains(t, buf.String(), "redis connection refused")
}

func TestWriteErrorDoesNotLogMappedErrors(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	rr := httptest.NewRecorder()
	WriteError(rr, logger, model.ErrGameNotFound)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, buf.String())

	WriteError(httptest.NewRecorder(), logger, NewInternalError())
	assert.Empty(t, buf.String())
}
