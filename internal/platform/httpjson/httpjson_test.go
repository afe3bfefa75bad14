package httpjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_ValidationCarriesFields(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/pets", nil)

	Error(rec, req, logger.Discard(), apperr.Validation([]apperr.FieldError{{Field: "type", Message: "bad"}}))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "validation failed", body.Message)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "type", body.Errors[0].Field)
}

func TestError_InternalHidesCauseButLogsIt(t *testing.T) {
	var logs bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Out: &logs})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	Error(rec, req, log, errors.New("pq: connection refused at 10.0.0.3"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.3")
	assert.Contains(t, rec.Body.String(), "internal server error")
	assert.Contains(t, logs.String(), "10.0.0.3")
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusFor(apperr.Conflict("x")))
	assert.Equal(t, http.StatusUnauthorized, StatusFor(apperr.Unauthorized("x")))
	assert.Equal(t, http.StatusForbidden, StatusFor(apperr.Forbidden("x")))
	assert.Equal(t, http.StatusNotFound, StatusFor(apperr.NotFound("x")))
	assert.Equal(t, http.StatusInternalServerError, StatusFor(apperr.Internal(errors.New("x"))))
}

func TestDecode_RejectsMalformed(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":`))
	var dst map[string]any
	assert.Error(t, Decode(req, &dst))
}
