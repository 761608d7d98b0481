package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONResponse(rec, http.StatusOK, ExistsBody{Exists: true})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"exists":true}`, rec.Body.String())
}

func TestJSONErrorAndMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, http.StatusInternalServerError, "boom")
	var eb ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &eb))
	assert.Equal(t, "boom", eb.Error)

	rec = httptest.NewRecorder()
	JSONMessage(rec, http.StatusBadRequest, "nope")
	assert.JSONEq(t, `{"msg":"nope"}`, rec.Body.String())
}

func TestRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	_, err := uuid.Parse(RequestID(r))
	assert.NoError(t, err)

	r.Header.Set(RequestIDHeader, "abc")
	assert.Equal(t, "abc", RequestID(r))
}
