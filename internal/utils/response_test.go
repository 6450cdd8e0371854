package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javajoker/storefront-backend/internal/apperrors"
)

func serveError(t *testing.T, err error) (*httptest.ResponseRecorder, APIResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleServiceError(c, err)

	var body APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestHandleServiceErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperrors.Validation("bad input", nil), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", apperrors.NotFound("product"), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", apperrors.Conflict("order ORD-1 already exists", nil), http.StatusConflict, "CONFLICT"},
		{"store unavailable", apperrors.StoreUnavailable(errors.New("timeout")), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"unclassified", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := serveError(t, tt.err)
			assert.Equal(t, tt.status, w.Code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.code, body.Error.Code)
			assert.NotEmpty(t, body.Error.Message)
		})
	}
}

func TestConflictKeepsServiceMessage(t *testing.T) {
	_, body := serveError(t, apperrors.Conflict("order ORD-1 already exists", nil))
	assert.Equal(t, "order ORD-1 already exists", body.Error.Message)
}

func TestGetLangFromContextDefaultsToEnglish(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, "en", GetLangFromContext(c))

	c.Set("lang", "zh_TW")
	assert.Equal(t, "zh_TW", GetLangFromContext(c))
}
