package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/javajoker/storefront-backend/internal/i18n"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDAssignsAndPropagates(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assigned := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, assigned)
	assert.Equal(t, assigned, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRateLimiterRejectsBurstOverflow(t *testing.T) {
	limiter := NewRateLimiter(rate.Limit(0.001), 2)
	defer limiter.Stop()

	router := gin.New()
	router.Use(limiter.Middleware())
	router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestResolveLanguage(t *testing.T) {
	require.NoError(t, i18n.Initialize("en"))

	assert.Equal(t, "zh_TW", resolveLanguage("zh-TW,zh;q=0.9,en;q=0.8", "en"))
	assert.Equal(t, "en", resolveLanguage("en-US", "zh_TW"))
	assert.Equal(t, "en", resolveLanguage("", "en"))
	assert.Equal(t, "en", resolveLanguage("fr-FR", "en"))
}

func TestExtractResource(t *testing.T) {
	assert.Equal(t, "products", extractResourceType("/api/products/42"))
	assert.Equal(t, "42", extractResourceID("/api/products/42"))
	assert.Equal(t, "orders", extractResourceType("/api/orders"))
	assert.Equal(t, "", extractResourceID("/api/orders"))
	assert.Equal(t, "ws", extractResourceType("/ws"))
}
