package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestRouter(key string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RequireAccessKey(key), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func TestRequireAccessKey(t *testing.T) {
	r := newTestRouter("secret-key-123")

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "valid key", header: "Bearer secret-key-123", want: http.StatusOK},
		{name: "lowercase scheme", header: "bearer secret-key-123", want: http.StatusOK},
		{name: "missing header", header: "", want: http.StatusUnauthorized},
		{name: "wrong scheme", header: "Basic secret-key-123", want: http.StatusUnauthorized},
		{name: "no token", header: "Bearer ", want: http.StatusUnauthorized},
		{name: "wrong key", header: "Bearer not-the-key", want: http.StatusUnauthorized},
		{name: "key with extra suffix", header: "Bearer secret-key-1234", want: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/ping", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
