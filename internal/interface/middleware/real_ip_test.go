package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRealIP(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		xff    string
		wantIP string
	}{
		{"left-most forwarded address wins", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"single address", "198.51.100.2", "198.51.100.2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.Header.Set("X-Forwarded-For", tt.xff)

			RealIP()(c)

			assert.Equal(t, tt.wantIP, c.GetString("real_ip"))
		})
	}

	t.Run("garbage header falls back to ClientIP", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("X-Forwarded-For", "not-an-ip")

		RealIP()(c)

		assert.Equal(t, c.ClientIP(), c.GetString("real_ip"))
	})
}
