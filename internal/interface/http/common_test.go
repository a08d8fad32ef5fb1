package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
)

func testContext(t *testing.T, target string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestPagination(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"defaults", "/", 10, 0},
		{"explicit", "/?limit=25&offset=50", 25, 50},
		{"capped", "/?limit=10000", 100, 0},
		{"garbage ignored", "/?limit=abc&offset=-3", 10, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := testContext(t, tt.query)
			limit, offset := pagination(c)
			assert.Equal(t, tt.wantLimit, limit)
			assert.Equal(t, tt.wantOffset, offset)
		})
	}
}

func TestEnforceDerivesSafeFromMethod(t *testing.T) {
	// Safe methods pass AdminOrReadOnly even anonymously.
	c, _ := testContext(t, "/")
	assert.True(t, enforce(c, policy.AdminOrReadOnly{}, policy.Action{}))

	// The same anonymous caller is rejected once the method mutates.
	c2, w := testContext(t, "/")
	c2.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	assert.False(t, enforce(c2, policy.AdminOrReadOnly{}, policy.Action{}))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientIPPrefersResolvedAddress(t *testing.T) {
	c, _ := testContext(t, "/")
	c.Set("real_ip", "203.0.113.7")
	assert.Equal(t, "203.0.113.7", clientIP(c))

	c2, _ := testContext(t, "/")
	assert.Equal(t, c2.ClientIP(), clientIP(c2), "without the middleware the request address is used")
}

func TestEnforceStatusCodes(t *testing.T) {
	admin := &entity.User{Username: "boss", Role: entity.RoleAdmin, IsActive: true}
	regular := &entity.User{Username: "pat", Role: entity.RoleUser, IsActive: true}

	tests := []struct {
		name       string
		user       *entity.User
		wantOK     bool
		wantStatus int
	}{
		{"anonymous is 401", nil, false, http.StatusUnauthorized},
		{"plain user is 403", regular, false, http.StatusForbidden},
		{"admin passes", admin, true, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := testContext(t, "/")
			if tt.user != nil {
				c.Set("currentUser", tt.user)
			}
			ok := enforce(c, policy.AdminOnly{}, policy.Action{})
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				assert.Equal(t, tt.wantStatus, w.Code)
				assert.True(t, c.IsAborted())
			}
		})
	}
}
