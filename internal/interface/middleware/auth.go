package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/helpers"
	"github.com/yamdb/yamdb-api/pkg/response"
)

const ctxUserKey = "currentUser"

// Authenticate resolves a Bearer access token to the current account and
// stores it in the Gin context. Requests without a token pass through
// anonymous; a presented-but-invalid token is rejected so clients learn
// their credential is bad instead of silently acting as anonymous.
func Authenticate(jwt *helpers.JWTManager, users repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "malformed authorization header", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		u, err := users.GetByUsername(c.Request.Context(), claims.Username)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid access token", nil)
			return
		}
		if !u.IsActive {
			// re-signup deactivates the account until the new code is
			// exchanged; outstanding tokens stop working with it
			response.AbortError(c, http.StatusUnauthorized, "account is not active", nil)
			return
		}
		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// RequireUser aborts anonymous requests. Must run after Authenticate.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			response.AbortError(c, http.StatusUnauthorized, "authentication required", nil)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated account, nil when anonymous.
func CurrentUser(c *gin.Context) *entity.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*entity.User)
	return u
}

// RequesterFrom builds the policy view of the caller.
func RequesterFrom(c *gin.Context) policy.Requester {
	u := CurrentUser(c)
	if u == nil {
		return policy.Requester{}
	}
	return policy.Requester{
		Authenticated: true,
		Role:          u.Role,
		IsStaff:       u.IsStaff,
		IsSuperuser:   u.IsSuperuser,
	}
}

// SafeMethod reports whether the request is read-only.
func SafeMethod(c *gin.Context) bool {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
