package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
)

// AuthModule registers the unauthenticated signup and token endpoints.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/signup", m.Handler.Signup)
	auth.POST("/token", m.Handler.Token)
}
