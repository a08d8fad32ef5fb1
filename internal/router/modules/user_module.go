package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
)

// UserModule registers account management under /users. The /me pair is
// open to any authenticated account; everything else is admin-gated in
// the handler.
type UserModule struct {
	Handler *handlers.UserHandler
}

func NewUserModule(h *handlers.UserHandler) *UserModule {
	return &UserModule{Handler: h}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	users := rg.Group("/users")

	me := users.Group("/me", middleware.RequireUser())
	me.GET("", m.Handler.Me)
	me.PATCH("", m.Handler.UpdateMe)

	users.GET("", m.Handler.List)
	users.POST("", m.Handler.Create)
	users.GET("/:username", m.Handler.Get)
	users.PATCH("/:username", m.Handler.Update)
	users.DELETE("/:username", m.Handler.Delete)
}
