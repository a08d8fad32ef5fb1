package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
)

// TitleModule registers the works catalog routes.
type TitleModule struct {
	Handler *handlers.TitleHandler
}

func NewTitleModule(h *handlers.TitleHandler) *TitleModule {
	return &TitleModule{Handler: h}
}

func (m *TitleModule) Register(rg *gin.RouterGroup) {
	titles := rg.Group("/titles")
	titles.GET("", m.Handler.List)
	titles.POST("", m.Handler.Create)
	titles.GET("/:title_id", m.Handler.Get)
	titles.PATCH("/:title_id", m.Handler.Update)
	titles.DELETE("/:title_id", m.Handler.Delete)
}
