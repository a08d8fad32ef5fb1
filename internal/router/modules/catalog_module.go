package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
)

// CatalogModule registers the category and genre tag routes.
type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	categories := rg.Group("/categories")
	categories.GET("", m.Handler.ListCategories)
	categories.POST("", m.Handler.CreateCategory)
	categories.DELETE("/:slug", m.Handler.DeleteCategory)

	genres := rg.Group("/genres")
	genres.GET("", m.Handler.ListGenres)
	genres.POST("", m.Handler.CreateGenre)
	genres.DELETE("/:slug", m.Handler.DeleteGenre)
}
