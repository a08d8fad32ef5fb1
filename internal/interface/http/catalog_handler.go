package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/pkg/response"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// CatalogHandler serves the category and genre tag endpoints. Reads are
// public, writes are admin-only through the AdminOrReadOnly policy.
type CatalogHandler struct {
	Svc *application.CatalogService
}

func NewCatalogHandler(svc *application.CatalogService) *CatalogHandler {
	return &CatalogHandler{Svc: svc}
}

var adminOrReadOnly = policy.AdminOrReadOnly{}

type labelRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}

// ListCategories GET /api/v1/categories?search=<prefix>
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	limit, offset := pagination(c)
	items, total, err := h.Svc.ListCategories(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]labelDTO, len(items))
	for i, it := range items {
		out[i] = labelDTO{Name: it.Name, Slug: it.Slug}
	}
	response.Success(c, http.StatusOK, out, "categories", meta(total, limit, offset))
}

// CreateCategory POST /api/v1/categories
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, labelDTO{Name: cat.Name, Slug: cat.Slug}, "category created", nil)
}

// DeleteCategory DELETE /api/v1/categories/:slug
func (h *CatalogHandler) DeleteCategory(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	if err := h.Svc.DeleteCategory(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListGenres GET /api/v1/genres?search=<prefix>
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	limit, offset := pagination(c)
	items, total, err := h.Svc.ListGenres(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]labelDTO, len(items))
	for i, it := range items {
		out[i] = labelDTO{Name: it.Name, Slug: it.Slug}
	}
	response.Success(c, http.StatusOK, out, "genres", meta(total, limit, offset))
}

// CreateGenre POST /api/v1/genres
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	var req labelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	g, err := h.Svc.CreateGenre(c.Request.Context(), req.Name, req.Slug)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, labelDTO{Name: g.Name, Slug: g.Slug}, "genre created", nil)
}

// DeleteGenre DELETE /api/v1/genres/:slug
func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	if err := h.Svc.DeleteGenre(c.Request.Context(), c.Param("slug")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
