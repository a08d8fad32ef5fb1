package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/response"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// TitleHandler serves the works catalog. Reads are public, writes
// admin-only.
type TitleHandler struct {
	Svc *application.TitleService
}

func NewTitleHandler(svc *application.TitleService) *TitleHandler {
	return &TitleHandler{Svc: svc}
}

type titleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=256"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,max=50,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,max=50,slug"`
}

func (r titleRequest) toInput() application.TitleInput {
	return application.TitleInput{
		Name:         r.Name,
		Year:         r.Year,
		Description:  r.Description,
		CategorySlug: r.Category,
		GenreSlugs:   r.Genre,
	}
}

// List GET /api/v1/titles?name=&category=&genre=&year=
func (h *TitleHandler) List(c *gin.Context) {
	limit, offset := pagination(c)
	f := repository.TitleFilter{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
	}
	if raw := c.Query("year"); raw != "" {
		y, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid payload",
				map[string]string{"year": "must be an integer"})
			return
		}
		f.Year = &y
	}
	titles, total, err := h.Svc.List(c.Request.Context(), f, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]titleDTO, len(titles))
	for i := range titles {
		out[i] = toTitleDTO(&titles[i])
	}
	response.Success(c, http.StatusOK, out, "titles", meta(total, limit, offset))
}

// Get GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTitleDTO(t), "title", nil)
}

// Create POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toTitleDTO(t), "title created", nil)
}

// Update PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var req titleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toTitleDTO(t), "title updated", nil)
}

// Delete DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	if !enforce(c, adminOrReadOnly, policy.Action{}) {
		return
	}
	id, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
