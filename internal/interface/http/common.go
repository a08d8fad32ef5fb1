package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
	"github.com/yamdb/yamdb-api/pkg/response"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// pagination reads limit/offset query params with DRF-like defaults.
func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func meta(count, limit, offset int) response.Meta {
	return response.Meta{Count: count, Limit: limit, Offset: offset}
}

// enforce runs a policy check and writes the denial when it fails.
// Action.Safe is derived from the request method; anonymous denials are
// 401, authenticated ones 403.
func enforce(c *gin.Context, pol policy.Policy, action policy.Action) bool {
	action.Safe = middleware.SafeMethod(c)
	req := middleware.RequesterFrom(c)
	d := pol.Check(req, action)
	if d.Allowed {
		return true
	}
	status := http.StatusForbidden
	if !req.Authenticated {
		status = http.StatusUnauthorized
	}
	response.AbortError(c, status, d.Reason, nil)
	return false
}

// clientIP prefers the proxy-resolved address stored by the RealIP
// middleware.
func clientIP(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	return c.ClientIP()
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusNotFound, c.Param(name)+" is not a valid identifier", nil)
		return 0, false
	}
	return id, true
}

type userDTO struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func toUserDTO(u *entity.User) userDTO {
	return userDTO{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      string(u.Role),
	}
}

type labelDTO struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type titleDTO struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Year        *int       `json:"year"`
	Rating      *float64   `json:"rating"`
	Description string     `json:"description"`
	Genre       []labelDTO `json:"genre"`
	Category    *labelDTO  `json:"category"`
}

func toTitleDTO(t *entity.Title) titleDTO {
	dto := titleDTO{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       make([]labelDTO, 0, len(t.Genres)),
	}
	for _, g := range t.Genres {
		dto.Genre = append(dto.Genre, labelDTO{Name: g.Name, Slug: g.Slug})
	}
	if t.Category != nil {
		dto.Category = &labelDTO{Name: t.Category.Name, Slug: t.Category.Slug}
	}
	return dto
}

type reviewDTO struct {
	ID      int64     `json:"id"`
	Title   string    `json:"title"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func toReviewDTO(rv *entity.Review) reviewDTO {
	return reviewDTO{
		ID:      rv.ID,
		Title:   rv.TitleName,
		Text:    rv.Text,
		Author:  rv.AuthorUsername,
		Score:   rv.Score,
		PubDate: rv.PubDate,
	}
}

type commentDTO struct {
	ID      int64     `json:"id"`
	Review  int64     `json:"review"`
	Text    string    `json:"text"`
	Author  string    `json:"author"`
	PubDate time.Time `json:"pub_date"`
}

func toCommentDTO(cm *entity.Comment) commentDTO {
	return commentDTO{
		ID:      cm.ID,
		Review:  cm.ReviewID,
		Text:    cm.Text,
		Author:  cm.AuthorUsername,
		PubDate: cm.PubDate,
	}
}
