package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
	"github.com/yamdb/yamdb-api/pkg/response"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// UserHandler serves admin account management plus the self-profile
// endpoint. All admin routes sit behind the AdminOnly policy.
type UserHandler struct {
	Svc *application.UserService
}

func NewUserHandler(svc *application.UserService) *UserHandler {
	return &UserHandler{Svc: svc}
}

var adminOnly = policy.AdminOnly{}

type createUserRequest struct {
	Username  string `json:"username" binding:"required,max=150,slug"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

type updateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,slug"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

func (r updateUserRequest) toInput() application.UpdateUserInput {
	in := application.UpdateUserInput{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
	}
	if r.Role != nil {
		role := entity.Role(*r.Role)
		in.Role = &role
	}
	return in
}

// List GET /api/v1/users?search=<prefix>
func (h *UserHandler) List(c *gin.Context) {
	if !enforce(c, adminOnly, policy.Action{}) {
		return
	}
	limit, offset := pagination(c)
	users, total, err := h.Svc.List(c.Request.Context(), c.Query("search"), limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]userDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	response.Success(c, http.StatusOK, out, "users", meta(total, limit, offset))
}

// Create POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	if !enforce(c, adminOnly, policy.Action{}) {
		return
	}
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Create(c.Request.Context(), application.CreateUserInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      entity.Role(req.Role),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserDTO(u), "user created", nil)
}

// Get GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	if !enforce(c, adminOnly, policy.Action{}) {
		return
	}
	u, err := h.Svc.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "user", nil)
}

// Update PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	if !enforce(c, adminOnly, policy.Action{}) {
		return
	}
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Update(c.Request.Context(), c.Param("username"), req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(u), "user updated", nil)
}

// Delete DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if !enforce(c, adminOnly, policy.Action{}) {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), c.Param("username")); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Me GET /api/v1/users/me
func (h *UserHandler) Me(c *gin.Context) {
	u := middleware.CurrentUser(c)
	response.Success(c, http.StatusOK, toUserDTO(u), "profile", nil)
}

// UpdateMe PATCH /api/v1/users/me — any role field in the payload is
// silently discarded and the requester's current role re-asserted.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateSelf(c.Request.Context(), u, req.toInput())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserDTO(updated), "profile updated", nil)
}
