package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/pkg/response"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// AuthHandler serves the two unauthenticated endpoints: signup and
// token exchange.
type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Username string `json:"username" binding:"required,max=150,slug"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

type tokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=50"`
}

// Signup POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	u, err := h.Svc.Signup(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{
			"username": u.Username,
			"ip":       clientIP(c),
		}).Info("confirmation code issued")
	}
	// Echo back the validated identity, never the code: that travels only
	// through the mail channel.
	response.Success(c, http.StatusOK, gin.H{
		"username": u.Username,
		"email":    u.Email,
	}, "confirmation code sent", nil)
}

// Token POST /api/v1/auth/token
func (h *AuthHandler) Token(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	token, exp, err := h.Svc.ExchangeToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		response.FromError(c, err)
		return
	}
	if h.Logger != nil {
		h.Logger.WithFields(logrus.Fields{
			"username": req.Username,
			"ip":       clientIP(c),
		}).Info("access token issued")
	}
	response.Success(c, http.StatusOK, gin.H{"token": token}, "token issued",
		map[string]any{"expires_at": exp})
}
