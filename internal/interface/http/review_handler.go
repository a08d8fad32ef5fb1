package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yamdb/yamdb-api/internal/application"
	"github.com/yamdb/yamdb-api/internal/domain/policy"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
	"github.com/yamdb/yamdb-api/pkg/response"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// ReviewHandler serves reviews nested under titles and comments nested
// under reviews. Reads are public; creating needs authentication; edits
// and deletes fall under the owner/moderator policy, where ownership is
// resolved against the stored record before the check runs.
type ReviewHandler struct {
	Svc *application.ReviewService
}

func NewReviewHandler(svc *application.ReviewService) *ReviewHandler {
	return &ReviewHandler{Svc: svc}
}

var ownerModOrReadOnly = policy.OwnerModeratorOrReadOnly{}

type createReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required"`
}

type updateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

type commentRequest struct {
	Text string `json:"text" binding:"required"`
}

// ListReviews GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	reviews, total, err := h.Svc.ListReviews(c.Request.Context(), titleID, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]reviewDTO, len(reviews))
	for i := range reviews {
		out[i] = toReviewDTO(&reviews[i])
	}
	response.Success(c, http.StatusOK, out, "reviews", meta(total, limit, offset))
}

// GetReview GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) GetReview(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rv, err := h.Svc.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewDTO(rv), "review", nil)
}

// CreateReview POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author := middleware.CurrentUser(c)
	rv, err := h.Svc.CreateReview(c.Request.Context(), titleID, author, req.Text, req.Score)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toReviewDTO(rv), "review created", nil)
}

// UpdateReview PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rv, err := h.Svc.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if !enforce(c, ownerModOrReadOnly, policy.Action{Owner: u != nil && rv.AuthorID == u.ID}) {
		return
	}
	var req updateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateReview(c.Request.Context(), titleID, reviewID, application.ReviewUpdate{
		Text:  req.Text,
		Score: req.Score,
	})
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReviewDTO(updated), "review updated", nil)
}

// DeleteReview DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	rv, err := h.Svc.GetReview(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if !enforce(c, ownerModOrReadOnly, policy.Action{Owner: u != nil && rv.AuthorID == u.ID}) {
		return
	}
	if err := h.Svc.DeleteReview(c.Request.Context(), titleID, reviewID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListComments GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *ReviewHandler) ListComments(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	limit, offset := pagination(c)
	comments, total, err := h.Svc.ListComments(c.Request.Context(), titleID, reviewID, limit, offset)
	if err != nil {
		response.FromError(c, err)
		return
	}
	out := make([]commentDTO, len(comments))
	for i := range comments {
		out[i] = toCommentDTO(&comments[i])
	}
	response.Success(c, http.StatusOK, out, "comments", meta(total, limit, offset))
}

// GetComment GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) GetComment(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Svc.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentDTO(cm), "comment", nil)
}

// CreateComment POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *ReviewHandler) CreateComment(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	author := middleware.CurrentUser(c)
	cm, err := h.Svc.CreateComment(c.Request.Context(), titleID, reviewID, author, req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toCommentDTO(cm), "comment created", nil)
}

// UpdateComment PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) UpdateComment(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Svc.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if !enforce(c, ownerModOrReadOnly, policy.Action{Owner: u != nil && cm.AuthorID == u.ID}) {
		return
	}
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	updated, err := h.Svc.UpdateComment(c.Request.Context(), titleID, reviewID, commentID, req.Text)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toCommentDTO(updated), "comment updated", nil)
}

// DeleteComment DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *ReviewHandler) DeleteComment(c *gin.Context) {
	titleID, ok := pathID(c, "title_id")
	if !ok {
		return
	}
	reviewID, ok := pathID(c, "review_id")
	if !ok {
		return
	}
	commentID, ok := pathID(c, "comment_id")
	if !ok {
		return
	}
	cm, err := h.Svc.GetComment(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	u := middleware.CurrentUser(c)
	if !enforce(c, ownerModOrReadOnly, policy.Action{Owner: u != nil && cm.AuthorID == u.ID}) {
		return
	}
	if err := h.Svc.DeleteComment(c.Request.Context(), titleID, reviewID, commentID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
