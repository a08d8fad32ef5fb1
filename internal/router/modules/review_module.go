package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/yamdb/yamdb-api/internal/interface/http"
	"github.com/yamdb/yamdb-api/internal/interface/middleware"
)

// ReviewModule registers reviews nested under titles and comments nested
// under reviews. Reads are public; creating needs an authenticated
// account, and edits go through the owner/moderator policy in the
// handler.
type ReviewModule struct {
	Handler *handlers.ReviewHandler
}

func NewReviewModule(h *handlers.ReviewHandler) *ReviewModule {
	return &ReviewModule{Handler: h}
}

func (m *ReviewModule) Register(rg *gin.RouterGroup) {
	reviews := rg.Group("/titles/:title_id/reviews")
	reviews.GET("", m.Handler.ListReviews)
	reviews.POST("", middleware.RequireUser(), m.Handler.CreateReview)
	reviews.GET("/:review_id", m.Handler.GetReview)
	reviews.PATCH("/:review_id", m.Handler.UpdateReview)
	reviews.DELETE("/:review_id", m.Handler.DeleteReview)

	comments := reviews.Group("/:review_id/comments")
	comments.GET("", m.Handler.ListComments)
	comments.GET("/:comment_id", m.Handler.GetComment)
	comments.POST("", middleware.RequireUser(), m.Handler.CreateComment)
	comments.PATCH("/:comment_id", m.Handler.UpdateComment)
	comments.DELETE("/:comment_id", m.Handler.DeleteComment)
}
