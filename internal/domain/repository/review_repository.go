package repository

import (
	"context"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
)

// ReviewRepository persists reviews. Listings are ordered by pub_date.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, titleID, id int64) (*entity.Review, error)
	ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]entity.Review, int, error)
	ExistsByTitleAuthor(ctx context.Context, titleID int64, authorID string) (bool, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, titleID, id int64) error
}

// CommentRepository persists comments under a review.
type CommentRepository interface {
	Create(ctx context.Context, c *entity.Comment) error
	GetByID(ctx context.Context, reviewID, id int64) (*entity.Comment, error)
	ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]entity.Comment, int, error)
	Update(ctx context.Context, c *entity.Comment) error
	Delete(ctx context.Context, reviewID, id int64) error
}
