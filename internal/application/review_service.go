package application

import (
	"context"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
)

// ReviewService enforces the review/comment consistency rules. Authors are
// always server-assigned from the authenticated requester; any
// client-supplied author is ignored by the handlers before reaching here.
type ReviewService struct {
	Reviews  repository.ReviewRepository
	Comments repository.CommentRepository
	Titles   *TitleService
}

func NewReviewService(reviews repository.ReviewRepository, comments repository.CommentRepository, titles *TitleService) *ReviewService {
	return &ReviewService{Reviews: reviews, Comments: comments, Titles: titles}
}

func validateScore(score int) error {
	if score < 1 || score > 10 {
		return apperr.ValidationField("score", "must be between 1 and 10")
	}
	return nil
}

// requireTitle resolves the parent title of a nested review route.
func (s *ReviewService) requireTitle(ctx context.Context, titleID int64) error {
	_, err := s.Titles.Titles.GetByID(ctx, titleID)
	return err
}

// CreateReview applies the one-review-per-(title, author) rule. The
// existence pre-check gives a friendlier error; the database unique
// constraint stays authoritative and a concurrent loser surfaces as the
// same validation error via the constraint translation.
func (s *ReviewService) CreateReview(ctx context.Context, titleID int64, author *entity.User, text string, score int) (*entity.Review, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, err
	}
	if err := validateScore(score); err != nil {
		return nil, err
	}
	exists, err := s.Reviews.ExistsByTitleAuthor(ctx, titleID, author.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Validation("you have already reviewed this title", nil)
	}

	rv := &entity.Review{TitleID: titleID, Score: score}
	rv.Text = text
	rv.AuthorID = author.ID
	rv.AuthorUsername = author.Username
	if err := s.Reviews.Create(ctx, rv); err != nil {
		return nil, err
	}
	s.Titles.invalidateRating(ctx, titleID)
	return s.Reviews.GetByID(ctx, titleID, rv.ID)
}

func (s *ReviewService) GetReview(ctx context.Context, titleID, id int64) (*entity.Review, error) {
	return s.Reviews.GetByID(ctx, titleID, id)
}

func (s *ReviewService) ListReviews(ctx context.Context, titleID int64, limit, offset int) ([]entity.Review, int, error) {
	if err := s.requireTitle(ctx, titleID); err != nil {
		return nil, 0, err
	}
	return s.Reviews.ListByTitle(ctx, titleID, limit, offset)
}

// ReviewUpdate carries a partial review update.
type ReviewUpdate struct {
	Text  *string
	Score *int
}

func (s *ReviewService) UpdateReview(ctx context.Context, titleID, id int64, in ReviewUpdate) (*entity.Review, error) {
	rv, err := s.Reviews.GetByID(ctx, titleID, id)
	if err != nil {
		return nil, err
	}
	if in.Text != nil {
		rv.Text = *in.Text
	}
	if in.Score != nil {
		if err := validateScore(*in.Score); err != nil {
			return nil, err
		}
		rv.Score = *in.Score
	}
	if err := s.Reviews.Update(ctx, rv); err != nil {
		return nil, err
	}
	s.Titles.invalidateRating(ctx, titleID)
	return rv, nil
}

func (s *ReviewService) DeleteReview(ctx context.Context, titleID, id int64) error {
	if err := s.Reviews.Delete(ctx, titleID, id); err != nil {
		return err
	}
	s.Titles.invalidateRating(ctx, titleID)
	return nil
}

// requireReview resolves the parent review of a nested comment route,
// scoped to its title so a mismatched pair 404s.
func (s *ReviewService) requireReview(ctx context.Context, titleID, reviewID int64) error {
	_, err := s.Reviews.GetByID(ctx, titleID, reviewID)
	return err
}

func (s *ReviewService) CreateComment(ctx context.Context, titleID, reviewID int64, author *entity.User, text string) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c := &entity.Comment{ReviewID: reviewID}
	c.Text = text
	c.AuthorID = author.ID
	c.AuthorUsername = author.Username
	if err := s.Comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ReviewService) GetComment(ctx context.Context, titleID, reviewID, id int64) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	return s.Comments.GetByID(ctx, reviewID, id)
}

func (s *ReviewService) ListComments(ctx context.Context, titleID, reviewID int64, limit, offset int) ([]entity.Comment, int, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return s.Comments.ListByReview(ctx, reviewID, limit, offset)
}

func (s *ReviewService) UpdateComment(ctx context.Context, titleID, reviewID, id int64, text string) (*entity.Comment, error) {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return nil, err
	}
	c, err := s.Comments.GetByID(ctx, reviewID, id)
	if err != nil {
		return nil, err
	}
	c.Text = text
	if err := s.Comments.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ReviewService) DeleteComment(ctx context.Context, titleID, reviewID, id int64) error {
	if err := s.requireReview(ctx, titleID, reviewID); err != nil {
		return err
	}
	return s.Comments.Delete(ctx, reviewID, id)
}
