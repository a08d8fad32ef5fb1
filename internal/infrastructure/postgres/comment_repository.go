package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) Create(ctx context.Context, c *entity.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date
	`, c.ReviewID, c.AuthorID, c.Text).Scan(&c.ID, &c.PubDate)
	if err != nil {
		return translateConstraint(err, nil)
	}
	return nil
}

const commentSelect = `
	SELECT cm.id, cm.review_id, cm.text, cm.pub_date, cm.author_id, u.username
	FROM comments cm
	JOIN users u ON u.id = cm.author_id
`

func (r *CommentRepository) GetByID(ctx context.Context, reviewID, id int64) (*entity.Comment, error) {
	c := &entity.Comment{}
	err := r.pool.QueryRow(ctx,
		commentSelect+` WHERE cm.id = $1 AND cm.review_id = $2`, id, reviewID).
		Scan(&c.ID, &c.ReviewID, &c.Text, &c.PubDate, &c.AuthorID, &c.AuthorUsername)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("comment")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *CommentRepository) ListByReview(ctx context.Context, reviewID int64, limit, offset int) ([]entity.Comment, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM comments WHERE review_id = $1`, reviewID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		commentSelect+` WHERE cm.review_id = $1 ORDER BY cm.pub_date LIMIT $2 OFFSET $3`,
		reviewID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	comments := make([]entity.Comment, 0, limit)
	for rows.Next() {
		c := entity.Comment{}
		if err := rows.Scan(&c.ID, &c.ReviewID, &c.Text, &c.PubDate,
			&c.AuthorID, &c.AuthorUsername); err != nil {
			return nil, 0, err
		}
		comments = append(comments, c)
	}
	return comments, total, rows.Err()
}

func (r *CommentRepository) Update(ctx context.Context, c *entity.Comment) error {
	res, err := r.pool.Exec(ctx,
		`UPDATE comments SET text = $1 WHERE id = $2`, c.Text, c.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, reviewID, id int64) error {
	res, err := r.pool.Exec(ctx,
		`DELETE FROM comments WHERE id = $1 AND review_id = $2`, id, reviewID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("comment")
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
