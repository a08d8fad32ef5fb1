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

var reviewConstraints = map[string]string{
	// (title, author) uniqueness; the race loser lands here.
	"reviews_title_author_key": "title",
}

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *entity.Review) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO reviews (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date
	`, rv.TitleID, rv.AuthorID, rv.Text, rv.Score).Scan(&rv.ID, &rv.PubDate)
	if err != nil {
		return translateConstraint(err, reviewConstraints)
	}
	return nil
}

const reviewSelect = `
	SELECT rv.id, rv.title_id, t.name, rv.text, rv.score, rv.pub_date,
		rv.author_id, u.username
	FROM reviews rv
	JOIN titles t ON t.id = rv.title_id
	JOIN users u ON u.id = rv.author_id
`

func scanReview(row pgx.Row) (*entity.Review, error) {
	rv := &entity.Review{}
	err := row.Scan(&rv.ID, &rv.TitleID, &rv.TitleName, &rv.Text, &rv.Score,
		&rv.PubDate, &rv.AuthorID, &rv.AuthorUsername)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("review")
	}
	if err != nil {
		return nil, err
	}
	return rv, nil
}

func (r *ReviewRepository) GetByID(ctx context.Context, titleID, id int64) (*entity.Review, error) {
	return scanReview(r.pool.QueryRow(ctx,
		reviewSelect+` WHERE rv.id = $1 AND rv.title_id = $2`, id, titleID))
}

func (r *ReviewRepository) ListByTitle(ctx context.Context, titleID int64, limit, offset int) ([]entity.Review, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM reviews WHERE title_id = $1`, titleID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		reviewSelect+` WHERE rv.title_id = $1 ORDER BY rv.pub_date LIMIT $2 OFFSET $3`,
		titleID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	reviews := make([]entity.Review, 0, limit)
	for rows.Next() {
		rv := entity.Review{}
		if err := rows.Scan(&rv.ID, &rv.TitleID, &rv.TitleName, &rv.Text, &rv.Score,
			&rv.PubDate, &rv.AuthorID, &rv.AuthorUsername); err != nil {
			return nil, 0, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, total, rows.Err()
}

func (r *ReviewRepository) ExistsByTitleAuthor(ctx context.Context, titleID int64, authorID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE title_id = $1 AND author_id = $2)`,
		titleID, authorID).Scan(&exists)
	return exists, err
}

func (r *ReviewRepository) Update(ctx context.Context, rv *entity.Review) error {
	res, err := r.pool.Exec(ctx,
		`UPDATE reviews SET text = $1, score = $2 WHERE id = $3`,
		rv.Text, rv.Score, rv.ID)
	if err != nil {
		return translateConstraint(err, reviewConstraints)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

func (r *ReviewRepository) Delete(ctx context.Context, titleID, id int64) error {
	res, err := r.pool.Exec(ctx,
		`DELETE FROM reviews WHERE id = $1 AND title_id = $2`, id, titleID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("review")
	}
	return nil
}

var _ repository.ReviewRepository = (*ReviewRepository)(nil)
