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

type TitleRepository struct {
	pool *pgxpool.Pool
}

func NewTitleRepository(pool *pgxpool.Pool) *TitleRepository {
	return &TitleRepository{pool: pool}
}

func (r *TitleRepository) Create(ctx context.Context, t *entity.Title, genreIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO titles (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, t.Name, t.Year, t.Description, categoryID).Scan(&t.ID)
	if err != nil {
		return translateConstraint(err, nil)
	}
	if err := r.replaceGenres(ctx, tx, t.ID, genreIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TitleRepository) replaceGenres(ctx context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM genre_titles WHERE title_id = $1`, titleID); err != nil {
		return err
	}
	for _, gid := range genreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO genre_titles (title_id, genre_id) VALUES ($1, $2)`, titleID, gid); err != nil {
			return translateConstraint(err, nil)
		}
	}
	return nil
}

func (r *TitleRepository) GetByID(ctx context.Context, id int64) (*entity.Title, error) {
	t := &entity.Title{}
	var catID *int64
	var catName, catSlug *string
	err := r.pool.QueryRow(ctx, `
		SELECT t.id, t.name, t.year, t.description, c.id, c.name, c.slug
		FROM titles t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.id = $1
	`, id).Scan(&t.ID, &t.Name, &t.Year, &t.Description, &catID, &catName, &catSlug)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("title")
	}
	if err != nil {
		return nil, err
	}
	if catID != nil {
		t.Category = &entity.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}
	genres, err := r.genresFor(ctx, []int64{t.ID})
	if err != nil {
		return nil, err
	}
	t.Genres = genres[t.ID]
	return t, nil
}

// genresFor loads the genres of the given titles in one query, keyed by
// title id.
func (r *TitleRepository) genresFor(ctx context.Context, titleIDs []int64) (map[int64][]entity.Genre, error) {
	out := make(map[int64][]entity.Genre, len(titleIDs))
	if len(titleIDs) == 0 {
		return out, nil
	}
	rows, err := r.pool.Query(ctx, `
		SELECT gt.title_id, g.id, g.name, g.slug
		FROM genre_titles gt
		JOIN genres g ON g.id = gt.genre_id
		WHERE gt.title_id = ANY($1)
		ORDER BY g.name
	`, titleIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var titleID int64
		var g entity.Genre
		if err := rows.Scan(&titleID, &g.ID, &g.Name, &g.Slug); err != nil {
			return nil, err
		}
		out[titleID] = append(out[titleID], g)
	}
	return out, rows.Err()
}

const titleListQuery = `
	SELECT t.id, t.name, t.year, t.description,
		c.id, c.name, c.slug,
		(SELECT AVG(score)::float8 FROM reviews rv WHERE rv.title_id = t.id)
	FROM titles t
	LEFT JOIN categories c ON c.id = t.category_id
	WHERE ($1 = '' OR t.name ILIKE '%' || $1 || '%')
	  AND ($2 = '' OR c.slug = $2)
	  AND ($3 = '' OR t.id IN (
			SELECT gt.title_id FROM genre_titles gt
			JOIN genres g ON g.id = gt.genre_id
			WHERE g.slug = $3))
	  AND ($4::int IS NULL OR t.year = $4)
`

func (r *TitleRepository) List(ctx context.Context, f repository.TitleFilter, limit, offset int) ([]entity.Title, int, error) {
	var total int
	countQuery := `SELECT count(*) FROM (` + titleListQuery + `) filtered`
	if err := r.pool.QueryRow(ctx, countQuery,
		f.Name, f.CategorySlug, f.GenreSlug, f.Year).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, titleListQuery+` ORDER BY t.name LIMIT $5 OFFSET $6`,
		f.Name, f.CategorySlug, f.GenreSlug, f.Year, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	titles := make([]entity.Title, 0, limit)
	ids := make([]int64, 0, limit)
	for rows.Next() {
		var t entity.Title
		var catID *int64
		var catName, catSlug *string
		if err := rows.Scan(&t.ID, &t.Name, &t.Year, &t.Description,
			&catID, &catName, &catSlug, &t.Rating); err != nil {
			return nil, 0, err
		}
		if catID != nil {
			t.Category = &entity.Category{ID: *catID, Name: *catName, Slug: *catSlug}
		}
		titles = append(titles, t)
		ids = append(ids, t.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	genres, err := r.genresFor(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range titles {
		titles[i].Genres = genres[titles[i].ID]
	}
	return titles, total, nil
}

func (r *TitleRepository) Update(ctx context.Context, t *entity.Title, genreIDs []int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var categoryID *int64
	if t.Category != nil {
		categoryID = &t.Category.ID
	}
	res, err := tx.Exec(ctx, `
		UPDATE titles SET name = $1, year = $2, description = $3, category_id = $4
		WHERE id = $5
	`, t.Name, t.Year, t.Description, categoryID, t.ID)
	if err != nil {
		return translateConstraint(err, nil)
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("title")
	}
	if err := r.replaceGenres(ctx, tx, t.ID, genreIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *TitleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM titles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound("title")
	}
	return nil
}

func (r *TitleRepository) AverageScore(ctx context.Context, id int64) (*float64, error) {
	var avg *float64
	err := r.pool.QueryRow(ctx,
		`SELECT AVG(score)::float8 FROM reviews WHERE title_id = $1`, id).Scan(&avg)
	if err != nil {
		return nil, err
	}
	return avg, nil
}

var _ repository.TitleRepository = (*TitleRepository)(nil)
