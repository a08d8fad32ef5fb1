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

// Categories and genres share one shape (name + unique slug), so a single
// implementation is parameterized by table name. Table names are fixed
// constants, never user input.

type labelRepository struct {
	pool     *pgxpool.Pool
	table    string
	resource string
}

func (r *labelRepository) create(ctx context.Context, name, slug string) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO `+r.table+` (name, slug) VALUES ($1, $2) RETURNING id`,
		name, slug).Scan(&id)
	if err != nil {
		return 0, translateConstraint(err, map[string]string{
			r.table + "_slug_key": "slug",
		})
	}
	return id, nil
}

func (r *labelRepository) getBySlug(ctx context.Context, slug string) (int64, string, error) {
	var id int64
	var name string
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM `+r.table+` WHERE slug = $1`, slug).Scan(&id, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", apperr.NotFound(r.resource)
	}
	if err != nil {
		return 0, "", err
	}
	return id, name, nil
}

type labelRow struct {
	ID   int64
	Name string
	Slug string
}

func (r *labelRepository) list(ctx context.Context, search string, limit, offset int) ([]labelRow, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM `+r.table+` WHERE name LIKE $1 || '%'`, search).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, name, slug FROM `+r.table+`
		WHERE name LIKE $1 || '%'
		ORDER BY name
		LIMIT $2 OFFSET $3
	`, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	items := make([]labelRow, 0, limit)
	for rows.Next() {
		var it labelRow
		if err := rows.Scan(&it.ID, &it.Name, &it.Slug); err != nil {
			return nil, 0, err
		}
		items = append(items, it)
	}
	return items, total, rows.Err()
}

func (r *labelRepository) deleteBySlug(ctx context.Context, slug string) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM `+r.table+` WHERE slug = $1`, slug)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return apperr.NotFound(r.resource)
	}
	return nil
}

type CategoryRepository struct {
	labelRepository
}

func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{labelRepository{pool: pool, table: "categories", resource: "category"}}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	id, err := r.create(ctx, c.Name, c.Slug)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (r *CategoryRepository) GetBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	id, name, err := r.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &entity.Category{ID: id, Name: name, Slug: slug}, nil
}

func (r *CategoryRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.Category, int, error) {
	rows, total, err := r.list(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]entity.Category, len(rows))
	for i, row := range rows {
		items[i] = entity.Category{ID: row.ID, Name: row.Name, Slug: row.Slug}
	}
	return items, total, nil
}

func (r *CategoryRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.deleteBySlug(ctx, slug)
}

type GenreRepository struct {
	labelRepository
}

func NewGenreRepository(pool *pgxpool.Pool) *GenreRepository {
	return &GenreRepository{labelRepository{pool: pool, table: "genres", resource: "genre"}}
}

func (r *GenreRepository) Create(ctx context.Context, g *entity.Genre) error {
	id, err := r.create(ctx, g.Name, g.Slug)
	if err != nil {
		return err
	}
	g.ID = id
	return nil
}

func (r *GenreRepository) GetBySlug(ctx context.Context, slug string) (*entity.Genre, error) {
	id, name, err := r.getBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	return &entity.Genre{ID: id, Name: name, Slug: slug}, nil
}

func (r *GenreRepository) List(ctx context.Context, search string, limit, offset int) ([]entity.Genre, int, error) {
	rows, total, err := r.list(ctx, search, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]entity.Genre, len(rows))
	for i, row := range rows {
		items[i] = entity.Genre{ID: row.ID, Name: row.Name, Slug: row.Slug}
	}
	return items, total, nil
}

func (r *GenreRepository) DeleteBySlug(ctx context.Context, slug string) error {
	return r.deleteBySlug(ctx, slug)
}

var (
	_ repository.CategoryRepository = (*CategoryRepository)(nil)
	_ repository.GenreRepository    = (*GenreRepository)(nil)
)
