package repository

import (
	"context"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
)

// CategoryRepository persists categories, addressed by slug.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// List filters by name prefix when search is non-empty.
	List(ctx context.Context, search string, limit, offset int) ([]entity.Category, int, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// GenreRepository mirrors CategoryRepository for genres.
type GenreRepository interface {
	Create(ctx context.Context, g *entity.Genre) error
	GetBySlug(ctx context.Context, slug string) (*entity.Genre, error)
	List(ctx context.Context, search string, limit, offset int) ([]entity.Genre, int, error)
	DeleteBySlug(ctx context.Context, slug string) error
}

// TitleFilter narrows title listings. Zero values mean "no filter".
type TitleFilter struct {
	Name         string // substring match
	CategorySlug string
	GenreSlug    string
	Year         *int
}

// TitleRepository persists titles with their category and genre relations.
type TitleRepository interface {
	// Create inserts the title and its genre associations. GenreIDs must
	// already be resolved from slugs.
	Create(ctx context.Context, t *entity.Title, genreIDs []int64) error
	// GetByID expands category and genres; it does not compute the rating.
	GetByID(ctx context.Context, id int64) (*entity.Title, error)
	// List expands relations and computes ratings in one query.
	List(ctx context.Context, f TitleFilter, limit, offset int) ([]entity.Title, int, error)
	Update(ctx context.Context, t *entity.Title, genreIDs []int64) error
	Delete(ctx context.Context, id int64) error
	// AverageScore returns the mean review score, nil when reviewless.
	AverageScore(ctx context.Context, id int64) (*float64, error)
}
