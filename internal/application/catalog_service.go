package application

import (
	"context"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
)

// CatalogService manages the category and genre tags.
type CatalogService struct {
	Categories repository.CategoryRepository
	Genres     repository.GenreRepository
}

func NewCatalogService(categories repository.CategoryRepository, genres repository.GenreRepository) *CatalogService {
	return &CatalogService{Categories: categories, Genres: genres}
}

func (s *CatalogService) CreateCategory(ctx context.Context, name, slug string) (*entity.Category, error) {
	c := &entity.Category{Name: name, Slug: slug}
	if err := s.Categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CatalogService) ListCategories(ctx context.Context, search string, limit, offset int) ([]entity.Category, int, error) {
	return s.Categories.List(ctx, search, limit, offset)
}

func (s *CatalogService) DeleteCategory(ctx context.Context, slug string) error {
	return s.Categories.DeleteBySlug(ctx, slug)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name, slug string) (*entity.Genre, error) {
	g := &entity.Genre{Name: name, Slug: slug}
	if err := s.Genres.Create(ctx, g); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *CatalogService) ListGenres(ctx context.Context, search string, limit, offset int) ([]entity.Genre, int, error) {
	return s.Genres.List(ctx, search, limit, offset)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, slug string) error {
	return s.Genres.DeleteBySlug(ctx, slug)
}
