package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
)

// TitleService manages titles. Ratings are computed, never stored; single
// lookups go through the Redis cache, which review writes invalidate.
type TitleService struct {
	Titles     repository.TitleRepository
	Categories repository.CategoryRepository
	Genres     repository.GenreRepository
	cache      ratingCache
}

func NewTitleService(titles repository.TitleRepository, categories repository.CategoryRepository, genres repository.GenreRepository, rdb *redis.Client, logger *logrus.Logger, ratingTTL time.Duration) *TitleService {
	return &TitleService{
		Titles:     titles,
		Categories: categories,
		Genres:     genres,
		cache:      ratingCache{rdb: rdb, ttl: ratingTTL, log: logger},
	}
}

// TitleInput carries a title write. Category and genres arrive as slug
// references and are resolved to entities; nil means "not supplied" on
// partial updates.
type TitleInput struct {
	Name         *string
	Year         *int
	Description  *string
	CategorySlug *string
	GenreSlugs   *[]string
}

// validateYear checks the calendar-year ceiling at validation time.
func validateYear(year *int) error {
	if year != nil && *year > time.Now().Year() {
		return apperr.ValidationField("year", "must not be later than the current year")
	}
	return nil
}

func (s *TitleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := s.Categories.GetBySlug(ctx, slug)
	if apperr.IsNotFound(err) {
		return nil, apperr.ValidationField("category", fmt.Sprintf("category with slug %q does not exist", slug))
	}
	return c, err
}

func (s *TitleService) resolveGenres(ctx context.Context, slugs []string) ([]entity.Genre, []int64, error) {
	genres := make([]entity.Genre, 0, len(slugs))
	ids := make([]int64, 0, len(slugs))
	for _, slug := range slugs {
		g, err := s.Genres.GetBySlug(ctx, slug)
		if apperr.IsNotFound(err) {
			return nil, nil, apperr.ValidationField("genre", fmt.Sprintf("genre with slug %q does not exist", slug))
		}
		if err != nil {
			return nil, nil, err
		}
		genres = append(genres, *g)
		ids = append(ids, g.ID)
	}
	return genres, ids, nil
}

func (s *TitleService) Create(ctx context.Context, in TitleInput) (*entity.Title, error) {
	if in.Name == nil || *in.Name == "" {
		return nil, apperr.ValidationField("name", "is required")
	}
	if err := validateYear(in.Year); err != nil {
		return nil, err
	}

	t := &entity.Title{Name: *in.Name, Year: in.Year}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.CategorySlug != nil {
		c, err := s.resolveCategory(ctx, *in.CategorySlug)
		if err != nil {
			return nil, err
		}
		t.Category = c
	}
	var genreIDs []int64
	if in.GenreSlugs != nil {
		genres, ids, err := s.resolveGenres(ctx, *in.GenreSlugs)
		if err != nil {
			return nil, err
		}
		t.Genres = genres
		genreIDs = ids
	}
	if err := s.Titles.Create(ctx, t, genreIDs); err != nil {
		return nil, err
	}
	return t, nil
}

// Get returns the title with its rating, preferring the cache.
func (s *TitleService) Get(ctx context.Context, id int64) (*entity.Title, error) {
	t, err := s.Titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	t.Rating, err = s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TitleService) rating(ctx context.Context, id int64) (*float64, error) {
	if v, ok := s.cache.get(ctx, id); ok {
		return v, nil
	}
	avg, err := s.Titles.AverageScore(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.put(ctx, id, avg)
	return avg, nil
}

// invalidateRating drops the cached rating after a review write.
func (s *TitleService) invalidateRating(ctx context.Context, id int64) {
	s.cache.drop(ctx, id)
}

func (s *TitleService) List(ctx context.Context, f repository.TitleFilter, limit, offset int) ([]entity.Title, int, error) {
	return s.Titles.List(ctx, f, limit, offset)
}

func (s *TitleService) Update(ctx context.Context, id int64, in TitleInput) (*entity.Title, error) {
	t, err := s.Titles.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apperr.ValidationField("name", "is required")
		}
		t.Name = *in.Name
	}
	if in.Year != nil {
		if err := validateYear(in.Year); err != nil {
			return nil, err
		}
		t.Year = in.Year
	}
	if in.Description != nil {
		t.Description = *in.Description
	}
	if in.CategorySlug != nil {
		c, err := s.resolveCategory(ctx, *in.CategorySlug)
		if err != nil {
			return nil, err
		}
		t.Category = c
	}
	genreIDs := make([]int64, 0, len(t.Genres))
	for _, g := range t.Genres {
		genreIDs = append(genreIDs, g.ID)
	}
	if in.GenreSlugs != nil {
		genres, ids, err := s.resolveGenres(ctx, *in.GenreSlugs)
		if err != nil {
			return nil, err
		}
		t.Genres = genres
		genreIDs = ids
	}
	if err := s.Titles.Update(ctx, t, genreIDs); err != nil {
		return nil, err
	}
	t.Rating, err = s.rating(ctx, id)
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (s *TitleService) Delete(ctx context.Context, id int64) error {
	if err := s.Titles.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidateRating(ctx, id)
	return nil
}
