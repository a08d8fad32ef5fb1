package repository

import (
	"context"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// List returns users whose username starts with prefix (all users when
	// prefix is empty) plus the total match count for pagination.
	List(ctx context.Context, prefix string, limit, offset int) ([]entity.User, int, error)
	Update(ctx context.Context, u *entity.User) error
	DeleteByUsername(ctx context.Context, username string) error
}
