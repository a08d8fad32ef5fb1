package application

import (
	"context"
	"strings"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
	"github.com/yamdb/yamdb-api/pkg/validation"
)

// UserService covers admin account management and the self-profile
// endpoint.
type UserService struct {
	Users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

func (s *UserService) List(ctx context.Context, search string, limit, offset int) ([]entity.User, int, error) {
	return s.Users.List(ctx, search, limit, offset)
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	return s.Users.GetByUsername(ctx, username)
}

type CreateUserInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Bio       string
	Role      entity.Role
}

// Create is the admin path: the account is active immediately and carries
// whatever role the admin assigned.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	if strings.EqualFold(in.Username, reservedUsername) {
		return nil, apperr.ValidationField("username", `username "me" is reserved`)
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !role.Valid() {
		return nil, apperr.ValidationField("role", "must be one of: user, moderator, admin")
	}
	u := &entity.User{
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Bio:       in.Bio,
		Role:      role,
		IsActive:  true,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateUserInput carries a partial update; nil fields are left unchanged.
type UpdateUserInput struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *entity.Role
}

func applyUpdate(u *entity.User, in UpdateUserInput) error {
	if in.Username != nil {
		if strings.EqualFold(*in.Username, reservedUsername) {
			return apperr.ValidationField("username", `username "me" is reserved`)
		}
		if !validation.IsSlug(*in.Username) {
			return apperr.ValidationField("username", "may contain only letters, digits, hyphens and underscores")
		}
		u.Username = *in.Username
	}
	if in.Email != nil {
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if in.Bio != nil {
		u.Bio = *in.Bio
	}
	if in.Role != nil {
		if !in.Role.Valid() {
			return apperr.ValidationField("role", "must be one of: user, moderator, admin")
		}
		u.Role = *in.Role
	}
	return nil
}

// Update is the admin path and may change the role.
func (s *UserService) Update(ctx context.Context, username string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := applyUpdate(u, in); err != nil {
		return nil, err
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdateSelf is the "me" path: any client-supplied role is discarded and
// the requester's current role re-asserted.
func (s *UserService) UpdateSelf(ctx context.Context, requester *entity.User, in UpdateUserInput) (*entity.User, error) {
	in.Role = nil
	u, err := s.Users.GetByID(ctx, requester.ID)
	if err != nil {
		return nil, err
	}
	keep := u.Role
	if err := applyUpdate(u, in); err != nil {
		return nil, err
	}
	u.Role = keep
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, username string) error {
	return s.Users.DeleteByUsername(ctx, username)
}
