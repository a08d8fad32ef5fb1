package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/pkg/apperr"
)

func seedUser(t *testing.T, users *fakeUserRepo, username string, role entity.Role) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: username + "@example.com", Role: role, IsActive: true}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func strptr(s string) *string { return &s }

func TestUpdateSelfIgnoresRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	u := seedUser(t, users, "reader", entity.RoleUser)

	admin := entity.RoleAdmin
	got, err := svc.UpdateSelf(context.Background(), u, UpdateUserInput{
		Bio:  strptr("occasional critic"),
		Role: &admin,
	})
	require.NoError(t, err)
	assert.Equal(t, "occasional critic", got.Bio)
	assert.Equal(t, entity.RoleUser, got.Role, "role must survive a self-update unchanged")
}

func TestUpdateSelfChangesUsername(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	u := seedUser(t, users, "reader", entity.RoleUser)

	got, err := svc.UpdateSelf(context.Background(), u, UpdateUserInput{Username: strptr("bookworm")})
	require.NoError(t, err)
	assert.Equal(t, "bookworm", got.Username)

	stored, err := users.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "bookworm", stored.Username)
}

func TestUpdateUsernameRejectsReservedAndBadCharset(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	u := seedUser(t, users, "reader", entity.RoleUser)

	for _, username := range []string{"me", "ME", "has space", "no,commas"} {
		_, err := svc.UpdateSelf(context.Background(), u, UpdateUserInput{Username: strptr(username)})
		e, ok := apperr.As(err)
		require.True(t, ok, "rename to %q must fail", username)
		assert.Contains(t, e.Fields, "username")
	}
}

func TestUpdateUsernameTakenNamesConflictingField(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seedUser(t, users, "reader", entity.RoleUser)
	u := seedUser(t, users, "writer", entity.RoleUser)

	_, err := svc.UpdateSelf(context.Background(), u, UpdateUserInput{Username: strptr("reader")})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "username")
}

func TestAdminUpdateMayChangeRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seedUser(t, users, "reader", entity.RoleUser)

	mod := entity.RoleModerator
	got, err := svc.Update(context.Background(), "reader", UpdateUserInput{Role: &mod})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleModerator, got.Role)
}

func TestAdminUpdateRejectsUnknownRole(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seedUser(t, users, "reader", entity.RoleUser)

	bogus := entity.Role("owner")
	_, err := svc.Update(context.Background(), "reader", UpdateUserInput{Role: &bogus})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "role")
}

func TestCreateRejectsReservedUsername(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.Create(context.Background(), CreateUserInput{Username: "Me", Email: "m@example.com"})
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "username")
}

func TestListFiltersByPrefix(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users)
	seedUser(t, users, "alice", entity.RoleUser)
	seedUser(t, users, "alina", entity.RoleUser)
	seedUser(t, users, "bob", entity.RoleUser)

	got, total, err := svc.List(context.Background(), "ali", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, got, 2)
	assert.Equal(t, "alice", got[0].Username)
	assert.Equal(t, "alina", got[1].Username)
}
