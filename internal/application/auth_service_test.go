package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/pkg/apperr"
	"github.com/yamdb/yamdb-api/pkg/helpers"
	"github.com/yamdb/yamdb-api/pkg/mailer"
)

func newAuthService(users *fakeUserRepo, pub *fakePublisher) *AuthService {
	return NewAuthService(users, helpers.NewJWTManager("test-secret", time.Hour), pub, nil, "conf-secret", true)
}

func TestSignupReservedUsername(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), &fakePublisher{})
	for _, username := range []string{"me", "ME", "Me", "mE"} {
		_, err := svc.Signup(context.Background(), username, "me@example.com")
		e, ok := apperr.As(err)
		require.True(t, ok, "signup(%q) must fail", username)
		assert.Equal(t, apperr.KindValidation, e.Kind)
		assert.Contains(t, e.Fields, "username")
	}
}

func TestSignupCreatesInactiveAccountAndSendsCode(t *testing.T) {
	users := newFakeUserRepo()
	pub := &fakePublisher{}
	svc := newAuthService(users, pub)

	u, err := svc.Signup(context.Background(), "reader", "reader@example.com")
	require.NoError(t, err)
	assert.False(t, u.IsActive)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.NotEmpty(t, u.ConfirmationCode)

	require.Len(t, pub.jobs, 1)
	job, ok := pub.jobs[0].(mailer.EmailJob)
	require.True(t, ok)
	assert.Equal(t, "reader@example.com", job.To)
	assert.Contains(t, job.Text, u.ConfirmationCode)
}

func TestSignupConflictsNameConflictingField(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakePublisher{})
	ctx := context.Background()

	_, err := svc.Signup(ctx, "reader", "reader@example.com")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "reader", "other@example.com")
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "username")

	_, err = svc.Signup(ctx, "other", "reader@example.com")
	e, ok = apperr.As(err)
	require.True(t, ok)
	assert.Contains(t, e.Fields, "email")
}

func TestResignupRotatesCode(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakePublisher{})
	ctx := context.Background()

	first, err := svc.Signup(ctx, "reader", "reader@example.com")
	require.NoError(t, err)
	oldCode := first.ConfirmationCode

	second, err := svc.Signup(ctx, "reader", "reader@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-signup must reuse the account")
	assert.NotEqual(t, oldCode, second.ConfirmationCode)
	assert.False(t, second.IsActive)

	// The stale code must stop working once a new one is issued.
	_, _, err = svc.ExchangeToken(ctx, "reader", oldCode)
	e, ok := apperr.As(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Equal(t, "invalid confirmation code or user not found", e.Message)

	_, _, err = svc.ExchangeToken(ctx, "reader", second.ConfirmationCode)
	assert.NoError(t, err)
}

func TestExchangeTokenUnknownUser(t *testing.T) {
	svc := newAuthService(newFakeUserRepo(), &fakePublisher{})
	_, _, err := svc.ExchangeToken(context.Background(), "nobody", "whatever")
	assert.True(t, apperr.IsNotFound(err))
}

func TestExchangeTokenActivatesAndIssuesToken(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakePublisher{})
	ctx := context.Background()

	u, err := svc.Signup(ctx, "reader", "reader@example.com")
	require.NoError(t, err)

	token, exp, err := svc.ExchangeToken(ctx, "reader", u.ConfirmationCode)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now()))

	claims, err := svc.JWT.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, entity.RoleUser, claims.Role)

	stored, err := users.GetByUsername(ctx, "reader")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)

	// Re-exchange with the same code is harmless.
	_, _, err = svc.ExchangeToken(ctx, "reader", u.ConfirmationCode)
	assert.NoError(t, err)
}

func TestSignupMailFailureIsNotFatal(t *testing.T) {
	users := newFakeUserRepo()
	svc := newAuthService(users, &fakePublisher{err: context.DeadlineExceeded})
	_, err := svc.Signup(context.Background(), "reader", "reader@example.com")
	assert.NoError(t, err, "mail channel failures are fire-and-forget")
}
