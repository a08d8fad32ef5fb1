package application

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yamdb/yamdb-api/internal/domain/entity"
	"github.com/yamdb/yamdb-api/internal/domain/repository"
	"github.com/yamdb/yamdb-api/pkg/apperr"
	"github.com/yamdb/yamdb-api/pkg/helpers"
	"github.com/yamdb/yamdb-api/pkg/mailer"
)

// EmailPublisher is the outbound mail channel: jobs are handed off
// fire-and-forget, delivery happens out of process.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// reservedUsername collides with the self-profile route.
const reservedUsername = "me"

// AuthService implements the signup / token-exchange protocol.
type AuthService struct {
	Users              repository.UserRepository
	JWT                *helpers.JWTManager
	Pub                EmailPublisher
	Logger             *logrus.Logger
	ConfirmationSecret string
	MailSendEnabled    bool
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, pub EmailPublisher, logger *logrus.Logger, confirmationSecret string, mailEnabled bool) *AuthService {
	return &AuthService{
		Users:              users,
		JWT:                jwt,
		Pub:                pub,
		Logger:             logger,
		ConfirmationSecret: confirmationSecret,
		MailSendEnabled:    mailEnabled,
	}
}

// Signup registers or re-registers an account. Repeating a signup for the
// same (username, email) pair is the self-service "resend code" path: the
// account is reused, deactivated, and a fresh code replaces the old one.
func (s *AuthService) Signup(ctx context.Context, username, email string) (*entity.User, error) {
	if strings.EqualFold(username, reservedUsername) {
		return nil, apperr.ValidationField("username", `username "me" is reserved`)
	}

	byName, err := s.Users.GetByUsername(ctx, username)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	byEmail, err := s.Users.GetByEmail(ctx, email)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}
	if byName != nil && byName.Email != email {
		return nil, apperr.ValidationField("username", "already taken")
	}
	if byEmail != nil && byEmail.Username != username {
		return nil, apperr.ValidationField("email", "already registered")
	}

	code, err := helpers.NewConfirmationCode(s.ConfirmationSecret, username, email)
	if err != nil {
		return nil, err
	}

	u := byName
	if u == nil {
		u = &entity.User{Username: username, Email: email, Role: entity.RoleUser}
		u.IsActive = false
		u.ConfirmationCode = code
		if err := s.Users.Create(ctx, u); err != nil {
			return nil, err
		}
	} else {
		u.IsActive = false
		u.ConfirmationCode = code
		if err := s.Users.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	s.dispatchCode(ctx, u.Email, code)
	return u, nil
}

// dispatchCode enqueues the confirmation email. Failures are logged only:
// the channel is fire-and-forget and the user can always re-signup.
func (s *AuthService) dispatchCode(ctx context.Context, email, code string) {
	if s.Pub == nil || !s.MailSendEnabled {
		return
	}
	if err := s.Pub.PublishJSON(ctx, mailer.ConfirmationJob(email, code)); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", email).Warn("failed to enqueue confirmation email")
	}
}

// exchangeFailed is deliberately generic: it must not reveal whether the
// username or the code was wrong.
var exchangeFailed = apperr.Validation("invalid confirmation code or user not found", nil)

// ExchangeToken trades a confirmation code for a bearer access token and
// activates the account. Re-activating an already-active account is
// harmless.
func (s *AuthService) ExchangeToken(ctx context.Context, username, code string) (string, time.Time, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return "", time.Time{}, err
	}
	if !helpers.ConfirmationCodeMatches(u.ConfirmationCode, code) {
		return "", time.Time{}, exchangeFailed
	}
	if !u.IsActive {
		u.IsActive = true
		if err := s.Users.Update(ctx, u); err != nil {
			return "", time.Time{}, err
		}
	}
	return s.issueToken(u)
}

func (s *AuthService) issueToken(u *entity.User) (string, time.Time, error) {
	token, exp, err := s.JWT.GenerateAccessToken(u)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", u.Username).Error("generate access token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
