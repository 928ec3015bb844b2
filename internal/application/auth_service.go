package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/heart-api/internal/domain"
	"github.com/oksasatya/heart-api/internal/domain/entity"
	repo "github.com/oksasatya/heart-api/internal/domain/repository"
	"github.com/oksasatya/heart-api/pkg/helpers"
)

const welcomeTimeout = 3 * time.Second

type AuthService struct {
	Users    repo.UserRepository
	Tokens   TokenIssuer
	Notifier WelcomeNotifier
	Logger   *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens TokenIssuer, notifier WelcomeNotifier, logger *logrus.Logger) *AuthService {
	if logger == nil {
		logger = helpers.NewDiscardLogger()
	}
	return &AuthService{Users: users, Tokens: tokens, Notifier: notifier, Logger: logger}
}

// AuthResult is returned by signup and login.
type AuthResult struct {
	User      *entity.User
	Token     string
	ExpiresAt time.Time
}

// Signup creates an account for a not-yet-registered identifier.
// Identifier shape and password length are checked by the caller.
func (s *AuthService) Signup(ctx context.Context, identifier, password string) (*AuthResult, error) {
	identifier = strings.TrimSpace(identifier)

	_, err := s.Users.GetByEmail(ctx, identifier)
	switch {
	case err == nil:
		return nil, domain.ErrUserExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("signup: %w", err)
	}

	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("signup: hash password: %w", err)
	}
	u := &entity.User{Email: identifier, PasswordHash: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("signup: %w", err)
	}

	res, err := s.issue(u)
	if err != nil {
		return nil, err
	}
	s.sendWelcome(ctx, u)
	return res, nil
}

// Login authenticates an identifier/password pair. Unknown identifiers and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	u, err := s.Users.GetByEmail(ctx, strings.TrimSpace(identifier))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.CompareHashAndPassword("", password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}
	return s.issue(u)
}

// Me returns the account behind a verified token.
func (s *AuthService) Me(ctx context.Context, userID string) (*entity.User, error) {
	if !validID(userID) {
		return nil, domain.ErrUserNotFound
	}
	return s.Users.GetByID(ctx, userID)
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.Tokens.Generate(u.ID, u.Email)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{User: u, Token: token, ExpiresAt: exp}, nil
}

func (s *AuthService) sendWelcome(ctx context.Context, u *entity.User) {
	if s.Notifier == nil {
		return
	}
	c, cancel := context.WithTimeout(context.WithoutCancel(ctx), welcomeTimeout)
	defer cancel()
	if err := s.Notifier.Welcome(c, u.Email); err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Warn("enqueue welcome email failed")
	}
}
