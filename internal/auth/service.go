package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/mrlokans/elibrary/internal/apperr"
	"github.com/mrlokans/elibrary/internal/database/users"
	"github.com/mrlokans/elibrary/internal/entities"
)

var (
	ErrInvalidCredentials = apperr.Unauthenticated("Invalid credentials")
	ErrNotAuthenticated   = apperr.Unauthenticated("Not authenticated")
)

// UserStore is the credential store the service reads and writes.
type UserStore interface {
	CreateUser(ctx context.Context, user *entities.User) error
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
}

// Service handles registration, login and token resolution.
type Service struct {
	users      UserStore
	tokens     *TokenIssuer
	bcryptCost int
	log        *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewService creates a new authentication service.
func NewService(users UserStore, tokens *TokenIssuer, bcryptCost int, log *zap.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		log:        log.Named("auth"),
	}
}

// Register creates an active user. A duplicate email fails with
// users.ErrEmailTaken whether it is caught by the lookup or by the store.
func (s *Service) Register(ctx context.Context, name, email, password string) (*entities.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return nil, apperr.Validation("name and email are required")
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		s.log.Warn("registration with existing email", zap.String("email", email))
		return nil, users.ErrEmailTaken
	case !errors.Is(err, apperr.ErrNotFound):
		return nil, err
	}

	hash, err := HashPassword(password, s.bcryptCost)
	if err != nil {
		if errors.Is(err, ErrPasswordRequired) || errors.Is(err, ErrPasswordTooLong) {
			return nil, apperr.Validation(err.Error())
		}
		return nil, apperr.Internal("failed to hash password", err)
	}

	user := &entities.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			s.log.Warn("registration lost race for email", zap.String("email", email))
			return nil, err
		}
		return nil, err
	}

	s.log.Info("user registered", zap.Uint("user_id", user.ID))
	return user, nil
}

// Authenticate checks credentials. Unknown email, wrong password and inactive
// account all fail with ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		// Burn the same bcrypt work as a real comparison.
		_ = CheckPassword(password, s.fallbackHash())
		s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "unknown email"))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if !errors.Is(err, ErrInvalidPassword) {
			return nil, apperr.Internal("failed to verify password", err)
		}
		s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "wrong password"))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.log.Warn("login failed", zap.String("email", email), zap.String("reason", "inactive"))
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", apperr.Internal("failed to issue token", err)
	}
	return token, nil
}

// TokenTTL is the lifetime of tokens returned by Login.
func (s *Service) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// ResolveToken returns the live, active user bound to a bearer token.
func (s *Service) ResolveToken(ctx context.Context, raw string) (*entities.User, error) {
	userID, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrNotAuthenticated.WithCause(err)
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, ErrNotAuthenticated.WithCause(err)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

func (s *Service) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := HashPassword("elibrary-timing-placeholder", s.bcryptCost)
		if err != nil {
			s.log.Error("failed to build placeholder hash", zap.Error(err))
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}
