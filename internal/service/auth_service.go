package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/diagnosis-service/internal/auth"
	"github.com/spec-kit/diagnosis-service/internal/config"
	"github.com/spec-kit/diagnosis-service/internal/domain"
	"github.com/spec-kit/diagnosis-service/internal/events"
	"github.com/spec-kit/diagnosis-service/internal/repository"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// ProfileChanges captures a partial profile update. Renaming and
// changing the password are independent of each other.
type ProfileChanges struct {
	Name        string
	OldPassword string
	NewPassword string
}

// AuthService coordinates registration, login, and profile flows.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	admin      config.AdminConfig
}

// NewAuthService builds the service.
func NewAuthService(cfg *config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL()),
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
		admin:      cfg.Admin,
	}
}

// Register creates a new account and returns it with a fresh token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewConflict("username or email already exists", nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}
	// The unique indexes catch registrations racing past the pre-check;
	// the repository maps those to a conflict as well.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.New(events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
			Username: user.Username,
			Email:    user.Email,
		}))
	}
	return user, token, exp, nil
}

// Login authenticates by email and password. Unknown emails and wrong
// passwords fail identically so callers cannot probe for accounts.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// GetUser resolves an account by id.
func (s *AuthService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile applies a partial profile update for the caller.
// Changing the password requires the current password to verify first.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, changes ProfileChanges) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}

	if name := strings.TrimSpace(changes.Name); name != "" {
		user.Username = name
	}

	if changes.OldPassword != "" && changes.NewPassword != "" {
		if err := auth.ComparePassword(user.PasswordHash, changes.OldPassword); err != nil {
			return nil, apperrors.NewValidationError("current password is incorrect", nil)
		}
		hash, err := auth.HashPassword(changes.NewPassword, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", nil)
		}
		return nil, err
	}
	return user, nil
}

// EnsureDefaultAdmin creates the default administrative account when it
// does not exist yet. Safe to call on every start; a lost creation race
// or an existing account is not an error.
func (s *AuthService) EnsureDefaultAdmin(ctx context.Context) error {
	if _, err := s.users.GetByEmail(ctx, s.admin.Email); err == nil {
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	_, _, _, err := s.Register(ctx, s.admin.Username, s.admin.Email, s.admin.Password)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.Code == "CONFLICT" {
			return nil
		}
		return err
	}

	s.logger.Info("default admin created", zap.String("email", s.admin.Email))
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
