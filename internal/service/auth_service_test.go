package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/diagnosis-service/internal/config"
	"github.com/spec-kit/diagnosis-service/internal/domain"
	apperrors "github.com/spec-kit/diagnosis-service/pkg/util"
)

// memUserRepo enforces the same uniqueness rules as the users table.
type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Username == user.Username || existing.Email == user.Email {
			return apperrors.NewConflict("username or email already exists", nil)
		}
	}
	user.ID = uuid.NewString()
	m.users[user.ID] = &domain.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
	}
	return nil
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, existing := range m.users {
		if id != user.ID && existing.Username == user.Username {
			return apperrors.NewConflict("username already exists", nil)
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:     "test-secret",
			TokenTTLHours: 24,
			BcryptCost:    bcrypt.MinCost,
		},
		Admin: config.AdminConfig{
			Username: "admin",
			Email:    "admin@medical.com",
			Password: "admin123",
		},
	}
}

func newTestAuthService(repo *memUserRepo) *AuthService {
	return NewAuthService(testConfig(), repo, nil, zap.NewNop())
}

func TestRegisterThenLogin(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())
	ctx := context.Background()

	registered, token, _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, registered.ID)
	require.NotEmpty(t, token)
	require.NotEqual(t, "pw1", registered.PasswordHash)

	loggedIn, _, _, err := svc.Login(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	require.Equal(t, registered.ID, loggedIn.ID)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "alice", "alice@x.com", "pw1")
	require.NoError(t, err)

	_, _, _, wrongPw := svc.Login(ctx, "alice@x.com", "wrongpw")
	_, _, _, unknown := svc.Login(ctx, "nobody@x.com", "pw1")

	require.Error(t, wrongPw)
	require.Error(t, unknown)
	require.Equal(t, apperrors.ToDomainError(wrongPw).Code, apperrors.ToDomainError(unknown).Code)
	require.Equal(t, apperrors.ToDomainError(wrongPw).Message, apperrors.ToDomainError(unknown).Message)
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())
	ctx := context.Background()

	_, _, _, err := svc.Register(ctx, "carol", "carol@x.com", "pw1")
	require.NoError(t, err)

	_, _, _, err = svc.Register(ctx, "carol2", "carol@x.com", "pw2")
	require.Error(t, err)
	require.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestEnsureDefaultAdmin_Idempotent(t *testing.T) {
	t.Parallel()

	repo := newMemUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	admins := 0
	for _, user := range repo.users {
		if user.Email == "admin@medical.com" {
			admins++
		}
	}
	require.Equal(t, 1, admins)

	_, _, _, err := svc.Login(ctx, "admin@medical.com", "admin123")
	require.NoError(t, err)
}

func TestUpdateProfile_Rename(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "bob", "bob@x.com", "pw1")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileChanges{Name: "robert"})
	require.NoError(t, err)
	require.Equal(t, "robert", updated.Username)
	require.Equal(t, "bob@x.com", updated.Email)

	// Rename does not invalidate the password.
	_, _, _, err = svc.Login(ctx, "bob@x.com", "pw1")
	require.NoError(t, err)
}

func TestUpdateProfile_PasswordChange(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())
	ctx := context.Background()

	user, _, _, err := svc.Register(ctx, "bob", "bob@x.com", "pw1")
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileChanges{OldPassword: "nope", NewPassword: "pw2"})
	require.Error(t, err)

	_, err = svc.UpdateProfile(ctx, user.ID, ProfileChanges{OldPassword: "pw1", NewPassword: "pw2"})
	require.NoError(t, err)

	_, _, _, err = svc.Login(ctx, "bob@x.com", "pw1")
	require.Error(t, err)
	_, _, _, err = svc.Login(ctx, "bob@x.com", "pw2")
	require.NoError(t, err)
}

func TestUpdateProfile_UserVanished(t *testing.T) {
	t.Parallel()

	svc := newTestAuthService(newMemUserRepo())

	_, err := svc.UpdateProfile(context.Background(), "missing", ProfileChanges{Name: "x"})
	require.Error(t, err)
	require.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
