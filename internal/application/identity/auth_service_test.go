package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fintrack/backend/internal/domain/identity"
	"github.com/fintrack/backend/internal/domain/shared"
	"github.com/fintrack/backend/internal/infrastructure/auth"
	"github.com/fintrack/backend/internal/infrastructure/config"
)

// fakeUserRepository is an in-memory identity.Repository for tests
type fakeUserRepository struct {
	byID    map[uuid.UUID]*identity.User
	byEmail map[string]*identity.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{
		byID:    make(map[uuid.UUID]*identity.User),
		byEmail: make(map[string]*identity.User),
	}
}

func (r *fakeUserRepository) Create(_ context.Context, user *identity.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, user *identity.User) error {
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepository) FindByID(_ context.Context, id uuid.UUID) (*identity.User, error) {
	user, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) FindByEmail(_ context.Context, email string) (*identity.User, error) {
	user, ok := r.byEmail[email]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *fakeUserRepository) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func newTestAuthService(t *testing.T) (*AuthService, *fakeUserRepository) {
	t.Helper()
	repo := newFakeUserRepository()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-at-least-32-characters-long",
		Issuer:                 "fintrack-test",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 7 * 24 * time.Hour,
	})
	svc := NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
	return svc, repo
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates account and returns session", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		result, err := svc.Register(context.Background(), RegisterInput{
			Email:       "Alex@Example.com",
			Password:    "correct-horse",
			DisplayName: "Alex",
			Profile:     "BUSINESS",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotEmpty(t, result.RefreshToken)
		assert.Equal(t, "Bearer", result.TokenType)
		assert.Equal(t, "alex@example.com", result.User.Email)
		assert.Equal(t, "BUSINESS", result.User.Profile)
		assert.Equal(t, "USD", result.User.BaseCurrency)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		svc, _ := newTestAuthService(t)

		input := RegisterInput{
			Email:       "dup@example.com",
			Password:    "correct-horse",
			DisplayName: "First",
		}
		_, err := svc.Register(context.Background(), input)
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), input)
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestAuthService_Login(t *testing.T) {
	svc, _ := newTestAuthService(t)
	_, err := svc.Register(context.Background(), RegisterInput{
		Email:       "user@example.com",
		Password:    "correct-horse",
		DisplayName: "User",
	})
	require.NoError(t, err)

	t.Run("succeeds with valid credentials", func(t *testing.T) {
		result, err := svc.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "correct-horse",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotNil(t, result.User.LastLoginAt)
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{
			Email:    "user@example.com",
			Password: "wrong-horse",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects unknown email with the same error", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "correct-horse",
		})

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	})

	t.Run("rejects deactivated account", func(t *testing.T) {
		deactivated, repo := newTestAuthService(t)
		result, err := deactivated.Register(context.Background(), RegisterInput{
			Email:       "gone@example.com",
			Password:    "correct-horse",
			DisplayName: "Gone",
		})
		require.NoError(t, err)

		user, err := repo.FindByID(context.Background(), result.User.ID)
		require.NoError(t, err)
		user.Deactivate()

		_, err = deactivated.Login(context.Background(), LoginInput{
			Email:    "gone@example.com",
			Password: "correct-horse",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		session, err := svc.Register(context.Background(), RegisterInput{
			Email:       "rotate@example.com",
			Password:    "correct-horse",
			DisplayName: "Rotate",
		})
		require.NoError(t, err)

		refreshed, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: session.RefreshToken,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, refreshed.AccessToken)

		// The original refresh token is spent
		_, err = svc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: session.RefreshToken,
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_REVOKED", domainErr.Code)
	})

	t.Run("rejects garbage token", func(t *testing.T) {
		svc, _ := newTestAuthService(t)
		_, err := svc.RefreshToken(context.Background(), RefreshTokenInput{
			RefreshToken: "not-a-jwt",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newTestAuthService(t)
	session, err := svc.Register(context.Background(), RegisterInput{
		Email:       "pw@example.com",
		Password:    "correct-horse",
		DisplayName: "PW",
	})
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          session.User.ID,
			CurrentPassword: "wrong-horse",
			NewPassword:     "battery-staple",
		})
		require.Error(t, err)
	})

	t.Run("changes password and new password works", func(t *testing.T) {
		err := svc.ChangePassword(context.Background(), ChangePasswordInput{
			UserID:          session.User.ID,
			CurrentPassword: "correct-horse",
			NewPassword:     "battery-staple",
		})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), LoginInput{
			Email:    "pw@example.com",
			Password: "battery-staple",
		})
		require.NoError(t, err)
	})
}
