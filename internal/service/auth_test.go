package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/domain/mocks"
	"github.com/avc/smm-panel/internal/utils/jwt"
	"github.com/avc/smm-panel/internal/utils/password"
)

func newAuthService(userRepo domain.UserRepository) *AuthService {
	return NewAuthService(
		userRepo,
		password.NewBCryptHasher(password.DefaultCost),
		jwt.NewManager("test-secret", time.Hour),
		"admin", "admin-secret",
		6,
	)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*domain.User)
				assert.Equal(t, "chidi", u.Username)
				assert.Equal(t, "chidi@example.com", u.Email)
				assert.NotEmpty(t, u.PasswordHash)
				assert.Len(t, u.ReferralCode, 6)
				assert.Equal(t, domain.RoleUser, u.Role)
				assert.True(t, u.IsActive)
			}).
			Return(&domain.User{ID: 1, Role: domain.RoleUser}, nil).Once()

		token, user, err := svc.Register(ctx, "chidi", "Chidi@Example.com", "password123", "")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), user.ID)

		userRepo.AssertExpectations(t)
	})

	t.Run("Referral code stored as is", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		// Код не проверяется на существование при регистрации
		userRepo.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.ReferredBy == "NOSUCH"
		})).Return(&domain.User{ID: 2, Role: domain.RoleUser}, nil).Once()

		_, _, err := svc.Register(ctx, "ade", "ade@example.com", "password123", "NOSUCH")
		require.NoError(t, err)

		userRepo.AssertExpectations(t)
	})

	t.Run("Short password", func(t *testing.T) {
		svc := newAuthService(new(mocks.UserRepository))

		_, _, err := svc.Register(ctx, "chidi", "chidi@example.com", "12345", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Invalid email", func(t *testing.T) {
		svc := newAuthService(new(mocks.UserRepository))

		_, _, err := svc.Register(ctx, "chidi", "not-an-email", "password123", "")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("User already exists", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*domain.User")).
			Return(nil, domain.ErrUserExists).Once()

		_, _, err := svc.Register(ctx, "chidi", "chidi@example.com", "password123", "")
		assert.ErrorIs(t, err, domain.ErrUserExists)

		userRepo.AssertExpectations(t)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hasher := password.NewBCryptHasher(password.DefaultCost)
	hash, err := hasher.Hash("password123")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByEmail", mock.Anything, "chidi@example.com").
			Return(&domain.User{ID: 1, Email: "chidi@example.com", PasswordHash: hash, Role: domain.RoleUser, IsActive: true}, nil).Once()

		token, user, err := svc.Login(ctx, "chidi@example.com", "password123")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, int64(1), user.ID)

		userRepo.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByEmail", mock.Anything, "chidi@example.com").
			Return(&domain.User{ID: 1, PasswordHash: hash, IsActive: true}, nil).Once()

		_, _, err := svc.Login(ctx, "chidi@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown email maps to invalid credentials", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByEmail", mock.Anything, "ghost@example.com").
			Return(nil, domain.ErrUserNotFound).Once()

		_, _, err := svc.Login(ctx, "ghost@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Deactivated account", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByEmail", mock.Anything, "chidi@example.com").
			Return(&domain.User{ID: 1, PasswordHash: hash, IsActive: false}, nil).Once()

		_, _, err := svc.Login(ctx, "chidi@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrUserInactive)
	})
}

func TestAuthService_AdminLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(new(mocks.UserRepository))
	jwtManager := jwt.NewManager("test-secret", time.Hour)

	t.Run("Success", func(t *testing.T) {
		token, err := svc.AdminLogin(ctx, "admin", "admin-secret")
		require.NoError(t, err)

		userID, role, err := jwtManager.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, int64(0), userID)
		assert.Equal(t, domain.RoleAdmin, role)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "admin", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Wrong username", func(t *testing.T) {
		_, err := svc.AdminLogin(ctx, "root", "admin-secret")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.Background()
	hasher := password.NewBCryptHasher(password.DefaultCost)
	hash, err := hasher.Hash("oldpassword")
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, PasswordHash: hash}, nil).Once()
		userRepo.On("UpdatePassword", mock.Anything, int64(1), mock.AnythingOfType("string")).
			Return(nil).Once()

		err := svc.ChangePassword(ctx, 1, "oldpassword", "newpassword")
		assert.NoError(t, err)

		userRepo.AssertExpectations(t)
	})

	t.Run("Wrong current password", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(1)).
			Return(&domain.User{ID: 1, PasswordHash: hash}, nil).Once()

		err := svc.ChangePassword(ctx, 1, "wrong", "newpassword")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("New password too short", func(t *testing.T) {
		svc := newAuthService(new(mocks.UserRepository))

		err := svc.ChangePassword(ctx, 1, "oldpassword", "short")
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("Database error", func(t *testing.T) {
		userRepo := new(mocks.UserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("GetUserByID", mock.Anything, int64(1)).
			Return(nil, errors.New("db error")).Once()

		err := svc.ChangePassword(ctx, 1, "oldpassword", "newpassword")
		assert.Error(t, err)
	})
}
