package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/avc/smm-panel/internal/domain"
	"github.com/avc/smm-panel/internal/utils/ident"
	"github.com/avc/smm-panel/internal/utils/jwt"
	"github.com/avc/smm-panel/internal/utils/password"
)

// AuthService отвечает за регистрацию и вход пользователей и администратора
type AuthService struct {
	userRepo       domain.UserRepository
	passwordHasher password.Hasher
	jwtManager     *jwt.Manager
	adminUsername  string
	adminPassword  string
	minPasswordLen int
}

// NewAuthService создает новый AuthService
func NewAuthService(
	userRepo domain.UserRepository,
	passwordHasher password.Hasher,
	jwtManager *jwt.Manager,
	adminUsername, adminPassword string,
	minPasswordLen int,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		passwordHasher: passwordHasher,
		jwtManager:     jwtManager,
		adminUsername:  adminUsername,
		adminPassword:  adminPassword,
		minPasswordLen: minPasswordLen,
	}
}

// Register регистрирует нового пользователя и возвращает токен.
// referredBy сохраняется как есть, без проверки существования кода:
// бонус начисляется только при подтверждении депозита, и висячий код
// тогда просто ничего не находит.
func (s *AuthService) Register(ctx context.Context, username, email, userPassword, referredBy string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	// Валидация входных данных
	if username == "" || email == "" {
		return "", nil, fmt.Errorf("%w: username and email are required", ErrInvalidInput)
	}
	if !strings.Contains(email, "@") {
		return "", nil, fmt.Errorf("%w: invalid email", ErrInvalidInput)
	}
	if len(userPassword) < s.minPasswordLen {
		return "", nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPasswordLen)
	}

	hash, err := s.passwordHasher.Hash(userPassword)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to hash password for %q: %w", email, err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		ReferralCode: ident.ReferralCode(),
		ReferredBy:   strings.TrimSpace(referredBy),
		Role:         domain.RoleUser,
		IsActive:     true,
	}

	created, err := s.userRepo.CreateUser(ctx, user)
	if err != nil {
		// Не оборачиваем sentinel error
		if errors.Is(err, domain.ErrUserExists) {
			return "", nil, err
		}
		return "", nil, fmt.Errorf("auth service: failed to register user %q: %w", email, err)
	}

	token, err := s.jwtManager.Generate(created.ID, created.Role)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token for user %d: %w", created.ID, err)
	}

	return token, created, nil
}

// Login аутентифицирует пользователя по email и паролю
func (s *AuthService) Login(ctx context.Context, email, userPassword string) (string, *domain.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || userPassword == "" {
		return "", nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Не раскрываем, существует ли аккаунт
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth service: failed to get user %q: %w", email, err)
	}

	if err := s.passwordHasher.Check(user.PasswordHash, userPassword); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return "", nil, domain.ErrUserInactive
	}

	token, err := s.jwtManager.Generate(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("auth service: failed to generate token for user %d: %w", user.ID, err)
	}

	return token, user, nil
}

// AdminLogin аутентифицирует администратора по статической конфигурации.
// Администратор не хранится в БД; его user ID в токене всегда 0.
func (s *AuthService) AdminLogin(_ context.Context, username, userPassword string) (string, error) {
	usernameOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.adminUsername)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(userPassword), []byte(s.adminPassword)) == 1
	if !usernameOK || !passwordOK {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(0, domain.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("auth service: failed to generate admin token: %w", err)
	}

	return token, nil
}

// ChangePassword меняет пароль пользователя после проверки текущего
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, currentPassword, newPassword string) error {
	if len(newPassword) < s.minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, s.minPasswordLen)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("auth service: failed to get user %d: %w", userID, err)
	}

	if err := s.passwordHasher.Check(user.PasswordHash, currentPassword); err != nil {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.passwordHasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("auth service: failed to hash new password for user %d: %w", userID, err)
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("auth service: failed to update password for user %d: %w", userID, err)
	}

	return nil
}
