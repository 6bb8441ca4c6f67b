// Package auth содержит логику бизнес-уровня для входа администратора,
// проверки токенов сессии и ротации пароля.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/crypto-academy/internal/config"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/jwt"
	"github.com/magabrotheeeer/crypto-academy/internal/lib/password"
	"github.com/magabrotheeeer/crypto-academy/internal/models"
	"github.com/magabrotheeeer/crypto-academy/internal/storage/repository"
)

// Ошибки уровня сервиса, по которым обработчики выбирают HTTP-статус.
var (
	// ErrInvalidCredentials неверная пара username/password.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrServerMisconfigured секрет подписи не заменён на собственный.
	// Жёсткое предусловие, требует вмешательства оператора.
	ErrServerMisconfigured = errors.New("jwt secret is not configured")
	// ErrUserNotFound субъект сессии больше не существует.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword текущий пароль не прошёл проверку при ротации.
	ErrWrongPassword = errors.New("current password is incorrect")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID возвращает пользователя по идентификатору.
	GetUserByID(ctx context.Context, id int) (*models.User, error)

	// UpdatePasswordHash перезаписывает хэш пароля пользователя.
	UpdatePasswordHash(ctx context.Context, id int, passwordHash string) error
}

// Service отвечает за вход, валидацию JWT и ротацию пароля.
//
// Сессии полностью stateless: сервер не хранит таблицу сессий, отзыв токена
// до истечения срока невозможен. Ротация пароля не инвалидирует ранее
// выданные токены, клиент должен сам разлогиниться после смены пароля.
type Service struct {
	users     UserRepository
	jwtMaker  jwt.Maker
	jwtSecret string
}

// NewService создает новый экземпляр Service.
func NewService(users UserRepository, jwtMaker jwt.Maker, jwtSecret string) *Service {
	return &Service{
		users:     users,
		jwtMaker:  jwtMaker,
		jwtSecret: jwtSecret,
	}
}

// Login проверяет пароль пользователя и выдаёт подписанный токен сессии
// вместе с безопасной проекцией пользователя.
func (s *Service) Login(ctx context.Context, username, rawPassword string) (string, *models.PublicUser, error) {
	if s.jwtSecret == "" || s.jwtSecret == config.DefaultJWTSecret {
		return "", nil, ErrServerMisconfigured
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.jwtMaker.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	pub := user.Public()
	return token, &pub, nil
}

// ValidateToken проверяет JWT и возвращает его claims.
func (s *Service) ValidateToken(token string) (*jwt.CustomClaims, error) {
	return s.jwtMaker.ParseToken(token)
}

// ChangePassword проверяет текущий пароль субъекта сессии и перезаписывает
// хранимый хэш новым. Ранее выданные токены остаются валидны до истечения.
func (s *Service) ChangePassword(ctx context.Context, userID int, currentPassword, newPassword string) error {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("lookup user: %w", err)
	}
	if err := password.CompareHash(user.PasswordHash, currentPassword); err != nil {
		return ErrWrongPassword
	}

	newHash, err := password.GetHash(newPassword)
	if err != nil {
		return fmt.Errorf("hash new password: %w", err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password hash: %w", err)
	}
	return nil
}
