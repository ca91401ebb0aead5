// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/task-tracker/internal/lib/jwt"
	"github.com/magabrotheeeer/task-tracker/internal/lib/password"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

const revokedTokenKeyPrefix = "revoked_token:"

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email (без учета регистра)
	// или apperr.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// TokenStore описывает хранилище отозванных токенов.
type TokenStore interface {
	// Has проверяет, отозван ли токен.
	Has(key string) (bool, error)
	// Set помечает токен отозванным на срок expiration.
	Set(key string, value any, expiration time.Duration) error
}

// Identity — подтвержденная личность запроса, извлеченная из валидного токена.
// Единственный источник владельца для операций над задачами.
type Identity struct {
	UID   string
	Email string
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	tokens   TokenStore
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, tokens TokenStore) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		tokens:   tokens,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает его вместе со свежим access-токеном.
// Занятый email дает apperr.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		IsActive:     true,
	}
	uid, err := s.users.RegisterUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(uid, email)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

// Login проверяет пароль пользователя и генерирует пару access и refresh токенов.
//
// Неизвестный email, неверный пароль и деактивированная учетная запись дают
// одну и ту же ошибку apperr.ErrInvalidCredentials. На пути "email не найден"
// выполняется сравнение с фиктивным хэшем, чтобы время ответа не выдавало
// существование аккаунта.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (user *models.User, token, refresh string, err error) {
	user, err = s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperr.ErrUserNotFound) {
			password.DummyCompare(rawPassword)
			return nil, "", "", apperr.ErrInvalidCredentials
		}
		return nil, "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", "", apperr.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", "", apperr.ErrInvalidCredentials
	}

	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err = s.jwtMaker.GenerateRefreshToken(user.UID, user.Email)
	if err != nil {
		return nil, "", "", err
	}
	return user, token, refresh, nil
}

// ValidateToken проверяет JWT и возвращает личность пользователя.
//
// Отозванный токен дает apperr.ErrTokenRevoked, истекший — apperr.ErrTokenExpired,
// любой другой дефект — apperr.ErrTokenMalformed. Если хранилище отозванных
// токенов недоступно, проверка завершается ошибкой: при невозможности
// убедиться в валидности доступ не выдается.
func (s *AuthService) ValidateToken(_ context.Context, token string) (*Identity, error) {
	const op = "auth.ValidateToken"
	revoked, err := s.tokens.Has(revokedTokenKeyPrefix + token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrTokenRevoked)
	}

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, err
	}
	return &Identity{
		UID:   claims.Subject,
		Email: claims.Email,
	}, nil
}

// Refresh выдает новый access-токен по действующему refresh-токену.
func (s *AuthService) Refresh(_ context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"
	revoked, err := s.tokens.Has(revokedTokenKeyPrefix + refreshToken)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if revoked {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrTokenRevoked)
	}

	claims, err := s.jwtMaker.ParseRefreshToken(refreshToken)
	if err != nil {
		return "", err
	}
	return s.jwtMaker.GenerateToken(claims.Subject, claims.Email)
}

// Logout отзывает токен до конца его срока действия.
// Истекший или некорректный токен отзывать нечего — возвращается nil,
// logout идемпотентен.
func (s *AuthService) Logout(_ context.Context, token string) error {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		return nil
	}
	return s.tokens.Set(revokedTokenKeyPrefix+token, "true", ttl)
}
