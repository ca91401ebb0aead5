// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// CustomClaims расширяет стандартные claims JWT, добавляя email пользователя
// и тип токена. Идентификатор пользователя хранится в стандартном поле Subject.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
)

const refreshTokenType = "refresh"

// CustomClaims описывает пользовательские данные, хранящиеся в JWT.
type CustomClaims struct {
	Email                string `json:"email"`          // Электронная почта пользователя
	TokenType            string `json:"type,omitempty"` // Тип токена: пусто для access, "refresh" для refresh
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (Subject, ExpiresAt, IssuedAt и пр.)
}

// GenerateToken создает access-токен с идентификатором пользователя в Subject
// и email в кастомном claim, подписывая его секретным ключом.
//
// Время жизни токена определяется полем tokenTTL.
func (j *MakerImpl) GenerateToken(userUID, email string) (string, error) {
	return j.generate(userUID, email, "", j.tokenTTL)
}

// GenerateRefreshToken создает refresh-токен с типом "refresh"
// и увеличенным сроком жизни refreshTTL.
func (j *MakerImpl) GenerateRefreshToken(userUID, email string) (string, error) {
	return j.generate(userUID, email, refreshTokenType, j.refreshTTL)
}

func (j *MakerImpl) generate(userUID, email, tokenType string, ttl time.Duration) (string, error) {
	claims := CustomClaims{
		Email:     email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

// ParseToken парсит access-токен, проверяет его подпись и срок действия,
// возвращает CustomClaims с данными, если токен корректен.
//
// Истекший токен дает apperr.ErrTokenExpired, любая другая проблема
// (битая подпись, чужой алгоритм, мусор вместо токена) — apperr.ErrTokenMalformed.
func (j *MakerImpl) ParseToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseToken"
	claims, err := j.parse(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.TokenType == refreshTokenType {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrTokenMalformed)
	}
	return claims, nil
}

// ParseRefreshToken парсит refresh-токен. Access-токен на этом месте
// отклоняется как некорректный.
func (j *MakerImpl) ParseRefreshToken(tokenStr string) (*CustomClaims, error) {
	const op = "jwt.ParseRefreshToken"
	claims, err := j.parse(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if claims.TokenType != refreshTokenType {
		return nil, fmt.Errorf("%s: %w", op, apperr.ErrTokenMalformed)
	}
	return claims, nil
}

func (j *MakerImpl) parse(tokenStr string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &CustomClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.secretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperr.ErrTokenExpired
		}
		return nil, apperr.ErrTokenMalformed
	}
	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, apperr.ErrTokenMalformed
	}
	return claims, nil
}
