// Package jwt реализует генерацию и парсинг JWT токенов с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания и проверки access и refresh токенов.
// MakerImpl — конкретная реализация с использованием секретного ключа и срока жизни.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для генерации и парсинга JWT токенов.
//
// Методы позволяют создавать access-токен с идентификатором и email пользователя,
// refresh-токен с увеличенным сроком жизни, а также разбирать токены
// и извлекать из них claims.
type Maker interface {
	// GenerateToken создает access-токен для пользователя
	GenerateToken(userUID, email string) (string, error)
	// GenerateRefreshToken создает refresh-токен для пользователя
	GenerateRefreshToken(userUID, email string) (string, error)
	// ParseToken возвращает *CustomClaims, если access-токен корректен
	ParseToken(tokenStr string) (*CustomClaims, error)
	// ParseRefreshToken возвращает *CustomClaims, если refresh-токен корректен
	ParseRefreshToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токенов (TTL).
type MakerImpl struct {
	secretKey  string        // Секретный ключ для подписи токенов.
	tokenTTL   time.Duration // Время жизни access-токена.
	refreshTTL time.Duration // Время жизни refresh-токена.
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, tokenTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey:  secretKey,
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}
