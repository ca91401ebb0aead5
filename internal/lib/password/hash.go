// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает исходный bcrypt-хеш с введённым паролем, проверяя их соответствие.
// DummyCompare выравнивает время ответа при неизвестном email.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Хеш строки "dummy-password", используется только для выравнивания времени.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(password string) (string, error) {
	const op = "password.GetHash"
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
//
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DummyCompare выполняет сравнение против фиктивного хэша.
//
// Вызывается на пути "email не найден", чтобы ответ занимал столько же
// времени, сколько и проверка реального пароля, — иначе по времени ответа
// можно перебирать зарегистрированные адреса.
func DummyCompare(externalPassword string) {
	_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(externalPassword))
}
