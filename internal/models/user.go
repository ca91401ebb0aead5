// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и временные метки.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная без учета регистра)
	PasswordHash string    // Хэш пароля пользователя
	IsActive     bool      // Флаг активности учетной записи
	CreatedAt    time.Time // Дата создания
	UpdatedAt    time.Time // Дата последнего обновления
}

// UserInfo — публичное представление пользователя для ответов API.
// Не содержит хэш пароля и служебные поля.
type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Info возвращает публичное представление пользователя.
func (u *User) Info() UserInfo {
	return UserInfo{
		ID:    u.UID,
		Email: u.Email,
	}
}
