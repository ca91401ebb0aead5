// Package apperr определяет сигнальные ошибки, общие для сервисов,
// хранилища и HTTP-обработчиков. Обработчики сопоставляют их с HTTP-статусами
// через errors.Is, не заглядывая в текст ошибки.
package apperr

import "errors"

var (
	// ErrEmailTaken — адрес уже зарегистрирован (без учета регистра).
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials — неизвестный email или неверный пароль.
	// Один текст для обоих случаев, чтобы не раскрывать существование аккаунта.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrTokenExpired — срок действия токена истек.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed — подпись не сходится или структура токена некорректна.
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenRevoked — токен отозван через logout.
	ErrTokenRevoked = errors.New("token revoked")
	// ErrUserNotFound — пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrTaskNotFound — задача не найдена у данного владельца.
	// Возвращается и для чужих задач: снаружи случаи неразличимы.
	ErrTaskNotFound = errors.New("task not found")
)
