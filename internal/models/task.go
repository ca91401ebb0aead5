// Package models содержит доменные структуры, описывающие задачу,
// а также вспомогательные типы для работы с данными из JSON-запросов.
package models

import "time"

// Приоритеты задачи. Хранятся в базе как текст с CHECK-ограничением.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Task представляет собой основную модель задачи,
// используемую в бизнес-логике и хранилище.
// Поля Description и DueDate могут быть nil — это означает
// отсутствие описания и срока соответственно.
type Task struct {
	ID          string     `json:"id"`                    // Уникальный идентификатор задачи
	Title       string     `json:"title"`                 // Заголовок задачи
	Description *string    `json:"description,omitempty"` // Описание задачи
	Priority    string     `json:"priority"`              // Приоритет: low, medium или high
	Completed   bool       `json:"completed"`             // Флаг выполнения
	DueDate     *time.Time `json:"due_date,omitempty"`    // Срок выполнения
	UserUID     string     `json:"user_id"`               // Идентификатор пользователя-владельца
	CreatedAt   time.Time  `json:"created_at"`            // Дата создания
	UpdatedAt   time.Time  `json:"updated_at"`            // Дата последнего обновления
}

// DummyTask используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Task.
// Срок приходит в виде строки RFC3339, чтобы его можно было
// валидировать и парсить вручную.
type DummyTask struct {
	Title       string  `json:"title" validate:"required,max=255"`                  // Заголовок (1-255 символов)
	Description *string `json:"description" validate:"omitempty,max=1000"`          // Описание (до 1000 символов)
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"` // Приоритет
	DueDate     string  `json:"due_date" validate:"omitempty"`                      // Срок в формате RFC3339
	Completed   *bool   `json:"completed"`                                          // Флаг выполнения (для обновления)
}
