package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// Каждая мутация задачи выполняется одним запросом, отфильтрованным
// по (id, user_uid): проверка владельца и изменение атомарны,
// окна между проверкой и записью нет. Ноль затронутых строк означает
// "нет такой задачи у этого владельца" — чужая задача и несуществующая
// задача снаружи неразличимы.

const taskColumns = `id, title, description, priority, completed, due_date, user_uid, created_at, updated_at`

// CreateTask вставляет новую задачу и возвращает её полную запись.
// Владелец берется из поля UserUID, заполненного сервисом из контекста
// авторизации, а не из клиентского ввода.
func (s *Storage) CreateTask(ctx context.Context, task models.Task) (*models.Task, error) {
	const op = "storage.CreateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tasks (title, description, priority, completed, due_date, user_uid)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + taskColumns
	row := s.DB.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Completed, task.DueDate, task.UserUID)

	result, err := scanTask(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListTasks возвращает список задач пользователя с пагинацией,
// отсортированный по дате создания по убыванию.
func (s *Storage) ListTasks(ctx context.Context, userUID string, limit, offset int) ([]*models.Task, error) {
	const op = "storage.ListTasks"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM tasks
			  WHERE user_uid = $1
			  ORDER BY created_at DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, userUID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Task
	for rows.Next() {
		item, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetTask возвращает задачу по ID, если она принадлежит пользователю.
func (s *Storage) GetTask(ctx context.Context, userUID, taskID string) (*models.Task, error) {
	const op = "storage.GetTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + taskColumns + `
			  FROM tasks
			  WHERE id = $1 AND user_uid = $2`
	row := s.DB.QueryRowContext(ctx, query, taskID, userUID)

	result, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateTask обновляет данные задачи по ID для данного владельца
// и возвращает обновленную запись.
func (s *Storage) UpdateTask(ctx context.Context, userUID, taskID string, task models.Task) (*models.Task, error) {
	const op = "storage.UpdateTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tasks
			  SET title = $1, description = $2, priority = $3, completed = $4,
			      due_date = $5, updated_at = now()
			  WHERE id = $6 AND user_uid = $7
			  RETURNING ` + taskColumns
	row := s.DB.QueryRowContext(ctx, query,
		task.Title, task.Description, task.Priority, task.Completed, task.DueDate,
		taskID, userUID)

	result, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CompleteTask помечает задачу выполненной и возвращает обновленную запись.
// Повторный вызов не ошибка: задача остается выполненной.
func (s *Storage) CompleteTask(ctx context.Context, userUID, taskID string) (*models.Task, error) {
	const op = "storage.CompleteTask"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE tasks
			  SET completed = true, updated_at = now()
			  WHERE id = $1 AND user_uid = $2
			  RETURNING ` + taskColumns
	row := s.DB.QueryRowContext(ctx, query, taskID, userUID)

	result, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrTaskNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// RemoveTask удаляет задачу по ID для данного владельца.
func (s *Storage) RemoveTask(ctx context.Context, userUID, taskID string) error {
	const op = "storage.RemoveTask"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM tasks WHERE id = $1 AND user_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, taskID, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrTaskNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*models.Task, error) {
	var t models.Task
	var description sql.NullString
	var dueDate sql.NullTime
	if err := row.Scan(&t.ID, &t.Title, &description, &t.Priority, &t.Completed,
		&dueDate, &t.UserUID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		t.Description = &description.String
	}
	if dueDate.Valid {
		t.DueDate = &dueDate.Time
	}
	return &t, nil
}
