// Package services содержит бизнес-логику для управления задачами и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/lib/sl"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// ErrInvalidDueDate — срок задачи не разобрался как RFC3339.
var ErrInvalidDueDate = errors.New("invalid due date")

// DefaultListLimit — размер первой страницы списка задач.
// Кешируется только страница этого размера: закешированное значение
// зависит от limit, поэтому под общим ключом нельзя хранить
// страницы разных размеров.
const DefaultListLimit = 100

// TaskRepository определяет методы для работы с задачами в хранилище.
// Все операции ограничены задачами переданного владельца.
type TaskRepository interface {
	// CreateTask добавляет новую задачу и возвращает созданную запись.
	CreateTask(ctx context.Context, task models.Task) (*models.Task, error)
	// ListTasks возвращает список задач владельца с пагинацией.
	ListTasks(ctx context.Context, userUID string, limit, offset int) ([]*models.Task, error)
	// GetTask возвращает задачу по ID для данного владельца.
	GetTask(ctx context.Context, userUID, taskID string) (*models.Task, error)
	// UpdateTask обновляет данные задачи по ID для данного владельца.
	UpdateTask(ctx context.Context, userUID, taskID string, task models.Task) (*models.Task, error)
	// CompleteTask помечает задачу выполненной.
	CompleteTask(ctx context.Context, userUID, taskID string) (*models.Task, error)
	// RemoveTask удаляет задачу по ID для данного владельца.
	RemoveTask(ctx context.Context, userUID, taskID string) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// TaskService реализует бизнес-логику работы с задачами, включая кеширование.
type TaskService struct {
	repo  TaskRepository
	cache Cache
	log   *slog.Logger
}

// NewTaskService создает новый экземпляр TaskService.
func NewTaskService(repo TaskRepository, cache Cache, log *slog.Logger) *TaskService {
	return &TaskService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую задачу для пользователя.
// Приоритет по умолчанию — medium, флаг выполнения — false,
// срок разбирается из строки RFC3339.
func (s *TaskService) Create(ctx context.Context, userUID string, req models.DummyTask) (*models.Task, error) {
	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		UserUID:     userUID,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, req.DueDate)
		}
		task.DueDate = &dueDate
	}

	created, err := s.repo.CreateTask(ctx, task)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new task", slog.String("id", created.ID))

	s.invalidateList(userUID)
	return created, nil
}

// List возвращает задачи пользователя. Через кеш идет только первая
// страница стандартного размера, остальные запросы — напрямую из
// хранилища.
func (s *TaskService) List(ctx context.Context, userUID string, limit, offset int) ([]*models.Task, error) {
	cacheKey := listCacheKey(userUID)
	useCache := offset == 0 && limit == DefaultListLimit

	if useCache {
		var cached []*models.Task
		found, err := s.cache.Get(cacheKey, &cached)
		if err != nil {
			s.log.Warn("failed to read tasks from cache", slog.String("key", cacheKey), sl.Err(err))
		}
		if found {
			return cached, nil
		}
	}

	result, err := s.repo.ListTasks(ctx, userUID, limit, offset)
	if err != nil {
		return nil, err
	}

	if useCache {
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to cache tasks", slog.String("key", cacheKey), sl.Err(err))
		}
	}
	return result, nil
}

// Read возвращает задачу по ID для данного владельца.
func (s *TaskService) Read(ctx context.Context, userUID, taskID string) (*models.Task, error) {
	return s.repo.GetTask(ctx, userUID, taskID)
}

// Update обновляет задачу и инвалидирует кеш списка.
func (s *TaskService) Update(ctx context.Context, userUID, taskID string, req models.DummyTask) (*models.Task, error) {
	task := models.Task{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if task.Priority == "" {
		task.Priority = models.PriorityMedium
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDueDate, req.DueDate)
		}
		task.DueDate = &dueDate
	}

	updated, err := s.repo.UpdateTask(ctx, userUID, taskID, task)
	if err != nil {
		return nil, err
	}

	s.invalidateList(userUID)
	return updated, nil
}

// Complete помечает задачу выполненной и инвалидирует кеш списка.
func (s *TaskService) Complete(ctx context.Context, userUID, taskID string) (*models.Task, error) {
	completed, err := s.repo.CompleteTask(ctx, userUID, taskID)
	if err != nil {
		return nil, err
	}

	s.invalidateList(userUID)
	return completed, nil
}

// Remove удаляет задачу и инвалидирует кеш списка.
func (s *TaskService) Remove(ctx context.Context, userUID, taskID string) error {
	if err := s.repo.RemoveTask(ctx, userUID, taskID); err != nil {
		return err
	}

	s.invalidateList(userUID)
	return nil
}

func (s *TaskService) invalidateList(userUID string) {
	cacheKey := listCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate tasks cache", slog.String("key", cacheKey), sl.Err(err))
	}
}

func listCacheKey(userUID string) string {
	return fmt.Sprintf("tasks:%s", userUID)
}
