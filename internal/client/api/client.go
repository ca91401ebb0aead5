// Package api реализует HTTP-клиент для REST API трекера задач.
//
// Клиент добавляет access-токен из сессии в заголовок Authorization.
// Ответ 401 означает, что сессия больше не действительна: локальные токены
// стираются, чтобы клиент не продолжал слать заведомо отклоняемые запросы.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/magabrotheeeer/task-tracker/internal/client/session"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// ErrUnauthorized возвращается, когда сервер отклонил запрос со статусом 401.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound возвращается, когда задача не найдена или принадлежит
// другому пользователю.
var ErrNotFound = errors.New("not found")

// Client — REST-клиент трекера задач.
type Client struct {
	baseURL string
	http    *http.Client
	session *session.Manager
}

// LoginResult содержит данные, возвращаемые сервером при входе.
type LoginResult struct {
	Token        string          `json:"token"`
	RefreshToken string          `json:"refresh_token"`
	User         models.UserInfo `json:"user"`
}

// RegisterResult содержит данные, возвращаемые сервером при регистрации.
type RegisterResult struct {
	Token string          `json:"token"`
	User  models.UserInfo `json:"user"`
}

// New создает клиент для сервера по адресу baseURL.
func New(baseURL string, sess *session.Manager) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		session: sess,
	}
}

// Register создает нового пользователя и сохраняет полученный токен в сессии.
func (c *Client) Register(ctx context.Context, email, password string) (*RegisterResult, error) {
	const op = "client.api.Register"

	var res RegisterResult
	err := c.do(ctx, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": password,
	}, &res, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.session.Store(res.Token, ""); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

// Login выполняет вход и сохраняет пару токенов в сессии.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	const op = "client.api.Login"

	var res LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &res, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := c.session.Store(res.Token, res.RefreshToken); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &res, nil
}

// Logout отзывает токен на сервере и очищает локальную сессию.
// Локальная сессия очищается даже при ошибке сервера.
func (c *Client) Logout(ctx context.Context) error {
	const op = "client.api.Logout"

	err := c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	if clearErr := c.session.Clear(); clearErr != nil {
		return fmt.Errorf("%s: %w", op, clearErr)
	}
	if err != nil && !errors.Is(err, ErrUnauthorized) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Refresh получает новый access-токен по refresh-токену из сессии.
func (c *Client) Refresh(ctx context.Context) error {
	const op = "client.api.Refresh"

	refresh := c.session.RefreshToken()
	if refresh == "" {
		return fmt.Errorf("%s: %w", op, ErrUnauthorized)
	}

	var res struct {
		Token string `json:"token"`
	}
	err := c.do(ctx, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": refresh,
	}, &res, false)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := c.session.Store(res.Token, refresh); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// CreateTask создает новую задачу.
func (c *Client) CreateTask(ctx context.Context, req models.DummyTask) (*models.Task, error) {
	const op = "client.api.CreateTask"

	var res struct {
		Task *models.Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/tasks", req, &res, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.Task, nil
}

// ListTasks возвращает страницу задач текущего пользователя.
func (c *Client) ListTasks(ctx context.Context, limit, offset int) ([]*models.Task, error) {
	const op = "client.api.ListTasks"

	query := url.Values{}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		query.Set("offset", strconv.Itoa(offset))
	}
	path := "/api/tasks"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	var res struct {
		Tasks []*models.Task `json:"tasks"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &res, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.Tasks, nil
}

// ReadTask возвращает одну задачу по идентификатору.
func (c *Client) ReadTask(ctx context.Context, id string) (*models.Task, error) {
	const op = "client.api.ReadTask"

	var res struct {
		Task *models.Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tasks/"+url.PathEscape(id), nil, &res, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.Task, nil
}

// UpdateTask полностью обновляет задачу.
func (c *Client) UpdateTask(ctx context.Context, id string, req models.DummyTask) (*models.Task, error) {
	const op = "client.api.UpdateTask"

	var res struct {
		Task *models.Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPut, "/api/tasks/"+url.PathEscape(id), req, &res, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.Task, nil
}

// CompleteTask отмечает задачу выполненной.
func (c *Client) CompleteTask(ctx context.Context, id string) (*models.Task, error) {
	const op = "client.api.CompleteTask"

	var res struct {
		Task *models.Task `json:"task"`
	}
	if err := c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id)+"/complete", nil, &res, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return res.Task, nil
}

// RemoveTask удаляет задачу.
func (c *Client) RemoveTask(ctx context.Context, id string) error {
	const op = "client.api.RemoveTask"

	if err := c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// do выполняет HTTP-запрос, сериализует тело и разбирает ответ.
// При authorized=true добавляет заголовок Authorization с токеном сессии.
func (c *Client) do(ctx context.Context, method, path string, body, result any, authorized bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// Без токена запрос уходит без заголовка Authorization,
	// сервер сам ответит 401.
	if authorized {
		if token := c.session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if authorized {
			_ = c.session.Clear()
		}
		return fmt.Errorf("%w: %s", ErrUnauthorized, apiError(resp.Body))
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400:
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiError(resp.Body))
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}

// apiError извлекает сообщение из тела ошибки вида {"error": "..."}.
func apiError(r io.Reader) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&body); err != nil || body.Error == "" {
		return "unknown error"
	}
	return body.Error
}
