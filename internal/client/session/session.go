// Package session управляет состоянием аутентификации CLI-клиента.
//
// Токены хранятся в файле в домашнем каталоге пользователя; менеджер
// отслеживает вход и выход, уведомляет подписчиков об изменении состояния
// и отменяет сессионный контекст при выходе.
package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// State описывает текущее состояние сессии клиента.
type State struct {
	LoggedIn bool
	Email    string
}

// Manager хранит access- и refresh-токены и оповещает подписчиков
// об изменениях состояния. Все методы безопасны для конкурентного вызова.
type Manager struct {
	mu          sync.Mutex
	path        string
	token       string
	refresh     string
	subscribers []chan State

	ctx    context.Context
	cancel context.CancelFunc
}

// NewManager создает менеджер с хранением токена в файле path.
// Если файл существует, токен загружается сразу.
func NewManager(path string) (*Manager, error) {
	const op = "client.session.NewManager"

	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		path:   path,
		ctx:    ctx,
		cancel: cancel,
	}
	if err := m.load(); err != nil {
		cancel()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return m, nil
}

// DefaultPath возвращает путь к файлу токена в домашнем каталоге.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".task-tracker", "session"), nil
}

// Store сохраняет пару токенов на диск и переводит сессию в состояние
// «вошел». Запись выполняется атомарно через временный файл.
func (m *Manager) Store(token, refresh string) error {
	const op = "client.session.Store"

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tmp := m.path + ".tmp"
	data := token + "\n" + refresh + "\n"
	if err := os.WriteFile(tmp, []byte(data), 0o600); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := os.Rename(tmp, m.path); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	m.token = token
	m.refresh = refresh
	if m.ctx.Err() != nil {
		m.ctx, m.cancel = context.WithCancel(context.Background())
	}
	m.notifyLocked()
	return nil
}

// Token возвращает текущий access-токен или пустую строку.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// RefreshToken возвращает текущий refresh-токен или пустую строку.
func (m *Manager) RefreshToken() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refresh
}

// Clear удаляет токены с диска и из памяти и отменяет сессионный контекст.
// Повторный вызов безвреден.
func (m *Manager) Clear() error {
	const op = "client.session.Clear"

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.Remove(m.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("%s: %w", op, err)
	}
	m.token = ""
	m.refresh = ""
	m.cancel()
	m.notifyLocked()
	return nil
}

// IsExpired сообщает, истек ли срок действия текущего access-токена.
// Подпись здесь не проверяется, это делает сервер; токен без exp или
// нечитаемый токен считается истекшим.
func (m *Manager) IsExpired() bool {
	m.mu.Lock()
	token := m.token
	m.mu.Unlock()

	if token == "" {
		return true
	}

	parser := jwtlib.NewParser()
	claims := jwtlib.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return time.Now().After(exp.Time)
}

// State возвращает текущее состояние сессии.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stateLocked()
}

// Subscribe возвращает канал, в который отправляется состояние сессии
// после каждого входа и выхода. Канал буферизован, медленный подписчик
// теряет промежуточные состояния, но не блокирует менеджер.
func (m *Manager) Subscribe() <-chan State {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan State, 1)
	m.subscribers = append(m.subscribers, ch)
	return ch
}

// Context возвращает контекст сессии. Он отменяется при выходе,
// что прерывает запущенные от имени сессии операции.
func (m *Manager) Context() context.Context {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ctx
}

func (m *Manager) load() error {
	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var token, refresh string
	if n, _ := fmt.Sscanf(string(data), "%s\n%s", &token, &refresh); n >= 1 {
		m.token = token
		m.refresh = refresh
	}
	return nil
}

func (m *Manager) stateLocked() State {
	st := State{LoggedIn: m.token != ""}
	if !st.LoggedIn {
		return st
	}

	parser := jwtlib.NewParser()
	claims := jwtlib.MapClaims{}
	if _, _, err := parser.ParseUnverified(m.token, claims); err == nil {
		if email, ok := claims["email"].(string); ok {
			st.Email = email
		}
	}
	return st
}

func (m *Manager) notifyLocked() {
	st := m.stateLocked()
	for _, ch := range m.subscribers {
		select {
		case ch <- st:
		default:
		}
	}
}
