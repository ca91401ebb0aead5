package login

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
	"github.com/magabrotheeeer/task-tracker/internal/models"
)

// MockService реализует интерфейс login.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, email, password string) (*models.User, string, string, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.String(1), args.String(2), args.Error(3)
	}
	return args.Get(0).(*models.User), args.String(1), args.String(2), args.Error(3)
}

func TestLoginHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный вход",
			requestBody: Request{
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return(&models.User{UID: "uid-1", Email: "test@example.com"}, "jwt-token", "refresh-token", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"refresh_token":"refresh-token"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name: "пустой пароль",
			requestBody: Request{
				Email:    "test@example.com",
				Password: "",
			},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field Password is a required field"}`,
		},
		{
			name: "неверные учетные данные",
			requestBody: Request{
				Email:    "test@example.com",
				Password: "wrong-password",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "wrong-password").
					Return(nil, "", "", apperr.ErrInvalidCredentials).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			name: "неизвестный email дает тот же ответ",
			requestBody: Request{
				Email:    "unknown@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "unknown@example.com", "password123").
					Return(nil, "", "", apperr.ErrInvalidCredentials).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid email or password"}`,
		},
		{
			name: "ошибка сервиса",
			requestBody: Request{
				Email:    "test@example.com",
				Password: "password123",
			},
			setupMock: func(m *MockService) {
				m.On("Login", mock.Anything, "test@example.com", "password123").
					Return(nil, "", "", errors.New("db error")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"internal error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
