package create

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

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/models"
	task "github.com/magabrotheeeer/task-tracker/internal/services/task"
)

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, userUID string, req models.DummyTask) (*models.Task, error) {
	args := m.Called(ctx, userUID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Task), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		requestBody    interface{}
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "успешное создание задачи",
			requestBody: models.DummyTask{Title: "buy milk"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyTask")).
					Return(&models.Task{ID: "task-1", Title: "buy milk", Priority: models.PriorityMedium}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"title":"buy milk"`,
		},
		{
			name:           "отсутствует авторизация",
			requestBody:    models.DummyTask{Title: "buy milk"},
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "пустой заголовок задачи",
			requestBody:    models.DummyTask{Title: ""},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field Title is a required field"}`,
		},
		{
			name:           "недопустимый приоритет",
			requestBody:    models.DummyTask{Title: "buy milk", Priority: "urgent"},
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field Priority must be one of: low medium high"}`,
		},
		{
			name:        "некорректный срок",
			requestBody: models.DummyTask{Title: "buy milk", DueDate: "tomorrow"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyTask")).
					Return(nil, task.ErrInvalidDueDate).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"due_date must be a valid RFC3339 timestamp"}`,
		},
		{
			name:        "ошибка сервиса",
			requestBody: models.DummyTask{Title: "buy milk"},
			userUID:     "uid-1",
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, "uid-1", mock.AnythingOfType("models.DummyTask")).
					Return(nil, errors.New("db error")).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/api/tasks", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
