package remove

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/http/middlewarectx"
	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
)

const taskID = "5f3c0d2e-7b1a-4b8e-9c6d-2f4a8e1b3c5d"

// MockService реализует интерфейс remove.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, userUID, taskID string) error {
	args := m.Called(ctx, userUID, taskID)
	return args.Error(0)
}

func TestRemoveHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		url            string
		userUID        string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:    "успешное удаление",
			url:     "/api/tasks/" + taskID,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", taskID).Return(nil).Once()
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "отсутствует авторизация",
			url:            "/api/tasks/" + taskID,
			userUID:        "",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:           "некорректный id в url",
			url:            "/api/tasks/not-a-uuid",
			userUID:        "uid-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"task not found"}`,
		},
		{
			name:    "чужая задача не найдена",
			url:     "/api/tasks/" + taskID,
			userUID: "uid-2",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-2", taskID).
					Return(apperr.ErrTaskNotFound).Once()
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"error":"task not found"}`,
		},
		{
			name:    "ошибка сервиса",
			url:     "/api/tasks/" + taskID,
			userUID: "uid-1",
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, "uid-1", taskID).
					Return(errors.New("db error")).Once()
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

			req := httptest.NewRequest(http.MethodDelete, tt.url, nil)
			if tt.userUID != "" {
				ctx := context.WithValue(req.Context(), middlewarectx.UserUID, tt.userUID)
				req = req.WithContext(ctx)
			}

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/api/tasks/"))
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}

			mockService.AssertExpectations(t)
		})
	}
}
