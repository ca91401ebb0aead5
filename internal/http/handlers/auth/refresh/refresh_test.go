package refresh

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/task-tracker/internal/lib/apperr"
)

// MockService реализует интерфейс refresh.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Error(1)
}

func TestRefreshHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name           string
		requestBody    interface{}
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:        "новый access-токен",
			requestBody: Request{RefreshToken: "valid-refresh"},
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "valid-refresh").
					Return("new-access-token", nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"token":"new-access-token"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"invalid request body"}`,
		},
		{
			name:           "пустой refresh-токен",
			requestBody:    Request{},
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"error":"field RefreshToken is a required field"}`,
		},
		{
			name:        "истекший refresh-токен",
			requestBody: Request{RefreshToken: "expired-refresh"},
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "expired-refresh").
					Return("", apperr.ErrTokenExpired).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
		},
		{
			name:        "access-токен на месте refresh-токена",
			requestBody: Request{RefreshToken: "access-token"},
			setupMock: func(m *MockService) {
				m.On("Refresh", mock.Anything, "access-token").
					Return("", apperr.ErrTokenMalformed).Once()
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"error":"invalid or expired token"}`,
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

			req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
