package me

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/itinerary-planner/internal/http/middlewarectx"
	"github.com/magabrotheeeer/itinerary-planner/internal/models"
	services "github.com/magabrotheeeer/itinerary-planner/internal/services/auth"
)

// MockService реализует интерфейс me.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Resolve(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestMeHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name         string
		bearer       string
		cookie       string
		setupMock    func(*MockService)
		expectedBody string
	}{
		{
			name:   "валидная сессия через заголовок",
			bearer: "signed-token",
			setupMock: func(m *MockService) {
				user := &models.User{UID: "uid-1", Email: "traveler@example.com", Name: "Traveler"}
				m.On("Resolve", mock.Anything, "signed-token").Return(user, nil)
			},
			expectedBody: `"email":"traveler@example.com"`,
		},
		{
			name:   "валидная сессия через куку",
			cookie: "cookie-token",
			setupMock: func(m *MockService) {
				user := &models.User{UID: "uid-2", Email: "other@example.com", Name: "Other"}
				m.On("Resolve", mock.Anything, "cookie-token").Return(user, nil)
			},
			expectedBody: `"uid":"uid-2"`,
		},
		{
			name:         "токена нет",
			setupMock:    func(_ *MockService) {},
			expectedBody: `"user":null`,
		},
		{
			name:   "невалидная сессия",
			bearer: "stale-token",
			setupMock: func(m *MockService) {
				m.On("Resolve", mock.Anything, "stale-token").Return(nil, services.ErrSessionInvalid)
			},
			expectedBody: `"user":null`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: middlewarectx.SessionCookieName, Value: tt.cookie})
			}
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
