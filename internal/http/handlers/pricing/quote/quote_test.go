package quote

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
)

func TestQuoteHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		requestBody    interface{}
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный расчёт",
			requestBody: Request{
				Miles:         "10000",
				MilePrice:     "18.5",
				FxRate:        "92.3",
				FeePercent:    "5",
				MarginPercent: "10",
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":"19722.2"`,
		},
		{
			name: "расчёт без сборов и маржи",
			requestBody: Request{
				Miles:     "1000",
				MilePrice: "20",
				FxRate:    "2",
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total":"40"`,
		},
		{
			name:           "некорректный JSON",
			requestBody:    "not a json",
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode request"}`,
		},
		{
			name: "отсутствует обязательное поле",
			requestBody: Request{
				Miles: "10000",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error"`,
		},
		{
			name: "не число в параметре",
			requestBody: Request{
				Miles:     "ten thousand",
				MilePrice: "18.5",
				FxRate:    "92.3",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid quote parameters"}`,
		},
		{
			name: "отрицательное количество милей",
			requestBody: Request{
				Miles:     "-100",
				MilePrice: "18.5",
				FxRate:    "92.3",
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid quote parameters"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(logger)

			var body []byte
			var err error
			if str, ok := tt.requestBody.(string); ok {
				body = []byte(str)
			} else {
				body, err = json.Marshal(tt.requestBody)
				assert.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/pricing/quote", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "req-id"))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())
		})
	}
}
