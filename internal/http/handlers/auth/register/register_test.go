package register

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

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// Мок клиента с методом SignupUser
type ServiceMock struct {
	mock.Mock
}

func (m *ServiceMock) SignupUser(ctx context.Context, in models.Signup) error {
	return m.Called(ctx, in).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	valid := Request{Name: "Anna", Email: "anna@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	signup := models.Signup{Name: "Anna", Email: "anna@example.com", Password: "secret1"}

	tests := []struct {
		name           string
		requestBody    any
		mockErr        error
		callsService   bool
		wantStatusCode int
		wantError      string
		wantRedirect   string
	}{
		{
			name:           "valid registration",
			requestBody:    valid,
			callsService:   true,
			wantStatusCode: http.StatusCreated,
			wantRedirect:   "/login",
		},
		{
			name:           "invalid json",
			requestBody:    "{",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "short password",
			requestBody:    Request{Name: "Anna", Email: "anna@example.com", Password: "123", ConfirmPassword: "123"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password must be at least 6 characters",
		},
		{
			name:           "passwords differ",
			requestBody:    Request{Name: "Anna", Email: "anna@example.com", Password: "secret1", ConfirmPassword: "secret2"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "passwords do not match",
		},
		{
			name:           "email taken",
			requestBody:    valid,
			callsService:   true,
			mockErr:        &gateway.ValidationError{Status: 400, Message: "User already exists"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "User already exists",
		},
		{
			name:           "api offline",
			requestBody:    valid,
			callsService:   true,
			mockErr:        &gateway.NetworkError{Op: "POST /api/auth/user/signup", Cause: errors.New("refused")},
			wantStatusCode: http.StatusBadGateway,
			wantError:      "something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(ServiceMock)
			if tt.callsService {
				svc.On("SignupUser", mock.Anything, signup).Return(tt.mockErr).Once()
			}

			var body []byte
			if s, ok := tt.requestBody.(string); ok {
				body = []byte(s)
			} else {
				var err error
				body, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))
			rec := httptest.NewRecorder()
			New(newNoopLogger(), svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, got["error"])
			} else {
				assert.Equal(t, "OK", got["status"])
				assert.Equal(t, tt.wantRedirect, got["redirect"])
			}
			svc.AssertExpectations(t)
		})
	}
}
