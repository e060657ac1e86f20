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
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/gateway"
	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/session"
	"github.com/magabrotheeeer/aircon-console/internal/session/sessiontest"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestLoginHandler_ServeHTTP(t *testing.T) {
	handler := New(newNoopLogger())

	tests := []struct {
		name           string
		requestBody    any
		auth           sessiontest.Auth
		wantStatusCode int
		wantError      string
		wantRedirect   string
		wantRole       string
	}{
		{
			name:           "admin login",
			requestBody:    Request{Email: "admin@example.com", Password: "secret"},
			auth:           sessiontest.Auth{Result: models.LoginResult{Token: sessiontest.Token(t, "a1", jwt.RoleAdmin)}},
			wantStatusCode: http.StatusOK,
			wantRedirect:   "/admin",
			wantRole:       jwt.RoleAdmin,
		},
		{
			name:           "customer login",
			requestBody:    Request{Email: "anna@example.com", Password: "secret"},
			auth:           sessiontest.Auth{Result: models.LoginResult{Token: sessiontest.Token(t, "c1", "USER")}},
			wantStatusCode: http.StatusOK,
			wantRedirect:   "/",
			wantRole:       "USER",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
		},
		{
			name:           "validation error - missing password",
			requestBody:    Request{Email: "anna@example.com"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
		},
		{
			name:           "wrong credentials",
			requestBody:    Request{Email: "anna@example.com", Password: "bad"},
			auth:           sessiontest.Auth{Err: &gateway.AuthError{Status: 401, Message: "Invalid email or password"}},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "Invalid email or password",
		},
		{
			name:           "server answered without token",
			requestBody:    Request{Email: "anna@example.com", Password: "bad"},
			auth:           sessiontest.Auth{Result: models.LoginResult{Message: "User not found"}},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "User not found",
		},
		{
			name:           "api offline",
			requestBody:    Request{Email: "anna@example.com", Password: "secret"},
			auth:           sessiontest.Auth{Err: &gateway.NetworkError{Op: "POST /api/auth/login", Cause: errors.New("refused")}},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "something went wrong, please try again",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.New(tt.auth, session.NewKVStorage(cache.NewMemory(), "b1", time.Hour),
				jwt.NewDecoder(sessiontest.Secret), newNoopLogger())

			var bodyBytes []byte
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				var err error
				bodyBytes, err = json.Marshal(tt.requestBody)
				require.NoError(t, err)
			}

			req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			req = req.WithContext(middlewarectx.WithStore(ctx, "b1", store))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			if tt.wantError != "" {
				assert.Equal(t, "Error", got["status"])
				assert.Equal(t, tt.wantError, got["error"])
				assert.Equal(t, session.Anonymous, store.State())
				return
			}
			assert.Equal(t, "OK", got["status"])
			assert.Equal(t, tt.wantRedirect, got["redirect"])
			data, ok := got["data"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantRole, data["role"])
			assert.Equal(t, session.Authenticated, store.State())
		})
	}
}

// switchAuth позволяет поменять ответ API между входами.
type switchAuth struct {
	res models.LoginResult
	err error
}

func (a *switchAuth) Login(context.Context, string, string) (models.LoginResult, error) {
	return a.res, a.err
}

func TestLoginHandler_FailedReloginKeepsSession(t *testing.T) {
	auth := &switchAuth{res: models.LoginResult{Token: sessiontest.Token(t, "c1", "USER")}}
	store := session.New(auth, session.NewKVStorage(cache.NewMemory(), "b1", time.Hour),
		jwt.NewDecoder(sessiontest.Secret), newNoopLogger())
	_, err := store.Login(context.Background(), "anna@example.com", "secret")
	require.NoError(t, err)
	before := store.Token()

	auth.res, auth.err = models.LoginResult{}, &gateway.AuthError{Status: 401, Message: "Invalid email or password"}

	body, err := json.Marshal(Request{Email: "boris@example.com", Password: "bad"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body))
	req = req.WithContext(middlewarectx.WithStore(req.Context(), "b1", store))
	rec := httptest.NewRecorder()
	New(newNoopLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, session.Authenticated, store.State())
	assert.Equal(t, before, store.Token())
	identity, ok := store.Identity()
	require.True(t, ok)
	assert.Equal(t, "c1", identity.Subject)
}
