package middlewarectx_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/http/middlewarectx"
	"github.com/magabrotheeeer/aircon-console/internal/http/response"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/session"
	"github.com/magabrotheeeer/aircon-console/internal/session/sessiontest"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

type LogoutObserverMock struct {
	mock.Mock
}

func (m *LogoutObserverMock) ForcedLogout() { m.Called() }

type HTTPObserverMock struct {
	mock.Mock
}

func (m *HTTPObserverMock) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	m.Called(method, route, status)
}

func serve(h http.Handler, store *session.Store) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/somepath", nil)
	if store != nil {
		req = req.WithContext(middlewarectx.WithStore(req.Context(), "b1", store))
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var got response.Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	return got
}

func TestRequireAuthAndAdmin(t *testing.T) {
	logger := newNoopLogger()
	handlerCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
		w.WriteHeader(http.StatusOK)
	})
	chain := middlewarectx.RequireAuth(logger)(middlewarectx.RequireAdmin(logger)(next))

	tests := []struct {
		name           string
		store          *session.Store
		wantStatusCode int
		wantRedirect   string
		wantCalled     bool
	}{
		{
			name:           "no session in context",
			wantStatusCode: http.StatusUnauthorized,
			wantRedirect:   "/login",
		},
		{
			name:           "anonymous",
			store:          sessiontest.Anonymous(t),
			wantStatusCode: http.StatusUnauthorized,
			wantRedirect:   "/login",
		},
		{
			name:           "customer",
			store:          sessiontest.LoggedIn(t, "USER"),
			wantStatusCode: http.StatusForbidden,
			wantRedirect:   "/",
		},
		{
			name:           "admin",
			store:          sessiontest.LoggedIn(t, jwt.RoleAdmin),
			wantStatusCode: http.StatusOK,
			wantCalled:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled = false
			rec := serve(chain, tt.store)

			assert.Equal(t, tt.wantStatusCode, rec.Code)
			assert.Equal(t, tt.wantCalled, handlerCalled)
			if !tt.wantCalled {
				assert.Equal(t, tt.wantRedirect, decode(t, rec).Redirect)
			}
		})
	}
}

func TestEndSessionOnAuthFailure(t *testing.T) {
	logger := newNoopLogger()

	t.Run("401 ends the session", func(t *testing.T) {
		obs := new(LogoutObserverMock)
		obs.On("ForcedLogout").Once()
		store := sessiontest.LoggedIn(t, "USER")

		h := middlewarectx.EndSessionOnAuthFailure(logger, obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("session expired"))
		}))
		rec := serve(h, store)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, session.Anonymous, store.State())
		assert.Empty(t, store.Token())
		obs.AssertExpectations(t)
	})

	t.Run("other failures keep the session", func(t *testing.T) {
		obs := new(LogoutObserverMock)
		store := sessiontest.LoggedIn(t, "USER")

		h := middlewarectx.EndSessionOnAuthFailure(logger, obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		serve(h, store)

		assert.Equal(t, session.Authenticated, store.State())
		obs.AssertNotCalled(t, "ForcedLogout")
	})

	t.Run("anonymous 401 is not counted", func(t *testing.T) {
		obs := new(LogoutObserverMock)
		h := middlewarectx.EndSessionOnAuthFailure(logger, obs)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		serve(h, sessiontest.Anonymous(t))
		obs.AssertNotCalled(t, "ForcedLogout")
	})
}

type countingSessions struct {
	registry *session.Registry
	gets     atomic.Int32
}

func (c *countingSessions) Get(ctx context.Context, browserID string) *session.Store {
	c.gets.Add(1)
	return c.registry.Get(ctx, browserID)
}

func TestBrowser(t *testing.T) {
	logger := newNoopLogger()
	kv := cache.NewMemory()
	sessions := &countingSessions{
		registry: session.NewRegistry(kv, time.Hour, sessiontest.Auth{}, jwt.NewDecoder(sessiontest.Secret), logger),
	}
	cfg := middlewarectx.CookieConfig{Name: "console_browser", MaxAge: time.Hour}

	var seen string
	h := middlewarectx.Browser(cfg, sessions, logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middlewarectx.BrowserFrom(r.Context())
		_, ok := middlewarectx.StoreFrom(r.Context())
		assert.True(t, ok)
	}))

	t.Run("new browser gets a cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "console_browser", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, seen, cookies[0].Value)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})

	t.Run("known browser keeps its id and restores its token", func(t *testing.T) {
		id := uuid.NewString()
		require.NoError(t, kv.Set(context.Background(), session.TokenKey(id), sessiontest.Token(t, "u7", "USER"), time.Hour))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "console_browser", Value: id})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Equal(t, id, seen)
		assert.Equal(t, session.Authenticated, sessions.registry.Get(context.Background(), id).State())
	})

	t.Run("garbage cookie is replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "console_browser", Value: "../../etc"})
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.NotEqual(t, "../../etc", seen)
		_, err := uuid.Parse(seen)
		assert.NoError(t, err)
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	h := middlewarectx.RateLimitMiddleware(newNoopLogger(), 0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(browser string) int {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/login", nil)
		req = req.WithContext(middlewarectx.WithStore(req.Context(), browser, nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusOK, call("a"))
	assert.Equal(t, http.StatusTooManyRequests, call("a"))
	assert.Equal(t, http.StatusOK, call("b"), "limits are per browser")
}

func TestMetrics(t *testing.T) {
	obs := new(HTTPObserverMock)
	obs.On("ObserveHTTP", http.MethodGet, "/api/v1/products/{id}", http.StatusNotFound).Once()
	obs.On("ObserveHTTP", http.MethodGet, "/api/v1/health", http.StatusOK).Once()

	r := chi.NewRouter()
	r.Use(middlewarectx.Metrics(obs))
	r.Get("/api/v1/products/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Get("/api/v1/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products/42", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))
	obs.AssertExpectations(t)
}
