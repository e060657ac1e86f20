// Package sessiontest выдаёт готовые сессии для тестов обработчиков.
package sessiontest

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/models"
	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// Secret: ключ, которым подписаны тестовые токены.
const Secret = "sessiontest-secret"

// Auth отвечает на вход заранее заданным результатом.
type Auth struct {
	Result models.LoginResult
	Err    error
}

// Login реализует session.Authenticator.
func (a Auth) Login(context.Context, string, string) (models.LoginResult, error) {
	return a.Result, a.Err
}

// Token выпускает токен с ролью role, действующий час.
func Token(t testing.TB, id, role string) string {
	t.Helper()
	tok, err := jwt.NewJWTMaker(Secret, time.Hour).GenerateToken(id, id+"@example.com", "User "+id, role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return tok
}

// Anonymous возвращает пустую сессию.
func Anonymous(t testing.TB) *session.Store {
	t.Helper()
	return session.New(Auth{}, session.NewKVStorage(cache.NewMemory(), "b-"+t.Name(), time.Hour),
		jwt.NewDecoder(Secret), noop())
}

// LoggedIn возвращает сессию, вошедшую с ролью role.
func LoggedIn(t testing.TB, role string) *session.Store {
	t.Helper()
	tok := Token(t, "u1", role)
	s := session.New(Auth{Result: models.LoginResult{Token: tok}},
		session.NewKVStorage(cache.NewMemory(), "b-"+t.Name(), time.Hour),
		jwt.NewDecoder(Secret), noop())
	if _, err := s.Login(context.Background(), "u1@example.com", "secret"); err != nil {
		t.Fatalf("login: %v", err)
	}
	return s
}

func noop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}
