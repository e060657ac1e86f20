// Package middlewarectx содержит HTTP middleware консоли: идентификацию
// браузера по cookie, проверку сессии и роли, ограничение частоты
// запросов и метрики.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"
	"github.com/google/uuid"

	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// BrowserID: ключ для идентификатора браузера в контексте
	BrowserID Key = "browser_id"
	// Session: ключ для *session.Store в контексте
	Session Key = "session"
)

// CookieConfig описывает cookie, в которой живёт идентификатор браузера.
type CookieConfig struct {
	Name   string
	MaxAge time.Duration
	Secure bool
}

// Browser возвращает middleware, который находит браузер по cookie
// (или выдаёт новую) и кладёт в контекст его id и хранилище сессии.
// Сессия восстанавливается из хранилища на каждом запросе.
func Browser(cfg CookieConfig, sessions Sessions, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Browser"

			id := browserID(r, cfg.Name)
			if id == "" {
				id = uuid.NewString()
				log.Debug("new browser",
					slog.String("op", op),
					slog.String("request_id", middleware.GetReqID(r.Context())),
					slog.String("browser_id", id),
				)
			}
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.Name,
				Value:    id,
				Path:     "/",
				MaxAge:   int(cfg.MaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx := context.WithValue(r.Context(), BrowserID, id)
			ctx = context.WithValue(ctx, Session, sessions.Get(ctx, id))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// browserID возвращает id из cookie, если это корректный UUID.
func browserID(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return id.String()
}

// BrowserFrom возвращает id браузера из контекста.
func BrowserFrom(ctx context.Context) string {
	id, _ := ctx.Value(BrowserID).(string)
	return id
}

// StoreFrom возвращает хранилище сессии из контекста.
func StoreFrom(ctx context.Context) (*session.Store, bool) {
	s, ok := ctx.Value(Session).(*session.Store)
	return s, ok && s != nil
}

// WithStore кладёт браузер и его сессию в контекст. Нужен обработчикам,
// которые вызываются без Browser, и тестам.
func WithStore(ctx context.Context, browserID string, s *session.Store) context.Context {
	ctx = context.WithValue(ctx, BrowserID, browserID)
	return context.WithValue(ctx, Session, s)
}
