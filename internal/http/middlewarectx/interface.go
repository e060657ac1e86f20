package middlewarectx

import (
	"context"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/session"
)

// Sessions выдаёт хранилище сессии браузера.
type Sessions interface {
	Get(ctx context.Context, browserID string) *session.Store
}

// HTTPObserver учитывает обработанные запросы.
type HTTPObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// LogoutObserver учитывает сессии, завершённые из-за отказа API.
type LogoutObserver interface {
	ForcedLogout()
}
