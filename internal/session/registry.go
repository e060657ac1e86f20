package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
)

// Registry выдаёт Store для каждого запроса браузера. Store собирается
// заново из хранилища токена, в памяти процесса ничего не остаётся, поэтому
// вход и выход на другой реплике видны сразу, а токен, истёкший в KV,
// делает сессию анонимной.
type Registry struct {
	kv      cache.KV
	ttl     time.Duration
	auth    Authenticator
	decoder Decoder
	log     *slog.Logger
}

// NewRegistry создаёт реестр. Токены хранятся в kv со сроком ttl.
func NewRegistry(kv cache.KV, ttl time.Duration, auth Authenticator, decoder Decoder, log *slog.Logger) *Registry {
	return &Registry{
		kv:      kv,
		ttl:     ttl,
		auth:    auth,
		decoder: decoder,
		log:     log,
	}
}

// Get возвращает сессию браузера browserID, восстановленную из хранилища.
// Ошибка чтения хранилища оставляет сессию анонимной только на этот запрос.
func (r *Registry) Get(ctx context.Context, browserID string) *Store {
	s := New(r.auth, NewKVStorage(r.kv, browserID, r.ttl), r.decoder,
		r.log.With(slog.String("browser_id", browserID)))
	s.Restore(ctx)
	return s
}
