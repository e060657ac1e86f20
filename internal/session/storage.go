package session

import (
	"context"
	"fmt"
	"time"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
)

// Storage: долговременное хранилище сырого токена одного браузера.
type Storage interface {
	Load(ctx context.Context) (string, bool, error)
	Save(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

// TokenKey возвращает ключ, под которым хранится токен браузера.
func TokenKey(browserID string) string {
	return "session:token:" + browserID
}

// KVStorage хранит токен в cache.KV.
type KVStorage struct {
	kv  cache.KV
	key string
	ttl time.Duration
}

// NewKVStorage создаёт хранилище токена браузера browserID.
func NewKVStorage(kv cache.KV, browserID string, ttl time.Duration) *KVStorage {
	return &KVStorage{kv: kv, key: TokenKey(browserID), ttl: ttl}
}

func (s *KVStorage) Load(ctx context.Context) (string, bool, error) {
	const op = "session.KVStorage.Load"
	var token string
	found, err := s.kv.Get(ctx, s.key, &token)
	if err != nil {
		return "", false, fmt.Errorf("%s: %w", op, err)
	}
	return token, found, nil
}

func (s *KVStorage) Save(ctx context.Context, token string) error {
	const op = "session.KVStorage.Save"
	if err := s.kv.Set(ctx, s.key, token, s.ttl); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s *KVStorage) Clear(ctx context.Context) error {
	const op = "session.KVStorage.Clear"
	if err := s.kv.Invalidate(ctx, s.key); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
