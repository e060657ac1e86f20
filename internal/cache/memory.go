package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// memorySweepEvery: как часто Set вычищает просроченные ключи, которые
// никто не читает.
const memorySweepEvery = time.Minute

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory: KV в памяти процесса. Значения хранятся сериализованными,
// чтобы поведение совпадало с redis.
type Memory struct {
	mu    sync.Mutex
	items map[string]memoryEntry
	now   func() time.Time

	lastSweep time.Time
}

// NewMemory создаёт пустое хранилище.
func NewMemory() *Memory {
	return &Memory{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string, result any) (bool, error) {
	const op = "cache.Memory.Get"
	m.mu.Lock()
	entry, ok := m.items[key]
	if ok && !entry.expires.IsZero() && !m.now().Before(entry.expires) {
		delete(m.items, key)
		ok = false
	}
	m.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(entry.data, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

func (m *Memory) Set(_ context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Memory.Set"
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	entry := memoryEntry{data: data}
	if expiration > 0 {
		entry.expires = m.now().Add(expiration)
	}
	m.mu.Lock()
	m.sweep()
	m.items[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *Memory) sweep() {
	now := m.now()
	if m.lastSweep.IsZero() {
		m.lastSweep = now
		return
	}
	if now.Sub(m.lastSweep) < memorySweepEvery {
		return
	}
	for key, e := range m.items {
		if !e.expires.IsZero() && !now.Before(e.expires) {
			delete(m.items, key)
		}
	}
	m.lastSweep = now
}

func (m *Memory) Invalidate(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.items, key)
	m.mu.Unlock()
	return nil
}

// Len возвращает число хранимых ключей, включая ещё не вычищенные просроченные.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Ping всегда успешен: хранилище живёт в процессе.
func (m *Memory) Ping(context.Context) error { return nil }
