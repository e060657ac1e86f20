package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/aircon-console/internal/cache"
	"github.com/magabrotheeeer/aircon-console/internal/lib/jwt"
	"github.com/magabrotheeeer/aircon-console/internal/models"
)

// flakyKV отказывает в чтении, пока fail выставлен.
type flakyKV struct {
	*cache.Memory
	mu   sync.Mutex
	fail bool
}

func (f *flakyKV) setFail(v bool) {
	f.mu.Lock()
	f.fail = v
	f.mu.Unlock()
}

func (f *flakyKV) Get(ctx context.Context, key string, result any) (bool, error) {
	f.mu.Lock()
	fail := f.fail
	f.mu.Unlock()
	if fail {
		return false, errors.New("connection reset")
	}
	return f.Memory.Get(ctx, key, result)
}

func newRegistry(kv cache.KV, auth Authenticator) *Registry {
	return NewRegistry(kv, time.Hour, auth, jwt.NewDecoder(testSecret), newNoopLogger())
}

func TestRegistry_IsolatesBrowsers(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	require.NoError(t, kv.Set(ctx, TokenKey("admin-browser"), mustToken(t, time.Hour, "a", jwt.RoleAdmin), time.Hour))

	reg := newRegistry(kv, new(MockAuthenticator))

	assert.True(t, reg.Get(ctx, "admin-browser").IsAdmin())
	assert.Equal(t, Anonymous, reg.Get(ctx, "other-browser").State())
}

func TestRegistry_ReplicasShareStorage(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()

	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, "admin@example.com", "secret").
		Return(models.LoginResult{Token: mustToken(t, time.Hour, "u1", jwt.RoleAdmin)}, nil)

	replicaA := newRegistry(kv, auth)
	replicaB := newRegistry(kv, auth)

	assert.Equal(t, Anonymous, replicaA.Get(ctx, "b1").State())

	_, err := replicaB.Get(ctx, "b1").Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	a := replicaA.Get(ctx, "b1")
	assert.True(t, a.IsAdmin(), "login on another replica is visible")
	assert.NotEmpty(t, a.Token())

	replicaB.Get(ctx, "b1").Logout(ctx)

	a = replicaA.Get(ctx, "b1")
	assert.Equal(t, Anonymous, a.State(), "logout on another replica is visible")
	assert.False(t, a.IsAdmin())
	assert.Empty(t, a.Token())
	auth.AssertExpectations(t)
}

func TestRegistry_ExpiredStorageKeyEndsSession(t *testing.T) {
	ctx := context.Background()
	kv := cache.NewMemory()
	require.NoError(t, kv.Set(ctx, TokenKey("b1"), mustToken(t, time.Hour, "u1", "USER"), time.Hour))

	reg := newRegistry(kv, new(MockAuthenticator))
	assert.Equal(t, Authenticated, reg.Get(ctx, "b1").State())

	// ключ истёк в KV
	require.NoError(t, kv.Invalidate(ctx, TokenKey("b1")))
	assert.Equal(t, Anonymous, reg.Get(ctx, "b1").State())
}

func TestRegistry_FailedLoadIsRetried(t *testing.T) {
	ctx := context.Background()
	kv := &flakyKV{Memory: cache.NewMemory()}
	require.NoError(t, kv.Set(ctx, TokenKey("b1"), mustToken(t, time.Hour, "u1", jwt.RoleAdmin), time.Hour))

	reg := newRegistry(kv, new(MockAuthenticator))

	kv.setFail(true)
	assert.Equal(t, Anonymous, reg.Get(ctx, "b1").State())

	kv.setFail(false)
	assert.True(t, reg.Get(ctx, "b1").IsAdmin())
}

func TestRegistry_CancelledRestoreIsNotKept(t *testing.T) {
	kv := &flakyKV{Memory: cache.NewMemory()}
	require.NoError(t, kv.Set(context.Background(), TokenKey("b1"), mustToken(t, time.Hour, "u1", "USER"), time.Hour))

	reg := newRegistry(kv, new(MockAuthenticator))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	kv.setFail(true)
	assert.Equal(t, Anonymous, reg.Get(ctx, "b1").State())

	kv.setFail(false)
	assert.Equal(t, Authenticated, reg.Get(context.Background(), "b1").State())
}
