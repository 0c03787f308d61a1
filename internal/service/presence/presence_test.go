package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func newMemStore() *memStore {
	return &memStore{keys: map[string]struct{}{}}
}

func (m *memStore) Set(_ context.Context, key string, _ any, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys[key] = struct{}{}
	return nil
}

func (m *memStore) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.keys, key)
	return nil
}

func (m *memStore) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.keys[key]
	return ok, nil
}

func TestPresenceLifecycle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	svc := NewService(newMemStore(), time.Minute)

	online, err := svc.IsOnline(ctx, "alice")
	req.NoError(err)
	req.False(online)

	req.NoError(svc.Heartbeat(ctx, "alice"))

	online, err = svc.IsOnline(ctx, "alice")
	req.NoError(err)
	req.True(online)

	// other users are unaffected
	online, err = svc.IsOnline(ctx, "bob")
	req.NoError(err)
	req.False(online)

	req.NoError(svc.Offline(ctx, "alice"))

	online, err = svc.IsOnline(ctx, "alice")
	req.NoError(err)
	req.False(online)
}
