package testutil

import (
	"context"
	"sync"
	"time"
)

type MockRedisClient struct {
	SetNXFunc      func(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	DelIfEqualFunc func(ctx context.Context, key, value string) (bool, error)
}

func (m *MockRedisClient) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if m.SetNXFunc != nil {
		return m.SetNXFunc(ctx, key, value, ttl)
	}

	return true, nil
}

func (m *MockRedisClient) DelIfEqual(ctx context.Context, key, value string) (bool, error) {
	if m.DelIfEqualFunc != nil {
		return m.DelIfEqualFunc(ctx, key, value)
	}

	return true, nil
}

func (m *MockRedisClient) Close() error {
	return nil
}

// MemoryRedisClient keeps keys in a map and honors ttl on read.
type MemoryRedisClient struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

func NewMemoryRedisClient() *MemoryRedisClient {
	return &MemoryRedisClient{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MemoryRedisClient) load(key string) (string, bool) {
	if exp, ok := m.expires[key]; ok && time.Now().After(exp) {
		delete(m.values, key)
		delete(m.expires, key)
	}

	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is currently set.
func (m *MemoryRedisClient) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.load(key)
	return ok
}

func (m *MemoryRedisClient) SetNX(_ context.Context, key, value string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.load(key); ok {
		return false, nil
	}

	m.values[key] = value
	if ttl > 0 {
		m.expires[key] = time.Now().Add(ttl)
	}

	return true, nil
}

func (m *MemoryRedisClient) DelIfEqual(_ context.Context, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if v, ok := m.load(key); !ok || v != value {
		return false, nil
	}

	delete(m.values, key)
	delete(m.expires, key)
	return true, nil
}

func (m *MemoryRedisClient) Close() error {
	return nil
}
