package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. It is the fallback when
// Redis is not configured; sessions do not survive a restart.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]*memoryItem
	done chan struct{}
}

type memoryItem struct {
	sess       Session
	expiration time.Time
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() *MemoryStore {
	ms := &MemoryStore{
		data: make(map[string]*memoryItem),
		done: make(chan struct{}),
	}

	// Start cleanup goroutine
	go ms.cleanup()

	return ms
}

// Get retrieves a session
func (m *MemoryStore) Get(ctx context.Context, key string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, exists := m.data[key]
	if !exists {
		return nil, ErrNotFound
	}
	if time.Now().After(item.expiration) {
		return nil, ErrNotFound
	}

	sess := item.sess
	return &sess, nil
}

// Set stores a session
func (m *MemoryStore) Set(ctx context.Context, key string, sess *Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = &memoryItem{
		sess:       *sess,
		expiration: time.Now().Add(ttl),
	}
	return nil
}

// Delete removes a session
func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// cleanup periodically removes expired sessions
func (m *MemoryStore) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			now := time.Now()
			for key, item := range m.data {
				if now.After(item.expiration) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// Close stops the cleanup goroutine
func (m *MemoryStore) Close() error {
	close(m.done)
	return nil
}
