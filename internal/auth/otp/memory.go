package otp

import (
	"context"
	"crypto/subtle"
	"sync"
	"time"
)

// MemoryStore keeps codes in process memory. Suitable for tests and
// single-node development; production uses the Redis driver.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration

	// now is swappable for tests.
	now func() time.Time
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryTTL overrides the default code lifetime.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) { s.ttl = ttl }
}

// WithMemoryClock overrides the time source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     DefaultTTL,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Issue(ctx context.Context, correlationToken string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[storageKey(correlationToken)] = memoryEntry{
		code:      code,
		expiresAt: s.now().Add(s.ttl),
	}
	return code, nil
}

func (s *MemoryStore) Verify(ctx context.Context, correlationToken, suppliedCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.matchLocked(correlationToken, suppliedCode), nil
}

func (s *MemoryStore) Take(ctx context.Context, correlationToken, suppliedCode string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.matchLocked(correlationToken, suppliedCode) {
		return false, nil
	}
	delete(s.entries, storageKey(correlationToken))
	return true, nil
}

func (s *MemoryStore) Consume(ctx context.Context, correlationToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, storageKey(correlationToken))
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

// matchLocked checks existence, expiry and code equality. Callers hold mu.
func (s *MemoryStore) matchLocked(correlationToken, suppliedCode string) bool {
	key := storageKey(correlationToken)

	entry, ok := s.entries[key]
	if !ok {
		return false
	}
	if !s.now().Before(entry.expiresAt) {
		// Lazy expiry; the entry is as good as gone.
		delete(s.entries, key)
		return false
	}
	return subtle.ConstantTimeCompare([]byte(entry.code), []byte(suppliedCode)) == 1
}
