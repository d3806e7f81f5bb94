package otp

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// takeScript compares and deletes in one server-side step, so only one of
// two concurrent Take calls can observe the code.
var takeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

// RedisStore keeps codes in Redis with a server-enforced TTL. Expired
// records self-delete; "does it exist" is the only expiry check needed.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// RedisOption customizes a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisTTL overrides the default code lifetime.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) { s.ttl = ttl }
}

// NewRedisStore connects to Redis at addr. password may be empty.
func NewRedisStore(addr, password string, db int, opts ...RedisOption) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return NewRedisStoreWithClient(client, opts...)
}

// NewRedisStoreWithClient wraps an existing client. Tests use this with
// miniredis.
func NewRedisStoreWithClient(client *redis.Client, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Issue(ctx context.Context, correlationToken string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	if err := s.client.Set(ctx, storageKey(correlationToken), code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("otp: store code: %w", err)
	}
	return code, nil
}

func (s *RedisStore) Verify(ctx context.Context, correlationToken, suppliedCode string) (bool, error) {
	stored, err := s.client.Get(ctx, storageKey(correlationToken)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("otp: read code: %w", err)
	}

	return subtle.ConstantTimeCompare([]byte(stored), []byte(suppliedCode)) == 1, nil
}

func (s *RedisStore) Take(ctx context.Context, correlationToken, suppliedCode string) (bool, error) {
	res, err := takeScript.Run(ctx, s.client, []string{storageKey(correlationToken)}, suppliedCode).Int()
	if err != nil {
		return false, fmt.Errorf("otp: take code: %w", err)
	}
	return res == 1, nil
}

func (s *RedisStore) Consume(ctx context.Context, correlationToken string) error {
	if err := s.client.Del(ctx, storageKey(correlationToken)).Err(); err != nil {
		return fmt.Errorf("otp: delete code: %w", err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
