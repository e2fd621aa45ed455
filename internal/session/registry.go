package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrResetTokenInvalid is returned when a reset token is unknown, expired,
// or already consumed.
var ErrResetTokenInvalid = errors.New("reset token invalid")

// Registry tracks revoked access tokens and single-use password reset tokens.
type Registry interface {
	// Revoke blacklists a token until its natural expiry.
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)

	// PutResetToken stores a single-use password reset token for a user.
	PutResetToken(ctx context.Context, token, userID string, ttl time.Duration) error
	// ConsumeResetToken returns the user the token was issued for and
	// invalidates it. Consuming twice fails.
	ConsumeResetToken(ctx context.Context, token string) (string, error)
}

const (
	revokedPrefix = "hostel:revoked:"
	resetPrefix   = "hostel:reset:"
)

// RedisRegistry stores registry state in redis with TTL-based expiry.
type RedisRegistry struct {
	client *redis.Client
}

// NewRedisRegistry wraps an existing redis client.
func NewRedisRegistry(client *redis.Client) *RedisRegistry {
	return &RedisRegistry{client: client}
}

func (r *RedisRegistry) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedPrefix+token, "1", ttl).Err()
}

func (r *RedisRegistry) IsRevoked(ctx context.Context, token string) (bool, error) {
	_, err := r.client.Get(ctx, revokedPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisRegistry) PutResetToken(ctx context.Context, token, userID string, ttl time.Duration) error {
	return r.client.Set(ctx, resetPrefix+token, userID, ttl).Err()
}

func (r *RedisRegistry) ConsumeResetToken(ctx context.Context, token string) (string, error) {
	userID, err := r.client.GetDel(ctx, resetPrefix+token).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrResetTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// MemoryRegistry is a map-backed registry for dev and tests.
type MemoryRegistry struct {
	mu     sync.Mutex
	tokens map[string]time.Time
	resets map[string]resetEntry
}

type resetEntry struct {
	userID  string
	expires time.Time
}

// NewMemoryRegistry creates an empty in-memory registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		tokens: make(map[string]time.Time),
		resets: make(map[string]resetEntry),
	}
}

func (m *MemoryRegistry) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = time.Now().Add(ttl)
	return nil
}

func (m *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	expires, ok := m.tokens[token]
	if !ok {
		return false, nil
	}
	if time.Now().After(expires) {
		delete(m.tokens, token)
		return false, nil
	}
	return true, nil
}

func (m *MemoryRegistry) PutResetToken(_ context.Context, token, userID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resets[token] = resetEntry{userID: userID, expires: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryRegistry) ConsumeResetToken(_ context.Context, token string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.resets[token]
	if !ok || time.Now().After(entry.expires) {
		delete(m.resets, token)
		return "", ErrResetTokenInvalid
	}
	delete(m.resets, token)
	return entry.userID, nil
}
