package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// RegisterLock guarantees at most one in-flight checkout per register.
type RegisterLock interface {
	// Acquire returns apperror.ErrCheckoutInProgress when the register is
	// already committing. The returned release func must be called once.
	Acquire(ctx context.Context, registerID string) (release func(), err error)
}

// --- In-process lock ---

type memoryRegisterLock struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewMemoryRegisterLock creates a lock that only coordinates a single process.
func NewMemoryRegisterLock() RegisterLock {
	return &memoryRegisterLock{held: make(map[string]struct{})}
}

func (l *memoryRegisterLock) Acquire(ctx context.Context, registerID string) (func(), error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.held[registerID]; ok {
		return nil, apperror.ErrCheckoutInProgress
	}
	l.held[registerID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, registerID)
			l.mu.Unlock()
		})
	}, nil
}

// --- Redis lock (shared by every API instance) ---

// releaseScript deletes the key only if it still holds our token, so an
// expired lock re-acquired by another instance is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisRegisterLock struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisRegisterLock creates a lock stored in Redis. ttl bounds how long a
// crashed instance can hold a register and should exceed the checkout timeout.
func NewRedisRegisterLock(client *redis.Client, ttl time.Duration) RegisterLock {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisRegisterLock{
		client:    client,
		keyPrefix: "sypoint:register",
		ttl:       ttl,
	}
}

func (l *redisRegisterLock) key(registerID string) string {
	return fmt.Sprintf("%s:%s:checkout", l.keyPrefix, registerID)
}

func (l *redisRegisterLock) Acquire(ctx context.Context, registerID string) (func(), error) {
	key := l.key(registerID)
	token := uuid.NewString()

	set, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire register lock: %w", err)
	}
	if !set {
		return nil, apperror.ErrCheckoutInProgress
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The checkout context may already be cancelled.
			releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{key}, token).Err()
		})
	}, nil
}
