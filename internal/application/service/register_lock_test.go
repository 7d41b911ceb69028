package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRegisterLock(t *testing.T) {
	lock := NewMemoryRegisterLock()
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)

	_, err = lock.Acquire(ctx, "cashier-1")
	assert.ErrorIs(t, err, apperror.ErrCheckoutInProgress)

	other, err := lock.Acquire(ctx, "cashier-2")
	require.NoError(t, err)
	other()

	release()
	release()

	again, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)
	again()
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisRegisterLock(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisRegisterLock(client, time.Minute)
	ctx := context.Background()

	release, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)
	assert.True(t, mr.Exists("sypoint:register:cashier-1:checkout"))

	_, err = lock.Acquire(ctx, "cashier-1")
	assert.ErrorIs(t, err, apperror.ErrCheckoutInProgress)

	release()
	assert.False(t, mr.Exists("sypoint:register:cashier-1:checkout"))

	again, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)
	again()
}

func TestRedisRegisterLockExpiredReleaseKeepsNewOwner(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisRegisterLock(client, time.Second)
	ctx := context.Background()

	stale, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)

	mr.FastForward(2 * time.Second)

	current, err := lock.Acquire(ctx, "cashier-1")
	require.NoError(t, err)

	stale()
	assert.True(t, mr.Exists("sypoint:register:cashier-1:checkout"))

	current()
	assert.False(t, mr.Exists("sypoint:register:cashier-1:checkout"))
}

func TestRedisRegisterLockUnavailable(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisRegisterLock(client, time.Minute)
	mr.Close()

	_, err := lock.Acquire(context.Background(), "cashier-1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperror.ErrCheckoutInProgress)
}
