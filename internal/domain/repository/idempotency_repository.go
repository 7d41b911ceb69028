package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
)

// IdempotencyRepository stores replayable responses for idempotent requests.
type IdempotencyRepository interface {
	// GetByKey returns nil when the key has not been seen for this user.
	GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
