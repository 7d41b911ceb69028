package repository

import (
	"context"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
)

// DiscountTypeRepository resolves discount selections to persisted identities.
type DiscountTypeRepository interface {
	// GetByName returns nil when no discount type has that name.
	GetByName(ctx context.Context, typeName string) (*entity.DiscountType, error)
}
