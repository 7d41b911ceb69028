package repository

import (
	"context"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
)

// ProductRepository is the catalog collaborator.
type ProductRepository interface {
	// GetActiveByReference returns the active product with the given
	// reference number, or nil when none exists.
	GetActiveByReference(ctx context.Context, reference string) (*entity.Product, error)
}
