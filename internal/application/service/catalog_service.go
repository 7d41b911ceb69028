package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// CatalogService resolves reference numbers to sellable products.
type CatalogService struct {
	productRepo repository.ProductRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(productRepo repository.ProductRepository) *CatalogService {
	return &CatalogService{productRepo: productRepo}
}

// FindByReference returns the active product with the given reference
// number. The lookup is case-insensitive.
func (s *CatalogService) FindByReference(ctx context.Context, code string) (*entity.Product, error) {
	reference := strings.ToUpper(strings.TrimSpace(code))
	if reference == "" {
		return nil, apperror.NewValidationError("Please enter a reference number",
			apperror.FieldError{Field: "reference", Message: "reference is required"})
	}

	product, err := s.productRepo.GetActiveByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("lookup product %s: %w", reference, err)
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	return product, nil
}
