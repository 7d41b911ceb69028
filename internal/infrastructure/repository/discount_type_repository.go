package repository

import (
	"context"
	"errors"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/sypoint-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type discountTypeRepository struct {
	db *gorm.DB
}

// NewDiscountTypeRepository creates a new discount type repository
func NewDiscountTypeRepository(db *gorm.DB) domainRepo.DiscountTypeRepository {
	return &discountTypeRepository{db: db}
}

func (r *discountTypeRepository) GetByName(ctx context.Context, typeName string) (*entity.DiscountType, error) {
	var dt entity.DiscountType
	err := r.db.WithContext(ctx).First(&dt, "type_name = ?", typeName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &dt, nil
}
