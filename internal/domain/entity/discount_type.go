package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is the persisted identity a transaction's discount is recorded under.
type DiscountType struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	TypeName  string          `gorm:"size:100;uniqueIndex;not null" json:"type_name"`
	Rate      decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"rate"`
	CreatedAt time.Time       `json:"created_at"`
}

// TableName returns the table name for the DiscountType model
func (DiscountType) TableName() string {
	return "discount_types"
}
