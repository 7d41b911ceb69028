package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
)

// ErrItemTotalMismatch is returned when an item's total is not unit price × quantity.
var ErrItemTotalMismatch = errors.New("item total must equal unit price times quantity")

// Transaction is a committed sale. It is written once and never updated.
type Transaction struct {
	ID                uint                   `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionNumber string                 `gorm:"size:40;uniqueIndex;not null" json:"transaction_number" validate:"required"`
	CashierID         uuid.UUID              `gorm:"type:uuid;not null;index" json:"cashier_id" validate:"required"`
	TransactionDate   time.Time              `gorm:"not null;index" json:"transaction_date" validate:"required"`
	Subtotal          decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"subtotal"`
	TaxAmount         decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"tax_amount"`
	DiscountAmount    decimal.Decimal        `gorm:"type:decimal(12,2);not null;default:0" json:"discount_amount"`
	FinalTotal        decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"final_total"`
	DiscountTypeID    *uint                  `gorm:"index" json:"discount_type_id,omitempty"`
	PaymentMethod     enum.PaymentMethod     `gorm:"size:20;not null;default:'Cash'" json:"payment_method"`
	AmountTendered    decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"amount_tendered"`
	ChangeAmount      decimal.Decimal        `gorm:"type:decimal(12,2);not null" json:"change_amount"`
	Status            enum.TransactionStatus `gorm:"size:20;not null;default:'completed'" json:"status"`
	CreatedAt         time.Time              `json:"created_at"`

	Cashier      User              `gorm:"foreignKey:CashierID" json:"-"`
	DiscountType *DiscountType     `gorm:"foreignKey:DiscountTypeID" json:"discount_type,omitempty"`
	Items        []TransactionItem `gorm:"foreignKey:TransactionID" json:"items,omitempty"`
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// Validate checks the required fields of a transaction about to be inserted.
func (t *Transaction) Validate() error {
	return validate.Struct(t)
}

// TransactionItem is one line of a committed sale.
type TransactionItem struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	TransactionID uint            `gorm:"not null;index" json:"transaction_id" validate:"required"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"product_id" validate:"required"`
	ProductName   string          `gorm:"size:255;not null" json:"product_name" validate:"required"`
	Quantity      int             `gorm:"not null" json:"quantity" validate:"gte=1"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_price"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
}

// TableName returns the table name for the TransactionItem model
func (TransactionItem) TableName() string {
	return "transaction_items"
}

// Validate checks required fields and that the line total is exact.
func (i *TransactionItem) Validate() error {
	if err := validate.Struct(i); err != nil {
		return err
	}
	if !i.TotalPrice.Equal(i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))) {
		return ErrItemTotalMismatch
	}
	return nil
}
