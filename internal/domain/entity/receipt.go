package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
)

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Contact   string `json:"contact,omitempty"`
}

// Receipt is a value object composed from a committed transaction and the
// cart it was built from. It is not a database entity.
type Receipt struct {
	Header         ReceiptHeader      `json:"header"`
	TransactionID  uint               `json:"transaction_id"`
	IssuedAt       time.Time          `json:"issued_at"`
	Cashier        string             `json:"cashier"`
	Lines          []CartLine         `json:"lines"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Tax            decimal.Decimal    `json:"tax"`
	Discount       decimal.Decimal    `json:"discount"`
	DiscountLabel  string             `json:"discount_label,omitempty"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	AmountTendered decimal.Decimal    `json:"amount_tendered"`
	Change         decimal.Decimal    `json:"change"`
}
