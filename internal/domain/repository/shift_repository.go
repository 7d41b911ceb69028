package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShiftTotals aggregates a cashier's completed sales since a point in time.
type ShiftTotals struct {
	TotalSales       decimal.Decimal
	ItemsSold        int64
	TransactionCount int64
}

// PaymentBreakdownResult is one payment method's share of a shift.
type PaymentBreakdownResult struct {
	PaymentMethod string          `json:"payment_method"`
	Count         int64           `json:"count"`
	Total         decimal.Decimal `json:"total"`
}

// TopProductResult represents a product's sales during a shift.
type TopProductResult struct {
	ProductName  string          `json:"product_name"`
	QuantitySold int64           `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
}

// ShiftTransactionResult is one row of the shift's transaction list.
type ShiftTransactionResult struct {
	TransactionNumber string          `json:"transaction_number"`
	TransactionDate   time.Time       `json:"transaction_date"`
	ItemsCount        int64           `json:"items_count"`
	FinalTotal        decimal.Decimal `json:"final_total"`
	CashierName       string          `json:"cashier_name"`
}

// ShiftRepository provides the read-only shift summary queries.
type ShiftRepository interface {
	GetTotals(ctx context.Context, cashierID uuid.UUID, since time.Time) (*ShiftTotals, error)
	GetPaymentBreakdown(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]PaymentBreakdownResult, error)
	GetTopProducts(ctx context.Context, cashierID uuid.UUID, since time.Time, limit int) ([]TopProductResult, error)
	ListTransactions(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]ShiftTransactionResult, error)
}
