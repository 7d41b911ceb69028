package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	domainRepo "github.com/sangkips/sypoint-pos/internal/domain/repository"
	"gorm.io/gorm"
)

type shiftTotalsRow struct {
	TotalSales       decimal.Decimal
	TransactionCount int64
}

type shiftRepository struct {
	db *gorm.DB
}

// NewShiftRepository creates a new shift summary repository
func NewShiftRepository(db *gorm.DB) domainRepo.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) GetTotals(ctx context.Context, cashierID uuid.UUID, since time.Time) (*domainRepo.ShiftTotals, error) {
	var totals shiftTotalsRow
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Scopes(CompletedSinceScope(cashierID, since)).
		Select("COALESCE(SUM(t.final_total), 0) AS total_sales, COUNT(*) AS transaction_count").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}

	var itemsSold int64
	err = r.db.WithContext(ctx).
		Table("transaction_items AS ti").
		Joins("JOIN transactions t ON ti.transaction_id = t.id").
		Scopes(CompletedSinceScope(cashierID, since)).
		Select("COALESCE(SUM(ti.quantity), 0)").
		Scan(&itemsSold).Error
	if err != nil {
		return nil, err
	}

	return &domainRepo.ShiftTotals{
		TotalSales:       totals.TotalSales,
		ItemsSold:        itemsSold,
		TransactionCount: totals.TransactionCount,
	}, nil
}

func (r *shiftRepository) GetPaymentBreakdown(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]domainRepo.PaymentBreakdownResult, error) {
	var results []domainRepo.PaymentBreakdownResult
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Scopes(CompletedSinceScope(cashierID, since)).
		Select("t.payment_method, COUNT(*) AS count, COALESCE(SUM(t.final_total), 0) AS total").
		Group("t.payment_method").
		Order("total DESC").
		Scan(&results).Error
	return results, err
}

func (r *shiftRepository) GetTopProducts(ctx context.Context, cashierID uuid.UUID, since time.Time, limit int) ([]domainRepo.TopProductResult, error) {
	var results []domainRepo.TopProductResult
	err := r.db.WithContext(ctx).
		Table("transaction_items AS ti").
		Joins("JOIN transactions t ON ti.transaction_id = t.id").
		Scopes(CompletedSinceScope(cashierID, since)).
		Select("ti.product_name, SUM(ti.quantity) AS quantity_sold, SUM(ti.total_price) AS revenue").
		Group("ti.product_name").
		Order("quantity_sold DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}

func (r *shiftRepository) ListTransactions(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]domainRepo.ShiftTransactionResult, error) {
	var results []domainRepo.ShiftTransactionResult
	err := r.db.WithContext(ctx).
		Table("transactions AS t").
		Joins("LEFT JOIN transaction_items ti ON t.id = ti.transaction_id").
		Joins("JOIN users u ON t.cashier_id = u.id").
		Scopes(CompletedSinceScope(cashierID, since)).
		Select(`t.transaction_number, t.transaction_date,
			COUNT(ti.id) AS items_count, t.final_total, u.full_name AS cashier_name`).
		Group("t.id, u.full_name").
		Order("t.transaction_date DESC").
		Scan(&results).Error
	return results, err
}
