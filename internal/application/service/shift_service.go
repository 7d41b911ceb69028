package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"golang.org/x/sync/errgroup"
)

// topProductsLimit matches the shift screen's top sellers list.
const topProductsLimit = 5

// ShiftService builds a cashier's summary of the current day.
type ShiftService struct {
	shiftRepo repository.ShiftRepository
	now       func() time.Time
}

// NewShiftService creates a new shift service
func NewShiftService(shiftRepo repository.ShiftRepository) *ShiftService {
	return &ShiftService{shiftRepo: shiftRepo, now: time.Now}
}

// ShiftSummary is a read-only view of completed sales since the start of the day.
type ShiftSummary struct {
	Since            time.Time                           `json:"since"`
	TotalSales       decimal.Decimal                     `json:"total_sales"`
	ItemsSold        int64                               `json:"items_sold"`
	TransactionCount int64                               `json:"transaction_count"`
	PaymentBreakdown []repository.PaymentBreakdownResult `json:"payment_breakdown"`
	TopProducts      []repository.TopProductResult       `json:"top_products"`
	Transactions     []repository.ShiftTransactionResult `json:"transactions"`
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GetSummary aggregates the cashier's completed transactions for today.
// The four read queries are independent and run concurrently.
func (s *ShiftService) GetSummary(ctx context.Context, cashierID uuid.UUID) (*ShiftSummary, error) {
	since := StartOfDay(s.now())
	summary := &ShiftSummary{Since: since, TotalSales: decimal.Zero}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		totals, err := s.shiftRepo.GetTotals(ctx, cashierID, since)
		if err != nil {
			return fmt.Errorf("shift totals: %w", err)
		}
		if totals != nil {
			summary.TotalSales = totals.TotalSales
			summary.ItemsSold = totals.ItemsSold
			summary.TransactionCount = totals.TransactionCount
		}
		return nil
	})

	g.Go(func() error {
		breakdown, err := s.shiftRepo.GetPaymentBreakdown(ctx, cashierID, since)
		if err != nil {
			return fmt.Errorf("payment breakdown: %w", err)
		}
		summary.PaymentBreakdown = breakdown
		return nil
	})

	g.Go(func() error {
		topProducts, err := s.shiftRepo.GetTopProducts(ctx, cashierID, since, topProductsLimit)
		if err != nil {
			return fmt.Errorf("top products: %w", err)
		}
		summary.TopProducts = topProducts
		return nil
	})

	g.Go(func() error {
		transactions, err := s.shiftRepo.ListTransactions(ctx, cashierID, since)
		if err != nil {
			return fmt.Errorf("shift transactions: %w", err)
		}
		summary.Transactions = transactions
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summary, nil
}
