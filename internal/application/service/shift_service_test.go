package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeShiftRepo struct {
	mu        sync.Mutex
	since     []time.Time
	limit     int
	totals    *repository.ShiftTotals
	breakdown []repository.PaymentBreakdownResult
	err       error
}

func (r *fakeShiftRepo) record(since time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.since = append(r.since, since)
}

func (r *fakeShiftRepo) GetTotals(ctx context.Context, cashierID uuid.UUID, since time.Time) (*repository.ShiftTotals, error) {
	r.record(since)
	return r.totals, r.err
}

func (r *fakeShiftRepo) GetPaymentBreakdown(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]repository.PaymentBreakdownResult, error) {
	r.record(since)
	return r.breakdown, nil
}

func (r *fakeShiftRepo) GetTopProducts(ctx context.Context, cashierID uuid.UUID, since time.Time, limit int) ([]repository.TopProductResult, error) {
	r.record(since)
	r.mu.Lock()
	r.limit = limit
	r.mu.Unlock()
	return []repository.TopProductResult{{ProductName: "Widget", QuantitySold: 3, Revenue: dec("300.00")}}, nil
}

func (r *fakeShiftRepo) ListTransactions(ctx context.Context, cashierID uuid.UUID, since time.Time) ([]repository.ShiftTransactionResult, error) {
	r.record(since)
	return nil, nil
}

func TestShiftSummaryCoversToday(t *testing.T) {
	loc := time.FixedZone("PHT", 8*60*60)
	repo := &fakeShiftRepo{
		totals: &repository.ShiftTotals{TotalSales: dec("316.00"), ItemsSold: 3, TransactionCount: 2},
		breakdown: []repository.PaymentBreakdownResult{
			{PaymentMethod: "Cash", Count: 1, Total: dec("224.00")},
			{PaymentMethod: "GCash", Count: 1, Total: dec("92.00")},
		},
	}
	svc := NewShiftService(repo)
	svc.now = fixedClock(time.Date(2024, 3, 5, 14, 7, 0, 0, loc))

	summary, err := svc.GetSummary(context.Background(), uuid.New())
	require.NoError(t, err)

	midnight := time.Date(2024, 3, 5, 0, 0, 0, 0, loc)
	assert.Equal(t, midnight, summary.Since)
	assert.Len(t, repo.since, 4)
	for _, s := range repo.since {
		assert.Equal(t, midnight, s)
	}
	assert.Equal(t, topProductsLimit, repo.limit)
	assert.True(t, dec("316.00").Equal(summary.TotalSales))
	assert.Equal(t, int64(3), summary.ItemsSold)
	assert.Equal(t, int64(2), summary.TransactionCount)
	assert.Len(t, summary.PaymentBreakdown, 2)
	assert.Len(t, summary.TopProducts, 1)
}

func TestShiftSummaryPropagatesErrors(t *testing.T) {
	svc := NewShiftService(&fakeShiftRepo{err: errDatabaseDown})

	_, err := svc.GetSummary(context.Background(), uuid.New())
	assert.ErrorIs(t, err, errDatabaseDown)
}
