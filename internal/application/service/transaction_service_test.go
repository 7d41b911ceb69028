package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commitTime = time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)

func newTestCommitter(repo *fakeTxnRepo, discounts *fakeDiscountRepo) *TransactionService {
	if discounts == nil {
		discounts = &fakeDiscountRepo{types: map[string]uint{"Senior Citizen": 1, "PWD": 2}}
	}
	svc := NewTransactionService(repo, discounts, nil)
	svc.now = fixedClock(commitTime)
	return svc
}

func commitInputFor(t *testing.T, discount enum.Discount, tendered string, lines ...entity.CartLine) *CommitInput {
	t.Helper()
	cart := entity.NewCart()
	for _, l := range lines {
		p := &entity.Product{ID: l.ProductID, ReferenceNumber: l.ReferenceNumber, Name: l.ProductName, Price: l.UnitPrice}
		_, err := cart.AddLine(p, l.Quantity)
		require.NoError(t, err)
	}
	return &CommitInput{
		CashierID:     uuid.New(),
		Lines:         cart.Lines(),
		Quote:         Quote(cart.Subtotal(), discount, dec(tendered)),
		Discount:      discount,
		PaymentMethod: enum.PaymentMethodCash,
	}
}

func cartLine(name, price string, qty int) entity.CartLine {
	return entity.CartLine{
		ProductID:       uuid.New(),
		ReferenceNumber: name,
		ProductName:     name,
		UnitPrice:       dec(price),
		Quantity:        qty,
	}
}

func TestCommitPersistsHeaderAndItems(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := newTestCommitter(repo, nil)
	input := commitInputFor(t, enum.DiscountSeniorCitizen, "500",
		cartLine("Widget", "100.00", 2), cartLine("Gadget", "50.00", 3), cartLine("Gizmo", "0.99", 7))

	txn, err := svc.Commit(context.Background(), input)
	require.NoError(t, err)

	txns, items := repo.committed()
	require.Len(t, txns, 1)
	require.Len(t, items, 3)

	assert.Equal(t, txn.ID, txns[0].ID)
	assert.Equal(t, "TXN-20240305-140709", txns[0].TransactionNumber)
	assert.Equal(t, input.CashierID, txns[0].CashierID)
	assert.Equal(t, enum.TransactionStatusCompleted, txns[0].Status)
	require.NotNil(t, txns[0].DiscountTypeID)
	assert.Equal(t, uint(1), *txns[0].DiscountTypeID)

	sum := decimal.Zero
	for _, it := range items {
		assert.Equal(t, txn.ID, it.TransactionID)
		assert.True(t, it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Equal(it.TotalPrice))
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, sum.Equal(txns[0].Subtotal), "items sum %s subtotal %s", sum, txns[0].Subtotal)
	assert.True(t, dec("356.93").Equal(txns[0].Subtotal))
	assert.Equal(t, 0, repo.rollbacks)
}

func TestCommitIgnoresUnknownDiscountType(t *testing.T) {
	tests := []struct {
		name      string
		discounts *fakeDiscountRepo
	}{
		{"missing row", &fakeDiscountRepo{types: map[string]uint{}}},
		{"lookup error", &fakeDiscountRepo{err: errDatabaseDown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeTxnRepo{}
			svc := newTestCommitter(repo, tt.discounts)

			txn, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountPWD, "100", cartLine("Widget", "100.00", 1)))
			require.NoError(t, err)
			assert.Nil(t, txn.DiscountTypeID)
			assert.True(t, dec("20.00").Equal(txn.DiscountAmount))
		})
	}
}

func TestCommitRollsBackOnItemFailure(t *testing.T) {
	repo := &fakeTxnRepo{failItemAt: 2}
	svc := newTestCommitter(repo, nil)

	txn, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000",
		cartLine("Widget", "100.00", 1), cartLine("Gadget", "50.00", 1), cartLine("Gizmo", "1.00", 1)))

	assert.Nil(t, txn)
	assert.Equal(t, apperror.KindCommitFailure, apperror.KindOf(err))
	txns, items := repo.committed()
	assert.Empty(t, txns)
	assert.Empty(t, items)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestCommitFailureKinds(t *testing.T) {
	tests := []struct {
		name string
		repo *fakeTxnRepo
	}{
		{"begin fails", &fakeTxnRepo{beginErr: errDatabaseDown}},
		{"commit fails", &fakeTxnRepo{commitErr: errDatabaseDown}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestCommitter(tt.repo, nil)
			_, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 1)))

			assert.Equal(t, apperror.KindCommitFailure, apperror.KindOf(err))
			assert.ErrorIs(t, err, errDatabaseDown)
			txns, _ := tt.repo.committed()
			assert.Empty(t, txns)
		})
	}
}

func TestCommitRetriesTransactionNumberCollision(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := newTestCommitter(repo, nil)

	first, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 1)))
	require.NoError(t, err)
	second, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000", cartLine("Gadget", "50.00", 1)))
	require.NoError(t, err)

	assert.Equal(t, "TXN-20240305-140709", first.TransactionNumber)
	assert.Equal(t, "TXN-20240305-140709-2", second.TransactionNumber)
	assert.Equal(t, 1, repo.rollbacks)
}

func TestCommitGivesUpAfterRepeatedCollisions(t *testing.T) {
	repo := &fakeTxnRepo{duplicateTimes: maxNumberAttempts}
	svc := newTestCommitter(repo, nil)

	_, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 1)))
	assert.Equal(t, apperror.KindCommitFailure, apperror.KindOf(err))
	assert.Equal(t, maxNumberAttempts, repo.begins)
	assert.Equal(t, maxNumberAttempts, repo.rollbacks)
}

func TestCommitRejectsEmptyAndMismatchedInput(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := newTestCommitter(repo, nil)

	_, err := svc.Commit(context.Background(), &CommitInput{CashierID: uuid.New()})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	input := commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 1))
	input.Quote = Quote(dec("90.00"), enum.DiscountNone, dec("1000"))
	_, err = svc.Commit(context.Background(), input)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, 0, repo.begins)
}

func TestCommitHonoursCancelledContext(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := newTestCommitter(repo, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Commit(ctx, commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 1)))
	assert.Equal(t, apperror.KindCommitFailure, apperror.KindOf(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, repo.begins)
}

func TestGetTransaction(t *testing.T) {
	repo := &fakeTxnRepo{}
	svc := newTestCommitter(repo, nil)
	txn, err := svc.Commit(context.Background(), commitInputFor(t, enum.DiscountNone, "1000", cartLine("Widget", "100.00", 2)))
	require.NoError(t, err)

	got, err := svc.GetTransaction(context.Background(), txn.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetTransaction(context.Background(), 999)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
