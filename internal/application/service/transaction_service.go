package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// maxNumberAttempts bounds the retries after a transaction number collision.
const maxNumberAttempts = 5

// TransactionNumber formats the human-readable number for a sale committed at t.
func TransactionNumber(t time.Time) string {
	return "TXN-" + t.Format("20060102-150405")
}

// TransactionService commits finalized carts and reads committed sales back.
type TransactionService struct {
	txnRepo      repository.TransactionRepository
	discountRepo repository.DiscountTypeRepository
	Logger       *slog.Logger
	now          func() time.Time
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo repository.TransactionRepository,
	discountRepo repository.DiscountTypeRepository,
	logger *slog.Logger,
) *TransactionService {
	return &TransactionService{
		txnRepo:      txnRepo,
		discountRepo: discountRepo,
		Logger:       logger,
		now:          time.Now,
	}
}

// CommitInput represents one finalized checkout
type CommitInput struct {
	CashierID     uuid.UUID
	Lines         []entity.CartLine
	Quote         PaymentQuote
	Discount      enum.Discount
	PaymentMethod enum.PaymentMethod
}

// Commit persists the sale as one transaction row plus one item row per
// cart line inside a single unit of work. Any failure rolls the whole unit
// back and is reported as a CommitFailure.
func (s *TransactionService) Commit(ctx context.Context, input *CommitInput) (*entity.Transaction, error) {
	if len(input.Lines) == 0 {
		return nil, apperror.ErrEmptyCart
	}

	subtotal := decimal.Zero
	for _, line := range input.Lines {
		subtotal = subtotal.Add(line.Subtotal())
	}
	if !subtotal.Equal(input.Quote.Subtotal) {
		return nil, apperror.NewValidationError("Payment quote does not match the cart")
	}

	committedAt := s.now()
	base := TransactionNumber(committedAt)
	discountTypeID := s.resolveDiscountType(ctx, input.Discount)

	var lastErr error
	for attempt := 1; attempt <= maxNumberAttempts; attempt++ {
		number := base
		if attempt > 1 {
			number = fmt.Sprintf("%s-%d", base, attempt)
		}

		txn, err := s.commitOnce(ctx, number, committedAt, discountTypeID, input)
		if err == nil {
			s.log().Info("transaction committed",
				slog.Uint64("transaction_id", uint64(txn.ID)),
				slog.String("transaction_number", txn.TransactionNumber),
				slog.String("cashier_id", input.CashierID.String()),
				slog.Int("items", len(txn.Items)),
				slog.String("total", txn.FinalTotal.StringFixed(2)))
			return txn, nil
		}
		if !errors.Is(err, repository.ErrDuplicateTransactionNumber) {
			s.log().Error("commit transaction", slog.String("transaction_number", number), slog.Any("error", err))
			return nil, apperror.NewCommitFailure(err)
		}

		s.log().Warn("transaction number taken, retrying",
			slog.String("transaction_number", number), slog.Int("attempt", attempt))
		lastErr = err
	}

	return nil, apperror.NewCommitFailure(fmt.Errorf("%s after %d attempts: %w", base, maxNumberAttempts, lastErr))
}

func (s *TransactionService) commitOnce(
	ctx context.Context,
	number string,
	committedAt time.Time,
	discountTypeID *uint,
	input *CommitInput,
) (txn *entity.Transaction, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	uow, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin unit of work: %w", err)
	}
	defer func() {
		if err == nil {
			return
		}
		if rbErr := uow.Rollback(); rbErr != nil {
			s.log().Error("rollback transaction", slog.String("transaction_number", number), slog.Any("error", rbErr))
		}
	}()

	txn = &entity.Transaction{
		TransactionNumber: number,
		CashierID:         input.CashierID,
		TransactionDate:   committedAt,
		Subtotal:          input.Quote.Subtotal,
		TaxAmount:         input.Quote.Tax,
		DiscountAmount:    input.Quote.Discount,
		FinalTotal:        input.Quote.Total,
		DiscountTypeID:    discountTypeID,
		PaymentMethod:     input.PaymentMethod,
		AmountTendered:    input.Quote.Tendered,
		ChangeAmount:      input.Quote.Change,
		Status:            enum.TransactionStatusCompleted,
	}
	if err = txn.Validate(); err != nil {
		return nil, fmt.Errorf("invalid transaction: %w", err)
	}
	if err = uow.InsertTransaction(ctx, txn); err != nil {
		return nil, err
	}

	items := make([]entity.TransactionItem, 0, len(input.Lines))
	for _, line := range input.Lines {
		item := entity.TransactionItem{
			TransactionID: txn.ID,
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Quantity:      line.Quantity,
			UnitPrice:     line.UnitPrice,
			TotalPrice:    line.Subtotal(),
		}
		if err = item.Validate(); err != nil {
			return nil, fmt.Errorf("invalid item %s: %w", line.ReferenceNumber, err)
		}
		if err = uow.InsertTransactionItem(ctx, &item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = uow.Commit(); err != nil {
		return nil, fmt.Errorf("commit unit of work: %w", err)
	}

	txn.Items = items
	return txn, nil
}

// resolveDiscountType maps the selection to its persisted identity. A miss
// never aborts the sale; the transaction is recorded without a type.
func (s *TransactionService) resolveDiscountType(ctx context.Context, d enum.Discount) *uint {
	if d == enum.DiscountNone {
		return nil
	}

	dt, err := s.discountRepo.GetByName(ctx, d.TypeName())
	if err != nil {
		s.log().Warn("discount type lookup failed", slog.String("discount", d.TypeName()), slog.Any("error", err))
		return nil
	}
	if dt == nil {
		s.log().Warn("discount type not found", slog.String("discount", d.TypeName()))
		return nil
	}

	id := dt.ID
	return &id
}

// GetTransaction returns a committed transaction with its items.
func (s *TransactionService) GetTransaction(ctx context.Context, id uint) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

func (s *TransactionService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger.With(slog.String("component", "committer"))
	}
	return slog.Default().With(slog.String("component", "committer"))
}
