package repository

import (
	"context"
	"errors"

	"github.com/sangkips/sypoint-pos/internal/domain/entity"
)

// ErrDuplicateTransactionNumber is returned by InsertTransaction when the
// transaction number is already taken.
var ErrDuplicateTransactionNumber = errors.New("transaction number already exists")

// TransactionUnitOfWork groups the inserts of one sale. Either Commit
// persists every row or Rollback discards them all.
type TransactionUnitOfWork interface {
	// InsertTransaction inserts the header row and assigns its ID.
	InsertTransaction(ctx context.Context, txn *entity.Transaction) error
	InsertTransactionItem(ctx context.Context, item *entity.TransactionItem) error
	Commit() error
	Rollback() error
}

// TransactionRepository is the persistence collaborator for committed sales.
type TransactionRepository interface {
	Begin(ctx context.Context) (TransactionUnitOfWork, error)
	// GetWithItems returns nil when the transaction does not exist.
	GetWithItems(ctx context.Context, id uint) (*entity.Transaction, error)
}
