package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	domainRepo "github.com/sangkips/sypoint-pos/internal/domain/repository"
	"gorm.io/gorm"
)

const uniqueViolation = "23505"

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Begin(ctx context.Context) (domainRepo.TransactionUnitOfWork, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("repository: begin transaction: %w", tx.Error)
	}
	return &gormUnitOfWork{tx: tx}, nil
}

func (r *transactionRepository) GetWithItems(ctx context.Context, id uint) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("DiscountType").
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

type gormUnitOfWork struct {
	tx *gorm.DB
}

func (u *gormUnitOfWork) InsertTransaction(ctx context.Context, txn *entity.Transaction) error {
	err := u.tx.WithContext(ctx).Omit("Items", "Cashier", "DiscountType").Create(txn).Error
	if isUniqueViolation(err, "transaction_number") {
		return fmt.Errorf("%w: %s", domainRepo.ErrDuplicateTransactionNumber, txn.TransactionNumber)
	}
	return err
}

func (u *gormUnitOfWork) InsertTransactionItem(ctx context.Context, item *entity.TransactionItem) error {
	return u.tx.WithContext(ctx).Omit("Product").Create(item).Error
}

func (u *gormUnitOfWork) Commit() error {
	return u.tx.Commit().Error
}

func (u *gormUnitOfWork) Rollback() error {
	return u.tx.Rollback().Error
}

func isUniqueViolation(err error, column string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return strings.Contains(pgErr.ConstraintName, column) || strings.Contains(pgErr.Detail, column)
}
