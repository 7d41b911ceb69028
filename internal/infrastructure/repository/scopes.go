package repository

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"gorm.io/gorm"
)

// ActiveScope restricts a query to rows flagged active.
func ActiveScope(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// CompletedSinceScope restricts a transactions query (aliased t) to one
// cashier's completed sales at or after since.
func CompletedSinceScope(cashierID uuid.UUID, since time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("t.cashier_id = ? AND t.status = ? AND t.transaction_date >= ?",
			cashierID, enum.TransactionStatusCompleted, since)
	}
}
