package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// TransactionStatus represents the lifecycle status of a persisted sale.
// Checkout only ever writes TransactionStatusCompleted.
type TransactionStatus string

const (
	TransactionStatusCompleted TransactionStatus = "completed"
)

func (s TransactionStatus) String() string {
	return string(s)
}

func (s TransactionStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s TransactionStatus) Value() (driver.Value, error) {
	return string(s), nil
}

func (s *TransactionStatus) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*s = TransactionStatusCompleted
	case string:
		*s = TransactionStatus(v)
	case []byte:
		*s = TransactionStatus(v)
	default:
		return fmt.Errorf("enum: cannot scan %T into TransactionStatus", value)
	}
	return nil
}
