package enum

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PaymentMethod is how the customer tendered payment.
type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "Cash"
	PaymentMethodGCash PaymentMethod = "GCash"
)

func (m PaymentMethod) String() string {
	if m == "" {
		return string(PaymentMethodCash)
	}
	return string(m)
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParsePaymentMethod(str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// ParsePaymentMethod is case-insensitive and defaults to cash.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "cash":
		return PaymentMethodCash, nil
	case "gcash":
		return PaymentMethodGCash, nil
	}
	return "", fmt.Errorf("enum: unknown payment method %q", s)
}
