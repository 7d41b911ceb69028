package enum

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Discount is the per-transaction discount selection.
type Discount int

const (
	DiscountNone Discount = iota
	DiscountSeniorCitizen
	DiscountPWD
)

var discountRate = decimal.RequireFromString("0.20")

// Rate returns the multiplicative rate applied to the subtotal.
func (d Discount) Rate() decimal.Decimal {
	switch d {
	case DiscountSeniorCitizen, DiscountPWD:
		return discountRate
	default:
		return decimal.Zero
	}
}

// TypeName is the discount_types.type_name the selection is recorded under.
// DiscountNone has no type name.
func (d Discount) TypeName() string {
	switch d {
	case DiscountSeniorCitizen:
		return "Senior Citizen"
	case DiscountPWD:
		return "PWD"
	default:
		return ""
	}
}

// String returns the operator-facing label, e.g. "Senior Citizen (20%)".
func (d Discount) String() string {
	if d == DiscountNone {
		return "None"
	}
	return fmt.Sprintf("%s (%s%%)", d.TypeName(), d.Rate().Shift(2).String())
}

func (d Discount) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Discount) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseDiscount(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDiscount accepts the label, the type name, or a short key.
func ParseDiscount(s string) (Discount, error) {
	switch s {
	case "", "None", "none":
		return DiscountNone, nil
	case "Senior Citizen (20%)", "Senior Citizen", "senior", "senior_citizen":
		return DiscountSeniorCitizen, nil
	case "PWD (20%)", "PWD", "pwd":
		return DiscountPWD, nil
	}
	return DiscountNone, fmt.Errorf("enum: unknown discount %q", s)
}
