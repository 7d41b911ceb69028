package service

import (
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// TaxRate is the fixed sales tax applied to every subtotal.
var TaxRate = decimal.RequireFromString("0.12")

// PaymentQuote is the tax, discount, total and change breakdown for one
// set of checkout inputs. It is recomputed from scratch whenever an input
// changes and never patched in place.
type PaymentQuote struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Tendered decimal.Decimal `json:"tendered"`
	Change   decimal.Decimal `json:"change"`
}

// round2 rounds to the currency minor unit, half away from zero. Every
// amount reaching it is non-negative so this is plain half-up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Quote prices a subtotal under the given discount and tendered amount.
func Quote(subtotal decimal.Decimal, discount enum.Discount, tendered decimal.Decimal) PaymentQuote {
	tax := round2(subtotal.Mul(TaxRate))
	discountAmount := round2(subtotal.Mul(discount.Rate()))
	total := round2(subtotal.Add(tax).Sub(discountAmount))
	if total.IsNegative() {
		total = decimal.Zero
	}

	change := round2(tendered.Sub(total))
	if change.IsNegative() {
		change = decimal.Zero
	}

	return PaymentQuote{
		Subtotal: subtotal,
		Tax:      tax,
		Discount: discountAmount,
		Total:    total,
		Tendered: tendered,
		Change:   change,
	}
}

// Covered reports whether the tendered amount pays the total.
func (q PaymentQuote) Covered() bool {
	return q.Tendered.GreaterThanOrEqual(q.Total)
}

// Authorize is the only gate in front of commit. It fails with
// InsufficientFunds when the tendered amount is strictly below the total.
func Authorize(q PaymentQuote) error {
	if !q.Covered() {
		return apperror.NewInsufficientFundsError()
	}
	return nil
}
