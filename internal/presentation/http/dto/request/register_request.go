package request

import (
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// AddItemRequest scans a product reference into the cart
type AddItemRequest struct {
	Reference string `json:"reference" binding:"required,max=64"`
	Quantity  int    `json:"quantity" binding:"required,min=1,max=9999"`
}

// PaymentRequest carries the payment form. Discount and method accept the
// labels shown on the register, e.g. "Senior Citizen (20%)" or "gcash".
type PaymentRequest struct {
	Discount      enum.Discount      `json:"discount"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	Tendered      decimal.Decimal    `json:"tendered"`
}

// VoidRequest carries the administrator code that authorizes a void
type VoidRequest struct {
	AdminCode string `json:"admin_code" binding:"required"`
}
