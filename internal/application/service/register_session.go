package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
)

// SessionState is where a register session sits in the checkout flow.
type SessionState string

const (
	SessionEmpty     SessionState = "empty"
	SessionBuilding  SessionState = "building"
	SessionQuoting   SessionState = "quoting"
	SessionCommitted SessionState = "committed"
)

// Cashier is the identity a register session belongs to.
type Cashier struct {
	ID       uuid.UUID
	Username string
	FullName string
	Role     enum.Role
}

// PaymentInput is what the operator enters in the payment step.
type PaymentInput struct {
	Discount      enum.Discount
	PaymentMethod enum.PaymentMethod
	Tendered      decimal.Decimal
}

// RegisterSession owns one cashier's cart and payment inputs. All access
// goes through the session mutex; committing marks a checkout in flight.
type RegisterSession struct {
	mu         sync.Mutex
	cashier    Cashier
	cart       *entity.Cart
	state      SessionState
	payment    PaymentInput
	committing bool
}

func newRegisterSession(cashier Cashier) *RegisterSession {
	return &RegisterSession{
		cashier: cashier,
		cart:    entity.NewCart(),
		state:   SessionEmpty,
		payment: PaymentInput{PaymentMethod: enum.PaymentMethodCash},
	}
}

// CartView is a consistent read of a session's cart.
type CartView struct {
	State         SessionState       `json:"state"`
	Lines         []entity.CartLine  `json:"lines"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Items         int                `json:"items"`
	Discount      enum.Discount      `json:"discount"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
}

// view must be called with mu held.
func (rs *RegisterSession) view() *CartView {
	lines := rs.cart.Lines()
	items := 0
	for _, l := range lines {
		items += l.Quantity
	}
	return &CartView{
		State:         rs.state,
		Lines:         lines,
		Subtotal:      rs.cart.Subtotal(),
		Items:         items,
		Discount:      rs.payment.Discount,
		PaymentMethod: rs.payment.PaymentMethod,
	}
}

// settle moves the session back to Empty or Building after the cart
// changed. Must be called with mu held.
func (rs *RegisterSession) settle() {
	if rs.cart.IsEmpty() {
		rs.state = SessionEmpty
		rs.payment = PaymentInput{PaymentMethod: enum.PaymentMethodCash}
		return
	}
	rs.state = SessionBuilding
}
