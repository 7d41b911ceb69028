package entity

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaxLineQuantity bounds a single cart line, matching the register's quantity spinner.
const MaxLineQuantity = 9999

var (
	// ErrInvalidQuantity is returned for a quantity outside 1..MaxLineQuantity.
	ErrInvalidQuantity = errors.New("quantity must be between 1 and 9999")
	// ErrNoProduct is returned when adding a nil product.
	ErrNoProduct = errors.New("product is required")
	// ErrLineOutOfRange is returned when removing a line that does not exist.
	ErrLineOutOfRange = errors.New("cart line does not exist")
)

// CartLine snapshots a product's name and price at the moment it was added.
type CartLine struct {
	ProductID       uuid.UUID       `json:"product_id"`
	ReferenceNumber string          `json:"reference_number"`
	ProductName     string          `json:"product_name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int             `json:"quantity"`
}

// Subtotal is unit price × quantity, exactly.
func (l CartLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered set of lines for one register session.
// It is not safe for concurrent use; the owning session serializes access.
type Cart struct {
	lines []CartLine
}

// NewCart returns an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddLine appends a line built from the product's current name and price.
func (c *Cart) AddLine(p *Product, quantity int) (CartLine, error) {
	if p == nil {
		return CartLine{}, ErrNoProduct
	}
	if quantity < 1 || quantity > MaxLineQuantity {
		return CartLine{}, ErrInvalidQuantity
	}
	line := CartLine{
		ProductID:       p.ID,
		ReferenceNumber: p.ReferenceNumber,
		ProductName:     p.Name,
		UnitPrice:       p.Price,
		Quantity:        quantity,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveLine deletes the line at position i, keeping the order of the rest.
func (c *Cart) RemoveLine(i int) error {
	if i < 0 || i >= len(c.lines) {
		return ErrLineOutOfRange
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the cart's lines.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Subtotal sums every line's subtotal. It is recomputed on each call.
func (c *Cart) Subtotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
