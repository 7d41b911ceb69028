package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/sangkips/sypoint-pos/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testReceiptHeader = entity.ReceiptHeader{
	StoreName: "** SyPoint POS **",
	Address:   "Your Friendly Store - Davao",
	Contact:   "Contact: 0917-XXX-XXXX",
}

func seniorReceiptInput() *ComposeInput {
	lines := []entity.CartLine{
		{ProductID: uuid.New(), ProductName: "Premium Arabica Coffee Beans 1kg", UnitPrice: dec("1250.00"), Quantity: 1},
		{ProductID: uuid.New(), ProductName: "Widget", UnitPrice: dec("100.00"), Quantity: 2},
	}
	return &ComposeInput{
		Transaction:   &entity.Transaction{ID: 42},
		Lines:         lines,
		Quote:         Quote(dec("1450.00"), enum.DiscountSeniorCitizen, dec("1500.00")),
		Discount:      enum.DiscountSeniorCitizen,
		PaymentMethod: enum.PaymentMethodGCash,
		CashierName:   "Juan Dela Cruz",
		IssuedAt:      time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC),
	}
}

func TestRenderReceiptLayout(t *testing.T) {
	svc := NewReceiptService(testReceiptHeader, newMemorySink(), nil)
	text := svc.Render(svc.Compose(seniorReceiptInput()))

	expected := []string{
		"            ** SyPoint POS **             ",
		"       Your Friendly Store - Davao        ",
		"          Contact: 0917-XXX-XXXX          ",
		"------------------------------------------",
		"Transaction #:                  TXN-000042",
		"Date:                         Mar 05, 2024",
		"Time:                             02:07 PM",
		"Cashier:                    JUAN DELA CRUZ",
		"------------------------------------------",
		"ITEM                  QTY     AMOUNT",
		"------------------------------------------",
		"Premium Arabica Coffee   1   ₱1,250.00",
		"Widget                   2     ₱200.00",
		"------------------------------------------",
		"Subtotal:                        ₱1,450.00",
		"Tax (12%):                         ₱174.00",
		"Senior Citizen (20%):             -₱290.00",
		"==========================================",
		"TOTAL:                           ₱1,334.00",
		"",
		"Payment Method:                      GCASH",
		"Amount Tendered:                 ₱1,500.00",
		"Change:                            ₱166.00",
		"------------------------------------------",
		"         Thank You for Shopping!          ",
		"            Come Again Soon ♥             ",
		"",
		"\f",
	}
	assert.Equal(t, strings.Join(expected, "\n"), text)
}

func TestRenderReceiptWithoutDiscount(t *testing.T) {
	svc := NewReceiptService(testReceiptHeader, newMemorySink(), nil)
	input := seniorReceiptInput()
	input.Discount = enum.DiscountNone
	input.Quote = Quote(dec("1450.00"), enum.DiscountNone, dec("2000.00"))
	input.CashierName = ""
	input.PaymentMethod = enum.PaymentMethodCash

	lines := strings.Split(svc.Render(svc.Compose(input)), "\n")
	assert.Contains(t, lines, "Cashier:                           CASHIER")
	assert.Contains(t, lines, "TOTAL:                           ₱1,624.00")
	assert.Contains(t, lines, "Payment Method:                       CASH")
	for _, l := range lines {
		assert.NotContains(t, l, "Senior")
		assert.NotContains(t, l, "-₱")
	}
}

func TestRenderKeepsFixedWidth(t *testing.T) {
	svc := NewReceiptService(testReceiptHeader, newMemorySink(), nil)
	text := svc.Render(svc.Compose(seniorReceiptInput()))

	for _, l := range strings.Split(text, "\n") {
		assert.LessOrEqual(t, len([]rune(l)), printer.ReceiptWidth, "line %q", l)
	}
}

func TestEmitWritesReceiptFile(t *testing.T) {
	sink := newMemorySink()
	svc := NewReceiptService(testReceiptHeader, sink, nil)

	r, path, err := svc.Emit(seniorReceiptInput())
	require.NoError(t, err)
	assert.Equal(t, "receipts/receipt_TXN-000042_20240305_1407.txt", path)
	assert.Equal(t, "JUAN DELA CRUZ", r.Cashier)
	assert.Equal(t, "Senior Citizen (20%)", r.DiscountLabel)
	assert.Equal(t, svc.Render(r), sink.files["receipt_TXN-000042_20240305_1407.txt"])
}

func TestEmitReportsWriteFailure(t *testing.T) {
	sink := newMemorySink()
	sink.err = errors.New("read-only file system")
	svc := NewReceiptService(testReceiptHeader, sink, nil)

	r, path, err := svc.Emit(seniorReceiptInput())
	require.NotNil(t, r)
	assert.Empty(t, path)
	assert.Equal(t, apperror.KindReceiptWriteFailure, apperror.KindOf(err))
	assert.Contains(t, err.Error(), "read-only file system")
}

func TestEmitToDirectory(t *testing.T) {
	dir := t.TempDir()
	svc := NewReceiptService(testReceiptHeader, printer.NewFileSink(dir+"/receipts"), nil)

	_, path, err := svc.Emit(seniorReceiptInput())
	require.NoError(t, err)
	assert.Equal(t, dir+"/receipts/receipt_TXN-000042_20240305_1407.txt", path)
}
