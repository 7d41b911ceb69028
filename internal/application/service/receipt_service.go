package service

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
	"github.com/sangkips/sypoint-pos/pkg/printer"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	receiptNameWidth  = 22
	defaultCashier    = "CASHIER"
	currencySymbol    = "₱"
	receiptItemHeader = "ITEM                  QTY     AMOUNT"
)

// ReceiptService renders committed sales as fixed-width text receipts and
// hands them to a sink.
type ReceiptService struct {
	header  entity.ReceiptHeader
	sink    printer.Sink
	numbers *message.Printer
	Logger  *slog.Logger
}

// NewReceiptService creates a new receipt service.
func NewReceiptService(header entity.ReceiptHeader, sink printer.Sink, logger *slog.Logger) *ReceiptService {
	return &ReceiptService{
		header:  header,
		sink:    sink,
		numbers: message.NewPrinter(language.English),
		Logger:  logger,
	}
}

// ComposeInput carries what a receipt is built from.
type ComposeInput struct {
	Transaction   *entity.Transaction
	Lines         []entity.CartLine
	Quote         PaymentQuote
	Discount      enum.Discount
	PaymentMethod enum.PaymentMethod
	CashierName   string
	IssuedAt      time.Time
}

// Compose builds the receipt value for a committed transaction.
func (s *ReceiptService) Compose(input *ComposeInput) *entity.Receipt {
	cashier := strings.ToUpper(strings.TrimSpace(input.CashierName))
	if cashier == "" {
		cashier = defaultCashier
	}

	r := &entity.Receipt{
		Header:         s.header,
		TransactionID:  input.Transaction.ID,
		IssuedAt:       input.IssuedAt,
		Cashier:        cashier,
		Lines:          input.Lines,
		Subtotal:       input.Quote.Subtotal,
		Tax:            input.Quote.Tax,
		Discount:       input.Quote.Discount,
		Total:          input.Quote.Total,
		PaymentMethod:  input.PaymentMethod,
		AmountTendered: input.Quote.Tendered,
		Change:         input.Quote.Change,
	}
	if input.Discount != enum.DiscountNone {
		r.DiscountLabel = input.Discount.String()
	}
	return r
}

// Render lays the receipt out 42 columns wide.
func (s *ReceiptService) Render(r *entity.Receipt) string {
	doc := printer.NewDocument(printer.ReceiptWidth)

	doc.Center(r.Header.StoreName)
	if r.Header.Address != "" {
		doc.Center(r.Header.Address)
	}
	if r.Header.Contact != "" {
		doc.Center(r.Header.Contact)
	}
	doc.Separator('-').
		KeyValue("Transaction #:", ReceiptNumber(r.TransactionID)).
		KeyValue("Date:", r.IssuedAt.Format("Jan 02, 2006")).
		KeyValue("Time:", r.IssuedAt.Format("03:04 PM")).
		KeyValue("Cashier:", r.Cashier).
		Separator('-').
		Text(receiptItemHeader).
		Separator('-')

	for _, line := range r.Lines {
		doc.TextF("%-*s %3d   %9s",
			receiptNameWidth, printer.Truncate(line.ProductName, receiptNameWidth),
			line.Quantity,
			s.price(line.Subtotal()))
	}

	doc.Separator('-').
		KeyValue("Subtotal:", s.price(r.Subtotal)).
		KeyValue("Tax (12%):", s.price(r.Tax))
	if r.Discount.IsPositive() {
		label := r.DiscountLabel
		if label == "" {
			label = "Discount"
		}
		doc.KeyValue(label+":", "-"+s.price(r.Discount))
	}

	doc.Separator('=').
		KeyValue("TOTAL:", s.price(r.Total)).
		Blank().
		KeyValue("Payment Method:", strings.ToUpper(r.PaymentMethod.String())).
		KeyValue("Amount Tendered:", s.price(r.AmountTendered)).
		KeyValue("Change:", s.price(r.Change)).
		Separator('-').
		Center("Thank You for Shopping!").
		Center("Come Again Soon ♥").
		Blank().
		Text("\f")

	return doc.String()
}

// Persist writes rendered receipt text through the sink and returns where
// it was stored.
func (s *ReceiptService) Persist(r *entity.Receipt, text string) (string, error) {
	path, err := s.sink.Write(ReceiptFileName(r.TransactionID, r.IssuedAt), text)
	if err != nil {
		s.log().Warn("receipt write failed",
			slog.Uint64("transaction_id", uint64(r.TransactionID)), slog.Any("error", err))
		return "", apperror.NewReceiptWriteFailure(err)
	}
	return path, nil
}

// Emit composes, renders and persists the receipt in one step.
func (s *ReceiptService) Emit(input *ComposeInput) (*entity.Receipt, string, error) {
	r := s.Compose(input)
	path, err := s.Persist(r, s.Render(r))
	return r, path, err
}

// ReceiptNumber is the number printed on a receipt, TXN- plus the six
// digit zero-padded transaction id.
func ReceiptNumber(id uint) string {
	return fmt.Sprintf("TXN-%06d", id)
}

// ReceiptFileName names the receipt file for a transaction issued at t.
func ReceiptFileName(id uint, t time.Time) string {
	return fmt.Sprintf("receipt_%s_%s.txt", ReceiptNumber(id), t.Format("20060102_1504"))
}

func (s *ReceiptService) price(d decimal.Decimal) string {
	return currencySymbol + s.numbers.Sprintf("%.2f", d.InexactFloat64())
}

func (s *ReceiptService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger.With(slog.String("component", "receipt"))
	}
	return slog.Default().With(slog.String("component", "receipt"))
}
