package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/pkg/apperror"
)

// ProductFinder is the catalog lookup the register depends on.
type ProductFinder interface {
	FindByReference(ctx context.Context, code string) (*entity.Product, error)
}

// Committer persists a finalized checkout.
type Committer interface {
	Commit(ctx context.Context, input *CommitInput) (*entity.Transaction, error)
}

// ReceiptEmitter renders and stores the receipt of a committed sale.
type ReceiptEmitter interface {
	Emit(input *ComposeInput) (*entity.Receipt, string, error)
}

// VoidAuthorizer checks the admin credential required to void a cart.
type VoidAuthorizer interface {
	AuthorizeVoid(ctx context.Context, code string) (*entity.User, error)
}

// RegisterService drives each cashier's register session through cart
// building, quoting, checkout and void.
type RegisterService struct {
	catalog         ProductFinder
	committer       Committer
	receipts        ReceiptEmitter
	voids           VoidAuthorizer
	lock            RegisterLock
	checkoutTimeout time.Duration
	Logger          *slog.Logger
	now             func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*RegisterSession
}

// NewRegisterService creates a new register service
func NewRegisterService(
	catalog ProductFinder,
	committer Committer,
	receipts ReceiptEmitter,
	voids VoidAuthorizer,
	lock RegisterLock,
	checkoutTimeout time.Duration,
	logger *slog.Logger,
) *RegisterService {
	if lock == nil {
		lock = NewMemoryRegisterLock()
	}
	if checkoutTimeout <= 0 {
		checkoutTimeout = 10 * time.Second
	}
	return &RegisterService{
		catalog:         catalog,
		committer:       committer,
		receipts:        receipts,
		voids:           voids,
		lock:            lock,
		checkoutTimeout: checkoutTimeout,
		Logger:          logger,
		now:             time.Now,
		sessions:        make(map[uuid.UUID]*RegisterSession),
	}
}

// session returns the cashier's session, opening an empty one on first use.
func (s *RegisterService) session(cashier Cashier) *RegisterSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	rs, ok := s.sessions[cashier.ID]
	if !ok {
		rs = newRegisterSession(cashier)
		s.sessions[cashier.ID] = rs
	}
	return rs
}

// Cart returns the current cart and session state.
func (s *RegisterService) Cart(cashier Cashier) *CartView {
	rs := s.session(cashier)
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.view()
}

// AddItem looks up an active product and appends a line for it. The line
// keeps the name and price current at this moment.
func (s *RegisterService) AddItem(ctx context.Context, cashier Cashier, reference string, quantity int) (*CartView, error) {
	if quantity < 1 || quantity > entity.MaxLineQuantity {
		return nil, apperror.NewValidationError("Quantity must be between 1 and 9999",
			apperror.FieldError{Field: "quantity", Message: entity.ErrInvalidQuantity.Error()})
	}

	product, err := s.catalog.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}

	rs := s.session(cashier)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.committing {
		return nil, apperror.ErrCheckoutInProgress
	}
	if _, err := rs.cart.AddLine(product, quantity); err != nil {
		return nil, apperror.NewValidationError(err.Error())
	}
	rs.settle()

	return rs.view(), nil
}

// RemoveLine drops the line at index.
func (s *RegisterService) RemoveLine(cashier Cashier, index int) (*CartView, error) {
	rs := s.session(cashier)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.committing {
		return nil, apperror.ErrCheckoutInProgress
	}
	if err := rs.cart.RemoveLine(index); err != nil {
		return nil, apperror.NewValidationError("Cart line does not exist",
			apperror.FieldError{Field: "index", Message: err.Error()})
	}
	rs.settle()

	return rs.view(), nil
}

// QuoteView is the live payment breakdown shown while quoting.
type QuoteView struct {
	State   SessionState `json:"state"`
	Quote   PaymentQuote `json:"quote"`
	Covered bool         `json:"covered"`
}

// Quote opens or refreshes the payment step. The quote is recomputed from
// the current cart on every call.
func (s *RegisterService) Quote(cashier Cashier, input PaymentInput) (*QuoteView, error) {
	if input.Tendered.IsNegative() {
		return nil, apperror.NewValidationError("Amount tendered must not be negative",
			apperror.FieldError{Field: "tendered", Message: "must be zero or more"})
	}

	rs := s.session(cashier)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.committing {
		return nil, apperror.ErrCheckoutInProgress
	}
	if rs.cart.IsEmpty() {
		return nil, apperror.ErrEmptyCart
	}

	quote := Quote(rs.cart.Subtotal(), input.Discount, input.Tendered)
	rs.payment = input
	rs.state = SessionQuoting

	return &QuoteView{
		State:   rs.state,
		Quote:   quote,
		Covered: quote.Covered(),
	}, nil
}

// CancelPayment closes the payment step. The cart is kept as is.
func (s *RegisterService) CancelPayment(cashier Cashier) *CartView {
	rs := s.session(cashier)
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.state == SessionQuoting && !rs.committing {
		rs.settle()
	}
	return rs.view()
}

// CheckoutResult is the outcome of a committed checkout. ReceiptWarning is
// set when the sale was saved but its receipt could not be written.
type CheckoutResult struct {
	Transaction    *entity.Transaction `json:"transaction"`
	Quote          PaymentQuote        `json:"quote"`
	Receipt        *entity.Receipt     `json:"receipt"`
	ReceiptPath    string              `json:"receipt_path,omitempty"`
	ReceiptWarning string              `json:"receipt_warning,omitempty"`
}

// Checkout prices the cart, verifies payment, commits the sale and emits
// its receipt, strictly in that order. Only one checkout per register may
// be in flight. A commit failure keeps the cart; a receipt failure does not
// undo the commit and is reported in the result.
func (s *RegisterService) Checkout(ctx context.Context, cashier Cashier, input PaymentInput) (*CheckoutResult, error) {
	if input.Tendered.IsNegative() {
		return nil, apperror.NewValidationError("Amount tendered must not be negative",
			apperror.FieldError{Field: "tendered", Message: "must be zero or more"})
	}

	release, err := s.lock.Acquire(ctx, cashier.ID.String())
	if err != nil {
		return nil, err
	}
	defer release()

	rs := s.session(cashier)
	lines, quote, err := s.beginCheckout(rs, input)
	if err != nil {
		return nil, err
	}

	commitCtx, cancel := context.WithTimeout(ctx, s.checkoutTimeout)
	txn, err := s.committer.Commit(commitCtx, &CommitInput{
		CashierID:     cashier.ID,
		Lines:         lines,
		Quote:         quote,
		Discount:      input.Discount,
		PaymentMethod: input.PaymentMethod,
	})
	cancel()
	if err != nil {
		if !apperror.IsAppError(err) {
			err = apperror.NewCommitFailure(err)
		}
		rs.mu.Lock()
		rs.committing = false
		rs.state = SessionQuoting
		rs.mu.Unlock()
		return nil, err
	}

	result := &CheckoutResult{Transaction: txn, Quote: quote}
	receipt, path, rerr := s.receipts.Emit(&ComposeInput{
		Transaction:   txn,
		Lines:         lines,
		Quote:         quote,
		Discount:      input.Discount,
		PaymentMethod: input.PaymentMethod,
		CashierName:   cashier.FullName,
		IssuedAt:      s.now(),
	})
	result.Receipt = receipt
	result.ReceiptPath = path
	if rerr != nil {
		result.ReceiptWarning = apperror.GetAppError(rerr).Message
		s.log().Warn("checkout receipt not written",
			slog.Uint64("transaction_id", uint64(txn.ID)),
			slog.Any("error", rerr))
	}

	rs.mu.Lock()
	rs.state = SessionCommitted
	rs.cart.Clear()
	rs.settle()
	rs.committing = false
	rs.mu.Unlock()

	return result, nil
}

// beginCheckout snapshots the cart, prices it and marks the session as
// committing. Nothing is marked when the payment does not cover the total.
func (s *RegisterService) beginCheckout(rs *RegisterSession, input PaymentInput) ([]entity.CartLine, PaymentQuote, error) {
	rs.mu.Lock()
	defer rs.mu.Unlock()

	if rs.committing {
		return nil, PaymentQuote{}, apperror.ErrCheckoutInProgress
	}
	if rs.cart.IsEmpty() {
		return nil, PaymentQuote{}, apperror.ErrEmptyCart
	}

	lines := rs.cart.Lines()
	quote := Quote(rs.cart.Subtotal(), input.Discount, input.Tendered)
	rs.payment = input

	if err := Authorize(quote); err != nil {
		rs.state = SessionBuilding
		return nil, PaymentQuote{}, err
	}

	rs.state = SessionQuoting
	rs.committing = true
	return lines, quote, nil
}

// Void discards the whole cart once an admin code is accepted. Nothing is
// persisted either way.
func (s *RegisterService) Void(ctx context.Context, cashier Cashier, adminCode string) (*CartView, error) {
	rs := s.session(cashier)

	rs.mu.Lock()
	if rs.cart.IsEmpty() {
		rs.mu.Unlock()
		return nil, apperror.NewValidationError("No items in cart to void")
	}
	rs.mu.Unlock()

	admin, err := s.voids.AuthorizeVoid(ctx, adminCode)
	if err != nil {
		if apperror.KindOf(err) == apperror.KindAuthorizationDenied {
			s.log().Warn("void denied", slog.String("cashier", cashier.Username))
		}
		return nil, err
	}

	rs.mu.Lock()
	defer rs.mu.Unlock()
	if rs.committing {
		return nil, apperror.ErrCheckoutInProgress
	}
	voided := rs.cart.Len()
	rs.cart.Clear()
	rs.settle()

	s.log().Info("cart voided",
		slog.String("cashier", cashier.Username),
		slog.String("authorized_by", admin.Username),
		slog.Int("lines", voided))

	return rs.view(), nil
}

func (s *RegisterService) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger.With(slog.String("component", "register"))
	}
	return slog.Default().With(slog.String("component", "register"))
}
