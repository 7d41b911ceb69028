package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/sypoint-pos/internal/domain/entity"
	"github.com/sangkips/sypoint-pos/internal/domain/enum"
	"github.com/sangkips/sypoint-pos/internal/domain/repository"
	"github.com/sangkips/sypoint-pos/pkg/utils"
)

var errDatabaseDown = errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")

// --- catalog ---

type fakeProductRepo struct {
	products map[string]*entity.Product
	err      error
	lookups  []string
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: make(map[string]*entity.Product)}
	for _, p := range products {
		if p.ID == uuid.Nil {
			p.ID = uuid.New()
		}
		r.products[p.ReferenceNumber] = p
	}
	return r
}

func (r *fakeProductRepo) GetActiveByReference(ctx context.Context, reference string) (*entity.Product, error) {
	r.lookups = append(r.lookups, reference)
	if r.err != nil {
		return nil, r.err
	}
	p, ok := r.products[reference]
	if !ok || !p.IsActive {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func mustProduct(reference, name, price string) *entity.Product {
	p, err := entity.NewProduct(reference, name, dec(price))
	if err != nil {
		panic(err)
	}
	p.ID = uuid.New()
	return p
}

// --- users ---

type fakeUserRepo struct {
	users []entity.User
	err   error
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			return &r.users[i], nil
		}
	}
	return nil, r.err
}

func (r *fakeUserRepo) GetActiveByUsername(ctx context.Context, username string) (*entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	for i := range r.users {
		if r.users[i].Username == username && r.users[i].IsActive {
			return &r.users[i], nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListActiveByRole(ctx context.Context, role enum.Role) ([]entity.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.User
	for _, u := range r.users {
		if u.Role == role && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func newUser(username, fullName, password string, role enum.Role, active bool) entity.User {
	hash, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}
	return entity.User{
		ID:       uuid.New(),
		Username: username,
		FullName: fullName,
		Password: hash,
		Role:     role,
		IsActive: active,
	}
}

// --- discount types ---

type fakeDiscountRepo struct {
	types map[string]uint
	err   error
}

func (r *fakeDiscountRepo) GetByName(ctx context.Context, typeName string) (*entity.DiscountType, error) {
	if r.err != nil {
		return nil, r.err
	}
	id, ok := r.types[typeName]
	if !ok {
		return nil, nil
	}
	return &entity.DiscountType{ID: id, TypeName: typeName, Rate: dec("0.20")}, nil
}

// --- transactions ---

type fakeTxnRepo struct {
	mu           sync.Mutex
	nextID       uint
	transactions []entity.Transaction
	items        []entity.TransactionItem

	beginErr       error
	beginDelay     time.Duration
	commitErr      error
	failItemAt     int
	duplicateTimes int
	commitGate     chan struct{}
	commitStarted  chan struct{}

	begins    int
	rollbacks int
}

func (r *fakeTxnRepo) Begin(ctx context.Context) (repository.TransactionUnitOfWork, error) {
	if r.beginDelay > 0 {
		select {
		case <-time.After(r.beginDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.begins++
	if r.beginErr != nil {
		return nil, r.beginErr
	}
	return &fakeUnitOfWork{repo: r}, nil
}

func (r *fakeTxnRepo) GetWithItems(ctx context.Context, id uint) (*entity.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.transactions {
		if t.ID == id {
			cp := t
			for _, it := range r.items {
				if it.TransactionID == id {
					cp.Items = append(cp.Items, it)
				}
			}
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeTxnRepo) committed() ([]entity.Transaction, []entity.TransactionItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]entity.Transaction(nil), r.transactions...), append([]entity.TransactionItem(nil), r.items...)
}

type fakeUnitOfWork struct {
	repo        *fakeTxnRepo
	txn         *entity.Transaction
	items       []entity.TransactionItem
	itemInserts int
}

func (u *fakeUnitOfWork) InsertTransaction(ctx context.Context, txn *entity.Transaction) error {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()

	if u.repo.duplicateTimes > 0 {
		u.repo.duplicateTimes--
		return fmt.Errorf("insert transaction: %w", repository.ErrDuplicateTransactionNumber)
	}
	for _, t := range u.repo.transactions {
		if t.TransactionNumber == txn.TransactionNumber {
			return fmt.Errorf("insert transaction: %w", repository.ErrDuplicateTransactionNumber)
		}
	}
	u.repo.nextID++
	txn.ID = u.repo.nextID
	cp := *txn
	u.txn = &cp
	return nil
}

func (u *fakeUnitOfWork) InsertTransactionItem(ctx context.Context, item *entity.TransactionItem) error {
	u.itemInserts++
	if u.repo.failItemAt == u.itemInserts {
		return errors.New("insert or update on table \"transaction_items\" violates foreign key constraint")
	}
	item.ID = uint(u.itemInserts)
	u.items = append(u.items, *item)
	return nil
}

func (u *fakeUnitOfWork) Commit() error {
	if u.repo.commitStarted != nil {
		u.repo.commitStarted <- struct{}{}
	}
	if u.repo.commitGate != nil {
		<-u.repo.commitGate
	}

	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()
	if u.repo.commitErr != nil {
		return u.repo.commitErr
	}
	u.repo.transactions = append(u.repo.transactions, *u.txn)
	u.repo.items = append(u.repo.items, u.items...)
	return nil
}

func (u *fakeUnitOfWork) Rollback() error {
	u.repo.mu.Lock()
	defer u.repo.mu.Unlock()
	u.repo.rollbacks++
	return nil
}

// --- receipts ---

type memorySink struct {
	mu    sync.Mutex
	files map[string]string
	err   error
}

func newMemorySink() *memorySink {
	return &memorySink{files: make(map[string]string)}
}

func (s *memorySink) Write(name, content string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return "", s.err
	}
	s.files[name] = content
	return "receipts/" + name, nil
}

func (s *memorySink) Ready() bool {
	return s.err == nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
