package memory

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"strings"
	"time"
)

// storage.AccountRepository interface implementation
var _ storage.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	s *Store
}

func (r *AccountRepository) LoggerComponent() string {
	return "AccountRepository"
}

func NewAccountRepository(s *Store) (*AccountRepository, error) {
	return &AccountRepository{s: s}, nil
}

// Create implementation of interface storage.AccountRepository
func (r *AccountRepository) Create(ctx context.Context, m *model.Account) (*model.Account, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(m.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	err = r.s.do(ctx, func(u *unit) error {
		email := strings.ToLower(m.Email)
		if _, ok := r.s.emails[email]; ok {
			return apperr.ErrConflict
		}

		if m.Role == "" {
			m.Role = model.RoleCustomer
		}
		m.ID = uuid.New()
		m.Balance = decimal.Zero
		m.CreatedAt = time.Now()
		m.Password = ""

		rec := &accountRecord{Account: *m, passwordHash: hash}
		r.s.accounts[m.ID] = rec
		r.s.emails[email] = m.ID
		u.onRollback(func() {
			delete(r.s.accounts, rec.ID)
			delete(r.s.emails, email)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Read implementation of interface storage.AccountRepository
func (r *AccountRepository) Read(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	var m model.Account
	err := r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.accounts[id]
		if !ok {
			return apperr.ErrNotFound
		}
		m = rec.Account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ReadByEmailAndPassword implementation of interface storage.AccountRepository
func (r *AccountRepository) ReadByEmailAndPassword(ctx context.Context, email string, password string) (*model.Account, error) {
	var rec accountRecord
	err := r.s.do(ctx, func(u *unit) error {
		id, ok := r.s.emails[strings.ToLower(email)]
		if !ok {
			return apperr.ErrNotFound
		}
		rec = *r.s.accounts[id]
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword(rec.passwordHash, []byte(password)); err != nil {
		return nil, apperr.ErrNotFound
	}

	return &rec.Account, nil
}

// TxLock implementation of interface storage.AccountRepository
func (r *AccountRepository) TxLock(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.Account, error) {
	return r.Read(ctx, id)
}

// Balance implementation of interface storage.BalanceStore
func (r *AccountRepository) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	m, err := r.Read(ctx, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return m.Balance, nil
}

// TxApplyDelta implementation of interface storage.BalanceStore
func (r *AccountRepository) TxApplyDelta(ctx context.Context, _ *sql.Tx, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.accounts[accountID]
		if !ok {
			return apperr.ErrNotFound
		}

		next := rec.Balance.Add(delta)
		if next.IsNegative() {
			return apperr.ErrInsufficientBalance
		}

		prev := rec.Balance
		rec.Balance = next
		u.onRollback(func() {
			rec.Balance = prev
		})

		balance = next
		return nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// Count implementation of interface storage.AccountRepository
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	var n int
	_ = r.s.do(ctx, func(u *unit) error {
		n = len(r.s.accounts)
		return nil
	})
	return n, nil
}
