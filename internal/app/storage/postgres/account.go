package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
)

// storage.AccountRepository interface implementation
var _ storage.AccountRepository = (*AccountRepository)(nil)

type AccountRepository struct {
	db *sql.DB
}

func (r *AccountRepository) LoggerComponent() string {
	return "AccountRepository"
}

func NewAccountRepository(db *sql.DB) (*AccountRepository, error) {
	s := &AccountRepository{
		db: db,
	}
	return s, nil
}

// Create implementation of interface storage.AccountRepository
func (r *AccountRepository) Create(ctx context.Context, m *model.Account) (*model.Account, error) {
	if m.Role == "" {
		m.Role = model.RoleCustomer
	}

	const SQL = `
		INSERT INTO accounts (name, email, password, role)
		VALUES ($1, $2, crypt($3, gen_salt('bf')), $4)
		RETURNING id, balance, created_at
`

	err := r.db.QueryRowContext(ctx, SQL, m.Name, m.Email, m.Password, m.Role).Scan(&m.ID, &m.Balance, &m.CreatedAt)
	if err != nil {
		if isConflict(err) {
			return nil, apperr.ErrConflict
		}

		return nil, fmt.Errorf("insert: %w", err)
	}

	m.Password = ""

	return m, nil
}

// Read implementation of interface storage.AccountRepository
func (r *AccountRepository) Read(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	const SQL = `
		SELECT id, name, email, role, balance, created_at
		FROM accounts
		WHERE id=$1
`
	m := &model.Account{}

	err := r.db.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Balance, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// ReadByEmailAndPassword implementation of interface storage.AccountRepository
func (r *AccountRepository) ReadByEmailAndPassword(ctx context.Context, email string, password string) (*model.Account, error) {
	const SQL = `
		SELECT id, name, email, role, balance, created_at
		FROM accounts
		WHERE email = $1
		AND password = crypt($2, password)
`
	m := &model.Account{}

	err := r.db.QueryRowContext(ctx, SQL, email, password).Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Balance, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// TxLock implementation of interface storage.AccountRepository
func (r *AccountRepository) TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Account, error) {
	const SQL = `
		SELECT id, name, email, role, balance, created_at
		FROM accounts
		WHERE id=$1
		FOR UPDATE
`
	m := &model.Account{}

	err := tx.QueryRowContext(ctx, SQL, id).Scan(&m.ID, &m.Name, &m.Email, &m.Role, &m.Balance, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select for update: %w", err)
	}

	return m, nil
}

// Balance implementation of interface storage.BalanceStore
func (r *AccountRepository) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	const SQL = `SELECT balance FROM accounts WHERE id=$1`

	var balance decimal.Decimal
	if err := r.db.QueryRowContext(ctx, SQL, accountID).Scan(&balance); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, apperr.ErrNotFound
		}
		return decimal.Zero, fmt.Errorf("select: %w", err)
	}

	return balance, nil
}

// TxApplyDelta implementation of interface storage.BalanceStore
func (r *AccountRepository) TxApplyDelta(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error) {
	const SQL = `
		UPDATE accounts
		SET balance = balance + $1
		WHERE id = $2 AND balance + $1 >= 0
		RETURNING balance
`

	var balance decimal.Decimal
	err := tx.QueryRowContext(ctx, SQL, delta, accountID).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return decimal.Zero, fmt.Errorf("update balance: %w", err)
	}

	const sqlExists = `SELECT EXISTS(SELECT 1 FROM accounts WHERE id=$1)`
	var exists bool
	if err := tx.QueryRowContext(ctx, sqlExists, accountID).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("select exists: %w", err)
	}
	if !exists {
		return decimal.Zero, apperr.ErrNotFound
	}

	return decimal.Zero, apperr.ErrInsufficientBalance
}

// Count implementation of interface storage.AccountRepository
func (r *AccountRepository) Count(ctx context.Context) (int, error) {
	const SQL = `SELECT count(*) FROM accounts`

	var n int
	if err := r.db.QueryRowContext(ctx, SQL).Scan(&n); err != nil {
		return 0, fmt.Errorf("select: %w", err)
	}

	return n, nil
}
