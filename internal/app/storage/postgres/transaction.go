package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"time"
)

// storage.TransactionRepository interface implementation
var _ storage.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	db *sql.DB
}

func (r *TransactionRepository) LoggerComponent() string {
	return "TransactionRepository"
}

func NewTransactionRepository(db *sql.DB) (*TransactionRepository, error) {
	s := &TransactionRepository{
		db: db,
	}
	return s, nil
}

const transactionColumns = `id, created_at, account_id, kind, status, amount, item_id, initiated_by, approved_by, settled_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	m := &model.Transaction{}
	var settledAt sql.NullTime
	err := row.Scan(&m.ID, &m.CreatedAt, &m.AccountID, &m.Kind, &m.Status, &m.Amount,
		&m.ItemID, &m.InitiatedBy, &m.ApprovedBy, &settledAt)
	if err != nil {
		return nil, err
	}
	if settledAt.Valid {
		m.SettledAt = &settledAt.Time
	}
	return m, nil
}

// TxCreate implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
	l := logger.Get(ctx, r).With().
		Str("method", "TxCreate").
		Str("account_id", m.AccountID.String()).
		Stringer("kind", m.Kind).
		Logger()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	if m.Status == model.TransactionStatusCompleted && m.SettledAt == nil {
		settledAt := m.CreatedAt
		m.SettledAt = &settledAt
	}

	const SQL = `
		INSERT INTO transactions (id, created_at, account_id, kind, status, amount, item_id, initiated_by, approved_by, settled_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := tx.ExecContext(ctx, SQL, m.ID, m.CreatedAt, m.AccountID, m.Kind, m.Status, m.Amount,
		m.ItemID, m.InitiatedBy, m.ApprovedBy, m.SettledAt)
	if err != nil {
		if isConflict(err) {
			l.Debug().Err(err).Msg("Conflict")
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("insert: %w", err)
	}

	l.Debug().Str("transaction_id", m.ID.String()).Msg("Transaction recorded")

	return m, nil
}

// Read implementation of interface storage.TransactionRepository
func (r *TransactionRepository) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1`

	m, err := scanTransaction(r.db.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// TxLock implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Transaction, error) {
	const SQL = `SELECT ` + transactionColumns + ` FROM transactions WHERE id=$1 FOR UPDATE`

	m, err := scanTransaction(tx.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select for update: %w", err)
	}

	return m, nil
}

// TxUpdateStatus implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxUpdateStatus(
	ctx context.Context,
	tx *sql.Tx,
	id uuid.UUID,
	from, to model.TransactionStatus,
	operator uuid.NullUUID,
) error {
	const SQL = `
		UPDATE transactions
		SET status = $1, approved_by = coalesce($2, approved_by), settled_at = $3
		WHERE id = $4 AND status = $5
`
	var settledAt *time.Time
	if to == model.TransactionStatusCompleted {
		now := time.Now()
		settledAt = &now
	}

	res, err := tx.ExecContext(ctx, SQL, to, operator, settledAt, id, from)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: transaction %s is not %s", apperr.ErrInvalidState, id, from)
	}

	return nil
}

// PendingDeposits implementation of interface storage.TransactionRepository
func (r *TransactionRepository) PendingDeposits(ctx context.Context) ([]*model.PendingDeposit, error) {
	l := logger.Get(ctx, r).With().Str("method", "PendingDeposits").Logger()

	const SQL = `
		SELECT t.id, t.amount, t.status, t.created_at, a.id, a.name, a.email
		FROM transactions t
		LEFT JOIN accounts a ON a.id = t.account_id
		WHERE t.kind=$1 AND t.status=$2
		ORDER BY t.created_at ASC, t.id ASC
`
	rows, err := r.db.QueryContext(ctx, SQL, model.TransactionKindDeposit, model.TransactionStatusPending)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.PendingDeposit, 0)

	for rows.Next() {
		m := &model.PendingDeposit{}
		var name, email sql.NullString
		if err := rows.Scan(&m.ID, &m.Amount, &m.Status, &m.CreatedAt, &m.Account.ID, &name, &email); err != nil {
			l.Debug().Err(err).Send()
			return nil, fmt.Errorf("scan: %w", err)
		}
		m.Account.Name = name.String
		m.Account.Email = email.String
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// AllByAccountID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) AllByAccountID(ctx context.Context, accountID uuid.UUID) ([]*model.Transaction, error) {
	const SQL = `SELECT ` + transactionColumns + ` FROM transactions WHERE account_id=$1 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, SQL, accountID)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Transaction, 0)

	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}

// PurchaseSummary implementation of interface storage.TransactionRepository
func (r *TransactionRepository) PurchaseSummary(ctx context.Context) (decimal.Decimal, int, error) {
	const SQL = `
		SELECT coalesce(sum(amount), 0), count(*)
		FROM transactions
		WHERE kind=$1 AND status=$2
`
	sum := decimal.NewFromInt(0)
	var count int

	err := r.db.QueryRowContext(ctx, SQL, model.TransactionKindPurchase, model.TransactionStatusCompleted).Scan(&sum, &count)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("select: %w", err)
	}

	return sum, count, nil
}
