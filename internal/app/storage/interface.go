//go:generate mockgen -source=./interface.go -destination=./mock/storage.go -package=storagemock
package storage

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/model"
)

// TxFunc is a unit of work executed inside a database transaction.
// The memory store passes a nil tx.
type TxFunc func(ctx context.Context, tx *sql.Tx) error

type TxManager interface {
	// InTx runs fn in a serializable transaction and commits when fn returns nil
	InTx(ctx context.Context, fn TxFunc) error
}

// BalanceStore is a guarded accumulator over account balances
type BalanceStore interface {
	// Balance of the account
	Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	// TxApplyDelta adds a signed delta within the tx and returns the new balance.
	// It fails with apperr.ErrInsufficientBalance instead of going below zero.
	TxApplyDelta(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, delta decimal.Decimal) (decimal.Decimal, error)
}

type AccountRepository interface {
	BalanceStore
	// Create a new model.Account
	Create(ctx context.Context, m *model.Account) (*model.Account, error)
	// Read instance of model.Account
	Read(ctx context.Context, id uuid.UUID) (*model.Account, error)
	// ReadByEmailAndPassword instance of model.Account
	ReadByEmailAndPassword(ctx context.Context, email string, password string) (*model.Account, error)
	// TxLock reads model.Account and holds its row lock until the tx ends
	TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Account, error)
	// Count all accounts
	Count(ctx context.Context) (int, error)
}

type TransactionRepository interface {
	// TxCreate a new model.Transaction within the tx
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error)
	// Read instance of model.Transaction
	Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	// TxLock reads model.Transaction and holds its row lock until the tx ends
	TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Transaction, error)
	// TxUpdateStatus moves the transaction from one status to another.
	// It fails with apperr.ErrInvalidState when the stored status is not from.
	TxUpdateStatus(ctx context.Context, tx *sql.Tx, id uuid.UUID, from, to model.TransactionStatus, operator uuid.NullUUID) error
	// PendingDeposits oldest first, joined with account identity
	PendingDeposits(ctx context.Context) ([]*model.PendingDeposit, error)
	// AllByAccountID newest first
	AllByAccountID(ctx context.Context, accountID uuid.UUID) ([]*model.Transaction, error)
	// PurchaseSummary sums completed purchases
	PurchaseSummary(ctx context.Context) (total decimal.Decimal, count int, err error)
}

type ItemRepository interface {
	// Create a new model.Item
	Create(ctx context.Context, m *model.Item) (*model.Item, error)
	// Read instance of model.Item
	Read(ctx context.Context, id uuid.UUID) (*model.Item, error)
	// AllAvailable items newest first, narrowed to category unless it is empty
	AllAvailable(ctx context.Context, category string) ([]*model.Item, error)
	// TxLock reads model.Item and holds its row lock until the tx ends
	TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Item, error)
	// TxMarkSold flips an available item to sold for the owner
	TxMarkSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, ownerID uuid.UUID) error
	// TxUpdate rewrites the listing of an available item
	TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Item) error
	// TxDelete removes an available item
	TxDelete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error
}
