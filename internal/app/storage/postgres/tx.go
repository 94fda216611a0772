package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/jackc/pgerrcode"
	pg "github.com/lib/pq"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/storage"
)

// storage.TxManager interface implementation
var _ storage.TxManager = (*TxManager)(nil)

type TxManager struct {
	db          *sql.DB
	maxAttempts int
}

func (m *TxManager) LoggerComponent() string {
	return "TxManager"
}

func NewTxManager(db *sql.DB, maxAttempts int) (*TxManager, error) {
	if maxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be positive, got %d", maxAttempts)
	}
	return &TxManager{
		db:          db,
		maxAttempts: maxAttempts,
	}, nil
}

// InTx implementation of interface storage.TxManager.
// Serialization failures and deadlocks restart the whole unit of work.
func (m *TxManager) InTx(ctx context.Context, fn storage.TxFunc) error {
	l := logger.Get(ctx, m)

	var err error
	for attempt := 1; attempt <= m.maxAttempts; attempt++ {
		err = m.run(ctx, fn)
		if err == nil || !retryable(err) {
			return err
		}
		l.Debug().Err(err).Int("attempt", attempt).Msg("Retrying serialization failure")
	}

	return err
}

func (m *TxManager) run(ctx context.Context, fn storage.TxFunc) error {
	tx, err := m.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("tx begin: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx commit: %w", err)
	}

	return nil
}

func retryable(err error) bool {
	var pgErr *pg.Error
	if !errors.As(err, &pgErr) {
		return false
	}
	switch string(pgErr.Code) {
	case pgerrcode.SerializationFailure, pgerrcode.DeadlockDetected:
		return true
	}
	return false
}

func isConflict(err error) bool {
	var pgErr *pg.Error
	if errors.As(err, &pgErr) {
		return pgerrcode.IsIntegrityConstraintViolation(string(pgErr.Code))
	}
	return false
}
