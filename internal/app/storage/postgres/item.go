package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
)

// storage.ItemRepository interface implementation
var _ storage.ItemRepository = (*ItemRepository)(nil)

type ItemRepository struct {
	db *sql.DB
}

func (r *ItemRepository) LoggerComponent() string {
	return "ItemRepository"
}

func NewItemRepository(db *sql.DB) (*ItemRepository, error) {
	s := &ItemRepository{
		db: db,
	}
	return s, nil
}

const itemColumns = `id, name, description, price, category, status, owner_id, delivery, created_by, created_at, updated_at`

func scanItem(row rowScanner) (*model.Item, error) {
	m := &model.Item{}
	err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.Status, &m.OwnerID,
		&m.Delivery, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Create implementation of interface storage.ItemRepository
func (r *ItemRepository) Create(ctx context.Context, m *model.Item) (*model.Item, error) {
	const SQL = `
		INSERT INTO items (name, description, price, category, status, delivery, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
`
	m.Status = model.ItemStatusAvailable

	err := r.db.QueryRowContext(ctx, SQL, m.Name, m.Description, m.Price, m.Category, m.Status, m.Delivery, m.CreatedBy).
		Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isConflict(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("insert: %w", err)
	}

	l := logger.Get(ctx, r)
	l.Debug().Str("item_id", m.ID.String()).Msg("Item created")

	return m, nil
}

// Read implementation of interface storage.ItemRepository
func (r *ItemRepository) Read(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	const SQL = `SELECT ` + itemColumns + ` FROM items WHERE id=$1`

	m, err := scanItem(r.db.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// AllAvailable implementation of interface storage.ItemRepository
func (r *ItemRepository) AllAvailable(ctx context.Context, category string) ([]*model.Item, error) {
	const SQL = `
		SELECT ` + itemColumns + ` FROM items
		WHERE status=$1 AND ($2 = '' OR category=$2)
		ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.QueryContext(ctx, SQL, model.ItemStatusAvailable, category)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Item, 0)

	for rows.Next() {
		m, err := scanItem(rows)
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

// TxLock implementation of interface storage.ItemRepository
func (r *ItemRepository) TxLock(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Item, error) {
	const SQL = `SELECT ` + itemColumns + ` FROM items WHERE id=$1 FOR UPDATE`

	m, err := scanItem(tx.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select for update: %w", err)
	}

	return m, nil
}

// TxMarkSold implementation of interface storage.ItemRepository
func (r *ItemRepository) TxMarkSold(ctx context.Context, tx *sql.Tx, id uuid.UUID, ownerID uuid.UUID) error {
	const SQL = `
		UPDATE items
		SET status = $1, owner_id = $2, updated_at = now()
		WHERE id = $3 AND status = $4
`
	res, err := tx.ExecContext(ctx, SQL, model.ItemStatusSold, ownerID, id, model.ItemStatusAvailable)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrItemUnavailable
	}

	return nil
}

// TxUpdate implementation of interface storage.ItemRepository
func (r *ItemRepository) TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Item) error {
	const SQL = `
		UPDATE items
		SET name = $1, description = $2, price = $3, category = $4, delivery = $5, updated_at = now()
		WHERE id = $6 AND status = $7
		RETURNING updated_at
`
	err := tx.QueryRowContext(ctx, SQL, m.Name, m.Description, m.Price, m.Category, m.Delivery,
		m.ID, model.ItemStatusAvailable).Scan(&m.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return apperr.ErrItemUnavailable
		}
		return fmt.Errorf("update: %w", err)
	}

	return nil
}

// TxDelete implementation of interface storage.ItemRepository
func (r *ItemRepository) TxDelete(ctx context.Context, tx *sql.Tx, id uuid.UUID) error {
	const SQL = `DELETE FROM items WHERE id = $1 AND status = $2`

	res, err := tx.ExecContext(ctx, SQL, id, model.ItemStatusAvailable)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrItemUnavailable
	}

	l := logger.Get(ctx, r)
	l.Debug().Str("item_id", id.String()).Msg("Item deleted")

	return nil
}
