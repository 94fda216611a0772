package memory

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"sort"
	"time"
)

// storage.TransactionRepository interface implementation
var _ storage.TransactionRepository = (*TransactionRepository)(nil)

type TransactionRepository struct {
	s *Store
}

func (r *TransactionRepository) LoggerComponent() string {
	return "TransactionRepository"
}

func NewTransactionRepository(s *Store) (*TransactionRepository, error) {
	return &TransactionRepository{s: s}, nil
}

// TxCreate implementation of interface storage.TransactionRepository.
// The account reference is not checked, same as the postgres schema.
func (r *TransactionRepository) TxCreate(ctx context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
	err := r.s.do(ctx, func(u *unit) error {
		if m.ID == uuid.Nil {
			m.ID = uuid.New()
		}
		if _, ok := r.s.transactions[m.ID]; ok {
			return apperr.ErrConflict
		}
		if m.CreatedAt.IsZero() {
			m.CreatedAt = time.Now()
		}
		if m.Status == model.TransactionStatusCompleted && m.SettledAt == nil {
			settledAt := m.CreatedAt
			m.SettledAt = &settledAt
		}

		rec := &transactionRecord{Transaction: *m, seq: r.s.nextSeq()}
		r.s.transactions[m.ID] = rec
		u.onRollback(func() {
			delete(r.s.transactions, rec.ID)
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Read implementation of interface storage.TransactionRepository
func (r *TransactionRepository) Read(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	var m model.Transaction
	err := r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.transactions[id]
		if !ok {
			return apperr.ErrNotFound
		}
		m = rec.Transaction
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// TxLock implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxLock(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.Transaction, error) {
	return r.Read(ctx, id)
}

// TxUpdateStatus implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxUpdateStatus(
	ctx context.Context,
	_ *sql.Tx,
	id uuid.UUID,
	from, to model.TransactionStatus,
	operator uuid.NullUUID,
) error {
	return r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.transactions[id]
		if !ok || rec.Status != from {
			return fmt.Errorf("%w: transaction %s is not %s", apperr.ErrInvalidState, id, from)
		}

		prev := rec.Transaction
		rec.Status = to
		if operator.Valid {
			rec.ApprovedBy = operator
		}
		if to == model.TransactionStatusCompleted {
			now := time.Now()
			rec.SettledAt = &now
		}
		u.onRollback(func() {
			rec.Transaction = prev
		})

		return nil
	})
}

// PendingDeposits implementation of interface storage.TransactionRepository
func (r *TransactionRepository) PendingDeposits(ctx context.Context) ([]*model.PendingDeposit, error) {
	var recs []*transactionRecord
	res := make([]*model.PendingDeposit, 0)

	_ = r.s.do(ctx, func(u *unit) error {
		for _, rec := range r.s.transactions {
			if rec.Kind == model.TransactionKindDeposit && rec.Status == model.TransactionStatusPending {
				recs = append(recs, rec)
			}
		}
		sort.Slice(recs, func(i, j int) bool {
			if !recs[i].CreatedAt.Equal(recs[j].CreatedAt) {
				return recs[i].CreatedAt.Before(recs[j].CreatedAt)
			}
			return recs[i].seq < recs[j].seq
		})

		for _, rec := range recs {
			m := &model.PendingDeposit{
				ID:        rec.ID,
				Amount:    rec.Amount,
				Status:    rec.Status,
				CreatedAt: rec.CreatedAt,
			}
			if acc, ok := r.s.accounts[rec.AccountID]; ok {
				m.Account = model.AccountRef{
					ID:    uuid.NullUUID{UUID: acc.ID, Valid: true},
					Name:  acc.Name,
					Email: acc.Email,
				}
			}
			res = append(res, m)
		}
		return nil
	})

	return res, nil
}

// AllByAccountID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) AllByAccountID(ctx context.Context, accountID uuid.UUID) ([]*model.Transaction, error) {
	var recs []*transactionRecord
	res := make([]*model.Transaction, 0)

	_ = r.s.do(ctx, func(u *unit) error {
		for _, rec := range r.s.transactions {
			if rec.AccountID == accountID {
				recs = append(recs, rec)
			}
		}
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].seq > recs[j].seq
		})
		for _, rec := range recs {
			m := rec.Transaction
			res = append(res, &m)
		}
		return nil
	})

	return res, nil
}

// PurchaseSummary implementation of interface storage.TransactionRepository
func (r *TransactionRepository) PurchaseSummary(ctx context.Context) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0

	_ = r.s.do(ctx, func(u *unit) error {
		for _, rec := range r.s.transactions {
			if rec.Kind == model.TransactionKindPurchase && rec.Status == model.TransactionStatusCompleted {
				total = total.Add(rec.Amount)
				count++
			}
		}
		return nil
	})

	return total, count, nil
}
