package memory

import (
	"context"
	"database/sql"
	"github.com/google/uuid"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"sort"
	"time"
)

// storage.ItemRepository interface implementation
var _ storage.ItemRepository = (*ItemRepository)(nil)

type ItemRepository struct {
	s *Store
}

func (r *ItemRepository) LoggerComponent() string {
	return "ItemRepository"
}

func NewItemRepository(s *Store) (*ItemRepository, error) {
	return &ItemRepository{s: s}, nil
}

// Create implementation of interface storage.ItemRepository
func (r *ItemRepository) Create(ctx context.Context, m *model.Item) (*model.Item, error) {
	err := r.s.do(ctx, func(u *unit) error {
		m.ID = uuid.New()
		m.Status = model.ItemStatusAvailable
		m.OwnerID = uuid.NullUUID{}
		m.CreatedAt = time.Now()
		m.UpdatedAt = m.CreatedAt

		rec := &itemRecord{Item: *m, seq: r.s.nextSeq()}
		r.s.items[m.ID] = rec
		u.onRollback(func() {
			delete(r.s.items, rec.ID)
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Read implementation of interface storage.ItemRepository
func (r *ItemRepository) Read(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	var m model.Item
	err := r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.items[id]
		if !ok {
			return apperr.ErrNotFound
		}
		m = rec.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AllAvailable implementation of interface storage.ItemRepository
func (r *ItemRepository) AllAvailable(ctx context.Context, category string) ([]*model.Item, error) {
	var recs []*itemRecord
	res := make([]*model.Item, 0)

	_ = r.s.do(ctx, func(u *unit) error {
		for _, rec := range r.s.items {
			if rec.Status != model.ItemStatusAvailable {
				continue
			}
			if category == "" || rec.Category == category {
				recs = append(recs, rec)
			}
		}
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].seq > recs[j].seq
		})
		for _, rec := range recs {
			m := rec.Item
			res = append(res, &m)
		}
		return nil
	})

	return res, nil
}

// TxLock implementation of interface storage.ItemRepository
func (r *ItemRepository) TxLock(ctx context.Context, _ *sql.Tx, id uuid.UUID) (*model.Item, error) {
	return r.Read(ctx, id)
}

// TxMarkSold implementation of interface storage.ItemRepository
func (r *ItemRepository) TxMarkSold(ctx context.Context, _ *sql.Tx, id uuid.UUID, ownerID uuid.UUID) error {
	return r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.items[id]
		if !ok || rec.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}

		prev := rec.Item
		rec.Status = model.ItemStatusSold
		rec.OwnerID = uuid.NullUUID{UUID: ownerID, Valid: true}
		rec.UpdatedAt = time.Now()
		u.onRollback(func() {
			rec.Item = prev
		})
		return nil
	})
}

// TxUpdate implementation of interface storage.ItemRepository
func (r *ItemRepository) TxUpdate(ctx context.Context, _ *sql.Tx, m *model.Item) error {
	return r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.items[m.ID]
		if !ok || rec.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}

		prev := rec.Item
		rec.Name = m.Name
		rec.Description = m.Description
		rec.Price = m.Price
		rec.Category = m.Category
		rec.Delivery = m.Delivery
		rec.UpdatedAt = time.Now()
		m.UpdatedAt = rec.UpdatedAt
		u.onRollback(func() {
			rec.Item = prev
		})
		return nil
	})
}

// TxDelete implementation of interface storage.ItemRepository
func (r *ItemRepository) TxDelete(ctx context.Context, _ *sql.Tx, id uuid.UUID) error {
	return r.s.do(ctx, func(u *unit) error {
		rec, ok := r.s.items[id]
		if !ok || rec.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}

		delete(r.s.items, id)
		u.onRollback(func() {
			r.s.items[id] = rec
		})
		return nil
	})
}
