// Package memory is a process-local storage backend used when no database is configured.
//
// Every unit of work runs under one store-wide mutex, so units are serialized the way
// serializable postgres transactions would be, and writes made by a failed unit are undone
// before the mutex is released.
package memory

import (
	"context"
	"github.com/google/uuid"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"sync"
)

// storage.TxManager interface implementation
var _ storage.TxManager = (*Store)(nil)

type Store struct {
	mu  sync.Mutex
	seq int64

	accounts     map[uuid.UUID]*accountRecord
	emails       map[string]uuid.UUID
	transactions map[uuid.UUID]*transactionRecord
	items        map[uuid.UUID]*itemRecord
}

type accountRecord struct {
	model.Account
	passwordHash []byte
}

type transactionRecord struct {
	model.Transaction
	seq int64
}

type itemRecord struct {
	model.Item
	seq int64
}

func (s *Store) LoggerComponent() string {
	return "MemoryStore"
}

func New() *Store {
	return &Store{
		accounts:     make(map[uuid.UUID]*accountRecord),
		emails:       make(map[string]uuid.UUID),
		transactions: make(map[uuid.UUID]*transactionRecord),
		items:        make(map[uuid.UUID]*itemRecord),
	}
}

type unitKey struct{}

// unit collects compensations for the writes of one InTx call
type unit struct {
	undo []func()
}

func (u *unit) onRollback(fn func()) {
	if u != nil {
		u.undo = append(u.undo, fn)
	}
}

func (u *unit) rollback() {
	for i := len(u.undo) - 1; i >= 0; i-- {
		u.undo[i]()
	}
	u.undo = nil
}

// InTx implementation of interface storage.TxManager.
// Nested calls join the outer unit. The tx passed to fn is always nil.
func (s *Store) InTx(ctx context.Context, fn storage.TxFunc) error {
	if _, ok := ctx.Value(unitKey{}).(*unit); ok {
		return fn(ctx, nil)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := &unit{}
	if err := fn(context.WithValue(ctx, unitKey{}, u), nil); err != nil {
		n := len(u.undo)
		u.rollback()
		l := logger.Get(ctx, s)
		l.Debug().Err(err).Int("undone", n).Msg("Unit of work rolled back")
		return err
	}

	return nil
}

// do runs fn with the store locked, joining the caller's unit of work if there is one
func (s *Store) do(ctx context.Context, fn func(u *unit) error) error {
	if u, ok := ctx.Value(unitKey{}).(*unit); ok {
		return fn(u)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(nil)
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}
