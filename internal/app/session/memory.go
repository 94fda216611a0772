package session

import (
	"context"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"sync"
)

// session.Manager interface implementation
var _ Manager = (*Memory)(nil)

type (
	Memory struct {
		mu       sync.RWMutex
		cfg      config
		accounts storage.AccountRepository
		db       MemoryDB
	}
	MemoryDB map[string]Record
)

func (svc *Memory) LoggerComponent() string {
	return "Session.Memory"
}

func NewMemory(secretKey string, accounts storage.AccountRepository, opts ...Option) *Memory {
	return &Memory{
		cfg:      newConfig(secretKey, opts),
		accounts: accounts,
		db:       make(MemoryDB),
	}
}

// Create method of session.Creator implementation
func (svc *Memory) Create(ctx context.Context, a *model.Account) (string, error) {
	l := logger.Get(ctx, svc)
	l.Debug().Str("account_id", a.ID.String()).Msg("Create")

	token, id, rec, err := svc.cfg.issue(a)
	if err != nil {
		l.Error().Err(err).Send()
		return "", err
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()

	svc.db[id] = rec

	return token, nil
}

// Read method of session.Reader implementation
func (svc *Memory) Read(ctx context.Context, tokenString string) (*model.Account, error) {
	l := logger.Get(ctx, svc)

	c, err := svc.cfg.parse(tokenString)
	if err != nil {
		l.Debug().Err(err).Msg("Token parse failed")
		return nil, ErrInvalidToken
	}

	svc.mu.Lock()
	s, ok := svc.db[c.Id]
	if ok && s.ExpiresAt.Before(svc.cfg.now()) {
		delete(svc.db, c.Id)
		ok = false
		l.Debug().
			Str("session_id", c.Id).
			Str("account_id", s.AccountID.String()).
			Msg("Session expired")
	}
	svc.mu.Unlock()

	if !ok {
		return nil, ErrInvalidToken
	}

	a, err := svc.accounts.Read(ctx, s.AccountID)
	if err != nil {
		l.Debug().Err(err).Send()
		return nil, ErrInvalidToken
	}

	return a, nil
}
