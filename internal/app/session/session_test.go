package session

import (
	"context"
	"encoding/json"
	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage/memory"
	"testing"
	"time"
)

func newAccounts(t *testing.T) (*memory.AccountRepository, *model.Account) {
	t.Helper()
	accounts, err := memory.NewAccountRepository(memory.New())
	require.NoError(t, err)
	a, err := accounts.Create(context.Background(), &model.Account{
		Name:     "alice",
		Email:    "alice@example.com",
		Password: "secret",
		Role:     model.RoleAdmin,
	})
	require.NoError(t, err)
	return accounts, a
}

func TestMemory_CreateRead(t *testing.T) {
	ctx := context.Background()
	accounts, a := newAccounts(t)
	svc := NewMemory("test-secret", accounts)

	token, err := svc.Create(ctx, a)
	require.NoError(t, err)

	got, err := svc.Read(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.True(t, got.IsAdmin())

	claims, err := svc.cfg.parse(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, claims.Role)
	assert.Equal(t, a.ID.String(), claims.Subject)
}

func TestMemory_RejectsForeignTokens(t *testing.T) {
	ctx := context.Background()
	accounts, a := newAccounts(t)
	svc := NewMemory("test-secret", accounts)
	other := NewMemory("other-secret", accounts)

	token, err := other.Create(ctx, a)
	require.NoError(t, err)

	_, err = svc.Read(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.Read(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestMemory_Expired(t *testing.T) {
	ctx := context.Background()
	accounts, a := newAccounts(t)
	svc := NewMemory("test-secret", accounts, WithTokenLifetime(time.Hour))

	token, err := svc.Create(ctx, a)
	require.NoError(t, err)

	svc.cfg.now = func() time.Time {
		return time.Now().Add(2 * time.Hour)
	}

	_, err = svc.Read(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Empty(t, svc.db)
}

func TestRedis_CreateRead(t *testing.T) {
	ctx := context.Background()
	accounts, a := newAccounts(t)
	db, mock := redismock.NewClientMock()

	now := time.Now()
	svc := NewRedis("test-secret", db, accounts)
	svc.cfg.newID = func() string { return "sid-1" }
	svc.cfg.now = func() time.Time { return now }

	raw, err := json.Marshal(Record{StartedAt: now, ExpiresAt: now.Add(time.Hour), AccountID: a.ID})
	require.NoError(t, err)

	mock.ExpectSet("session:sid-1", string(raw), time.Hour).SetVal("OK")
	mock.ExpectGet("session:sid-1").SetVal(string(raw))

	token, err := svc.Create(ctx, a)
	require.NoError(t, err)

	got, err := svc.Read(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedis_MissingSession(t *testing.T) {
	ctx := context.Background()
	accounts, a := newAccounts(t)
	db, mock := redismock.NewClientMock()

	now := time.Now()
	svc := NewRedis("test-secret", db, accounts)
	svc.cfg.newID = func() string { return "sid-2" }
	svc.cfg.now = func() time.Time { return now }

	raw, err := json.Marshal(Record{StartedAt: now, ExpiresAt: now.Add(time.Hour), AccountID: a.ID})
	require.NoError(t, err)

	mock.ExpectSet("session:sid-2", string(raw), time.Hour).SetVal("OK")
	mock.ExpectGet("session:sid-2").RedisNil()

	token, err := svc.Create(ctx, a)
	require.NoError(t, err)

	_, err = svc.Read(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
