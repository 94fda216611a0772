package postgres

import (
	"context"
	"database/sql"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	pg "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"testing"
	"time"
)

var accountRowColumns = []string{"id", "name", "email", "role", "balance", "created_at"}

func TestAccountRepository_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r, err := NewAccountRepository(db)
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		id := uuid.New()
		mock.ExpectQuery("INSERT INTO accounts").
			WithArgs("alice", "alice@example.com", "secret", model.RoleCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id", "balance", "created_at"}).
				AddRow(id.String(), "0.00", time.Now()))

		m, err := r.Create(context.Background(), &model.Account{
			Name:     "alice",
			Email:    "alice@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.Equal(t, id, m.ID)
		assert.Equal(t, model.RoleCustomer, m.Role)
		assert.Empty(t, m.Password)
		assert.True(t, m.Balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectQuery("INSERT INTO accounts").
			WillReturnError(&pg.Error{Code: "23505"})

		_, err := r.Create(context.Background(), &model.Account{
			Name:     "alice",
			Email:    "alice@example.com",
			Password: "secret",
			Role:     model.RoleAdmin,
		})
		assert.ErrorIs(t, err, apperr.ErrConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_Read(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r, err := NewAccountRepository(db)
	require.NoError(t, err)

	id := uuid.New()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, role, balance, created_at FROM accounts WHERE id=\\$1").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows(accountRowColumns).
				AddRow(id.String(), "bob", "bob@example.com", "admin", "150000.00", time.Now()))

		m, err := r.Read(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, "bob", m.Name)
		assert.True(t, m.IsAdmin())
		assert.True(t, m.Balance.Equal(decimal.NewFromInt(150000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT id, name, email, role, balance, created_at FROM accounts").
			WithArgs(id).
			WillReturnError(sql.ErrNoRows)

		_, err := r.Read(context.Background(), id)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_TxApplyDelta(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r, err := NewAccountRepository(db)
	require.NoError(t, err)

	id := uuid.New()

	run := func(delta decimal.Decimal) (decimal.Decimal, error) {
		tx, err := db.Begin()
		require.NoError(t, err)
		defer func() {
			_ = tx.Rollback()
		}()
		return r.TxApplyDelta(context.Background(), tx, id, delta)
	}

	t.Run("credit", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE accounts SET balance = balance \\+ \\$1").
			WithArgs(decimal.NewFromInt(50000), id).
			WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow("80000.00"))
		mock.ExpectRollback()

		balance, err := run(decimal.NewFromInt(50000))
		require.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(80000)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient balance", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE accounts SET balance = balance \\+ \\$1").
			WithArgs(decimal.NewFromInt(-90000), id).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		_, err := run(decimal.NewFromInt(-90000))
		assert.ErrorIs(t, err, apperr.ErrInsufficientBalance)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing account", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery("UPDATE accounts SET balance = balance \\+ \\$1").
			WithArgs(decimal.NewFromInt(10000), id).
			WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery("SELECT EXISTS").
			WithArgs(id).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		_, err := run(decimal.NewFromInt(10000))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestAccountRepository_Count(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	r, err := NewAccountRepository(db)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM accounts").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	n, err := r.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
