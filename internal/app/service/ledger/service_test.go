package ledger

import (
	"context"
	"errors"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	storagemock "shopledger/internal/app/storage/mock"
	"sync"
	"testing"
	"time"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []*model.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, e *model.Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, e)
}

func (n *recordingNotifier) Events() []*model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*model.Notification(nil), n.events...)
}

type mocks struct {
	txm          *storagemock.MockTxManager
	accounts     *storagemock.MockAccountRepository
	transactions *storagemock.MockTransactionRepository
	notifier     *recordingNotifier
}

func newMockedService(t *testing.T) (*Service, *mocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &mocks{
		txm:          storagemock.NewMockTxManager(ctrl),
		accounts:     storagemock.NewMockAccountRepository(ctrl),
		transactions: storagemock.NewMockTransactionRepository(ctrl),
		notifier:     &recordingNotifier{},
	}
	m.txm.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn storage.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()

	s, err := New(m.txm, m.accounts, m.transactions, WithNotifier(m.notifier))
	require.NoError(t, err)
	return s, m
}

func TestService_ValidateAmount(t *testing.T) {
	s, _ := newMockedService(t)

	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr bool
	}{
		{name: "minimum", amount: decimal.NewFromInt(10000)},
		{name: "two decimals", amount: decimal.RequireFromString("10000.55")},
		{name: "zero", amount: decimal.Zero, wantErr: true},
		{name: "negative", amount: decimal.NewFromInt(-50000), wantErr: true},
		{name: "below minimum", amount: decimal.NewFromInt(9999), wantErr: true},
		{name: "three decimals", amount: decimal.RequireFromString("10000.001"), wantErr: true},
		{name: "wider than column", amount: decimal.RequireFromString("1000000000000000000"), wantErr: true},
		{name: "huge exponent", amount: decimal.New(1, 20000000), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.ValidateAmount(tt.amount)
			if tt.wantErr {
				assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
				assert.ErrorIs(t, err, apperr.ErrInvalidInput)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestService_HugeAmountIsRejectedQuickly(t *testing.T) {
	ctx := context.Background()
	s, _ := newMockedService(t)
	huge := decimal.New(1, 2000000000)

	start := time.Now()

	_, err := s.RequestDeposit(ctx, uuid.New(), huge)
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	_, err = s.AdminDeposit(ctx, uuid.New(), huge, uuid.New())
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	_, err = s.TxSettlePurchase(ctx, nil, uuid.New(), uuid.New(), huge)
	assert.ErrorIs(t, err, apperr.ErrInvalidAmount)

	assert.True(t, time.Since(start) < time.Second)
}

func TestService_RequestDeposit(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	t.Run("pending transaction without balance change", func(t *testing.T) {
		s, m := newMockedService(t)

		m.accounts.EXPECT().Read(gomock.Any(), accountID).
			Return(&model.Account{ID: accountID, Name: "alice", Email: "alice@example.com"}, nil)
		m.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, tr *model.Transaction) (*model.Transaction, error) {
				assert.Equal(t, model.TransactionKindDeposit, tr.Kind)
				assert.Equal(t, model.TransactionStatusPending, tr.Status)
				assert.Equal(t, accountID, tr.InitiatedBy)
				tr.ID = uuid.New()
				return tr, nil
			})

		res, err := s.RequestDeposit(ctx, accountID, decimal.NewFromInt(50000))
		require.NoError(t, err)
		assert.Equal(t, model.TransactionStatusPending, res.Status)

		events := m.notifier.Events()
		require.Len(t, events, 1)
		assert.Equal(t, model.NotificationDepositRequested, events[0].Kind)
		assert.Equal(t, "alice@example.com", events[0].AccountEmail)
		assert.Equal(t, res.ID, events[0].TransactionID)
	})

	t.Run("invalid amount", func(t *testing.T) {
		s, m := newMockedService(t)

		_, err := s.RequestDeposit(ctx, accountID, decimal.NewFromInt(-1))
		assert.ErrorIs(t, err, apperr.ErrInvalidAmount)
		assert.Empty(t, m.notifier.Events())
	})

	t.Run("unknown account", func(t *testing.T) {
		s, m := newMockedService(t)

		m.accounts.EXPECT().Read(gomock.Any(), accountID).Return(nil, apperr.ErrNotFound)

		_, err := s.RequestDeposit(ctx, accountID, decimal.NewFromInt(50000))
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Empty(t, m.notifier.Events())
	})
}

func TestService_ApproveDeposit(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	operatorID := uuid.New()
	txID := uuid.New()

	pending := func() *model.Transaction {
		return &model.Transaction{
			ID:        txID,
			AccountID: accountID,
			Kind:      model.TransactionKindDeposit,
			Status:    model.TransactionStatusPending,
			Amount:    decimal.NewFromInt(50000),
		}
	}

	t.Run("success", func(t *testing.T) {
		s, m := newMockedService(t)

		operator := uuid.NullUUID{UUID: operatorID, Valid: true}
		gomock.InOrder(
			m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(pending(), nil),
			m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).Return(&model.Account{ID: accountID}, nil),
			m.accounts.EXPECT().TxApplyDelta(gomock.Any(), gomock.Any(), accountID, decimal.NewFromInt(50000)).
				Return(decimal.NewFromInt(50000), nil),
			m.transactions.EXPECT().TxUpdateStatus(gomock.Any(), gomock.Any(), txID,
				model.TransactionStatusPending, model.TransactionStatusCompleted, operator).Return(nil),
		)

		res, err := s.ApproveDeposit(ctx, txID, operatorID)
		require.NoError(t, err)
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(50000)))
		assert.Equal(t, model.TransactionStatusCompleted, res.Transaction.Status)
		assert.Equal(t, operator, res.Transaction.ApprovedBy)
		assert.NotEmpty(t, res.Message)
	})

	t.Run("not found", func(t *testing.T) {
		s, m := newMockedService(t)

		m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(nil, apperr.ErrNotFound)

		_, err := s.ApproveDeposit(ctx, txID, operatorID)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("already completed", func(t *testing.T) {
		s, m := newMockedService(t)

		tr := pending()
		tr.Status = model.TransactionStatusCompleted
		m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(tr, nil)

		_, err := s.ApproveDeposit(ctx, txID, operatorID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})

	t.Run("purchase", func(t *testing.T) {
		s, m := newMockedService(t)

		tr := pending()
		tr.Kind = model.TransactionKindPurchase
		m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(tr, nil)

		_, err := s.ApproveDeposit(ctx, txID, operatorID)
		assert.ErrorIs(t, err, apperr.ErrInvalidKind)
	})

	t.Run("orphan", func(t *testing.T) {
		s, m := newMockedService(t)

		m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(pending(), nil)
		m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).Return(nil, apperr.ErrNotFound)
		m.transactions.EXPECT().Read(gomock.Any(), txID).Return(pending(), nil)

		_, err := s.ApproveDeposit(ctx, txID, operatorID)
		assert.ErrorIs(t, err, apperr.ErrOrphanTransaction)

		events := m.notifier.Events()
		require.Len(t, events, 1)
		assert.Equal(t, model.NotificationOrphanTransaction, events[0].Kind)
		assert.Equal(t, accountID, events[0].AccountID)
	})

	t.Run("lost race on status update", func(t *testing.T) {
		s, m := newMockedService(t)

		m.transactions.EXPECT().TxLock(gomock.Any(), gomock.Any(), txID).Return(pending(), nil)
		m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).Return(&model.Account{ID: accountID}, nil)
		m.accounts.EXPECT().TxApplyDelta(gomock.Any(), gomock.Any(), accountID, gomock.Any()).
			Return(decimal.NewFromInt(50000), nil)
		m.transactions.EXPECT().TxUpdateStatus(gomock.Any(), gomock.Any(), txID, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(apperr.ErrInvalidState)

		_, err := s.ApproveDeposit(ctx, txID, operatorID)
		assert.ErrorIs(t, err, apperr.ErrInvalidState)
	})
}

func TestService_TxSettlePurchase(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	itemID := uuid.New()

	t.Run("insufficient balance has no side effects", func(t *testing.T) {
		s, m := newMockedService(t)

		m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).
			Return(&model.Account{ID: accountID, Balance: decimal.NewFromInt(50000)}, nil)

		_, err := s.TxSettlePurchase(ctx, nil, accountID, itemID, decimal.NewFromInt(70000))
		assert.ErrorIs(t, err, apperr.ErrInsufficientBalance)
	})

	t.Run("debit and record", func(t *testing.T) {
		s, m := newMockedService(t)

		m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).
			Return(&model.Account{ID: accountID, Balance: decimal.NewFromInt(50000)}, nil)
		m.accounts.EXPECT().TxApplyDelta(gomock.Any(), gomock.Any(), accountID, decimal.NewFromInt(-30000)).
			Return(decimal.NewFromInt(20000), nil)
		m.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ interface{}, tr *model.Transaction) (*model.Transaction, error) {
				assert.Equal(t, model.TransactionKindPurchase, tr.Kind)
				assert.Equal(t, model.TransactionStatusCompleted, tr.Status)
				assert.Equal(t, itemID, tr.ItemID.UUID)
				return tr, nil
			})

		res, err := s.TxSettlePurchase(ctx, nil, accountID, itemID, decimal.NewFromInt(30000))
		require.NoError(t, err)
		assert.True(t, res.Balance.Equal(decimal.NewFromInt(20000)))
	})

	t.Run("invalid price touches nothing", func(t *testing.T) {
		s, _ := newMockedService(t)

		for i, price := range []decimal.Decimal{
			decimal.RequireFromString("0.005"),
			decimal.RequireFromString("30000.001"),
			decimal.New(1, 20000000),
			decimal.Zero,
		} {
			_, err := s.TxSettlePurchase(ctx, nil, accountID, itemID, price)
			assert.ErrorIs(t, err, apperr.ErrInvalidAmount, "price #%d", i)
		}
	})

	t.Run("storage failure", func(t *testing.T) {
		s, m := newMockedService(t)
		boom := errors.New("boom")

		m.accounts.EXPECT().TxLock(gomock.Any(), gomock.Any(), accountID).Return(nil, boom)

		_, err := s.SettlePurchase(ctx, accountID, itemID, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Revenue(t *testing.T) {
	s, m := newMockedService(t)

	m.transactions.EXPECT().PurchaseSummary(gomock.Any()).Return(decimal.NewFromInt(90000), 3, nil)
	m.accounts.EXPECT().Count(gomock.Any()).Return(4, nil)

	res, err := s.Revenue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, res.TotalAccounts)
	assert.Equal(t, 3, res.TotalPurchases)
	assert.Equal(t, "VND", res.Currency)
	assert.True(t, res.TotalRevenue.Equal(decimal.NewFromInt(90000)))
}
