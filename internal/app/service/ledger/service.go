// Package ledger owns account balances: every balance change is paired with a
// COMPLETED transaction inside one unit of work, so a balance always equals the sum
// of completed deposits minus completed purchases.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"time"
)

// Notifier receives operator events once the change that caused them is committed
type Notifier interface {
	Notify(ctx context.Context, n *model.Notification)
}

type Service struct {
	txm          storage.TxManager
	accounts     storage.AccountRepository
	transactions storage.TransactionRepository
	notifier     Notifier

	minDeposit decimal.Decimal
	currency   string
}

type Option func(s *Service)

// WithNotifier sets the operator notifier; without it events are only logged
func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		s.notifier = n
	}
}

// WithMinDeposit sets the smallest accepted deposit
func WithMinDeposit(v decimal.Decimal) Option {
	return func(s *Service) {
		s.minDeposit = v
	}
}

func WithCurrency(code string) Option {
	return func(s *Service) {
		s.currency = code
	}
}

func (s *Service) LoggerComponent() string {
	return "Ledger.Service"
}

func New(
	txm storage.TxManager,
	accounts storage.AccountRepository,
	transactions storage.TransactionRepository,
	opts ...Option,
) (*Service, error) {
	s := &Service{
		txm:          txm,
		accounts:     accounts,
		transactions: transactions,
		minDeposit:   decimal.NewFromInt(10000),
		currency:     "VND",
	}
	for _, opt := range opts {
		opt(s)
	}
	if !s.minDeposit.IsPositive() {
		return nil, fmt.Errorf("min deposit must be positive, got %s", s.minDeposit)
	}
	return s, nil
}

// ValidateAmount checks a deposit amount against the ledger policy
func (s *Service) ValidateAmount(amount decimal.Decimal) error {
	if err := model.CheckAmount(amount); err != nil {
		return err
	}
	if amount.LessThan(s.minDeposit) {
		return fmt.Errorf("%w: minimum deposit is %s %s", apperr.ErrInvalidAmount, s.minDeposit, s.currency)
	}
	return nil
}

// RequestDeposit records a PENDING deposit for the account without touching its balance
func (s *Service) RequestDeposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal) (*model.Transaction, error) {
	l := logger.Get(ctx, s).With().
		Str("method", "RequestDeposit").
		Str("account_id", accountID.String()).
		Logger()

	// amount is only rendered once it is known to fit
	if err := s.ValidateAmount(amount); err != nil {
		l.Debug().Err(err).Msg("Validation error")
		return nil, err
	}
	l = l.With().Stringer("amount", amount).Logger()

	account, err := s.accounts.Read(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account read: %w", err)
	}

	var res *model.Transaction
	err = s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		m, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
			AccountID:   account.ID,
			Kind:        model.TransactionKindDeposit,
			Status:      model.TransactionStatusPending,
			Amount:      amount,
			InitiatedBy: account.ID,
		})
		if err != nil {
			return fmt.Errorf("transaction create: %w", err)
		}
		res = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info().Str("transaction_id", res.ID.String()).Msg("Deposit requested")

	s.notify(ctx, &model.Notification{
		Kind:          model.NotificationDepositRequested,
		AccountID:     account.ID,
		AccountName:   account.Name,
		AccountEmail:  account.Email,
		TransactionID: res.ID,
		Amount:        amount,
		OccurredAt:    res.CreatedAt,
	})

	return res, nil
}

// ApproveDeposit completes a PENDING deposit and credits the owning account
func (s *Service) ApproveDeposit(ctx context.Context, txID uuid.UUID, operatorID uuid.UUID) (*model.Settlement, error) {
	l := logger.Get(ctx, s).With().
		Str("method", "ApproveDeposit").
		Str("transaction_id", txID.String()).
		Str("operator_id", operatorID.String()).
		Logger()

	res := &model.Settlement{}
	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		m, err := s.transactions.TxLock(ctx, tx, txID)
		if err != nil {
			return err
		}
		if m.Status != model.TransactionStatusPending {
			return fmt.Errorf("%w: transaction is %s", apperr.ErrInvalidState, m.Status)
		}
		if m.Kind != model.TransactionKindDeposit {
			return fmt.Errorf("%w: transaction is %s", apperr.ErrInvalidKind, m.Kind)
		}

		if m.AccountID == uuid.Nil {
			return fmt.Errorf("%w: transaction %s has no account", apperr.ErrOrphanTransaction, m.ID)
		}
		if _, err := s.accounts.TxLock(ctx, tx, m.AccountID); err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return fmt.Errorf("%w: account %s of transaction %s is missing", apperr.ErrOrphanTransaction, m.AccountID, m.ID)
			}
			return fmt.Errorf("account lock: %w", err)
		}

		balance, err := s.accounts.TxApplyDelta(ctx, tx, m.AccountID, m.Amount)
		if err != nil {
			return fmt.Errorf("balance credit: %w", err)
		}

		operator := uuid.NullUUID{UUID: operatorID, Valid: true}
		err = s.transactions.TxUpdateStatus(ctx, tx, m.ID, model.TransactionStatusPending, model.TransactionStatusCompleted, operator)
		if err != nil {
			return err
		}

		now := time.Now()
		m.Status = model.TransactionStatusCompleted
		m.ApprovedBy = operator
		m.SettledAt = &now

		res.Transaction = m
		res.Balance = balance
		res.Message = fmt.Sprintf("Deposit of %s %s approved", m.Amount.StringFixed(2), s.currency)
		return nil
	})
	if err != nil {
		if errors.Is(err, apperr.ErrOrphanTransaction) {
			s.alertOrphan(ctx, txID, err)
		}
		l.Debug().Err(err).Msg("Approval failed")
		return nil, err
	}

	l.Info().
		Str("account_id", res.Transaction.AccountID.String()).
		Stringer("balance", res.Balance).
		Msg("Deposit approved")

	return res, nil
}

// AdminDeposit credits the account directly with a COMPLETED deposit made by the operator
func (s *Service) AdminDeposit(ctx context.Context, accountID uuid.UUID, amount decimal.Decimal, operatorID uuid.UUID) (*model.Settlement, error) {
	l := logger.Get(ctx, s).With().
		Str("method", "AdminDeposit").
		Str("account_id", accountID.String()).
		Str("operator_id", operatorID.String()).
		Logger()

	if err := s.ValidateAmount(amount); err != nil {
		l.Debug().Err(err).Msg("Validation error")
		return nil, err
	}
	l = l.With().Stringer("amount", amount).Logger()

	res := &model.Settlement{}
	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := s.accounts.TxLock(ctx, tx, accountID); err != nil {
			return fmt.Errorf("account lock: %w", err)
		}

		balance, err := s.accounts.TxApplyDelta(ctx, tx, accountID, amount)
		if err != nil {
			return fmt.Errorf("balance credit: %w", err)
		}

		m, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
			AccountID:   accountID,
			Kind:        model.TransactionKindDeposit,
			Status:      model.TransactionStatusCompleted,
			Amount:      amount,
			InitiatedBy: operatorID,
			ApprovedBy:  uuid.NullUUID{UUID: operatorID, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("transaction create: %w", err)
		}

		res.Transaction = m
		res.Balance = balance
		res.Message = fmt.Sprintf("Deposited %s %s", amount.StringFixed(2), s.currency)
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Info().Stringer("balance", res.Balance).Msg("Admin deposit completed")

	return res, nil
}

// SettlePurchase debits the account for an item in its own unit of work
func (s *Service) SettlePurchase(ctx context.Context, accountID uuid.UUID, itemID uuid.UUID, price decimal.Decimal) (*model.Settlement, error) {
	var res *model.Settlement
	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		var err error
		res, err = s.TxSettlePurchase(ctx, tx, accountID, itemID, price)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// TxSettlePurchase debits the account and records a COMPLETED purchase within the caller's tx.
// Nothing is written when the balance does not cover the price.
func (s *Service) TxSettlePurchase(
	ctx context.Context,
	tx *sql.Tx,
	accountID uuid.UUID,
	itemID uuid.UUID,
	price decimal.Decimal,
) (*model.Settlement, error) {
	if err := model.CheckAmount(price); err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}

	l := logger.Get(ctx, s).With().
		Str("method", "TxSettlePurchase").
		Str("account_id", accountID.String()).
		Str("item_id", itemID.String()).
		Stringer("price", price).
		Logger()

	account, err := s.accounts.TxLock(ctx, tx, accountID)
	if err != nil {
		return nil, fmt.Errorf("account lock: %w", err)
	}
	if account.Balance.LessThan(price) {
		l.Debug().Stringer("balance", account.Balance).Msg("Insufficient balance")
		return nil, apperr.ErrInsufficientBalance
	}

	balance, err := s.accounts.TxApplyDelta(ctx, tx, accountID, price.Neg())
	if err != nil {
		return nil, fmt.Errorf("balance debit: %w", err)
	}

	m, err := s.transactions.TxCreate(ctx, tx, &model.Transaction{
		AccountID:   accountID,
		Kind:        model.TransactionKindPurchase,
		Status:      model.TransactionStatusCompleted,
		Amount:      price,
		ItemID:      uuid.NullUUID{UUID: itemID, Valid: true},
		InitiatedBy: accountID,
	})
	if err != nil {
		return nil, fmt.Errorf("transaction create: %w", err)
	}

	l.Debug().Str("transaction_id", m.ID.String()).Stringer("balance", balance).Msg("Purchase settled")

	return &model.Settlement{
		Transaction: m,
		Balance:     balance,
		Message:     "Purchase completed",
	}, nil
}

// ListPendingDeposits returns the review queue, oldest first
func (s *Service) ListPendingDeposits(ctx context.Context) ([]*model.PendingDeposit, error) {
	return s.transactions.PendingDeposits(ctx)
}

func (s *Service) Transaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	return s.transactions.Read(ctx, id)
}

func (s *Service) Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error) {
	return s.accounts.Balance(ctx, accountID)
}

// History of the account, newest first
func (s *Service) History(ctx context.Context, accountID uuid.UUID) ([]*model.Transaction, error) {
	if _, err := s.accounts.Read(ctx, accountID); err != nil {
		return nil, err
	}
	return s.transactions.AllByAccountID(ctx, accountID)
}

// Revenue summarizes completed purchases
func (s *Service) Revenue(ctx context.Context) (*model.RevenueSummary, error) {
	total, count, err := s.transactions.PurchaseSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("purchase summary: %w", err)
	}

	accounts, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("account count: %w", err)
	}

	return &model.RevenueSummary{
		TotalAccounts:  accounts,
		TotalRevenue:   total,
		TotalPurchases: count,
		Currency:       s.currency,
	}, nil
}

func (s *Service) notify(ctx context.Context, n *model.Notification) {
	if s.notifier == nil {
		l := logger.Get(ctx, s)
		l.Debug().Str("kind", string(n.Kind)).Msg("No notifier configured")
		return
	}
	s.notifier.Notify(ctx, n)
}

func (s *Service) alertOrphan(ctx context.Context, txID uuid.UUID, err error) {
	logger.Get(ctx, s).Alert(err).Str("transaction_id", txID.String()).Msg("Orphan transaction")

	n := &model.Notification{
		Kind:          model.NotificationOrphanTransaction,
		TransactionID: txID,
		Detail:        err.Error(),
		OccurredAt:    time.Now(),
	}
	if m, readErr := s.transactions.Read(ctx, txID); readErr == nil {
		n.AccountID = m.AccountID
		n.Amount = m.Amount
	}
	s.notify(ctx, n)
}
