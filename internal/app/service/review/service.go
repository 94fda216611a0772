package review

import (
	"context"
	"errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
)

// Ledger is the part of the ledger service the review queue drives
type Ledger interface {
	ListPendingDeposits(ctx context.Context) ([]*model.PendingDeposit, error)
	ApproveDeposit(ctx context.Context, txID uuid.UUID, operatorID uuid.UUID) (*model.Settlement, error)
	Transaction(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
}

type Service struct {
	ledger Ledger
}

func (s *Service) LoggerComponent() string {
	return "Review.Service"
}

func New(ledger Ledger) (*Service, error) {
	return &Service{ledger: ledger}, nil
}

// List pending deposits, oldest first
func (s *Service) List(ctx context.Context) ([]*model.PendingDeposit, error) {
	return s.ledger.ListPendingDeposits(ctx)
}

// Act approves the deposit. Approving a deposit that is already completed
// answers with the current balance instead of a conflict.
func (s *Service) Act(ctx context.Context, txID uuid.UUID, operatorID uuid.UUID) (*model.Settlement, error) {
	l := logger.Get(ctx, s).With().
		Str("transaction_id", txID.String()).
		Str("operator_id", operatorID.String()).
		Logger()

	res, err := s.ledger.ApproveDeposit(ctx, txID, operatorID)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, apperr.ErrInvalidState) {
		return nil, err
	}

	m, readErr := s.ledger.Transaction(ctx, txID)
	if readErr != nil {
		l.Debug().Err(readErr).Msg("Re-read failed")
		return nil, err
	}
	if m.Kind != model.TransactionKindDeposit || m.Status != model.TransactionStatusCompleted {
		return nil, err
	}

	balance, balErr := s.ledger.Balance(ctx, m.AccountID)
	if balErr != nil {
		l.Debug().Err(balErr).Msg("Balance read failed")
		return nil, err
	}

	l.Info().Msg("Deposit already approved")

	return &model.Settlement{
		Transaction:    m,
		Balance:        balance,
		Message:        "Deposit already approved",
		AlreadySettled: true,
	}, nil
}
