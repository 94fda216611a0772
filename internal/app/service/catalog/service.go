package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/logger"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	"strings"
)

// Settler debits a buyer within the caller's unit of work
type Settler interface {
	TxSettlePurchase(ctx context.Context, tx *sql.Tx, accountID uuid.UUID, itemID uuid.UUID, price decimal.Decimal) (*model.Settlement, error)
}

type Service struct {
	txm     storage.TxManager
	items   storage.ItemRepository
	settler Settler
}

func (s *Service) LoggerComponent() string {
	return "Catalog.Service"
}

func New(txm storage.TxManager, items storage.ItemRepository, settler Settler) (*Service, error) {
	return &Service{
		txm:     txm,
		items:   items,
		settler: settler,
	}, nil
}

// validate normalizes the editable fields of an item listing
func validate(m *model.Item) error {
	m.Name = strings.TrimSpace(m.Name)
	if m.Name == "" {
		return fmt.Errorf("%w: name is empty", apperr.ErrInvalidInput)
	}
	if err := model.CheckAmount(m.Price); err != nil {
		return fmt.Errorf("price: %w", err)
	}
	if m.Delivery == "" {
		return fmt.Errorf("%w: delivery is empty", apperr.ErrInvalidInput)
	}
	m.Category = strings.ToLower(strings.TrimSpace(m.Category))
	return nil
}

// Create a new item for sale
func (s *Service) Create(ctx context.Context, m *model.Item) (*model.Item, error) {
	if err := validate(m); err != nil {
		return nil, err
	}

	res, err := s.items.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("item create: %w", err)
	}

	l := logger.Get(ctx, s)
	l.Info().Str("item_id", res.ID.String()).Msg("Item listed")

	return res, nil
}

// Update rewrites the listing of an unsold item
func (s *Service) Update(ctx context.Context, id uuid.UUID, in *model.Item) (*model.Item, error) {
	l := logger.Get(ctx, s).With().
		Str("method", "Update").
		Str("item_id", id.String()).
		Logger()

	if err := validate(in); err != nil {
		l.Debug().Err(err).Msg("Validation error")
		return nil, err
	}

	var res *model.Item
	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		item, err := s.items.TxLock(ctx, tx, id)
		if err != nil {
			return err
		}
		if item.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}

		item.Name = in.Name
		item.Description = in.Description
		item.Price = in.Price
		item.Category = in.Category
		item.Delivery = in.Delivery

		if err := s.items.TxUpdate(ctx, tx, item); err != nil {
			return err
		}
		res = item
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Msg("Update failed")
		return nil, err
	}

	l.Info().Msg("Item updated")

	return res, nil
}

// Delete removes an unsold item from the catalog
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	l := logger.Get(ctx, s).With().
		Str("method", "Delete").
		Str("item_id", id.String()).
		Logger()

	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		item, err := s.items.TxLock(ctx, tx, id)
		if err != nil {
			return err
		}
		if item.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}
		return s.items.TxDelete(ctx, tx, id)
	})
	if err != nil {
		l.Debug().Err(err).Msg("Delete failed")
		return err
	}

	l.Info().Msg("Item deleted")

	return nil
}

// Available items, newest first. An empty category lists them all.
func (s *Service) Available(ctx context.Context, category string) ([]*model.Item, error) {
	return s.items.AllAvailable(ctx, strings.ToLower(strings.TrimSpace(category)))
}

// Read the public view of an item
func (s *Service) Read(ctx context.Context, id uuid.UUID) (*model.Item, error) {
	return s.items.Read(ctx, id)
}

// AdminRead returns an item with the fields hidden from buyers
func (s *Service) AdminRead(ctx context.Context, id uuid.UUID) (*model.ItemDetails, error) {
	m, err := s.items.Read(ctx, id)
	if err != nil {
		return nil, err
	}

	return &model.ItemDetails{
		Item:      m,
		Delivery:  m.Delivery,
		OwnerID:   m.OwnerID,
		CreatedBy: m.CreatedBy,
	}, nil
}

// Buy debits the buyer and hands over the item in one unit of work
func (s *Service) Buy(ctx context.Context, buyerID uuid.UUID, itemID uuid.UUID) (*model.Purchase, error) {
	l := logger.Get(ctx, s).With().
		Str("method", "Buy").
		Str("account_id", buyerID.String()).
		Str("item_id", itemID.String()).
		Logger()

	res := &model.Purchase{}
	err := s.txm.InTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		item, err := s.items.TxLock(ctx, tx, itemID)
		if err != nil {
			return err
		}
		if item.Status != model.ItemStatusAvailable {
			return apperr.ErrItemUnavailable
		}

		settlement, err := s.settler.TxSettlePurchase(ctx, tx, buyerID, item.ID, item.Price)
		if err != nil {
			return err
		}

		if err := s.items.TxMarkSold(ctx, tx, item.ID, buyerID); err != nil {
			return err
		}

		item.Status = model.ItemStatusSold
		item.OwnerID = uuid.NullUUID{UUID: buyerID, Valid: true}

		res.Item = item
		res.Delivery = item.Delivery
		res.Balance = settlement.Balance
		res.ReceiptID = settlement.Transaction.ID
		res.Message = fmt.Sprintf("Bought %s", item.Name)
		return nil
	})
	if err != nil {
		l.Debug().Err(err).Msg("Purchase failed")
		return nil, err
	}

	l.Info().Str("transaction_id", res.ReceiptID.String()).Msg("Item sold")

	return res, nil
}
