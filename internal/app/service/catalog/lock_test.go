package catalog

import (
	"context"
	"database/sql"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shopledger/internal/app/apperr"
	"shopledger/internal/app/model"
	"shopledger/internal/app/storage"
	storagemock "shopledger/internal/app/storage/mock"
	"testing"
)

func newMockedService(t *testing.T) (*Service, *storagemock.MockItemRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	txm := storagemock.NewMockTxManager(ctrl)
	items := storagemock.NewMockItemRepository(ctrl)

	txm.EXPECT().InTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn storage.TxFunc) error {
			return fn(ctx, nil)
		}).AnyTimes()

	s, err := New(txm, items, nil)
	require.NoError(t, err)
	return s, items
}

func TestService_UpdateLocksItem(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	in := func() *model.Item {
		return &model.Item{Name: "renamed", Price: decimal.NewFromInt(2000), Delivery: "CODE-2"}
	}

	t.Run("locked then rewritten", func(t *testing.T) {
		s, items := newMockedService(t)

		gomock.InOrder(
			items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).
				Return(&model.Item{ID: id, Name: "old", Status: model.ItemStatusAvailable}, nil),
			items.EXPECT().TxUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Item) error {
					assert.Equal(t, id, m.ID)
					assert.Equal(t, "renamed", m.Name)
					assert.Equal(t, "CODE-2", m.Delivery)
					return nil
				}),
		)

		res, err := s.Update(ctx, id, in())
		require.NoError(t, err)
		assert.Equal(t, model.ItemStatusAvailable, res.Status)
	})

	t.Run("sold under lock", func(t *testing.T) {
		s, items := newMockedService(t)

		items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).
			Return(&model.Item{ID: id, Status: model.ItemStatusSold}, nil)

		_, err := s.Update(ctx, id, in())
		assert.ErrorIs(t, err, apperr.ErrItemUnavailable)
	})

	t.Run("sold between lock and write", func(t *testing.T) {
		s, items := newMockedService(t)

		gomock.InOrder(
			items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).
				Return(&model.Item{ID: id, Status: model.ItemStatusAvailable}, nil),
			items.EXPECT().TxUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperr.ErrItemUnavailable),
		)

		_, err := s.Update(ctx, id, in())
		assert.ErrorIs(t, err, apperr.ErrItemUnavailable)
	})
}

func TestService_DeleteLocksItem(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()

	t.Run("locked then removed", func(t *testing.T) {
		s, items := newMockedService(t)

		gomock.InOrder(
			items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).
				Return(&model.Item{ID: id, Status: model.ItemStatusAvailable}, nil),
			items.EXPECT().TxDelete(gomock.Any(), gomock.Any(), id).Return(nil),
		)

		assert.NoError(t, s.Delete(ctx, id))
	})

	t.Run("sold under lock", func(t *testing.T) {
		s, items := newMockedService(t)

		items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).
			Return(&model.Item{ID: id, Status: model.ItemStatusSold}, nil)

		assert.ErrorIs(t, s.Delete(ctx, id), apperr.ErrItemUnavailable)
	})

	t.Run("unknown item", func(t *testing.T) {
		s, items := newMockedService(t)

		items.EXPECT().TxLock(gomock.Any(), gomock.Any(), id).Return(nil, apperr.ErrNotFound)

		assert.ErrorIs(t, s.Delete(ctx, id), apperr.ErrNotFound)
	})
}
