//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

func TestScheduleRepository_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewScheduleRepository(db)

	t.Run("save and get round trip", func(t *testing.T) {
		sched := &model.ShipmentSchedule{
			ID:                        101,
			OrderID:                   200,
			OrderLineID:               300,
			ProductID:                 42,
			QtyOrdered:                decimal.RequireFromString("23"),
			QtyOrderedOverride:        decPtr("23"),
			QtyOrderedCalculated:      decimal.RequireFromString("24"),
			QtyDelivered:              decimal.RequireFromString("1"),
			CatchUomID:                9,
			QtyToDeliverCatchOverride: decPtr("9.73"),
			Active:                    true,
		}

		require.NoError(t, repo.Save(ctx, sched))
		assert.False(t, sched.CreatedAt.IsZero())
		assert.False(t, sched.UpdatedAt.IsZero())

		got, err := repo.GetByID(ctx, 101)
		require.NoError(t, err)
		assert.Equal(t, sched.ProductID, got.ProductID)
		assert.True(t, got.QtyOrdered.Equal(sched.QtyOrdered))
		assert.True(t, got.QtyOrderedOverride.Equal(*sched.QtyOrderedOverride))
		assert.True(t, got.QtyToDeliverCatchOverride.Equal(*sched.QtyToDeliverCatchOverride))
		assert.True(t, got.HasCatchOverride())
	})

	t.Run("save is an upsert", func(t *testing.T) {
		sched := &model.ShipmentSchedule{ID: 102, ProductID: 42, Active: true}
		require.NoError(t, repo.Save(ctx, sched))

		sched.Closed = true
		require.NoError(t, repo.Save(ctx, sched))

		got, err := repo.GetByID(ctx, 102)
		require.NoError(t, err)
		assert.True(t, got.Closed)
	})

	t.Run("get by id not found", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		require.Error(t, err)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("get by ids leaves missing ids absent", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, &model.ShipmentSchedule{ID: 103, ProductID: 42}))
		require.NoError(t, repo.Save(ctx, &model.ShipmentSchedule{ID: 104, ProductID: 42}))

		result, err := repo.GetByIDs(ctx, []model.ShipmentScheduleID{103, 104, 99999})
		require.NoError(t, err)
		assert.Len(t, result, 2)
		assert.Contains(t, result, model.ShipmentScheduleID(103))
		assert.Contains(t, result, model.ShipmentScheduleID(104))
		assert.NotContains(t, result, model.ShipmentScheduleID(99999))
	})

	t.Run("get by ids with empty input", func(t *testing.T) {
		result, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, result)
	})
}

func TestScheduleRepository_BulkSetCatchUom_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewScheduleRepository(db)

	const productID = model.ProductID(77)
	seed := []*model.ShipmentSchedule{
		{ID: 201, ProductID: 77, Active: true, Processed: false, CatchUomID: 1},
		{ID: 202, ProductID: 77, Active: true, Processed: false, CatchUomID: 1},
		{ID: 203, ProductID: 77, Active: true, Processed: false, CatchUomID: 9}, // already on target
		{ID: 204, ProductID: 77, Active: false, Processed: false, CatchUomID: 1},
		{ID: 205, ProductID: 77, Active: true, Processed: true, CatchUomID: 1},
		{ID: 206, ProductID: 88, Active: true, Processed: false, CatchUomID: 1}, // other product
	}
	for _, sched := range seed {
		require.NoError(t, repo.Save(ctx, sched))
	}

	t.Run("updates only active unprocessed schedules of the product", func(t *testing.T) {
		count, err := repo.BulkSetCatchUom(ctx, productID, 9, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)

		got, err := repo.GetByID(ctx, 201)
		require.NoError(t, err)
		assert.Equal(t, model.UomID(9), got.CatchUomID)

		untouched, err := repo.GetByID(ctx, 204)
		require.NoError(t, err)
		assert.Equal(t, model.UomID(1), untouched.CatchUomID)
	})

	t.Run("excluded ids are skipped", func(t *testing.T) {
		count, err := repo.BulkSetCatchUom(ctx, productID, 5, []model.ShipmentScheduleID{201})
		require.NoError(t, err)
		assert.Equal(t, int64(2), count) // 202 and 203, but not the excluded 201

		excluded, err := repo.GetByID(ctx, 201)
		require.NoError(t, err)
		assert.Equal(t, model.UomID(9), excluded.CatchUomID)
	})
}

func TestScheduleRepository_GetByIDsOutOfTrx_Integration(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db := setupTestDBFromSharedContainer(t)
	defer func() {
		require.NoError(t, db.Close(ctx))
	}()

	repo := NewScheduleRepository(db)
	runner := NewMongoTrxRunner(db.Client)

	committed := &model.ShipmentSchedule{ID: 301, ProductID: 42}
	require.NoError(t, repo.Save(ctx, committed))

	// Inside a transaction, the out-of-trx read must see committed state, not
	// the transaction's own uncommitted writes.
	err := runner.RunInTransaction(ctx, func(trxCtx context.Context) error {
		committed.Closed = true
		if err := repo.Save(trxCtx, committed); err != nil {
			return err
		}

		inTrx, err := repo.GetByIDs(trxCtx, []model.ShipmentScheduleID{301})
		require.NoError(t, err)
		assert.True(t, inTrx[301].Closed)

		outOfTrx, err := repo.GetByIDsOutOfTrx(trxCtx, []model.ShipmentScheduleID{301})
		require.NoError(t, err)
		assert.False(t, outOfTrx[301].Closed)
		return nil
	})
	require.NoError(t, err)
}
