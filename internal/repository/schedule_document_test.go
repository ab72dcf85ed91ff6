package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

func TestScheduleDocumentConversion(t *testing.T) {
	t.Run("round trip keeps all fields", func(t *testing.T) {
		now := time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC)
		sched := &model.ShipmentSchedule{
			ID:          1001,
			OrderID:     200,
			OrderLineID: 300,
			ProductID:   42,
			ASIID:       7,

			QtyOrdered:           decimal.RequireFromString("23"),
			QtyOrderedOverride:   decPtr("23"),
			QtyOrderedCalculated: decimal.RequireFromString("24.5"),
			QtyDelivered:         decimal.RequireFromString("1.25"),

			QtyToDeliverOverride:      decPtr("10.000"),
			CatchUomID:                9,
			QtyToDeliverCatchOverride: decPtr("9.73"),

			BestBeforePolicy: model.BestBeforePolicyExpiringFirst,

			Closed:    true,
			Processed: false,
			Active:    true,

			PartnerAddressOverride: "Musterstrasse 1",
			HeaderAggregationKey:   "bpartner=5#warehouse=35",

			CreatedAt: now,
			UpdatedAt: now.Add(time.Hour),
		}

		got, err := documentToSchedule(scheduleToDocument(sched))
		require.NoError(t, err)

		assert.Equal(t, sched.ID, got.ID)
		assert.Equal(t, sched.OrderID, got.OrderID)
		assert.Equal(t, sched.OrderLineID, got.OrderLineID)
		assert.Equal(t, sched.ProductID, got.ProductID)
		assert.Equal(t, sched.ASIID, got.ASIID)
		assert.True(t, got.QtyOrdered.Equal(sched.QtyOrdered))
		assert.True(t, got.QtyOrderedOverride.Equal(*sched.QtyOrderedOverride))
		assert.True(t, got.QtyOrderedCalculated.Equal(sched.QtyOrderedCalculated))
		assert.True(t, got.QtyDelivered.Equal(sched.QtyDelivered))
		assert.True(t, got.QtyToDeliverOverride.Equal(*sched.QtyToDeliverOverride))
		assert.Equal(t, sched.CatchUomID, got.CatchUomID)
		assert.True(t, got.QtyToDeliverCatchOverride.Equal(*sched.QtyToDeliverCatchOverride))
		assert.Equal(t, sched.BestBeforePolicy, got.BestBeforePolicy)
		assert.Equal(t, sched.Closed, got.Closed)
		assert.Equal(t, sched.Active, got.Active)
		assert.Equal(t, sched.PartnerAddressOverride, got.PartnerAddressOverride)
		assert.Equal(t, sched.HeaderAggregationKey, got.HeaderAggregationKey)
		assert.True(t, got.CreatedAt.Equal(sched.CreatedAt))
		assert.True(t, got.UpdatedAt.Equal(sched.UpdatedAt))
	})

	t.Run("nil overrides stay nil", func(t *testing.T) {
		sched := &model.ShipmentSchedule{ID: 1, ProductID: 42}

		doc := scheduleToDocument(sched)
		assert.Nil(t, doc.QtyOrderedOverride)
		assert.Nil(t, doc.QtyToDeliverOverride)
		assert.Nil(t, doc.QtyToDeliverCatchOverride)

		got, err := documentToSchedule(doc)
		require.NoError(t, err)
		assert.Nil(t, got.QtyOrderedOverride)
		assert.Nil(t, got.QtyToDeliverOverride)
		assert.Nil(t, got.QtyToDeliverCatchOverride)
	})

	t.Run("empty quantity strings default to zero", func(t *testing.T) {
		got, err := documentToSchedule(&scheduleDocument{ID: 1, ProductID: 42})
		require.NoError(t, err)

		assert.True(t, got.QtyOrdered.IsZero())
		assert.True(t, got.QtyDelivered.IsZero())
	})

	t.Run("malformed quantity fails with the field name", func(t *testing.T) {
		doc := &scheduleDocument{
			ID:                 1,
			ProductID:          42,
			QtyOrdered:         "12",
			QtyOrderedOverride: strPtr("not-a-number"),
		}

		_, err := documentToSchedule(doc)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "qty_ordered_override")
	})
}
