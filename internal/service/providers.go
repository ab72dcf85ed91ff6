// Package service implements the shipment schedule domain operations:
// quantity resolution, consolidation eligibility, delivery grouping,
// lifecycle control and deferred recomputation.
package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// EffectiveValuesProvider resolves the values that are effective for a
// schedule after override-over-calculated precedence: who receives the
// shipment, from where, when, and which ordered quantity applies.
type EffectiveValuesProvider interface {
	PartnerID(ctx context.Context, sched *model.ShipmentSchedule) (model.PartnerID, error)
	FullAddress(ctx context.Context, sched *model.ShipmentSchedule) (string, error)
	WarehouseID(ctx context.Context, sched *model.ShipmentSchedule) (model.WarehouseID, error)
	PreparationDate(ctx context.Context, sched *model.ShipmentSchedule) (time.Time, error)

	// ComputeQtyOrdered resolves the effective ordered quantity from the
	// schedule's override/calculated/delivered values.
	ComputeQtyOrdered(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error)

	// QtyToDeliver resolves the deliverable amount in the product's stock unit.
	QtyToDeliver(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error)
}

// OrderInfoProvider exposes the order attributes this core needs.
type OrderInfoProvider interface {
	IsPrepay(ctx context.Context, orderID model.OrderID) (bool, error)
	FreightCostRule(ctx context.Context, orderID model.OrderID) (model.FreightCostRule, error)
	InvoicingBasis(ctx context.Context, orderLineID model.OrderLineID) (model.InvoicingBasis, error)
	ShipperID(ctx context.Context, orderID model.OrderID) (model.ShipperID, error)
}

// PartnerPolicyProvider exposes already-resolved business partner policies.
type PartnerPolicyProvider interface {
	// AllowsConsolidate reports whether the partner accepts consolidated
	// shipments for the given transaction direction.
	AllowsConsolidate(ctx context.Context, partnerID model.PartnerID, direction model.TransactionDirection) (bool, error)
	BestBeforePolicy(ctx context.Context, partnerID model.PartnerID) (model.BestBeforePolicy, error)
}

// ProductInfoProvider exposes product master data.
type ProductInfoProvider interface {
	StockUomID(ctx context.Context, productID model.ProductID) (model.UomID, error)
	// CatchUomID returns the product's catch unit, or zero when the product
	// has none.
	CatchUomID(ctx context.Context, productID model.ProductID) (model.UomID, error)
}

// LockManager exposes the advisory lock state of schedule records. Batch
// mutations must exclude every id it reports.
type LockManager interface {
	LockedScheduleIDs(ctx context.Context, productID model.ProductID) ([]model.ShipmentScheduleID, error)
}

// TrxRunner runs fn inside a transaction, joining one already carried by ctx
// or opening its own and committing/rolling back around fn.
type TrxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ScheduleRepository is the persistence boundary for shipment schedules.
type ScheduleRepository interface {
	GetByID(ctx context.Context, id model.ShipmentScheduleID) (*model.ShipmentSchedule, error)
	GetByIDs(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error)
	// GetByIDsOutOfTrx reads outside any transaction carried by ctx.
	GetByIDsOutOfTrx(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error)
	Save(ctx context.Context, sched *model.ShipmentSchedule) error
	// BulkSetCatchUom sets the catch unit on every active, unprocessed
	// schedule of the product whose catch unit differs, skipping excludeIDs.
	// It returns the number of updated records.
	BulkSetCatchUom(ctx context.Context, productID model.ProductID, catchUomID model.UomID, excludeIDs []model.ShipmentScheduleID) (int64, error)
}

// MissingSchedsRecomputer creates shipment schedules for order lines that
// became deliverable while creation was postponed.
type MissingSchedsRecomputer interface {
	RecomputeMissing(ctx context.Context) error
}

// CancelFunc cancels a scheduled task. It reports whether the cancellation
// prevented the task from running.
type CancelFunc func() bool

// TaskScheduler runs fn once after delay. The host application owns the
// implementation; NewTimerScheduler provides a plain timer-backed default.
type TaskScheduler interface {
	Schedule(name string, delay time.Duration, fn func()) CancelFunc
}
