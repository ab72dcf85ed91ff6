package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
	"github.com/guttosm/shipment-schedule-service/internal/metrics"
)

// LifecycleController owns the close/open/bulk-edit operations on shipment
// schedules together with a handful of derived-field updates.
type LifecycleController interface {
	// Close marks the schedule closed and persists it. Quantity override and
	// calculated fields are left untouched.
	Close(ctx context.Context, sched *model.ShipmentSchedule) error

	// Open reopens a closed schedule: clears the flag, restores the
	// effective ordered quantity from override/calculated precedence and
	// persists. Calling it on a schedule that is not closed is a contract
	// violation; it fails with ErrInvalidState before any mutation.
	Open(ctx context.Context, sched *model.ShipmentSchedule) error

	// ApplyUserChanges applies a batch of partial user edits in one
	// transaction. Ids without a record are logged and skipped; any
	// persistence failure rolls back the whole batch.
	ApplyUserChanges(ctx context.Context, changes model.UserChangeRequestsList) error

	// UpdateHeaderAggregationKey recomputes the derived aggregation key from
	// the schedule's effective values. In-memory only.
	UpdateHeaderAggregationKey(ctx context.Context, sched *model.ShipmentSchedule) error

	// UpdatePartnerAddressOverrideIfNotYetSet backfills the partner address
	// override from the effective full address. A value already set is
	// assumed to be intended by the user and is kept. In-memory only.
	UpdatePartnerAddressOverrideIfNotYetSet(ctx context.Context, sched *model.ShipmentSchedule) error

	// BestBeforePolicy returns the schedule's own policy when set, falling
	// back to the effective partner's policy.
	BestBeforePolicy(ctx context.Context, id model.ShipmentScheduleID) (model.BestBeforePolicy, error)

	GetByID(ctx context.Context, id model.ShipmentScheduleID) (*model.ShipmentSchedule, error)
	GetByIDsOutOfTrx(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error)

	PartnerID(ctx context.Context, sched *model.ShipmentSchedule) (model.PartnerID, error)
	WarehouseID(ctx context.Context, sched *model.ShipmentSchedule) (model.WarehouseID, error)
	PreparationDate(ctx context.Context, sched *model.ShipmentSchedule) (time.Time, error)
}

// LifecycleControllerImpl implements LifecycleController.
type LifecycleControllerImpl struct {
	schedules  ScheduleRepository
	quantities QuantityResolver
	effective  EffectiveValuesProvider
	partners   PartnerPolicyProvider
	products   ProductInfoProvider
	trx        TrxRunner
	log        zerolog.Logger
}

// NewLifecycleController creates a new lifecycle controller.
func NewLifecycleController(
	schedules ScheduleRepository,
	quantities QuantityResolver,
	effective EffectiveValuesProvider,
	partners PartnerPolicyProvider,
	products ProductInfoProvider,
	trx TrxRunner,
	log zerolog.Logger,
) *LifecycleControllerImpl {
	return &LifecycleControllerImpl{
		schedules:  schedules,
		quantities: quantities,
		effective:  effective,
		partners:   partners,
		products:   products,
		trx:        trx,
		log:        log.With().Str("component", "lifecycle_controller").Logger(),
	}
}

func (c *LifecycleControllerImpl) Close(ctx context.Context, sched *model.ShipmentSchedule) error {
	sched.Closed = true

	if err := c.schedules.Save(ctx, sched); err != nil {
		return fmt.Errorf("save schedule %d on close: %w", sched.ID, err)
	}

	metrics.RecordScheduleClosed()
	return nil
}

func (c *LifecycleControllerImpl) Open(ctx context.Context, sched *model.ShipmentSchedule) error {
	if !sched.Closed {
		return fmt.Errorf("schedule %d is not closed: %w", sched.ID, model.ErrInvalidState)
	}

	sched.Closed = false

	// Override/calculated values may have drifted while the schedule was
	// closed; restore the effective quantity from precedence.
	if _, err := c.quantities.UpdateQtyOrdered(ctx, sched); err != nil {
		return err
	}

	if err := c.schedules.Save(ctx, sched); err != nil {
		return fmt.Errorf("save schedule %d on open: %w", sched.ID, err)
	}

	metrics.RecordScheduleOpened()
	return nil
}

func (c *LifecycleControllerImpl) ApplyUserChanges(ctx context.Context, changes model.UserChangeRequestsList) error {
	err := c.trx.RunInTransaction(ctx, func(ctx context.Context) error {
		return c.applyUserChangesInTrx(ctx, changes)
	})
	if err != nil {
		metrics.RecordUserChangeBatch("error")
		return err
	}

	metrics.RecordUserChangeBatch("ok")
	return nil
}

func (c *LifecycleControllerImpl) applyUserChangesInTrx(ctx context.Context, changes model.UserChangeRequestsList) error {
	batchLog := c.log.With().Str("batch_id", uuid.NewString()).Logger()

	ids := changes.ScheduleIDs()
	records, err := c.schedules.GetByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("load schedules for user changes: %w", err)
	}

	for _, id := range ids {
		change, _ := changes.ByScheduleID(id)

		record, ok := records[id]
		if !ok {
			// Stale id, e.g. the schedule was voided between the user's read
			// and this write. The rest of the batch still applies.
			batchLog.Warn().
				Int("schedule_id", int(id)).
				Msg("no record found, skipping user changes for this schedule")
			metrics.RecordUserChangeSkipped()
			continue
		}

		c.applyUserChange(ctx, record, change, batchLog)

		if err := c.schedules.Save(ctx, record); err != nil {
			return fmt.Errorf("save schedule %d with user changes: %w", id, err)
		}
	}

	return nil
}

// applyUserChange copies the fields present in the request onto the record.
// A nil field means "leave unchanged"; overrides are never cleared here.
func (c *LifecycleControllerImpl) applyUserChange(
	ctx context.Context,
	record *model.ShipmentSchedule,
	change model.UserChangeRequest,
	batchLog zerolog.Logger,
) {
	if change.QtyToDeliverStockOverride != nil {
		c.warnOnUomMismatch(ctx, record, batchLog)
		record.QtyToDeliverOverride = change.QtyToDeliverStockOverride
	}

	if change.QtyToDeliverCatchOverride != nil {
		if !record.CatchUomID.IsSet() {
			// Accepted, but inert until a catch unit is assigned.
			batchLog.Warn().
				Int("schedule_id", int(record.ID)).
				Msg("catch quantity override applied to schedule without catch uom")
		}
		record.QtyToDeliverCatchOverride = change.QtyToDeliverCatchOverride
	}

	if change.ASIID != nil {
		record.ASIID = *change.ASIID
	}
}

// warnOnUomMismatch flags stock overrides whose product has no resolvable
// stock unit. The override is still applied; rejecting it would refuse user
// edits over a reference-data gap.
func (c *LifecycleControllerImpl) warnOnUomMismatch(ctx context.Context, record *model.ShipmentSchedule, batchLog zerolog.Logger) {
	if _, err := c.products.StockUomID(ctx, record.ProductID); err != nil {
		batchLog.Warn().
			Int("schedule_id", int(record.ID)).
			Int("product_id", int(record.ProductID)).
			Err(err).
			Msg("stock uom of product could not be resolved for override consistency check")
	}
}

func (c *LifecycleControllerImpl) UpdateHeaderAggregationKey(ctx context.Context, sched *model.ShipmentSchedule) error {
	partnerID, err := c.effective.PartnerID(ctx, sched)
	if err != nil {
		return fmt.Errorf("effective partner for aggregation key of schedule %d: %w", sched.ID, err)
	}
	warehouseID, err := c.effective.WarehouseID(ctx, sched)
	if err != nil {
		return fmt.Errorf("effective warehouse for aggregation key of schedule %d: %w", sched.ID, err)
	}
	address, err := c.effective.FullAddress(ctx, sched)
	if err != nil {
		return fmt.Errorf("effective address for aggregation key of schedule %d: %w", sched.ID, err)
	}
	prepDate, err := c.effective.PreparationDate(ctx, sched)
	if err != nil {
		return fmt.Errorf("preparation date for aggregation key of schedule %d: %w", sched.ID, err)
	}

	sched.HeaderAggregationKey = buildHeaderAggregationKey(partnerID, warehouseID, address, prepDate)
	return nil
}

func buildHeaderAggregationKey(
	partnerID model.PartnerID,
	warehouseID model.WarehouseID,
	address string,
	prepDate time.Time,
) string {
	parts := []string{
		fmt.Sprintf("bpartner=%d", partnerID),
		fmt.Sprintf("warehouse=%d", warehouseID),
		"address=" + address,
		"preparationDate=" + prepDate.Format(time.DateOnly),
	}
	return strings.Join(parts, "#")
}

func (c *LifecycleControllerImpl) UpdatePartnerAddressOverrideIfNotYetSet(ctx context.Context, sched *model.ShipmentSchedule) error {
	if strings.TrimSpace(sched.PartnerAddressOverride) != "" {
		return nil
	}

	address, err := c.effective.FullAddress(ctx, sched)
	if err != nil {
		return fmt.Errorf("effective address of schedule %d: %w", sched.ID, err)
	}

	sched.PartnerAddressOverride = address
	return nil
}

func (c *LifecycleControllerImpl) BestBeforePolicy(ctx context.Context, id model.ShipmentScheduleID) (model.BestBeforePolicy, error) {
	sched, err := c.schedules.GetByID(ctx, id)
	if err != nil {
		return model.BestBeforePolicyNone, err
	}

	if sched.BestBeforePolicy != model.BestBeforePolicyNone {
		return sched.BestBeforePolicy, nil
	}

	partnerID, err := c.effective.PartnerID(ctx, sched)
	if err != nil {
		return model.BestBeforePolicyNone, fmt.Errorf("effective partner of schedule %d: %w", id, err)
	}
	return c.partners.BestBeforePolicy(ctx, partnerID)
}

func (c *LifecycleControllerImpl) GetByID(ctx context.Context, id model.ShipmentScheduleID) (*model.ShipmentSchedule, error) {
	return c.schedules.GetByID(ctx, id)
}

func (c *LifecycleControllerImpl) GetByIDsOutOfTrx(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error) {
	return c.schedules.GetByIDsOutOfTrx(ctx, ids)
}

func (c *LifecycleControllerImpl) PartnerID(ctx context.Context, sched *model.ShipmentSchedule) (model.PartnerID, error) {
	return c.effective.PartnerID(ctx, sched)
}

func (c *LifecycleControllerImpl) WarehouseID(ctx context.Context, sched *model.ShipmentSchedule) (model.WarehouseID, error) {
	return c.effective.WarehouseID(ctx, sched)
}

func (c *LifecycleControllerImpl) PreparationDate(ctx context.Context, sched *model.ShipmentSchedule) (time.Time, error) {
	return c.effective.PreparationDate(ctx, sched)
}
