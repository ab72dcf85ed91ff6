package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// QuantityResolver resolves effective ordered, deliverable and catch
// quantities for shipment schedules using override-over-calculated
// precedence.
type QuantityResolver interface {
	// UpdateQtyOrdered recomputes the effective ordered quantity in memory
	// and returns the previous value. It does not persist; the caller owns
	// the write.
	UpdateQtyOrdered(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error)

	// QtyToDeliver returns the deliverable amount in the product's stock unit.
	QtyToDeliver(ctx context.Context, sched *model.ShipmentSchedule) (model.Quantity, error)

	// CatchQtyOverride returns the active catch-quantity override. It is
	// present iff the schedule has both a catch unit and an override value;
	// any other combination yields ok == false.
	CatchQtyOverride(sched *model.ShipmentSchedule) (model.Quantity, bool)

	// ResetCatchQtyOverride clears the override and persists immediately.
	ResetCatchQtyOverride(ctx context.Context, sched *model.ShipmentSchedule) error

	// IsCatchWeight reports whether the schedule is invoiced on catch weight.
	// Schedules without an order line default to true.
	IsCatchWeight(ctx context.Context, sched *model.ShipmentSchedule) (bool, error)

	// UomIDOfProduct returns the stock unit of the schedule's product.
	UomIDOfProduct(ctx context.Context, sched *model.ShipmentSchedule) (model.UomID, error)
}

// QuantityResolverImpl implements QuantityResolver.
type QuantityResolverImpl struct {
	effective EffectiveValuesProvider
	products  ProductInfoProvider
	orders    OrderInfoProvider
	schedules ScheduleRepository
	log       zerolog.Logger
}

// NewQuantityResolver creates a new quantity resolver.
func NewQuantityResolver(
	effective EffectiveValuesProvider,
	products ProductInfoProvider,
	orders OrderInfoProvider,
	schedules ScheduleRepository,
	log zerolog.Logger,
) *QuantityResolverImpl {
	return &QuantityResolverImpl{
		effective: effective,
		products:  products,
		orders:    orders,
		schedules: schedules,
		log:       log.With().Str("component", "quantity_resolver").Logger(),
	}
}

func (r *QuantityResolverImpl) UpdateQtyOrdered(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error) {
	oldQtyOrdered := sched.QtyOrdered

	newQtyOrdered, err := r.effective.ComputeQtyOrdered(ctx, sched)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("compute qty ordered for schedule %d: %w", sched.ID, err)
	}

	sched.QtyOrdered = newQtyOrdered
	return oldQtyOrdered, nil
}

func (r *QuantityResolverImpl) QtyToDeliver(ctx context.Context, sched *model.ShipmentSchedule) (model.Quantity, error) {
	amount, err := r.effective.QtyToDeliver(ctx, sched)
	if err != nil {
		return model.Quantity{}, fmt.Errorf("qty to deliver for schedule %d: %w", sched.ID, err)
	}

	stockUom, err := r.UomIDOfProduct(ctx, sched)
	if err != nil {
		return model.Quantity{}, err
	}

	return model.NewQuantity(amount, stockUom), nil
}

func (r *QuantityResolverImpl) CatchQtyOverride(sched *model.ShipmentSchedule) (model.Quantity, bool) {
	// A catch unit alone is not an override, and an orphaned override value
	// without a catch unit is inert.
	if !sched.CatchUomID.IsSet() {
		return model.Quantity{}, false
	}
	if sched.QtyToDeliverCatchOverride == nil {
		return model.Quantity{}, false
	}

	return model.NewQuantity(*sched.QtyToDeliverCatchOverride, sched.CatchUomID), true
}

func (r *QuantityResolverImpl) ResetCatchQtyOverride(ctx context.Context, sched *model.ShipmentSchedule) error {
	sched.QtyToDeliverCatchOverride = nil

	if err := r.schedules.Save(ctx, sched); err != nil {
		return fmt.Errorf("save schedule %d after catch override reset: %w", sched.ID, err)
	}
	return nil
}

func (r *QuantityResolverImpl) IsCatchWeight(ctx context.Context, sched *model.ShipmentSchedule) (bool, error) {
	if !sched.HasOrderLine() {
		// Schedules that are not backed by a sales order line keep the
		// legacy catch-weight behavior.
		return true, nil
	}

	basis, err := r.orders.InvoicingBasis(ctx, sched.OrderLineID)
	if err != nil {
		return false, fmt.Errorf("invoicing basis for order line %d: %w", sched.OrderLineID, err)
	}

	return basis == model.InvoicingBasisCatchWeight, nil
}

func (r *QuantityResolverImpl) UomIDOfProduct(ctx context.Context, sched *model.ShipmentSchedule) (model.UomID, error) {
	uomID, err := r.products.StockUomID(ctx, sched.ProductID)
	if err != nil {
		return 0, fmt.Errorf("stock uom for product %d: %w", sched.ProductID, err)
	}
	return uomID, nil
}
