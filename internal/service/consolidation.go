package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// ConsolidationEvaluator decides whether a shipment schedule may share a
// physical shipment with others. It is a pure predicate over partner policy
// and order attributes; it never mutates the schedule.
type ConsolidationEvaluator interface {
	// AllowsConsolidate evaluates the effective partner's policy for the
	// given transaction direction, then the order-level vetoes.
	AllowsConsolidate(ctx context.Context, sched *model.ShipmentSchedule, direction model.TransactionDirection) (bool, error)

	// AllowsConsolidateOutbound evaluates the partner policy for the
	// outbound direction regardless of the schedule's own direction, which
	// matches how shipment consolidation always worked upstream.
	AllowsConsolidateOutbound(ctx context.Context, sched *model.ShipmentSchedule) (bool, error)

	// ConsolidateVetoedByOrder reports whether the linked order alone
	// forbids consolidation: prepay orders and fixed-price freight do.
	// Schedules without an order are never vetoed here.
	ConsolidateVetoedByOrder(ctx context.Context, sched *model.ShipmentSchedule) (bool, error)
}

// ConsolidationEvaluatorImpl implements ConsolidationEvaluator.
type ConsolidationEvaluatorImpl struct {
	effective EffectiveValuesProvider
	partners  PartnerPolicyProvider
	orders    OrderInfoProvider
	log       zerolog.Logger
}

// NewConsolidationEvaluator creates a new consolidation evaluator.
func NewConsolidationEvaluator(
	effective EffectiveValuesProvider,
	partners PartnerPolicyProvider,
	orders OrderInfoProvider,
	log zerolog.Logger,
) *ConsolidationEvaluatorImpl {
	return &ConsolidationEvaluatorImpl{
		effective: effective,
		partners:  partners,
		orders:    orders,
		log:       log.With().Str("component", "consolidation_evaluator").Logger(),
	}
}

func (e *ConsolidationEvaluatorImpl) AllowsConsolidate(
	ctx context.Context,
	sched *model.ShipmentSchedule,
	direction model.TransactionDirection,
) (bool, error) {
	// The order line's partner is irrelevant here; what counts is the
	// partner who actually receives the shipment.
	partnerID, err := e.effective.PartnerID(ctx, sched)
	if err != nil {
		return false, fmt.Errorf("effective partner of schedule %d: %w", sched.ID, err)
	}

	partnerAllows, err := e.partners.AllowsConsolidate(ctx, partnerID, direction)
	if err != nil {
		return false, fmt.Errorf("consolidation policy of partner %d: %w", partnerID, err)
	}
	if !partnerAllows {
		e.log.Debug().
			Int("schedule_id", int(sched.ID)).
			Int("partner_id", int(partnerID)).
			Msg("effective partner does not allow consolidation into one shipment")
		return false, nil
	}

	vetoed, err := e.ConsolidateVetoedByOrder(ctx, sched)
	if err != nil {
		return false, err
	}
	return !vetoed, nil
}

func (e *ConsolidationEvaluatorImpl) AllowsConsolidateOutbound(ctx context.Context, sched *model.ShipmentSchedule) (bool, error) {
	return e.AllowsConsolidate(ctx, sched, model.DirectionOutbound)
}

func (e *ConsolidationEvaluatorImpl) ConsolidateVetoedByOrder(ctx context.Context, sched *model.ShipmentSchedule) (bool, error) {
	if !sched.OrderID.IsSet() {
		return false, nil
	}

	prepay, err := e.orders.IsPrepay(ctx, sched.OrderID)
	if err != nil {
		return false, fmt.Errorf("prepay flag of order %d: %w", sched.OrderID, err)
	}
	if prepay {
		e.log.Debug().
			Int("order_id", int(sched.OrderID)).
			Msg("prepay order forbids consolidation into one shipment")
		return true, nil
	}

	rule, err := e.orders.FreightCostRule(ctx, sched.OrderID)
	if err != nil {
		return false, fmt.Errorf("freight cost rule of order %d: %w", sched.OrderID, err)
	}
	if rule == model.FreightCostRuleFixPrice {
		e.log.Debug().
			Int("order_id", int(sched.OrderID)).
			Str("freight_cost_rule", string(rule)).
			Msg("non-standard freight cost rule forbids consolidation into one shipment")
		return true, nil
	}

	return false, nil
}
