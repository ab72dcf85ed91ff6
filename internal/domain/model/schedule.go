package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionDirection distinguishes outbound (sales) from inbound (purchase)
// document flows.
type TransactionDirection string

const (
	DirectionOutbound TransactionDirection = "outbound"
	DirectionInbound  TransactionDirection = "inbound"
)

// FreightCostRule describes how freight is charged on an order.
type FreightCostRule string

const (
	FreightCostRuleFreightIncluded FreightCostRule = "freight_included"
	FreightCostRuleFixPrice        FreightCostRule = "fix_price"
	FreightCostRuleVersandkosten   FreightCostRule = "shipping_cost"
)

// InvoicingBasis says which quantity an order line is invoiced on.
type InvoicingBasis string

const (
	InvoicingBasisNominal     InvoicingBasis = "nominal"
	InvoicingBasisCatchWeight InvoicingBasis = "catch_weight"
)

// BestBeforePolicy controls which stock is allocated to a shipment first.
type BestBeforePolicy string

const (
	BestBeforePolicyNone          BestBeforePolicy = ""
	BestBeforePolicyExpiringFirst BestBeforePolicy = "expiring_first"
	BestBeforePolicyNewestFirst   BestBeforePolicy = "newest_first"
)

// ShipmentSchedule is one obligation to deliver a quantity of a product to a
// business partner, usually tied to one order line.
//
// QtyOrdered is the effective ordered quantity: QtyOrderedOverride when set,
// QtyOrderedCalculated otherwise. The effective value is recomputed by the
// quantity resolver; override and calculated fields are never touched by
// close/open.
//
// QtyToDeliverCatchOverride is only meaningful while CatchUomID is set; a
// catch override without a catch unit is inert.
type ShipmentSchedule struct {
	ID          ShipmentScheduleID
	OrderID     OrderID
	OrderLineID OrderLineID
	ProductID   ProductID
	ASIID       ASIID

	QtyOrdered           decimal.Decimal
	QtyOrderedOverride   *decimal.Decimal
	QtyOrderedCalculated decimal.Decimal
	QtyDelivered         decimal.Decimal

	QtyToDeliverOverride      *decimal.Decimal
	CatchUomID                UomID
	QtyToDeliverCatchOverride *decimal.Decimal

	BestBeforePolicy BestBeforePolicy

	Closed    bool
	Processed bool
	Active    bool

	PartnerAddressOverride string
	HeaderAggregationKey   string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasOrderLine reports whether the schedule is linked to an order line.
// Legacy schedules created outside order fulfillment have none.
func (s *ShipmentSchedule) HasOrderLine() bool {
	return s.OrderLineID.IsSet()
}

// HasCatchOverride reports whether an active catch-quantity override exists.
// Both the catch unit and the override value must be present.
func (s *ShipmentSchedule) HasCatchOverride() bool {
	return s.CatchUomID.IsSet() && s.QtyToDeliverCatchOverride != nil
}

// UserChangeRequest carries partial user edits for one schedule. Each field
// is independently optional; nil means "leave unchanged", never "clear".
type UserChangeRequest struct {
	ScheduleID ShipmentScheduleID

	QtyToDeliverStockOverride *decimal.Decimal
	QtyToDeliverCatchOverride *decimal.Decimal
	ASIID                     *ASIID
}

// IsEmpty reports whether the request carries no change at all.
func (r UserChangeRequest) IsEmpty() bool {
	return r.QtyToDeliverStockOverride == nil &&
		r.QtyToDeliverCatchOverride == nil &&
		r.ASIID == nil
}

// UserChangeRequestsList is an ordered batch of user-change requests,
// addressable by schedule id.
type UserChangeRequestsList struct {
	ids  []ShipmentScheduleID
	byID map[ShipmentScheduleID]UserChangeRequest
}

// NewUserChangeRequestsList builds a list from the given requests. Later
// requests for the same schedule id replace earlier ones; first-seen order
// is preserved.
func NewUserChangeRequestsList(requests ...UserChangeRequest) UserChangeRequestsList {
	list := UserChangeRequestsList{
		byID: make(map[ShipmentScheduleID]UserChangeRequest, len(requests)),
	}
	for _, req := range requests {
		if _, seen := list.byID[req.ScheduleID]; !seen {
			list.ids = append(list.ids, req.ScheduleID)
		}
		list.byID[req.ScheduleID] = req
	}
	return list
}

// ScheduleIDs returns the schedule ids in first-seen order.
func (l UserChangeRequestsList) ScheduleIDs() []ShipmentScheduleID {
	out := make([]ShipmentScheduleID, len(l.ids))
	copy(out, l.ids)
	return out
}

// ByScheduleID returns the request for the given id.
func (l UserChangeRequestsList) ByScheduleID(id ShipmentScheduleID) (UserChangeRequest, bool) {
	req, ok := l.byID[id]
	return req, ok
}

// Len returns the number of distinct schedule ids in the batch.
func (l UserChangeRequestsList) Len() int {
	return len(l.ids)
}
