package model

import (
	"github.com/google/uuid"
)

// CompleteStatus is the per-group delivery completeness decision made by the
// batching workflow after all lines are attached.
type CompleteStatus int

const (
	CompleteStatusOK CompleteStatus = iota
	CompleteStatusIncompleteLine
	CompleteStatusIncompleteOrder
)

func (s CompleteStatus) String() string {
	switch s {
	case CompleteStatusOK:
		return "OK"
	case CompleteStatusIncompleteLine:
		return "INCOMPLETE_LINE"
	case CompleteStatusIncompleteOrder:
		return "INCOMPLETE_ORDER"
	default:
		return "UNKNOWN"
	}
}

// DeliveryGroupKey is the logistics identity of one proposed shipment:
// either an order or a shipper (never both), plus the source warehouse and
// the receiving partner address.
type DeliveryGroupKey struct {
	OrderID        OrderID
	ShipperID      ShipperID
	WarehouseID    WarehouseID
	PartnerAddress string
}

// GroupKeyForOrder builds the key for an order-bound delivery group.
func GroupKeyForOrder(orderID OrderID, warehouseID WarehouseID, partnerAddress string) DeliveryGroupKey {
	return DeliveryGroupKey{OrderID: orderID, WarehouseID: warehouseID, PartnerAddress: partnerAddress}
}

// GroupKeyForShipper builds the key for a shipper-bound delivery group.
// A zero shipper id is a valid key of its own ("no shipper assigned").
func GroupKeyForShipper(shipperID ShipperID, warehouseID WarehouseID, partnerAddress string) DeliveryGroupKey {
	return DeliveryGroupKey{ShipperID: shipperID, WarehouseID: warehouseID, PartnerAddress: partnerAddress}
}

// DeliveryGroupCandidate is a proposed shipment bucket holding the line
// candidates that may be consolidated into one physical shipment.
type DeliveryGroupCandidate struct {
	ID             uuid.UUID
	Key            DeliveryGroupKey
	Lines          []*DeliveryLineCandidate
	CompleteStatus CompleteStatus
}

// NewDeliveryGroupCandidate creates an empty group for the given key.
func NewDeliveryGroupCandidate(key DeliveryGroupKey) *DeliveryGroupCandidate {
	return &DeliveryGroupCandidate{
		ID:  uuid.New(),
		Key: key,
	}
}

// AddLine appends a line and wires its back reference to the group.
func (g *DeliveryGroupCandidate) AddLine(line *DeliveryLineCandidate) {
	line.Group = g
	g.Lines = append(g.Lines, line)
}

// DeliveryLineCandidate wraps one shipment schedule with the quantity that
// would be delivered if the group ships now.
type DeliveryLineCandidate struct {
	ID             uuid.UUID
	ScheduleID     ShipmentScheduleID
	QtyToDeliver   Quantity
	Group          *DeliveryGroupCandidate
	CompleteStatus CompleteStatus
}

// NewDeliveryLineCandidate creates a line candidate for the given schedule.
func NewDeliveryLineCandidate(scheduleID ShipmentScheduleID, qtyToDeliver Quantity) *DeliveryLineCandidate {
	return &DeliveryLineCandidate{
		ID:           uuid.New(),
		ScheduleID:   scheduleID,
		QtyToDeliver: qtyToDeliver,
	}
}
