package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// DeliveryGroupingEngine is the two-phase in-memory index used by one
// batching pass: first register every delivery group candidate, then attach
// line candidates and diagnostic status texts.
//
// The engine is owned by a single pass and is not safe for concurrent use.
// It never de-duplicates; callers must guarantee key uniqueness before
// registering a group.
type DeliveryGroupingEngine struct {
	groups      []*model.DeliveryGroupCandidate
	groupsByKey map[model.DeliveryGroupKey]*model.DeliveryGroupCandidate

	linesBySchedule map[model.ShipmentScheduleID]*model.DeliveryLineCandidate
	statusInfos     map[uuid.UUID][]string
}

// NewDeliveryGroupingEngine creates an empty grouping index.
func NewDeliveryGroupingEngine() *DeliveryGroupingEngine {
	return &DeliveryGroupingEngine{
		groupsByKey:     make(map[model.DeliveryGroupKey]*model.DeliveryGroupCandidate),
		linesBySchedule: make(map[model.ShipmentScheduleID]*model.DeliveryLineCandidate),
		statusInfos:     make(map[uuid.UUID][]string),
	}
}

// AddGroup registers a delivery group candidate under its key.
func (e *DeliveryGroupingEngine) AddGroup(group *model.DeliveryGroupCandidate) {
	e.groups = append(e.groups, group)
	e.groupsByKey[group.Key] = group
}

// AddLine indexes a line candidate by its schedule id.
func (e *DeliveryGroupingEngine) AddLine(line *model.DeliveryLineCandidate) {
	e.linesBySchedule[line.ScheduleID] = line
}

// GroupForOrder returns the group registered for the given order key. An
// order is never split across shippers, so the order id alone identifies the
// shipment bucket. A miss returns ErrNotFound so the caller can register a
// fresh group on first touch.
func (e *DeliveryGroupingEngine) GroupForOrder(
	orderID model.OrderID,
	warehouseID model.WarehouseID,
	partnerAddress string,
) (*model.DeliveryGroupCandidate, error) {
	key := model.GroupKeyForOrder(orderID, warehouseID, partnerAddress)
	group, ok := e.groupsByKey[key]
	if !ok {
		return nil, fmt.Errorf("no delivery group for order %d, warehouse %d: %w",
			orderID, warehouseID, model.ErrNotFound)
	}
	return group, nil
}

// GroupForShipper returns the group registered for the given shipper key.
// Looking up a shipper group that was never registered breaks the two-phase
// contract and returns ErrInvalidState.
func (e *DeliveryGroupingEngine) GroupForShipper(
	shipperID model.ShipperID,
	warehouseID model.WarehouseID,
	partnerAddress string,
) (*model.DeliveryGroupCandidate, error) {
	key := model.GroupKeyForShipper(shipperID, warehouseID, partnerAddress)
	group, ok := e.groupsByKey[key]
	if !ok {
		return nil, fmt.Errorf("no delivery group registered for shipper %d, warehouse %d, address %q: %w",
			shipperID, warehouseID, partnerAddress, model.ErrInvalidState)
	}
	return group, nil
}

// LineForSchedule returns the line candidate attached for the schedule id.
func (e *DeliveryGroupingEngine) LineForSchedule(id model.ShipmentScheduleID) (*model.DeliveryLineCandidate, error) {
	line, ok := e.linesBySchedule[id]
	if !ok {
		return nil, fmt.Errorf("no line candidate for schedule %d: %w", id, model.ErrNotFound)
	}
	return line, nil
}

// AddStatusInfo appends a free-text status for the line, usually the reason
// why an open line will not be delivered this time. Existing texts are never
// overwritten.
func (e *DeliveryGroupingEngine) AddStatusInfo(line *model.DeliveryLineCandidate, text string) {
	e.statusInfos[line.ID] = append(e.statusInfos[line.ID], text)
}

// StatusInfos returns the accumulated status texts for the line in insertion
// order.
func (e *DeliveryGroupingEngine) StatusInfos(line *model.DeliveryLineCandidate) []string {
	infos := e.statusInfos[line.ID]
	out := make([]string, len(infos))
	copy(out, infos)
	return out
}

// Candidates returns a copy of the registered groups in registration order.
func (e *DeliveryGroupingEngine) Candidates() []*model.DeliveryGroupCandidate {
	out := make([]*model.DeliveryGroupCandidate, len(e.groups))
	copy(out, e.groups)
	return out
}

// Size returns the number of registered groups.
func (e *DeliveryGroupingEngine) Size() int {
	return len(e.groups)
}
