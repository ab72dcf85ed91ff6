// Package model defines the core domain entities for the shipment schedule service.
package model

// Typed record ids. The zero value always means "none"; non-positive repo
// ids coming from upstream systems are normalized to zero.

// ShipmentScheduleID identifies one shipment schedule record.
type ShipmentScheduleID int

// OrderID identifies a sales or purchase order.
type OrderID int

// OrderLineID identifies one order line.
type OrderLineID int

// ProductID identifies a product.
type ProductID int

// UomID identifies a unit of measure.
type UomID int

// PartnerID identifies a business partner.
type PartnerID int

// WarehouseID identifies a warehouse.
type WarehouseID int

// ShipperID identifies a shipper.
type ShipperID int

// ASIID identifies an attribute set instance.
type ASIID int

// IsSet reports whether the id refers to an actual record.
func (id ShipmentScheduleID) IsSet() bool { return id > 0 }

func (id OrderID) IsSet() bool     { return id > 0 }
func (id OrderLineID) IsSet() bool { return id > 0 }
func (id ProductID) IsSet() bool   { return id > 0 }
func (id UomID) IsSet() bool       { return id > 0 }
func (id PartnerID) IsSet() bool   { return id > 0 }
func (id WarehouseID) IsSet() bool { return id > 0 }
func (id ShipperID) IsSet() bool   { return id > 0 }
func (id ASIID) IsSet() bool       { return id > 0 }

// OrderIDOfRepoID converts an upstream repo id, mapping non-positive values to zero.
func OrderIDOfRepoID(repoID int) OrderID {
	if repoID <= 0 {
		return 0
	}
	return OrderID(repoID)
}

// ShipmentScheduleIDOfRepoID converts an upstream repo id, mapping non-positive values to zero.
func ShipmentScheduleIDOfRepoID(repoID int) ShipmentScheduleID {
	if repoID <= 0 {
		return 0
	}
	return ShipmentScheduleID(repoID)
}
