package repository

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

// scheduleDocument is the BSON shape of a shipment schedule. Quantities are
// stored as decimal strings to keep exact values across the wire, mirroring
// how the model and the persisted form are kept separate elsewhere in the
// codebase.
type scheduleDocument struct {
	ID          int `bson:"_id"`
	OrderID     int `bson:"order_id,omitempty"`
	OrderLineID int `bson:"order_line_id,omitempty"`
	ProductID   int `bson:"product_id"`
	ASIID       int `bson:"asi_id,omitempty"`

	QtyOrdered           string  `bson:"qty_ordered"`
	QtyOrderedOverride   *string `bson:"qty_ordered_override,omitempty"`
	QtyOrderedCalculated string  `bson:"qty_ordered_calculated"`
	QtyDelivered         string  `bson:"qty_delivered"`

	QtyToDeliverOverride      *string `bson:"qty_to_deliver_override,omitempty"`
	CatchUomID                int     `bson:"catch_uom_id,omitempty"`
	QtyToDeliverCatchOverride *string `bson:"qty_to_deliver_catch_override,omitempty"`

	BestBeforePolicy string `bson:"best_before_policy,omitempty"`

	Closed    bool `bson:"closed"`
	Processed bool `bson:"processed"`
	Active    bool `bson:"active"`

	PartnerAddressOverride string `bson:"partner_address_override,omitempty"`
	HeaderAggregationKey   string `bson:"header_aggregation_key,omitempty"`

	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func scheduleToDocument(sched *model.ShipmentSchedule) *scheduleDocument {
	return &scheduleDocument{
		ID:          int(sched.ID),
		OrderID:     int(sched.OrderID),
		OrderLineID: int(sched.OrderLineID),
		ProductID:   int(sched.ProductID),
		ASIID:       int(sched.ASIID),

		QtyOrdered:           sched.QtyOrdered.String(),
		QtyOrderedOverride:   decimalToString(sched.QtyOrderedOverride),
		QtyOrderedCalculated: sched.QtyOrderedCalculated.String(),
		QtyDelivered:         sched.QtyDelivered.String(),

		QtyToDeliverOverride:      decimalToString(sched.QtyToDeliverOverride),
		CatchUomID:                int(sched.CatchUomID),
		QtyToDeliverCatchOverride: decimalToString(sched.QtyToDeliverCatchOverride),

		BestBeforePolicy: string(sched.BestBeforePolicy),

		Closed:    sched.Closed,
		Processed: sched.Processed,
		Active:    sched.Active,

		PartnerAddressOverride: sched.PartnerAddressOverride,
		HeaderAggregationKey:   sched.HeaderAggregationKey,

		CreatedAt: sched.CreatedAt,
		UpdatedAt: sched.UpdatedAt,
	}
}

func documentToSchedule(doc *scheduleDocument) (*model.ShipmentSchedule, error) {
	qtyOrdered, err := parseDecimal("qty_ordered", doc.QtyOrdered)
	if err != nil {
		return nil, err
	}
	qtyOrderedCalculated, err := parseDecimal("qty_ordered_calculated", doc.QtyOrderedCalculated)
	if err != nil {
		return nil, err
	}
	qtyDelivered, err := parseDecimal("qty_delivered", doc.QtyDelivered)
	if err != nil {
		return nil, err
	}
	qtyOrderedOverride, err := parseDecimalPtr("qty_ordered_override", doc.QtyOrderedOverride)
	if err != nil {
		return nil, err
	}
	qtyToDeliverOverride, err := parseDecimalPtr("qty_to_deliver_override", doc.QtyToDeliverOverride)
	if err != nil {
		return nil, err
	}
	qtyToDeliverCatchOverride, err := parseDecimalPtr("qty_to_deliver_catch_override", doc.QtyToDeliverCatchOverride)
	if err != nil {
		return nil, err
	}

	return &model.ShipmentSchedule{
		ID:          model.ShipmentScheduleID(doc.ID),
		OrderID:     model.OrderID(doc.OrderID),
		OrderLineID: model.OrderLineID(doc.OrderLineID),
		ProductID:   model.ProductID(doc.ProductID),
		ASIID:       model.ASIID(doc.ASIID),

		QtyOrdered:           qtyOrdered,
		QtyOrderedOverride:   qtyOrderedOverride,
		QtyOrderedCalculated: qtyOrderedCalculated,
		QtyDelivered:         qtyDelivered,

		QtyToDeliverOverride:      qtyToDeliverOverride,
		CatchUomID:                model.UomID(doc.CatchUomID),
		QtyToDeliverCatchOverride: qtyToDeliverCatchOverride,

		BestBeforePolicy: model.BestBeforePolicy(doc.BestBeforePolicy),

		Closed:    doc.Closed,
		Processed: doc.Processed,
		Active:    doc.Active,

		PartnerAddressOverride: doc.PartnerAddressOverride,
		HeaderAggregationKey:   doc.HeaderAggregationKey,

		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func decimalToString(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimal(field, value string) (decimal.Decimal, error) {
	if value == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse %s %q: %w", field, value, err)
	}
	return d, nil
}

func parseDecimalPtr(field string, value *string) (*decimal.Decimal, error) {
	if value == nil {
		return nil, nil
	}
	d, err := parseDecimal(field, *value)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
