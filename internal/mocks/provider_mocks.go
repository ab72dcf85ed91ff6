// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/shipment-schedule-service/internal/domain/model"
)

type MockEffectiveValuesProvider struct {
	mock.Mock
}

func (m *MockEffectiveValuesProvider) PartnerID(ctx context.Context, sched *model.ShipmentSchedule) (model.PartnerID, error) {
	args := m.Called(ctx, sched)
	return args.Get(0).(model.PartnerID), args.Error(1)
}

func (m *MockEffectiveValuesProvider) FullAddress(ctx context.Context, sched *model.ShipmentSchedule) (string, error) {
	args := m.Called(ctx, sched)
	return args.String(0), args.Error(1)
}

func (m *MockEffectiveValuesProvider) WarehouseID(ctx context.Context, sched *model.ShipmentSchedule) (model.WarehouseID, error) {
	args := m.Called(ctx, sched)
	return args.Get(0).(model.WarehouseID), args.Error(1)
}

func (m *MockEffectiveValuesProvider) PreparationDate(ctx context.Context, sched *model.ShipmentSchedule) (time.Time, error) {
	args := m.Called(ctx, sched)
	return args.Get(0).(time.Time), args.Error(1)
}

func (m *MockEffectiveValuesProvider) ComputeQtyOrdered(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error) {
	args := m.Called(ctx, sched)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockEffectiveValuesProvider) QtyToDeliver(ctx context.Context, sched *model.ShipmentSchedule) (decimal.Decimal, error) {
	args := m.Called(ctx, sched)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

type MockOrderInfoProvider struct {
	mock.Mock
}

func (m *MockOrderInfoProvider) IsPrepay(ctx context.Context, orderID model.OrderID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderInfoProvider) FreightCostRule(ctx context.Context, orderID model.OrderID) (model.FreightCostRule, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.FreightCostRule), args.Error(1)
}

func (m *MockOrderInfoProvider) InvoicingBasis(ctx context.Context, orderLineID model.OrderLineID) (model.InvoicingBasis, error) {
	args := m.Called(ctx, orderLineID)
	return args.Get(0).(model.InvoicingBasis), args.Error(1)
}

func (m *MockOrderInfoProvider) ShipperID(ctx context.Context, orderID model.OrderID) (model.ShipperID, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(model.ShipperID), args.Error(1)
}

type MockPartnerPolicyProvider struct {
	mock.Mock
}

func (m *MockPartnerPolicyProvider) AllowsConsolidate(ctx context.Context, partnerID model.PartnerID, direction model.TransactionDirection) (bool, error) {
	args := m.Called(ctx, partnerID, direction)
	return args.Bool(0), args.Error(1)
}

func (m *MockPartnerPolicyProvider) BestBeforePolicy(ctx context.Context, partnerID model.PartnerID) (model.BestBeforePolicy, error) {
	args := m.Called(ctx, partnerID)
	return args.Get(0).(model.BestBeforePolicy), args.Error(1)
}

type MockProductInfoProvider struct {
	mock.Mock
}

func (m *MockProductInfoProvider) StockUomID(ctx context.Context, productID model.ProductID) (model.UomID, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.UomID), args.Error(1)
}

func (m *MockProductInfoProvider) CatchUomID(ctx context.Context, productID model.ProductID) (model.UomID, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).(model.UomID), args.Error(1)
}

type MockLockManager struct {
	mock.Mock
}

func (m *MockLockManager) LockedScheduleIDs(ctx context.Context, productID model.ProductID) ([]model.ShipmentScheduleID, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.ShipmentScheduleID), args.Error(1)
}

type MockScheduleRepository struct {
	mock.Mock
}

func (m *MockScheduleRepository) GetByID(ctx context.Context, id model.ShipmentScheduleID) (*model.ShipmentSchedule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ShipmentSchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetByIDs(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ShipmentScheduleID]*model.ShipmentSchedule), args.Error(1)
}

func (m *MockScheduleRepository) GetByIDsOutOfTrx(ctx context.Context, ids []model.ShipmentScheduleID) (map[model.ShipmentScheduleID]*model.ShipmentSchedule, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[model.ShipmentScheduleID]*model.ShipmentSchedule), args.Error(1)
}

func (m *MockScheduleRepository) Save(ctx context.Context, sched *model.ShipmentSchedule) error {
	args := m.Called(ctx, sched)
	return args.Error(0)
}

func (m *MockScheduleRepository) BulkSetCatchUom(ctx context.Context, productID model.ProductID, catchUomID model.UomID, excludeIDs []model.ShipmentScheduleID) (int64, error) {
	args := m.Called(ctx, productID, catchUomID, excludeIDs)
	return args.Get(0).(int64), args.Error(1)
}

type MockMissingSchedsRecomputer struct {
	mock.Mock
}

func (m *MockMissingSchedsRecomputer) RecomputeMissing(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// PassthroughTrxRunner satisfies service.TrxRunner for unit tests by calling
// fn directly without any transaction.
type PassthroughTrxRunner struct{}

func (PassthroughTrxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
