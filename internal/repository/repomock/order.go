package repomock

import (
	"context"

	"ninjashop/internal/domain/model"
	repo "ninjashop/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) List(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID int64) ([]model.Order, error) {
	args := m.Called(ctx, userID)
	list, _ := args.Get(0).([]model.Order)
	return list, args.Error(1)
}

func (m *OrderRepoMock) UpdateTotal(ctx context.Context, orderID int64, total decimal.Decimal) error {
	return m.Called(ctx, orderID, total).Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, statusID int64) error {
	return m.Called(ctx, orderID, statusID).Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	return m.Called(ctx, orderID).Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	args := m.Called(ctx, item)
	out, _ := args.Get(0).(model.OrderItem)
	return out, args.Error(1)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	list, _ := args.Get(0).([]model.OrderItem)
	return list, args.Error(1)
}

func (m *OrderItemRepoMock) SumCostByOrderID(ctx context.Context, orderID int64) (decimal.Decimal, error) {
	args := m.Called(ctx, orderID)
	sum, _ := args.Get(0).(decimal.Decimal)
	return sum, args.Error(1)
}

type StatusRepoMock struct{ mock.Mock }

func (m *StatusRepoMock) List(ctx context.Context) ([]model.Status, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]model.Status)
	return list, args.Error(1)
}

func (m *StatusRepoMock) FindByID(ctx context.Context, id int64) (model.Status, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(model.Status)
	return s, args.Error(1)
}

func (m *StatusRepoMock) Create(ctx context.Context, s model.Status) (model.Status, error) {
	args := m.Called(ctx, s)
	out, _ := args.Get(0).(model.Status)
	return out, args.Error(1)
}

func (m *StatusRepoMock) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	return m.Called(ctx, log).Error(0)
}

func (m *AuditLogRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	args := m.Called(ctx, filter)
	logs, _ := args.Get(0).([]model.AuditLog)
	return logs, args.Error(1)
}
