package controllers_test

import (
	"context"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockStayEngine struct {
	mock.Mock
}

func (m *MockStayEngine) stay(args mock.Arguments) (*models.Stay, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Stay), args.Error(1)
}

func (m *MockStayEngine) Create(ctx context.Context, in services.StayInput) (*models.Stay, error) {
	return m.stay(m.Called(ctx, in))
}
func (m *MockStayEngine) Confirm(ctx context.Context, id uint) (*models.Stay, error) {
	return m.stay(m.Called(ctx, id))
}
func (m *MockStayEngine) Start(ctx context.Context, id uint) (*models.Stay, error) {
	return m.stay(m.Called(ctx, id))
}
func (m *MockStayEngine) Cancel(ctx context.Context, id uint) (*models.Stay, error) {
	return m.stay(m.Called(ctx, id))
}
func (m *MockStayEngine) SetCheckOut(ctx context.Context, id uint, checkOut *time.Time) (*models.Stay, error) {
	return m.stay(m.Called(ctx, id, checkOut))
}
func (m *MockStayEngine) GetByID(ctx context.Context, id uint) (*models.Stay, error) {
	return m.stay(m.Called(ctx, id))
}

func (m *MockStayEngine) Statement(ctx context.Context, id uint) (*models.Statement, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Statement), args.Error(1)
}

func (m *MockStayEngine) Checkout(ctx context.Context, id uint, in services.CheckoutInput) (*services.CheckoutResult, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CheckoutResult), args.Error(1)
}

func (m *MockStayEngine) GetAll(ctx context.Context, f services.StayFilter) ([]models.Stay, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Stay), args.Error(1)
}

type MockLedger struct {
	mock.Mock
}

func (m *MockLedger) AddConsumption(ctx context.Context, stayID uint, in services.ConsumptionInput) (*models.ConsumptionLine, error) {
	args := m.Called(ctx, stayID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConsumptionLine), args.Error(1)
}
func (m *MockLedger) AddService(ctx context.Context, stayID uint, in services.ServiceInput) (*models.ServiceLine, error) {
	args := m.Called(ctx, stayID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ServiceLine), args.Error(1)
}
func (m *MockLedger) AddAdjustment(ctx context.Context, stayID uint, in services.AdjustmentInput) (*models.PriceAdjustment, error) {
	args := m.Called(ctx, stayID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceAdjustment), args.Error(1)
}
func (m *MockLedger) RemoveAdjustment(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}
func (m *MockLedger) SetAdjustmentActive(ctx context.Context, id uint, active bool) (*models.PriceAdjustment, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PriceAdjustment), args.Error(1)
}
func (m *MockLedger) Lines(ctx context.Context, stayID uint) (*services.Lines, error) {
	args := m.Called(ctx, stayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Lines), args.Error(1)
}

type MockPaymentLedger struct {
	mock.Mock
}

func (m *MockPaymentLedger) Register(ctx context.Context, stayID uint, in services.PaymentInput) (*models.Payment, error) {
	args := m.Called(ctx, stayID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}
func (m *MockPaymentLedger) GetByStay(ctx context.Context, stayID uint) ([]models.Payment, error) {
	args := m.Called(ctx, stayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Payment), args.Error(1)
}
