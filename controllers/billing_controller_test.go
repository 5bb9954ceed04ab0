package controllers_test

import (
	"net/http"
	"testing"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/models"
	"hotel-frontdesk/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func billingRouter(ledger *MockLedger, payments *MockPaymentLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := controllers.NewBillingController(ledger, payments, nil)
	r := gin.New()
	r.POST("/stays/:id/consumptions", c.AddConsumption)
	r.POST("/stays/:id/payments", c.RegisterPayment)
	r.PATCH("/adjustments/:id/active", c.SetAdjustmentActive)
	r.DELETE("/adjustments/:id", c.RemoveAdjustment)
	return r
}

func TestBillingController_InsufficientStock(t *testing.T) {
	ledger := new(MockLedger)
	r := billingRouter(ledger, new(MockPaymentLedger))
	ledger.On("AddConsumption", mock.Anything, uint(5), services.ConsumptionInput{ProductID: 2, Quantity: 4, CreatedBy: "front"}).
		Return(nil, &services.InsufficientStockError{ProductCode: "SODA", Available: 3, Requested: 4})

	w := perform(r, http.MethodPost, "/stays/5/consumptions", `{"product_id":2,"quantity":4}`, map[string]string{"X-Actor": "front"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeError(t, w)
	assert.Equal(t, "insufficient_stock", body.Error["code"])
	assert.EqualValues(t, 3, body.Error["available"])
	ledger.AssertExpectations(t)
}

func TestBillingController_RegisterPayment(t *testing.T) {
	payments := new(MockPaymentLedger)
	r := billingRouter(new(MockLedger), payments)
	payments.On("Register", mock.Anything, uint(5), mock.MatchedBy(func(in services.PaymentInput) bool {
		return in.Amount.Equal(decimal.RequireFromString("120.50")) && in.Method == models.PaymentCash
	})).Return(&models.Payment{ID: 1, Code: "PAG0000AAAA"}, nil)

	w := perform(r, http.MethodPost, "/stays/5/payments", `{"amount":"120.50","method":"cash"}`, nil)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "PAG0000AAAA")
	payments.AssertExpectations(t)
}

func TestBillingController_Overpayment(t *testing.T) {
	payments := new(MockPaymentLedger)
	r := billingRouter(new(MockLedger), payments)
	payments.On("Register", mock.Anything, uint(5), mock.Anything).
		Return(nil, &services.OverpaymentError{Amount: decimal.NewFromInt(500), BalanceDue: decimal.NewFromInt(80)})

	w := perform(r, http.MethodPost, "/stays/5/payments", `{"amount":500,"method":"cash"}`, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "overpayment", decodeError(t, w).Error["code"])
}

func TestBillingController_SetAdjustmentActiveRequiresFlag(t *testing.T) {
	ledger := new(MockLedger)
	r := billingRouter(ledger, new(MockPaymentLedger))

	w := perform(r, http.MethodPatch, "/adjustments/3/active", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	ledger.AssertNotCalled(t, "SetAdjustmentActive", mock.Anything, mock.Anything, mock.Anything)

	ledger.On("SetAdjustmentActive", mock.Anything, uint(3), false).Return(&models.PriceAdjustment{ID: 3}, nil)
	w = perform(r, http.MethodPatch, "/adjustments/3/active", `{"active":false}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	ledger.AssertExpectations(t)
}

func TestBillingController_RemoveAdjustment(t *testing.T) {
	ledger := new(MockLedger)
	r := billingRouter(ledger, new(MockPaymentLedger))
	ledger.On("RemoveAdjustment", mock.Anything, uint(3)).Return(nil)

	w := perform(r, http.MethodDelete, "/adjustments/3", "", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	ledger.AssertExpectations(t)
}
