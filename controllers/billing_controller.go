package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type Ledger interface {
	AddConsumption(ctx context.Context, stayID uint, in services.ConsumptionInput) (*models.ConsumptionLine, error)
	AddService(ctx context.Context, stayID uint, in services.ServiceInput) (*models.ServiceLine, error)
	AddAdjustment(ctx context.Context, stayID uint, in services.AdjustmentInput) (*models.PriceAdjustment, error)
	RemoveAdjustment(ctx context.Context, id uint) error
	SetAdjustmentActive(ctx context.Context, id uint, active bool) (*models.PriceAdjustment, error)
	Lines(ctx context.Context, stayID uint) (*services.Lines, error)
}

type PaymentLedger interface {
	Register(ctx context.Context, stayID uint, in services.PaymentInput) (*models.Payment, error)
	GetByStay(ctx context.Context, stayID uint) ([]models.Payment, error)
}

type Invoicer interface {
	Generate(ctx context.Context, stayID uint) (*models.Invoice, error)
	GetByID(ctx context.Context, id uint) (*models.Invoice, error)
	GetByStay(ctx context.Context, stayID uint) (*models.Invoice, error)
}

// BillingController exposes everything charged to or paid against a stay.
type BillingController struct {
	Ledger   Ledger
	Payments PaymentLedger
	Invoices Invoicer
}

func NewBillingController(ledger Ledger, payments PaymentLedger, invoices Invoicer) *BillingController {
	return &BillingController{Ledger: ledger, Payments: payments, Invoices: invoices}
}

func (c *BillingController) GetLines(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	lines, err := c.Ledger.Lines(ctx.Request.Context(), stayID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, lines)
}

// POST /api/stays/:id/consumptions
func (c *BillingController) AddConsumption(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.ConsumptionInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	in.CreatedBy = actor(ctx)
	line, err := c.Ledger.AddConsumption(ctx.Request.Context(), stayID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, line)
}

// POST /api/stays/:id/services
func (c *BillingController) AddService(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.ServiceInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	line, err := c.Ledger.AddService(ctx.Request.Context(), stayID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, line)
}

// POST /api/stays/:id/adjustments
func (c *BillingController) AddAdjustment(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.AdjustmentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	in.CreatedBy = actor(ctx)
	adj, err := c.Ledger.AddAdjustment(ctx.Request.Context(), stayID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, adj)
}

// DELETE /api/adjustments/:id
func (c *BillingController) RemoveAdjustment(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Ledger.RemoveAdjustment(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"message": "Adjustment removed"})
}

// PATCH /api/adjustments/:id/active
func (c *BillingController) SetAdjustmentActive(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req activeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	adj, err := c.Ledger.SetAdjustmentActive(ctx.Request.Context(), id, *req.Active)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, adj)
}

func (c *BillingController) GetPayments(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	payments, err := c.Payments.GetByStay(ctx.Request.Context(), stayID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, payments)
}

// POST /api/stays/:id/payments
func (c *BillingController) RegisterPayment(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.PaymentInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	in.CreatedBy = actor(ctx)
	payment, err := c.Payments.Register(ctx.Request.Context(), stayID, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, payment)
}

// POST /api/stays/:id/invoice generates or refreshes the stay's invoice.
func (c *BillingController) GenerateInvoice(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	inv, err := c.Invoices.Generate(ctx.Request.Context(), stayID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, inv)
}

func (c *BillingController) GetStayInvoice(ctx *gin.Context) {
	stayID, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	inv, err := c.Invoices.GetByStay(ctx.Request.Context(), stayID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, inv)
}

func (c *BillingController) GetInvoice(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	inv, err := c.Invoices.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, inv)
}
