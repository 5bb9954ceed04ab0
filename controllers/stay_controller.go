package controllers

import (
	"context"
	"net/http"
	"time"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type StayEngine interface {
	Create(ctx context.Context, in services.StayInput) (*models.Stay, error)
	Confirm(ctx context.Context, id uint) (*models.Stay, error)
	Start(ctx context.Context, id uint) (*models.Stay, error)
	Cancel(ctx context.Context, id uint) (*models.Stay, error)
	SetCheckOut(ctx context.Context, id uint, checkOut *time.Time) (*models.Stay, error)
	Statement(ctx context.Context, id uint) (*models.Statement, error)
	Checkout(ctx context.Context, id uint, in services.CheckoutInput) (*services.CheckoutResult, error)
	GetByID(ctx context.Context, id uint) (*models.Stay, error)
	GetAll(ctx context.Context, f services.StayFilter) ([]models.Stay, error)
}

type StayController struct {
	Svc StayEngine
}

func NewStayController(svc StayEngine) *StayController {
	return &StayController{Svc: svc}
}

type stayRequest struct {
	Type      models.StayType  `json:"type"`
	GuestID   uint             `json:"guest_id" binding:"required"`
	CompanyID *uint            `json:"company_id"`
	RoomID    uint             `json:"room_id" binding:"required"`
	CheckIn   string           `json:"check_in" binding:"required"`
	CheckOut  string           `json:"check_out"`
	Guests    int              `json:"guests"`
	State     models.StayState `json:"state"`
	Notes     string           `json:"notes"`
}

// GET /api/stays?state=in_progress&room_id=&guest_id=&company_id=&with_debt=true&from=2024-01-01&to=2024-01-31
func (c *StayController) GetStays(ctx *gin.Context) {
	f := services.StayFilter{
		State:    models.StayState(ctx.Query("state")),
		WithDebt: queryBool(ctx, "with_debt"),
	}
	var ok bool
	if f.RoomID, ok = queryUint(ctx, "room_id"); !ok {
		return
	}
	if f.GuestID, ok = queryUint(ctx, "guest_id"); !ok {
		return
	}
	if f.CompanyID, ok = queryUint(ctx, "company_id"); !ok {
		return
	}
	var err error
	if f.From, err = utils.ParseOptionalDate(ctx.Query("from")); err != nil {
		badRequest(ctx, err)
		return
	}
	if f.To, err = utils.ParseOptionalDate(ctx.Query("to")); err != nil {
		badRequest(ctx, err)
		return
	}
	stays, err := c.Svc.GetAll(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stays)
}

func (c *StayController) GetStay(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	stay, err := c.Svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stay)
}

func (c *StayController) CreateStay(ctx *gin.Context) {
	var req stayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	checkIn, err := utils.ParseDate(req.CheckIn)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	checkOut, err := utils.ParseOptionalDate(req.CheckOut)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	if req.Guests == 0 {
		req.Guests = 1
	}
	stay, err := c.Svc.Create(ctx.Request.Context(), services.StayInput{
		Type:      req.Type,
		GuestID:   req.GuestID,
		CompanyID: req.CompanyID,
		RoomID:    req.RoomID,
		CheckIn:   checkIn,
		CheckOut:  checkOut,
		Guests:    req.Guests,
		State:     req.State,
		Notes:     req.Notes,
		CreatedBy: actor(ctx),
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, stay)
}

func (c *StayController) ConfirmStay(ctx *gin.Context) {
	c.transition(ctx, c.Svc.Confirm)
}

func (c *StayController) StartStay(ctx *gin.Context) {
	c.transition(ctx, c.Svc.Start)
}

func (c *StayController) CancelStay(ctx *gin.Context) {
	c.transition(ctx, c.Svc.Cancel)
}

func (c *StayController) transition(ctx *gin.Context, op func(context.Context, uint) (*models.Stay, error)) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	stay, err := op(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stay)
}

type checkOutDateRequest struct {
	CheckOut string `json:"check_out"`
}

// PUT /api/stays/:id/checkout-date; an empty check_out makes the stay open-ended.
func (c *StayController) SetCheckOutDate(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req checkOutDateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	checkOut, err := utils.ParseOptionalDate(req.CheckOut)
	if err != nil {
		badRequest(ctx, err)
		return
	}
	stay, err := c.Svc.SetCheckOut(ctx.Request.Context(), id, checkOut)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, stay)
}

func (c *StayController) GetStatement(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	st, err := c.Svc.Statement(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, st)
}

// POST /api/stays/:id/checkout {"pay_in_full":false,"debtor":"company","debt_notes":"..."}
func (c *StayController) Checkout(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.CheckoutInput
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&in); err != nil {
			badRequest(ctx, err)
			return
		}
	}
	result, err := c.Svc.Checkout(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, result)
}
