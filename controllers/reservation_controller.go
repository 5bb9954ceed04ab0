package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type ReservationManager interface {
	Create(ctx context.Context, in services.ReservationInput) (*models.Reservation, error)
	Update(ctx context.Context, id uint, in services.ReservationInput) (*models.Reservation, error)
	VerifyAvailability(ctx context.Context, roomID uint, r models.DateRange, excludeReservation, excludeStay uint) error
	Confirm(ctx context.Context, id uint) (*models.Reservation, error)
	Cancel(ctx context.Context, id uint) (*models.Reservation, error)
	ConvertToStay(ctx context.Context, id uint, stayType models.StayType, actor string) (*models.Stay, error)
	GetByID(ctx context.Context, id uint) (*models.Reservation, error)
	GetAll(ctx context.Context, f services.ReservationFilter) ([]models.Reservation, error)
}

type ReservationController struct {
	Svc ReservationManager
}

func NewReservationController(svc ReservationManager) *ReservationController {
	return &ReservationController{Svc: svc}
}

type reservationRequest struct {
	GuestID          uint                `json:"guest_id" binding:"required"`
	CompanyID        *uint               `json:"company_id"`
	RoomID           uint                `json:"room_id" binding:"required"`
	ExpectedCheckIn  string              `json:"expected_check_in" binding:"required"`
	ExpectedCheckOut string              `json:"expected_check_out"`
	Guests           int                 `json:"guests"`
	AgreedPrice      decimal.NullDecimal `json:"agreed_price"`
	Notes            string              `json:"notes"`
}

func (c *ReservationController) bind(ctx *gin.Context) (services.ReservationInput, bool) {
	var req reservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return services.ReservationInput{}, false
	}
	checkIn, err := utils.ParseDate(req.ExpectedCheckIn)
	if err != nil {
		badRequest(ctx, err)
		return services.ReservationInput{}, false
	}
	checkOut, err := utils.ParseOptionalDate(req.ExpectedCheckOut)
	if err != nil {
		badRequest(ctx, err)
		return services.ReservationInput{}, false
	}
	if req.Guests == 0 {
		req.Guests = 1
	}
	return services.ReservationInput{
		GuestID:          req.GuestID,
		CompanyID:        req.CompanyID,
		RoomID:           req.RoomID,
		ExpectedCheckIn:  checkIn,
		ExpectedCheckOut: checkOut,
		Guests:           req.Guests,
		AgreedPrice:      req.AgreedPrice,
		Notes:            req.Notes,
		CreatedBy:        actor(ctx),
	}, true
}

// GET /api/reservations?state=pending&room_id=3
func (c *ReservationController) GetReservations(ctx *gin.Context) {
	roomID, ok := queryUint(ctx, "room_id")
	if !ok {
		return
	}
	list, err := c.Svc.GetAll(ctx.Request.Context(), services.ReservationFilter{
		State:  models.ReservationState(ctx.Query("state")),
		RoomID: roomID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, list)
}

func (c *ReservationController) GetReservation(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.Svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

func (c *ReservationController) CreateReservation(ctx *gin.Context) {
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	res, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, res)
}

func (c *ReservationController) UpdateReservation(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	res, err := c.Svc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

// GET /api/reservations/availability?room_id=1&from=2024-01-01&to=2024-01-04&exclude=7
func (c *ReservationController) CheckAvailability(ctx *gin.Context) {
	roomID, ok := queryUint(ctx, "room_id")
	if !ok {
		return
	}
	if roomID == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "bad_request", "room_id is required", nil)
		return
	}
	exclude, ok := queryUint(ctx, "exclude")
	if !ok {
		return
	}
	r, ok := rangeFromQuery(ctx, "from", "to")
	if !ok {
		return
	}
	if err := c.Svc.VerifyAvailability(ctx.Request.Context(), roomID, r, exclude, 0); err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"available": true})
}

func (c *ReservationController) ConfirmReservation(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.Svc.Confirm(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

func (c *ReservationController) CancelReservation(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	res, err := c.Svc.Cancel(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, res)
}

type convertRequest struct {
	StayType models.StayType `json:"stay_type"`
}

// POST /api/reservations/:id/convert
func (c *ReservationController) ConvertReservation(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req convertRequest
	if ctx.Request.ContentLength != 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}
	}
	stay, err := c.Svc.ConvertToStay(ctx.Request.Context(), id, req.StayType, actor(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, stay)
}
