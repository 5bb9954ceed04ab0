package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type GuestRegistry interface {
	Create(ctx context.Context, in services.GuestInput) (*models.Guest, error)
	Update(ctx context.Context, id uint, in services.GuestInput) (*models.Guest, error)
	GetByID(ctx context.Context, id uint) (*models.Guest, error)
	GetAll(ctx context.Context, search string) ([]models.Guest, error)
}

type GuestController struct {
	GuestSvc GuestRegistry
}

func NewGuestController(svc GuestRegistry) *GuestController {
	return &GuestController{GuestSvc: svc}
}

// guestRequest carries the birth date as a plain YYYY-MM-DD string.
type guestRequest struct {
	FirstName      string              `json:"first_name"`
	LastName       string              `json:"last_name"`
	DocumentType   models.DocumentType `json:"document_type"`
	DocumentNumber string              `json:"document_number"`
	Phone          string              `json:"phone"`
	Email          string              `json:"email"`
	Address        string              `json:"address"`
	BirthDate      string              `json:"birth_date"`
	CompanyID      *uint               `json:"company_id"`
}

func (r guestRequest) input() (services.GuestInput, error) {
	birth, err := utils.ParseOptionalDate(r.BirthDate)
	if err != nil {
		return services.GuestInput{}, err
	}
	return services.GuestInput{
		FirstName:      r.FirstName,
		LastName:       r.LastName,
		DocumentType:   r.DocumentType,
		DocumentNumber: r.DocumentNumber,
		Phone:          r.Phone,
		Email:          r.Email,
		Address:        r.Address,
		BirthDate:      birth,
		CompanyID:      r.CompanyID,
	}, nil
}

func (c *GuestController) bind(ctx *gin.Context) (services.GuestInput, bool) {
	var req guestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return services.GuestInput{}, false
	}
	in, err := req.input()
	if err != nil {
		badRequest(ctx, err)
		return in, false
	}
	return in, true
}

// GET /api/guests?q=smith
func (c *GuestController) GetGuests(ctx *gin.Context) {
	guests, err := c.GuestSvc.GetAll(ctx.Request.Context(), ctx.Query("q"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guests)
}

func (c *GuestController) GetGuestByID(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	guest, err := c.GuestSvc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}

func (c *GuestController) CreateGuest(ctx *gin.Context) {
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	guest, err := c.GuestSvc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, guest)
}

func (c *GuestController) UpdateGuest(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	in, ok := c.bind(ctx)
	if !ok {
		return
	}
	guest, err := c.GuestSvc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}
