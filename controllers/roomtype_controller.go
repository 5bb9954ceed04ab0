package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type RoomTypeCatalog interface {
	Create(ctx context.Context, in services.RoomTypeInput) (*models.RoomType, error)
	Update(ctx context.Context, id uint, in services.RoomTypeInput) (*models.RoomType, error)
	GetAll(ctx context.Context) ([]models.RoomType, error)
	GetByID(ctx context.Context, id uint) (*models.RoomType, error)
	Delete(ctx context.Context, id uint) error
}

type RoomTypeController struct {
	Svc RoomTypeCatalog
}

func NewRoomTypeController(svc RoomTypeCatalog) *RoomTypeController {
	return &RoomTypeController{Svc: svc}
}

func (c *RoomTypeController) GetRoomTypes(ctx *gin.Context) {
	types, err := c.Svc.GetAll(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, types)
}

func (c *RoomTypeController) GetRoomType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	rt, err := c.Svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rt)
}

func (c *RoomTypeController) CreateRoomType(ctx *gin.Context) {
	var in services.RoomTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	rt, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, rt)
}

func (c *RoomTypeController) UpdateRoomType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.RoomTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	rt, err := c.Svc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rt)
}

func (c *RoomTypeController) DeleteRoomType(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"message": "Room type deleted"})
}
