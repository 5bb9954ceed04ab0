package controllers

import (
	"context"
	"net/http"
	"strconv"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type RoomRegistry interface {
	Create(ctx context.Context, in services.RoomInput) (*models.Room, error)
	Update(ctx context.Context, id uint, in services.RoomInput) (*models.Room, error)
	GetAll(ctx context.Context, f services.RoomFilter) ([]models.Room, error)
	GetByID(ctx context.Context, id uint) (*models.Room, error)
	ChangeState(ctx context.Context, id uint, state models.RoomState) (*models.Room, error)
	Delete(ctx context.Context, id uint) error
	Available(ctx context.Context, r models.DateRange) ([]models.Room, error)
}

type RoomController struct {
	Svc RoomRegistry
}

func NewRoomController(svc RoomRegistry) *RoomController {
	return &RoomController{Svc: svc}
}

// GET /api/rooms?state=available&floor=2
func (c *RoomController) GetRooms(ctx *gin.Context) {
	f := services.RoomFilter{State: models.RoomState(ctx.Query("state"))}
	if raw := ctx.Query("floor"); raw != "" {
		floor, err := strconv.Atoi(raw)
		if err != nil {
			utils.JSONError(ctx, http.StatusBadRequest, "bad_request", "invalid floor", nil)
			return
		}
		f.Floor = &floor
	}
	rooms, err := c.Svc.GetAll(ctx.Request.Context(), f)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rooms)
}

func (c *RoomController) GetRoom(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	room, err := c.Svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

// GET /api/rooms/available?from=2024-01-01&to=2024-01-04 (to may be omitted for open-ended)
func (c *RoomController) GetAvailableRooms(ctx *gin.Context) {
	r, ok := rangeFromQuery(ctx, "from", "to")
	if !ok {
		return
	}
	rooms, err := c.Svc.Available(ctx.Request.Context(), r)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, rooms)
}

func (c *RoomController) CreateRoom(ctx *gin.Context) {
	var in services.RoomInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, room)
}

func (c *RoomController) UpdateRoom(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.RoomInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := c.Svc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

type roomStateRequest struct {
	State models.RoomState `json:"state" binding:"required"`
}

// PATCH /api/rooms/:id/state
func (c *RoomController) ChangeRoomState(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req roomStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	room, err := c.Svc.ChangeState(ctx.Request.Context(), id, req.State)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, room)
}

func (c *RoomController) DeleteRoom(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.Svc.Delete(ctx.Request.Context(), id); err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, gin.H{"message": "Room deleted"})
}

// rangeFromQuery builds a DateRange from two query parameters; the end parameter is optional.
func rangeFromQuery(ctx *gin.Context, startKey, endKey string) (models.DateRange, bool) {
	start, err := utils.ParseDate(ctx.Query(startKey))
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "bad_request", startKey+": "+err.Error(), nil)
		return models.DateRange{}, false
	}
	end, err := utils.ParseOptionalDate(ctx.Query(endKey))
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "bad_request", endKey+": "+err.Error(), nil)
		return models.DateRange{}, false
	}
	if end != nil && !end.After(start) {
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", endKey+" must be after "+startKey, gin.H{"field": endKey})
		return models.DateRange{}, false
	}
	return models.RangeOf(start, end), true
}
