package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type SettingsStore interface {
	Get(ctx context.Context) (*models.HotelSetting, error)
	Update(ctx context.Context, in services.SettingsInput) (*models.HotelSetting, error)
}

type SettingsController struct {
	Svc SettingsStore
}

func NewSettingsController(svc SettingsStore) *SettingsController {
	return &SettingsController{Svc: svc}
}

func (c *SettingsController) GetHotelSettings(ctx *gin.Context) {
	hotel, err := c.Svc.Get(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, hotel)
}

// PUT /api/settings {"name":"...","tax_id":"...","tax_rate":"0.16"}; a null tax_rate falls back to TAX_RATE.
func (c *SettingsController) UpdateHotelSettings(ctx *gin.Context) {
	var in services.SettingsInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	hotel, err := c.Svc.Update(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, hotel)
}
