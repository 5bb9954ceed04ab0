package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps engine errors onto HTTP statuses. Anything unrecognised is a 500 and gets logged.
func respondError(ctx *gin.Context, err error) {
	var (
		verr  *services.ValidationError
		cerr  *services.ConflictError
		aerr  *services.AvailabilityError
		serr  *services.StateError
		stock *services.InsufficientStockError
		over  *services.OverpaymentError
	)
	switch {
	case errors.As(err, &verr):
		utils.JSONError(ctx, http.StatusBadRequest, "validation_error", verr.Error(), gin.H{"field": verr.Field})
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(ctx, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.As(err, &cerr):
		utils.JSONError(ctx, http.StatusConflict, "conflict", cerr.Error(), gin.H{"reference": cerr.Reference})
	case errors.As(err, &aerr):
		utils.JSONError(ctx, http.StatusConflict, "room_unavailable", aerr.Error(), gin.H{"reference": aerr.Reference, "kind": aerr.Kind})
	case errors.As(err, &serr):
		utils.JSONError(ctx, http.StatusConflict, "invalid_state", serr.Error(), gin.H{"reference": serr.Reference, "state": serr.State})
	case errors.As(err, &stock):
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "insufficient_stock", stock.Error(),
			gin.H{"reference": stock.ProductCode, "available": stock.Available, "requested": stock.Requested})
	case errors.As(err, &over):
		utils.JSONError(ctx, http.StatusUnprocessableEntity, "overpayment", over.Error(), gin.H{"balance_due": over.BalanceDue})
	default:
		zap.L().Error("request failed",
			zap.String("method", ctx.Request.Method),
			zap.String("path", ctx.FullPath()),
			zap.Error(err))
		utils.JSONError(ctx, http.StatusInternalServerError, "internal_error", "internal server error", nil)
	}
}

func badRequest(ctx *gin.Context, err error) {
	utils.JSONError(ctx, http.StatusBadRequest, "bad_request", err.Error(), nil)
}

// parseID reads a positive numeric path parameter; on failure it has already written the response.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.JSONError(ctx, http.StatusBadRequest, "bad_request", "invalid "+name, nil)
		return 0, false
	}
	return uint(id), true
}

func queryUint(ctx *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(ctx.Query(name))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		utils.JSONError(ctx, http.StatusBadRequest, "bad_request", "invalid "+name, nil)
		return 0, false
	}
	return uint(v), true
}

func queryBool(ctx *gin.Context, name string) bool {
	v, _ := strconv.ParseBool(ctx.Query(name))
	return v
}

// actor identifies the front-desk user issuing the request.
func actor(ctx *gin.Context) string {
	return strings.TrimSpace(ctx.GetHeader("X-Actor"))
}
