package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type CompanyRegistry interface {
	Create(ctx context.Context, in services.CompanyInput) (*models.Company, error)
	Update(ctx context.Context, id uint, in services.CompanyInput) (*models.Company, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.Company, error)
	GetByID(ctx context.Context, id uint) (*models.Company, error)
	GetAll(ctx context.Context, onlyActive bool) ([]models.Company, error)
}

type CompanyController struct {
	Svc CompanyRegistry
}

func NewCompanyController(svc CompanyRegistry) *CompanyController {
	return &CompanyController{Svc: svc}
}

func (c *CompanyController) GetCompanies(ctx *gin.Context) {
	companies, err := c.Svc.GetAll(ctx.Request.Context(), queryBool(ctx, "active"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, companies)
}

func (c *CompanyController) GetCompany(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	company, err := c.Svc.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, company)
}

func (c *CompanyController) CreateCompany(ctx *gin.Context) {
	var in services.CompanyInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	company, err := c.Svc.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, company)
}

func (c *CompanyController) UpdateCompany(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.CompanyInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	company, err := c.Svc.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, company)
}

type activeRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// PATCH /api/companies/:id/active
func (c *CompanyController) SetCompanyActive(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req activeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	company, err := c.Svc.SetActive(ctx.Request.Context(), id, *req.Active)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, company)
}
