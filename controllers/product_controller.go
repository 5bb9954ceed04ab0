package controllers

import (
	"context"
	"net/http"

	"hotel-frontdesk/models"
	"hotel-frontdesk/services"
	"hotel-frontdesk/utils"

	"github.com/gin-gonic/gin"
)

type Inventory interface {
	CreateCategory(ctx context.Context, in services.CategoryInput) (*models.ProductCategory, error)
	GetCategories(ctx context.Context) ([]models.ProductCategory, error)
	Create(ctx context.Context, in services.ProductInput) (*models.Product, error)
	Update(ctx context.Context, id uint, in services.ProductInput) (*models.Product, error)
	AdjustStock(ctx context.Context, id uint, newStock int, reason string) (*models.Product, error)
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetAll(ctx context.Context, f services.ProductFilter) ([]models.Product, error)
	Movements(ctx context.Context, productID uint) ([]models.StockMovement, error)
}

type ServiceCatalog interface {
	Create(ctx context.Context, in services.ServiceTypeInput) (*models.ServiceType, error)
	GetAll(ctx context.Context, onlyActive bool) ([]models.ServiceType, error)
	SetActive(ctx context.Context, id uint, active bool) (*models.ServiceType, error)
}

type ProductController struct {
	Products Inventory
	Services ServiceCatalog
}

func NewProductController(products Inventory, serviceTypes ServiceCatalog) *ProductController {
	return &ProductController{Products: products, Services: serviceTypes}
}

// ----------------------------------------------------------------------
// Products
// ----------------------------------------------------------------------

// GET /api/products?low_stock=true&active=true&category_id=1
func (c *ProductController) GetProducts(ctx *gin.Context) {
	categoryID, ok := queryUint(ctx, "category_id")
	if !ok {
		return
	}
	products, err := c.Products.GetAll(ctx.Request.Context(), services.ProductFilter{
		LowStock:   queryBool(ctx, "low_stock"),
		OnlyActive: queryBool(ctx, "active"),
		CategoryID: categoryID,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, products)
}

func (c *ProductController) GetProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	product, err := c.Products.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, product)
}

func (c *ProductController) CreateProduct(ctx *gin.Context) {
	var in services.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	product, err := c.Products.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, product)
}

func (c *ProductController) UpdateProduct(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var in services.ProductInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	product, err := c.Products.Update(ctx.Request.Context(), id, in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, product)
}

type stockRequest struct {
	Stock  *int   `json:"stock" binding:"required"`
	Reason string `json:"reason"`
}

// PUT /api/products/:id/stock
func (c *ProductController) AdjustStock(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req stockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	product, err := c.Products.AdjustStock(ctx.Request.Context(), id, *req.Stock, req.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, product)
}

func (c *ProductController) GetMovements(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	moves, err := c.Products.Movements(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, moves)
}

// ----------------------------------------------------------------------
// Categories
// ----------------------------------------------------------------------
func (c *ProductController) GetCategories(ctx *gin.Context) {
	cats, err := c.Products.GetCategories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, cats)
}

func (c *ProductController) CreateCategory(ctx *gin.Context) {
	var in services.CategoryInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	cat, err := c.Products.CreateCategory(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, cat)
}

// ----------------------------------------------------------------------
// Service types
// ----------------------------------------------------------------------
func (c *ProductController) GetServiceTypes(ctx *gin.Context) {
	types, err := c.Services.GetAll(ctx.Request.Context(), queryBool(ctx, "active"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, types)
}

func (c *ProductController) CreateServiceType(ctx *gin.Context) {
	var in services.ServiceTypeInput
	if err := ctx.ShouldBindJSON(&in); err != nil {
		badRequest(ctx, err)
		return
	}
	st, err := c.Services.Create(ctx.Request.Context(), in)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, st)
}

func (c *ProductController) SetServiceTypeActive(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req activeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, err)
		return
	}
	st, err := c.Services.SetActive(ctx.Request.Context(), id, *req.Active)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, st)
}
