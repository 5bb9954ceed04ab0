package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const defaultMinStock = 1

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductInput struct {
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	CategoryID uint            `json:"category_id"`
	Price      decimal.Decimal `json:"price"`
	Stock      int             `json:"stock"`
	MinStock   *int            `json:"min_stock"`
	Unit       string          `json:"unit"`
	Active     *bool           `json:"active"`
}

func (in *ProductInput) normalize() error {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	if in.Code == "" {
		return invalid("code", "is required")
	}
	if in.Name == "" {
		return invalid("name", "is required")
	}
	if !in.Price.IsPositive() {
		return invalid("price", "must be greater than zero")
	}
	if in.Stock < 0 {
		return invalid("stock", "must not be negative")
	}
	if in.MinStock != nil && *in.MinStock < 0 {
		return invalid("min_stock", "must not be negative")
	}
	if in.Unit == "" {
		in.Unit = "unit"
	}
	return nil
}

type ProductFilter struct {
	LowStock   bool
	OnlyActive bool
	CategoryID uint
}

// ProductService is the inventory of chargeable products and their categories.
type ProductService struct {
	DB *gorm.DB
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{DB: db}
}

// ----------------------------------------------------
// CATEGORIES
// ----------------------------------------------------
func (s *ProductService) CreateCategory(ctx context.Context, in CategoryInput) (*models.ProductCategory, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return nil, invalid("name", "is required")
	}
	cat := models.ProductCategory{Name: in.Name, Description: in.Description}
	if err := s.DB.WithContext(ctx).Create(&cat).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, &ConflictError{Message: fmt.Sprintf("category '%s' already exists", in.Name), Reference: in.Name}
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &cat, nil
}

func (s *ProductService) GetCategories(ctx context.Context) ([]models.ProductCategory, error) {
	var cats []models.ProductCategory
	err := s.DB.WithContext(ctx).Order("name").Find(&cats).Error
	return cats, err
}

// ----------------------------------------------------
// PRODUCTS
// ----------------------------------------------------
func (s *ProductService) Create(ctx context.Context, in ProductInput) (*models.Product, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	product := models.Product{MinStock: defaultMinStock, Active: true}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkCategory(tx, in.CategoryID); err != nil {
			return err
		}
		in.apply(&product)
		if err := tx.Omit("Category").Create(&product).Error; err != nil {
			if isDuplicateKey(err) {
				return productCodeTaken(in.Code)
			}
			return fmt.Errorf("failed to create product: %w", err)
		}
		if product.Stock > 0 {
			return recordMovement(tx, product.ID, models.StockManualAdjustment, 0, product.Stock, "initial stock", nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("product created", zap.String("code", product.Code))
	return s.GetByID(ctx, product.ID)
}

// Update edits the catalog fields. Stock changes go through AdjustStock so that every change is recorded.
func (s *ProductService) Update(ctx context.Context, id uint, in ProductInput) (*models.Product, error) {
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			return findErr(err, "product", id)
		}
		in.Stock = product.Stock
		if err := in.normalize(); err != nil {
			return err
		}
		if err := s.checkCategory(tx, in.CategoryID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.Product{}).Where("code = ? AND id <> ?", in.Code, id).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return productCodeTaken(in.Code)
		}
		in.apply(&product)
		return tx.Omit("Category").Save(&product).Error
	})
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// AdjustStock sets a product's stock to an absolute count after a physical recount or restock.
func (s *ProductService) AdjustStock(ctx context.Context, id uint, newStock int, reason string) (*models.Product, error) {
	if newStock < 0 {
		return nil, invalid("stock", "must not be negative")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, invalid("reason", "is required")
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Clauses(forUpdate).First(&product, id).Error; err != nil {
			return findErr(err, "product", id)
		}
		if product.Stock == newStock {
			return nil
		}
		if err := tx.Model(&product).Update("stock", newStock).Error; err != nil {
			return err
		}
		return recordMovement(tx, id, models.StockManualAdjustment, product.Stock, newStock, reason, nil)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("stock adjusted", zap.Uint("product_id", id), zap.Int("stock", newStock), zap.String("reason", reason))
	return s.GetByID(ctx, id)
}

func (s *ProductService) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.DB.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		return nil, findErr(err, "product", id)
	}
	return &product, nil
}

func (s *ProductService) GetAll(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	var products []models.Product
	q := s.DB.WithContext(ctx).Preload("Category").Order("name")
	if f.OnlyActive {
		q = q.Where("active = ?", true)
	}
	if f.CategoryID != 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.LowStock {
		q = q.Where("stock <= min_stock")
	}
	err := q.Find(&products).Error
	return products, err
}

func (s *ProductService) Movements(ctx context.Context, productID uint) ([]models.StockMovement, error) {
	var moves []models.StockMovement
	err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("id DESC").Find(&moves).Error
	return moves, err
}

func (s *ProductService) checkCategory(tx *gorm.DB, id uint) error {
	if err := tx.First(&models.ProductCategory{}, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return invalid("category_id", "category %d does not exist", id)
		}
		return err
	}
	return nil
}

func (in ProductInput) apply(p *models.Product) {
	p.Code = in.Code
	p.Name = in.Name
	p.CategoryID = in.CategoryID
	p.Price = in.Price
	p.Stock = in.Stock
	p.Unit = in.Unit
	if in.MinStock != nil {
		p.MinStock = *in.MinStock
	}
	if in.Active != nil {
		p.Active = *in.Active
	}
}

func productCodeTaken(code string) error {
	return &ConflictError{Message: fmt.Sprintf("product code '%s' already exists", code), Reference: code}
}

func recordMovement(tx *gorm.DB, productID uint, kind models.StockMovementKind, before, after int, reason string, stayID *uint) error {
	move := models.StockMovement{
		ProductID: productID,
		Kind:      kind,
		Quantity:  after - before,
		Before:    before,
		After:     after,
		Reason:    reason,
		StayID:    stayID,
	}
	if err := tx.Create(&move).Error; err != nil {
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}
