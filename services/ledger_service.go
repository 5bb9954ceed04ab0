package services

import (
	"context"
	"fmt"
	"strings"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ConsumptionInput struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	CreatedBy string `json:"-"`
}

type ServiceInput struct {
	ServiceTypeID uint                `json:"service_type_id"`
	Quantity      int                 `json:"quantity"`
	Price         decimal.NullDecimal `json:"price"`
	Notes         string              `json:"notes"`
}

type AdjustmentInput struct {
	Kind         models.AdjustmentKind `json:"kind"`
	Label        string                `json:"label"`
	IsPercentage bool                  `json:"is_percentage"`
	Amount       decimal.Decimal       `json:"amount"`
	Percentage   decimal.Decimal       `json:"percentage"`
	CreatedBy    string                `json:"-"`
}

func (in *AdjustmentInput) normalize() error {
	in.Label = strings.TrimSpace(in.Label)
	if !in.Kind.Valid() {
		return invalid("kind", "unknown adjustment kind %q", in.Kind)
	}
	if in.Label == "" {
		return invalid("label", "is required")
	}
	if in.IsPercentage {
		if !in.Percentage.IsPositive() {
			return invalid("percentage", "must be greater than zero")
		}
		if in.Percentage.GreaterThan(decimal.NewFromInt(100)) && in.Kind == models.AdjustmentDiscount {
			return invalid("percentage", "a discount cannot exceed 100%%")
		}
		in.Amount = decimal.Zero
		return nil
	}
	if !in.Amount.IsPositive() {
		return invalid("amount", "must be greater than zero")
	}
	in.Percentage = decimal.Zero
	return nil
}

// Lines is everything charged to a stay, as stored.
type Lines struct {
	Consumption []models.ConsumptionLine `json:"consumption"`
	Services    []models.ServiceLine     `json:"services"`
	Adjustments []models.PriceAdjustment `json:"adjustments"`
}

// LedgerService adds charge lines to open stays.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// AddConsumption charges a product at its current price and takes the quantity out of stock.
// Insufficient stock rejects the line and leaves the product untouched.
func (s *LedgerService) AddConsumption(ctx context.Context, stayID uint, in ConsumptionInput) (*models.ConsumptionLine, error) {
	if in.Quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	var line models.ConsumptionLine
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := requireOpenStay(tx, stayID, "charge consumption to")
		if err != nil {
			return err
		}
		var product models.Product
		if err := tx.Clauses(forUpdate).First(&product, in.ProductID).Error; err != nil {
			return asInputErr(findErr(err, "product", in.ProductID), "product_id")
		}
		if !product.Active {
			return invalid("product_id", "product %s is inactive", product.Code)
		}
		if product.Stock < in.Quantity {
			return &InsufficientStockError{ProductCode: product.Code, Available: product.Stock, Requested: in.Quantity}
		}

		line = models.ConsumptionLine{
			StayID:    stay.ID,
			ProductID: product.ID,
			Quantity:  in.Quantity,
			UnitPrice: product.Price,
			Subtotal:  product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			CreatedBy: in.CreatedBy,
		}
		if err := tx.Omit("Stay", "Product").Create(&line).Error; err != nil {
			return fmt.Errorf("failed to add consumption: %w", err)
		}
		after := product.Stock - in.Quantity
		if err := tx.Model(&product).Update("stock", after).Error; err != nil {
			return fmt.Errorf("failed to decrement stock of %s: %w", product.Code, err)
		}
		line.Product = product
		line.Product.Stock = after
		return recordMovement(tx, product.ID, models.StockConsumption, product.Stock, after, "stay "+stay.Code, &stay.ID)
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("consumption added", zap.Uint("stay_id", stayID),
		zap.String("product", line.Product.Code), zap.Int("quantity", line.Quantity))
	if line.Product.NeedsRestock() {
		zap.L().Warn("product needs restock", zap.String("product", line.Product.Code), zap.Int("stock", line.Product.Stock))
	}
	return &line, nil
}

// AddService charges an additional service. Without an explicit price the type's suggested
// price is used, unless the type requires one.
func (s *LedgerService) AddService(ctx context.Context, stayID uint, in ServiceInput) (*models.ServiceLine, error) {
	if in.Quantity == 0 {
		in.Quantity = 1
	}
	if in.Quantity < 1 {
		return nil, invalid("quantity", "must be at least 1")
	}
	var line models.ServiceLine
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := requireOpenStay(tx, stayID, "charge a service to")
		if err != nil {
			return err
		}
		var st models.ServiceType
		if err := tx.First(&st, in.ServiceTypeID).Error; err != nil {
			return asInputErr(findErr(err, "service type", in.ServiceTypeID), "service_type_id")
		}
		price, err := servicePrice(st, in.Price)
		if err != nil {
			return err
		}
		line = models.ServiceLine{
			StayID:        stay.ID,
			ServiceTypeID: st.ID,
			Quantity:      in.Quantity,
			Price:         price,
			Subtotal:      price.Mul(decimal.NewFromInt(int64(in.Quantity))),
			Notes:         in.Notes,
		}
		if err := tx.Omit("Stay", "ServiceType").Create(&line).Error; err != nil {
			return fmt.Errorf("failed to add service: %w", err)
		}
		line.ServiceType = st
		return nil
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("service added", zap.Uint("stay_id", stayID), zap.String("service", line.ServiceType.Name))
	return &line, nil
}

func servicePrice(st models.ServiceType, explicit decimal.NullDecimal) (decimal.Decimal, error) {
	if explicit.Valid {
		if !explicit.Decimal.IsPositive() {
			return decimal.Zero, invalid("price", "must be greater than zero")
		}
		return explicit.Decimal, nil
	}
	if st.RequiresPrice || !st.SuggestedPrice.Valid {
		return decimal.Zero, invalid("price", "service %s needs a price", st.Name)
	}
	return st.SuggestedPrice.Decimal, nil
}

func (s *LedgerService) AddAdjustment(ctx context.Context, stayID uint, in AdjustmentInput) (*models.PriceAdjustment, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var adj models.PriceAdjustment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stay, err := requireOpenStay(tx, stayID, "adjust the price of")
		if err != nil {
			return err
		}
		adj = models.PriceAdjustment{
			StayID:       stay.ID,
			Kind:         in.Kind,
			Label:        in.Label,
			IsPercentage: in.IsPercentage,
			Amount:       in.Amount,
			Percentage:   in.Percentage,
			Active:       true,
			CreatedBy:    in.CreatedBy,
		}
		return tx.Omit("Stay").Create(&adj).Error
	})
	if err != nil {
		return nil, err
	}
	zap.L().Info("adjustment added", zap.Uint("stay_id", stayID), zap.String("kind", string(adj.Kind)), zap.String("label", adj.Label))
	return &adj, nil
}

// RemoveAdjustment deletes the adjustment row. Use SetAdjustmentActive to keep it on record.
func (s *LedgerService) RemoveAdjustment(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		adj, err := s.openAdjustment(tx, id, "remove an adjustment of")
		if err != nil {
			return err
		}
		return tx.Delete(&adj).Error
	})
}

func (s *LedgerService) SetAdjustmentActive(ctx context.Context, id uint, active bool) (*models.PriceAdjustment, error) {
	var adj models.PriceAdjustment
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if adj, err = s.openAdjustment(tx, id, "toggle an adjustment of"); err != nil {
			return err
		}
		adj.Active = active
		return tx.Model(&adj).Update("active", active).Error
	})
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

func (s *LedgerService) openAdjustment(tx *gorm.DB, id uint, op string) (models.PriceAdjustment, error) {
	var adj models.PriceAdjustment
	if err := tx.First(&adj, id).Error; err != nil {
		return adj, findErr(err, "adjustment", id)
	}
	_, err := requireOpenStay(tx, adj.StayID, op)
	return adj, err
}

func (s *LedgerService) Lines(ctx context.Context, stayID uint) (*Lines, error) {
	db := s.DB.WithContext(ctx)
	if _, err := requireStay(db, stayID); err != nil {
		return nil, err
	}
	var out Lines
	if err := db.Preload("Product").Where("stay_id = ?", stayID).Order("id").Find(&out.Consumption).Error; err != nil {
		return nil, err
	}
	if err := db.Preload("ServiceType").Where("stay_id = ?", stayID).Order("id").Find(&out.Services).Error; err != nil {
		return nil, err
	}
	if err := db.Where("stay_id = ?", stayID).Order("id").Find(&out.Adjustments).Error; err != nil {
		return nil, err
	}
	return &out, nil
}
