package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-frontdesk/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func mysqlDSNFromURL(raw string) (string, string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode())
	return dsn, dbName, nil
}

func resolveMySQLDSN() (string, string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, strings.TrimSpace(os.Getenv("DB_NAME")), nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := os.Getenv("DB_PASS")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "hotel_frontdesk")

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	)
	return dsn, dbName, nil
}

// ConnectDatabase opens the MySQL store, migrates it and optionally seeds reference data.
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{Logger: gormLogger, TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if cfg.Seed {
		SeedDatabase(db)
	}

	DB = db
	return db, nil
}

// Migrate creates or updates every table in parent->child order.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.RoomType{},
		&models.Room{},
		&models.Company{},
		&models.Guest{},
		&models.ProductCategory{},
		&models.Product{},
		&models.ServiceType{},
		&models.Stay{},
		&models.Reservation{},
		&models.ConsumptionLine{},
		&models.StockMovement{},
		&models.ServiceLine{},
		&models.PriceAdjustment{},
		&models.Payment{},
		&models.Invoice{},
		&models.HotelSetting{},
	)
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// SeedDatabase inserts the reference catalog on an empty database.
func SeedDatabase(db *gorm.DB) {
	// ---------------- RoomTypes + Rooms ----------------
	var rtCount int64
	db.Model(&models.RoomType{}).Count(&rtCount)
	if rtCount == 0 {
		roomTypes := []models.RoomType{
			{Name: "Single", NightlyPrice: price("80.00"), Capacity: 1, Description: "Single room with one bed"},
			{Name: "Double", NightlyPrice: price("120.00"), Capacity: 2, Description: "Double room with queen bed"},
			{Name: "Suite", NightlyPrice: price("200.00"), Capacity: 4, Description: "Suite with separate living room"},
			{Name: "Family", NightlyPrice: price("150.00"), Capacity: 6, Description: "Family room with bunk beds"},
		}
		if err := db.Create(&roomTypes).Error; err != nil {
			zap.L().Warn("failed to seed room types", zap.Error(err))
		} else {
			rooms := make([]models.Room, 0, 15)
			for floor := 1; floor <= 3; floor++ {
				for n := 1; n <= 5; n++ {
					rooms = append(rooms, models.Room{
						Number:      fmt.Sprintf("%d0%d", floor, n),
						RoomTypeID:  roomTypes[n%len(roomTypes)].ID,
						Floor:       floor,
						State:       models.RoomAvailable,
						Description: fmt.Sprintf("Room %d0%d on floor %d", floor, n, floor),
					})
				}
			}
			if err := db.Create(&rooms).Error; err != nil {
				zap.L().Warn("failed to seed rooms", zap.Error(err))
			}
			zap.L().Info("room types and rooms seeded", zap.Int("rooms", len(rooms)))
		}
	}

	// ---------------- Products ----------------
	var catCount int64
	db.Model(&models.ProductCategory{}).Count(&catCount)
	if catCount == 0 {
		categories := []models.ProductCategory{
			{Name: "Drinks", Description: "Alcoholic and non-alcoholic drinks"},
			{Name: "Snacks", Description: "Snacks and appetizers"},
			{Name: "Amenities", Description: "Toiletries and comfort items"},
		}
		if err := db.Create(&categories).Error; err != nil {
			zap.L().Warn("failed to seed product categories", zap.Error(err))
		} else {
			products := []models.Product{
				{Code: "DRK001", Name: "Still water 500ml", CategoryID: categories[0].ID, Price: price("2.50"), Stock: 100, MinStock: 20, Unit: "unit", Active: true},
				{Code: "DRK002", Name: "Cola 355ml", CategoryID: categories[0].ID, Price: price("3.00"), Stock: 80, MinStock: 15, Unit: "unit", Active: true},
				{Code: "DRK003", Name: "Local beer", CategoryID: categories[0].ID, Price: price("4.50"), Stock: 60, MinStock: 12, Unit: "unit", Active: true},
				{Code: "SNK001", Name: "Potato chips", CategoryID: categories[1].ID, Price: price("2.00"), Stock: 50, MinStock: 10, Unit: "bag", Active: true},
				{Code: "AMN001", Name: "Toothbrush kit", CategoryID: categories[2].ID, Price: price("3.50"), Stock: 40, MinStock: 10, Unit: "kit", Active: true},
			}
			if err := db.Create(&products).Error; err != nil {
				zap.L().Warn("failed to seed products", zap.Error(err))
			}
			zap.L().Info("product catalog seeded", zap.Int("products", len(products)))
		}
	}

	// ---------------- Service types ----------------
	var stCount int64
	db.Model(&models.ServiceType{}).Count(&stCount)
	if stCount == 0 {
		serviceTypes := []models.ServiceType{
			{Name: "Laundry", RequiresPrice: true, Active: true},
			{Name: "Airport transfer", SuggestedPrice: decimal.NewNullDecimal(price("25.00")), RequiresPrice: false, Active: true},
			{Name: "Late checkout", SuggestedPrice: decimal.NewNullDecimal(price("30.00")), RequiresPrice: false, Active: true},
		}
		if err := db.Create(&serviceTypes).Error; err != nil {
			zap.L().Warn("failed to seed service types", zap.Error(err))
		}
	}
}
