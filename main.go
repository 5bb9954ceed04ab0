package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"hotel-frontdesk/config"
	"hotel-frontdesk/controllers"
	"hotel-frontdesk/routes"
	"hotel-frontdesk/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ config: %v", err)
	}

	logger, err := config.InitLogger(cfg.LogMode, cfg.LogFile)
	if err != nil {
		log.Fatalf("❌ logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Timezone != "" && cfg.Timezone != "Local" {
		loc, err := time.LoadLocation(cfg.Timezone)
		if err != nil {
			logger.Fatal("invalid TZ_LOCATION", zap.String("tz", cfg.Timezone), zap.Error(err))
		}
		time.Local = loc
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	logger.Info("database ready", zap.String("db", cfg.DBName), zap.Bool("seeded", cfg.Seed))

	clock := services.Clock(services.SystemClock)

	// Services
	roomTypeService := services.NewRoomTypeService(db)
	roomService := services.NewRoomService(db)
	guestService := services.NewGuestService(db)
	companyService := services.NewCompanyService(db)
	productService := services.NewProductService(db)
	serviceTypeService := services.NewServiceTypeService(db)
	reservationService := services.NewReservationService(db, clock)
	stayService := services.NewStayService(db, clock)
	ledgerService := services.NewLedgerService(db)
	paymentService := services.NewPaymentService(db, clock)
	invoiceService := services.NewInvoiceService(db, cfg.TaxRate, clock)
	exportService := services.NewExportService(db)
	dashboardService := services.NewDashboardService(db, clock)
	settingsService := services.NewSettingsService(db)

	router := routes.SetupRouter(routes.Controllers{
		RoomTypes:    controllers.NewRoomTypeController(roomTypeService),
		Rooms:        controllers.NewRoomController(roomService),
		Guests:       controllers.NewGuestController(guestService),
		Companies:    controllers.NewCompanyController(companyService),
		Products:     controllers.NewProductController(productService, serviceTypeService),
		Reservations: controllers.NewReservationController(reservationService),
		Stays:        controllers.NewStayController(stayService),
		Billing:      controllers.NewBillingController(ledgerService, paymentService, invoiceService),
		Reports:      controllers.NewReportController(exportService, dashboardService),
		Settings:     controllers.NewSettingsController(settingsService),
	}, cfg.CORSOrigins)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.String("addr", addr), zap.String("tax_rate", cfg.TaxRate.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("ListenAndServe", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}
	logger.Info("server stopped gracefully")
}
