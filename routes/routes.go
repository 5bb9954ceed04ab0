package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hotel-frontdesk/controllers"
	"hotel-frontdesk/middleware"
)

// Controllers groups every handler set mounted under /api.
type Controllers struct {
	RoomTypes    *controllers.RoomTypeController
	Rooms        *controllers.RoomController
	Guests       *controllers.GuestController
	Companies    *controllers.CompanyController
	Products     *controllers.ProductController
	Reservations *controllers.ReservationController
	Stays        *controllers.StayController
	Billing      *controllers.BillingController
	Reports      *controllers.ReportController
	Settings     *controllers.SettingsController
}

// SetupRouter wires middleware, CORS and the API routes.
func SetupRouter(h Controllers, corsOrigins []string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	allowCredentials := true
	for _, origin := range corsOrigins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Actor"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		roomTypes := api.Group("/room-types")
		{
			roomTypes.GET("", h.RoomTypes.GetRoomTypes)
			roomTypes.GET("/:id", h.RoomTypes.GetRoomType)
			roomTypes.POST("", h.RoomTypes.CreateRoomType)
			roomTypes.PUT("/:id", h.RoomTypes.UpdateRoomType)
			roomTypes.DELETE("/:id", h.RoomTypes.DeleteRoomType)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", h.Rooms.GetRooms)
			// must stay ahead of /:id
			rooms.GET("/available", h.Rooms.GetAvailableRooms)
			rooms.GET("/:id", h.Rooms.GetRoom)
			rooms.POST("", h.Rooms.CreateRoom)
			rooms.PUT("/:id", h.Rooms.UpdateRoom)
			rooms.PATCH("/:id/state", h.Rooms.ChangeRoomState)
			rooms.DELETE("/:id", h.Rooms.DeleteRoom)
		}

		guests := api.Group("/guests")
		{
			guests.GET("", h.Guests.GetGuests)
			guests.GET("/:id", h.Guests.GetGuestByID)
			guests.POST("", h.Guests.CreateGuest)
			guests.PUT("/:id", h.Guests.UpdateGuest)
		}

		companies := api.Group("/companies")
		{
			companies.GET("", h.Companies.GetCompanies)
			companies.GET("/:id", h.Companies.GetCompany)
			companies.POST("", h.Companies.CreateCompany)
			companies.PUT("/:id", h.Companies.UpdateCompany)
			companies.PATCH("/:id/active", h.Companies.SetCompanyActive)
		}

		products := api.Group("/products")
		{
			products.GET("", h.Products.GetProducts)
			products.GET("/:id", h.Products.GetProduct)
			products.POST("", h.Products.CreateProduct)
			products.PUT("/:id", h.Products.UpdateProduct)
			products.PUT("/:id/stock", h.Products.AdjustStock)
			products.GET("/:id/movements", h.Products.GetMovements)
		}
		api.GET("/product-categories", h.Products.GetCategories)
		api.POST("/product-categories", h.Products.CreateCategory)
		api.GET("/service-types", h.Products.GetServiceTypes)
		api.POST("/service-types", h.Products.CreateServiceType)
		api.PATCH("/service-types/:id/active", h.Products.SetServiceTypeActive)

		reservations := api.Group("/reservations")
		{
			reservations.GET("", h.Reservations.GetReservations)
			reservations.GET("/availability", h.Reservations.CheckAvailability)
			reservations.GET("/:id", h.Reservations.GetReservation)
			reservations.POST("", h.Reservations.CreateReservation)
			reservations.PUT("/:id", h.Reservations.UpdateReservation)
			reservations.POST("/:id/confirm", h.Reservations.ConfirmReservation)
			reservations.POST("/:id/cancel", h.Reservations.CancelReservation)
			reservations.POST("/:id/convert", h.Reservations.ConvertReservation)
		}

		stays := api.Group("/stays")
		{
			stays.GET("", h.Stays.GetStays)
			stays.GET("/:id", h.Stays.GetStay)
			stays.POST("", h.Stays.CreateStay)
			stays.POST("/:id/confirm", h.Stays.ConfirmStay)
			stays.POST("/:id/start", h.Stays.StartStay)
			stays.POST("/:id/cancel", h.Stays.CancelStay)
			stays.PUT("/:id/checkout-date", h.Stays.SetCheckOutDate)
			stays.GET("/:id/statement", h.Stays.GetStatement)
			stays.POST("/:id/checkout", h.Stays.Checkout)

			stays.GET("/:id/lines", h.Billing.GetLines)
			stays.POST("/:id/consumptions", h.Billing.AddConsumption)
			stays.POST("/:id/services", h.Billing.AddService)
			stays.POST("/:id/adjustments", h.Billing.AddAdjustment)
			stays.GET("/:id/payments", h.Billing.GetPayments)
			stays.POST("/:id/payments", h.Billing.RegisterPayment)
			stays.GET("/:id/invoice", h.Billing.GetStayInvoice)
			stays.POST("/:id/invoice", h.Billing.GenerateInvoice)
		}

		api.DELETE("/adjustments/:id", h.Billing.RemoveAdjustment)
		api.PATCH("/adjustments/:id/active", h.Billing.SetAdjustmentActive)
		api.GET("/invoices/:id", h.Billing.GetInvoice)

		api.GET("/reports/accounting.csv", h.Reports.AccountingCSV)
		api.GET("/dashboard", h.Reports.GetDashboard)

		api.GET("/settings", h.Settings.GetHotelSettings)
		api.PUT("/settings", h.Settings.UpdateHotelSettings)
	}

	return r
}
