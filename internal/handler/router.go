package handler

import (
	"net/http"
	"time"

	"tour-admin/internal/events"
	"tour-admin/internal/middleware"
	"tour-admin/internal/notifier"
	"tour-admin/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Deps is everything the HTTP layer needs. Repositories are required;
// a nil Events or Notifiers falls back to a no-op.
type Deps struct {
	Bookings  *repository.BookingRepository
	Catalog   *repository.CatalogRepository
	Prices    *repository.PriceRepository
	Settings  *repository.SettingsRepository
	Events    events.Publisher
	Notifiers *notifier.Set

	CompanyName    string
	Timezone       string
	RateLimitRPS   float64
	RateLimitBurst int
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(d.RateLimitRPS, d.RateLimitBurst))

	r.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "method not allowed"})
	})
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", d.Timezone).Msg("unknown timezone, using UTC")
		loc = time.UTC
	}

	bookingHandler := NewBookingHandler(d.Bookings, d.Events, d.CompanyName)
	catalogHandler := NewCatalogHandler(d.Catalog)
	priceHandler := NewPriceHandler(d.Prices)
	settingsHandler := NewSettingsHandler(d.Settings)
	systemHandler := NewSystemHandler(d.Notifiers, loc)

	api := r.Group("/api")
	{
		bookings := api.Group("/bookings")
		bookings.GET("", bookingHandler.ListBookings)
		bookings.POST("", bookingHandler.ImportBookings)
		bookings.GET("/export", bookingHandler.ExportBookings)
		bookings.POST("/toggle", bookingHandler.ToggleFlag)
		bookings.POST("/classify-channels", bookingHandler.ClassifyChannels)
		bookings.PATCH("/payment", bookingHandler.UpdatePaymentLegacy)
		bookings.GET("/:booking_number", bookingHandler.GetBooking)
		bookings.PATCH("/:booking_number", bookingHandler.UpdatePaid)
		bookings.DELETE("/:booking_number", bookingHandler.DeleteBooking)
		bookings.PATCH("/:booking_number/cancel", bookingHandler.SetCancelled)

		api.GET("/prices", priceHandler.ListPrices)
		api.PATCH("/prices", priceHandler.UpdatePrice)

		api.GET("/products", catalogHandler.ListProducts)
		api.POST("/products", catalogHandler.CreateProduct)
		api.PATCH("/products/:id/supplier", catalogHandler.AssignSupplier)

		api.GET("/rates", catalogHandler.ListRates)
		api.POST("/rates", catalogHandler.CreateRate)

		api.GET("/suppliers", catalogHandler.ListSuppliers)
		api.POST("/suppliers", catalogHandler.CreateSupplier)
		api.DELETE("/suppliers/:id", catalogHandler.DeleteSupplier)

		api.GET("/settings", settingsHandler.GetSettings)
		api.POST("/settings", settingsHandler.SaveSettings)
		api.GET("/settings/history", settingsHandler.ListHistory)

		api.GET("/server-time", systemHandler.ServerTime)
		api.GET("/notifications", systemHandler.NotificationStatus)
		api.POST("/notifications", systemHandler.SendNotification)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	return r
}
