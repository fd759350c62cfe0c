package routes

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/studio-booking/internal/audit"
	"github.com/BruksfildServices01/studio-booking/internal/cache"
	"github.com/BruksfildServices01/studio-booking/internal/config"
	"github.com/BruksfildServices01/studio-booking/internal/handlers"
	infraRepo "github.com/BruksfildServices01/studio-booking/internal/infra/repository"
	"github.com/BruksfildServices01/studio-booking/internal/middleware"
	"github.com/BruksfildServices01/studio-booking/internal/storage"
	"github.com/BruksfildServices01/studio-booking/internal/timezone"
	ucBooking "github.com/BruksfildServices01/studio-booking/internal/usecase/booking"
	ucPayment "github.com/BruksfildServices01/studio-booking/internal/usecase/payment"
	"github.com/BruksfildServices01/studio-booking/internal/validators"
)

// Deps are the process-wide singletons built by main.
type Deps struct {
	Logger *slog.Logger
	Cache  cache.Cache
	Images storage.ImageStore // nil disables uploads
	Audit  *audit.Dispatcher
	Now    func() time.Time
}

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, deps Deps) {
	validators.RegisterBindings()

	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Cache == nil {
		deps.Cache = cache.NewNoop()
	}

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	// ======================================================
	// INFRA
	// ======================================================
	loc := timezone.Location(cfg.StudioTimezone)
	studio := ucBooking.Studio{
		Location:     loc,
		NumberPrefix: cfg.BookingPrefix,
		Now:          deps.Now,
	}

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	paymentRepo := infraRepo.NewPaymentGormRepository(db)
	configRepo := infraRepo.NewConfigGormRepository(db)

	// ======================================================
	// USE CASES
	// ======================================================
	bookingUC := handlers.BookingUseCases{
		Create:       ucBooking.NewCreateBooking(bookingRepo, deps.Audit, studio),
		Update:       ucBooking.NewUpdateBooking(bookingRepo, deps.Audit, studio),
		ChangeStatus: ucBooking.NewChangeStatus(bookingRepo, deps.Audit, studio),
		Availability: ucBooking.NewCheckAvailability(bookingRepo),
		Quote:        ucBooking.NewQuotePrice(bookingRepo),
		Slots:        ucBooking.NewListSlots(bookingRepo, studio),
		Get:          ucBooking.NewGetBooking(bookingRepo),
		Lookup:       ucBooking.NewLookupBooking(bookingRepo),
		List:         ucBooking.NewListBookings(bookingRepo),
		Calendar:     ucBooking.NewListCalendar(bookingRepo),
		Dashboard:    ucBooking.NewDashboardStats(bookingRepo, studio),
	}

	ledger := ucPayment.NewLedger(paymentRepo, deps.Audit)
	listPaymentsUC := ucPayment.NewListPayments(paymentRepo)
	paymentStatsUC := ucPayment.NewPaymentStats(paymentRepo, loc)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg, deps.Audit)
	meHandler := handlers.NewMeHandler(db)
	bookingHandler := handlers.NewBookingHandler(bookingUC, cfg.CheckEmailDomain)
	paymentHandler := handlers.NewPaymentHandler(ledger, listPaymentsUC, paymentStatsUC, loc)
	serviceHandler := handlers.NewServiceTypeHandler(db, deps.Cache, cfg.CacheTTL, deps.Audit)
	equipmentHandler := handlers.NewEquipmentHandler(db, deps.Cache, cfg.CacheTTL, deps.Images, deps.Audit)
	configHandler := handlers.NewConfigHandler(configRepo, deps.Cache, cfg.CacheTTL, deps.Images, deps.Audit)
	auditLogsHandler := handlers.NewAuditLogsHandler(db, loc)

	createLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute)

	authRequired := middleware.AuthMiddleware(cfg)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	optionalAuth := middleware.OptionalAuth(cfg)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")

	// ------------------------------
	// AUTH
	// ------------------------------
	auth := api.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)
		auth.POST("/register", optionalAuth, authHandler.Register)
		auth.GET("/setup-status", authHandler.SetupStatus)

		auth.GET("/me", authRequired, meHandler.GetMe)
		auth.PUT("/profile", authRequired, authHandler.UpdateProfile)
		auth.PUT("/password", authRequired, authHandler.ChangePassword)
	}

	// ------------------------------
	// BOOKINGS
	// ------------------------------
	bookings := api.Group("/bookings")
	{
		bookings.POST("", createLimiter.Limit(), optionalAuth, bookingHandler.Create)
		bookings.POST("/check-availability", bookingHandler.CheckAvailability)
		bookings.POST("/quote", bookingHandler.Quote)
		bookings.GET("/slots", bookingHandler.Slots)
		bookings.GET("/calendar", bookingHandler.Calendar)
		bookings.GET("/number/:bookingNumber", bookingHandler.Lookup)

		admin := bookings.Group("", authRequired, adminOnly)
		admin.GET("", bookingHandler.List)
		admin.GET("/stats/dashboard", bookingHandler.Dashboard)
		admin.GET("/:id", bookingHandler.Get)
		admin.PUT("/:id", bookingHandler.Update)
		admin.PUT("/:id/confirm", bookingHandler.Confirm)
		admin.PUT("/:id/cancel", bookingHandler.Cancel)
		admin.PUT("/:id/complete", bookingHandler.Complete)
		admin.PUT("/:id/no-show", bookingHandler.NoShow)
	}

	// ------------------------------
	// PAYMENTS
	// ------------------------------
	payments := api.Group("/payments", authRequired, adminOnly)
	{
		payments.GET("", paymentHandler.List)
		payments.GET("/stats", paymentHandler.Stats)
		payments.GET("/booking/:bookingId", paymentHandler.ForBooking)
		payments.POST("", paymentHandler.Create)
		payments.PUT("/:id", paymentHandler.Update)
		payments.DELETE("/:id", paymentHandler.Delete)
	}

	// ------------------------------
	// CATALOG
	// ------------------------------
	services := api.Group("/services")
	{
		services.GET("", optionalAuth, serviceHandler.List)
		services.GET("/:id", serviceHandler.Get)

		admin := services.Group("", authRequired, adminOnly)
		admin.POST("", serviceHandler.Create)
		admin.PUT("/:id", serviceHandler.Update)
		admin.PUT("/:id/reorder", serviceHandler.Reorder)
		admin.DELETE("/:id", serviceHandler.Delete)
	}

	equipment := api.Group("/equipment")
	{
		equipment.GET("", optionalAuth, equipmentHandler.List)
		equipment.GET("/stats/categories", equipmentHandler.Stats)
		equipment.GET("/category/:category", equipmentHandler.ByCategory)
		equipment.GET("/:id", equipmentHandler.Get)

		admin := equipment.Group("", authRequired, adminOnly)
		admin.POST("", equipmentHandler.Create)
		admin.PUT("/order/reorder", equipmentHandler.Reorder)
		admin.PUT("/:id", equipmentHandler.Update)
		admin.DELETE("/:id", equipmentHandler.Delete)
		admin.POST("/:id/image", equipmentHandler.UploadImage)
	}

	// ------------------------------
	// CONFIG
	// ------------------------------
	cfgGroup := api.Group("/config")
	{
		cfgGroup.GET("/public", configHandler.Public)

		admin := cfgGroup.Group("", authRequired, adminOnly)
		admin.GET("", configHandler.Get)
		admin.PUT("", configHandler.Update)
		admin.PUT("/hours", configHandler.UpdateHours)
		admin.PUT("/pricing", configHandler.UpdatePricing)
		admin.PUT("/azul", configHandler.UpdateAzul)
		admin.POST("/complete-setup", configHandler.CompleteSetup)
		admin.POST("/logo", configHandler.UploadLogo)
	}

	api.GET("/audit-logs", authRequired, adminOnly, auditLogsHandler.List)
}
