package router

import (
	"time"

	"hotelier/internal/config"
	"hotelier/internal/handler"
	"hotelier/internal/infra"
	"hotelier/internal/middleware"
	"hotelier/internal/repository"
	"hotelier/internal/service"
	"hotelier/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the shared infrastructure the engine composition needs.
type Deps struct {
	Config   *config.Config
	DB       *gorm.DB
	RDB      *redis.Client
	SMTPCB   *infra.CircuitBreaker
	Settings *service.SettingsService
}

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Infrastructure ───────────────────────────────────────────────────────
	cache := infra.NewCache(d.RDB)
	dispatcher := worker.NewDispatcher(d.RDB)

	// ── Repositories ─────────────────────────────────────────────────────────
	userRepo := repository.NewUserRepository(d.DB)
	guestRepo := repository.NewGuestRepository(d.DB)
	roomRepo := repository.NewRoomRepository(d.DB)
	bookingRepo := repository.NewBookingRepository(d.DB)
	paymentRepo := repository.NewPaymentRepository(d.DB)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(userRepo, cfg)
	guestSvc := service.NewGuestService(guestRepo, cache)
	roomSvc := service.NewRoomService(roomRepo, cache)
	bookingSvc := service.NewBookingService(bookingRepo, guestRepo, roomSvc, cache)
	paymentSvc := service.NewPaymentService(paymentRepo, bookingRepo, d.Settings, cache, dispatcher)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	usersH := handler.NewUsersHandler(authSvc)
	guestsH := handler.NewGuestsHandler(guestSvc)
	roomsH := handler.NewRoomsHandler(roomSvc)
	bookingsH := handler.NewBookingsHandler(bookingSvc)
	paymentsH := handler.NewPaymentsHandler(paymentSvc)
	settingsH := handler.NewSettingsHandler(d.Settings)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(d.DB, d.RDB, d.SMTPCB))
	r.GET("/public/rooms/:number/rate", roomsH.RateByNumber)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		staff := middleware.RequireRole("staff", "manager", "admin")
		managers := middleware.RequireRole("manager", "admin")
		admins := middleware.RequireRole("admin")

		// Guests: all staff can read and write
		guests := v1.Group("/guests", staff)
		{
			guests.POST("", guestsH.Create)
			guests.GET("", guestsH.List)
			guests.GET("/:id", guestsH.Get)
			guests.PUT("/:id", guestsH.Update)
		}
		v1.DELETE("/guests/:id", managers, guestsH.Delete)

		// Rooms: inventory changes are a manager concern
		v1.GET("/rooms", staff, roomsH.List)
		v1.GET("/rooms/:id", staff, roomsH.Get)
		v1.PUT("/rooms/:id/status", staff, roomsH.UpdateStatus)
		v1.GET("/rooms/:id/status-log", staff, roomsH.StatusLog)
		rooms := v1.Group("/rooms", managers)
		{
			rooms.POST("", roomsH.Create)
			rooms.PUT("/:id", roomsH.Update)
			rooms.DELETE("/:id", roomsH.Delete)
		}

		// Bookings
		bookings := v1.Group("/bookings", staff)
		{
			bookings.POST("", bookingsH.Create)
			bookings.GET("", bookingsH.List)
			bookings.GET("/:id", bookingsH.Get)
			bookings.POST("/:id/check-in", bookingsH.CheckIn)
			bookings.POST("/:id/check-out", bookingsH.CheckOut)
			bookings.GET("/:id/payments", paymentsH.ListByBooking)
		}

		// Payments: deletes need a manager
		v1.POST("/payments", staff, paymentsH.RecordInitial)
		v1.POST("/payments/installments", staff, paymentsH.RecordInstallment)
		v1.GET("/payments/stats", managers, paymentsH.Stats)
		v1.GET("/payments/:id", staff, paymentsH.Get)
		v1.PUT("/payments/:id", staff, paymentsH.Update)
		v1.DELETE("/payments/:id", managers, paymentsH.Delete)

		// Settings
		v1.GET("/settings", staff, settingsH.Get)
		v1.PUT("/settings", admins, settingsH.Update)

		// Staff accounts: admin only
		users := v1.Group("/users", admins)
		{
			users.POST("", usersH.Create)
			users.GET("", usersH.List)
			users.PUT("/:id", usersH.Update)
			users.DELETE("/:id", usersH.Deactivate)
			users.POST("/:id/reactivate", usersH.Reactivate)
		}
	}

	// Swagger UI is only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
