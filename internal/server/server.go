package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"plumbdesk/internal/admin"
	"plumbdesk/internal/area"
	"plumbdesk/internal/auth"
	"plumbdesk/internal/booking"
	"plumbdesk/internal/config"
	"plumbdesk/internal/customer"
	"plumbdesk/internal/dashboard"
	"plumbdesk/internal/dayoff"
	"plumbdesk/internal/email"
	"plumbdesk/internal/gallery"
	"plumbdesk/internal/payment"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) (*Server, error) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	dayoffSvc := dayoff.NewService(dayoff.NewRepository(db))
	customerSvc := customer.NewService(customer.NewRepository(db))

	bookingSvc, err := booking.NewService(
		booking.NewRepository(db),
		dayoffSvc,
		customerSvc,
		emailService,
		booking.SlotConfig{
			OpenTime:      cfg.OpenTime,
			CloseTime:     cfg.CloseTime,
			SlotMinutes:   cfg.SlotMinutes,
			BusinessEmail: cfg.BusinessEmail,
		},
	)
	if err != nil {
		return nil, err
	}

	paymentSvc := payment.NewService(
		payment.NewRepository(db),
		payment.NewHTTPProvider(cfg.PaymentAPIURL, cfg.PaymentAPIKey),
		emailService,
		cfg.PaymentWebhookSecret,
	)

	adminHandler := admin.NewHandler(admin.NewRepository(db), cfg)
	bookingHandler := booking.NewHandler(bookingSvc)
	customerHandler := customer.NewHandler(customerSvc)
	dayoffHandler := dayoff.NewHandler(dayoffSvc)
	paymentHandler := payment.NewHandler(paymentSvc)
	galleryHandler := gallery.NewHandler(gallery.NewRepository(db))
	areaHandler := area.NewHandler(area.NewRepository(db))
	dashboardHandler := dashboard.NewHandler(dashboard.NewRepository(db))

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	// The booking form and webhook endpoints are the only unauthenticated
	// writes, so they get per-IP rate limiting.
	public := router.Group("/api")
	{
		public.POST("/bookings", RateLimitMiddleware(1, 5), bookingHandler.CreateBooking)
		public.GET("/bookings/availability", bookingHandler.GetAvailability)
		public.GET("/day-off/banner", dayoffHandler.CurrentBanner)
		public.POST("/payments/webhook", RateLimitMiddleware(5, 20), paymentHandler.Webhook)
		public.GET("/gallery", galleryHandler.ListPublic)
		public.GET("/areas", areaHandler.ListPublic)
		public.GET("/areas/:slug", areaHandler.GetBySlug)

		public.POST("/auth/login", RateLimitMiddleware(1, 5), adminHandler.Login)
		public.POST("/auth/logout", adminHandler.Logout)
	}

	sessionMiddleware := auth.SessionMiddleware(cfg.SessionCookieName, cfg.JWTSecret)

	authed := router.Group("/api/auth")
	authed.Use(sessionMiddleware)
	{
		authed.GET("/me", adminHandler.Me)
		authed.PUT("/password", adminHandler.ChangePassword)
	}

	adminGroup := router.Group("/api/admin")
	adminGroup.Use(sessionMiddleware)
	{
		adminGroup.GET("/dashboard", dashboardHandler.GetStats)

		adminGroup.GET("/bookings", bookingHandler.ListBookings)
		adminGroup.POST("/bookings", bookingHandler.CreateBookingAdmin)
		adminGroup.GET("/bookings/:id", bookingHandler.GetBooking)
		adminGroup.PATCH("/bookings/:id/status", bookingHandler.UpdateStatus)
		adminGroup.PATCH("/bookings/:id/payment-status", bookingHandler.UpdatePaymentStatus)
		adminGroup.DELETE("/bookings/:id", bookingHandler.DeleteBooking)

		adminGroup.GET("/customers", customerHandler.List)
		adminGroup.POST("/customers", customerHandler.Create)
		adminGroup.GET("/customers/:id", customerHandler.Get)
		adminGroup.PUT("/customers/:id", customerHandler.Update)
		adminGroup.DELETE("/customers/:id", customerHandler.Delete)

		adminGroup.GET("/day-off", dayoffHandler.ListPeriods)
		adminGroup.POST("/day-off", dayoffHandler.CreatePeriod)
		adminGroup.PUT("/day-off/:id", dayoffHandler.UpdatePeriod)
		adminGroup.DELETE("/day-off/:id", dayoffHandler.DeletePeriod)

		adminGroup.GET("/payments", paymentHandler.ListPayments)
		adminGroup.POST("/payments", paymentHandler.RecordPayment)
		adminGroup.POST("/payments/link", paymentHandler.CreateLink)
		adminGroup.GET("/payments/:id", paymentHandler.GetPayment)
		adminGroup.DELETE("/payments/:id", paymentHandler.DeletePayment)

		adminGroup.GET("/gallery", galleryHandler.ListAdmin)
		adminGroup.POST("/gallery", galleryHandler.CreateImage)
		adminGroup.PUT("/gallery/:id", galleryHandler.UpdateImage)
		adminGroup.DELETE("/gallery/:id", galleryHandler.DeleteImage)

		adminGroup.GET("/areas", areaHandler.ListAdmin)
		adminGroup.POST("/areas", areaHandler.CreateArea)
		adminGroup.PUT("/areas/:id", areaHandler.UpdateArea)
		adminGroup.DELETE("/areas/:id", areaHandler.DeleteArea)
	}

	return &Server{
		router: router,
		db:     db,
		config: cfg,
	}, nil
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
