package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/handlers"
	"github.com/BruksfildServices01/barbershop-booking/internal/middleware"
)

// Handlers agrupa o que main.go monta.
type Handlers struct {
	Public          *handlers.PublicHandler
	Booking         *handlers.BookingHandler
	Auth            *handlers.AuthHandler
	Me              *handlers.MeHandler
	Service         *handlers.ServiceHandler
	Barber          *handlers.BarberHandler
	BusinessHours   *handlers.BusinessHoursHandler
	BlockedInterval *handlers.BlockedIntervalHandler
	Customer        *handlers.CustomerHandler
	AuditLogs       *handlers.AuditLogsHandler
	Report          *handlers.ReportHandler
	WS              *handlers.WSHandler
}

func RegisterRoutes(r *gin.Engine, cfg *config.Config, h Handlers) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// ------------------------------
		// 🌐 API PÚBLICA
		// ------------------------------
		public := api.Group("/public")
		{
			public.GET("/services", h.Public.ListServices)
			public.GET("/barbers", h.Public.ListBarbers)
			public.GET("/availability", h.Public.Availability)
			public.POST("/bookings", h.Public.CreateBooking)
			public.GET("/bookings", h.Public.ListBookingsByPhone)
			public.POST("/bookings/:id/cancel", h.Public.CancelBooking)
		}

		// ------------------------------
		// 🔐 AUTH
		// ------------------------------
		api.POST("/auth/login", h.Auth.Login)
		api.POST("/auth/users",
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(domain.RoleAdmin),
			h.Auth.CreateUser,
		)

		// ------------------------------
		// 🔐 BACK OFFICE (admin + barbeiro)
		// ------------------------------
		staff := api.Group("/")
		staff.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(domain.RoleAdmin, domain.RoleBarber),
		)
		{
			staff.GET("/me", h.Me.GetMe)

			staff.GET("/admin/availability", h.Booking.Availability)
			staff.GET("/admin/bookings", h.Booking.List)
			staff.POST("/admin/bookings", h.Booking.Create)
			staff.GET("/admin/bookings/:id", h.Booking.Get)
			staff.POST("/admin/bookings/:id/confirm", h.Booking.Confirm)
			staff.POST("/admin/bookings/:id/cancel", h.Booking.Cancel)

			staff.GET("/admin/blocked-intervals", h.BlockedInterval.List)
			staff.POST("/admin/blocked-intervals", h.BlockedInterval.Create)
			staff.DELETE("/admin/blocked-intervals/:id", h.BlockedInterval.Delete)

			staff.GET("/admin/ws", h.WS.Bookings)
		}

		// ------------------------------
		// 🔐 SÓ ADMIN
		// ------------------------------
		admin := api.Group("/admin")
		admin.Use(
			middleware.AuthMiddleware(cfg),
			middleware.RequireRole(domain.RoleAdmin),
		)
		{
			admin.GET("/services", h.Service.List)
			admin.POST("/services", h.Service.Create)
			admin.PATCH("/services/:id", h.Service.Update)
			admin.DELETE("/services/:id", h.Service.Delete)

			admin.GET("/barbers", h.Barber.List)
			admin.POST("/barbers", h.Barber.Create)
			admin.PATCH("/barbers/:id", h.Barber.Update)
			admin.DELETE("/barbers/:id", h.Barber.Delete)
			admin.POST("/barbers/:id/photo", h.Barber.UploadPhoto)

			admin.GET("/business-hours", h.BusinessHours.Get)
			admin.PUT("/business-hours", h.BusinessHours.Update)

			admin.GET("/customers", h.Customer.List)
			admin.GET("/audit-logs", h.AuditLogs.List)
			admin.GET("/marketing-report", h.Report.Get)
		}
	}
}
