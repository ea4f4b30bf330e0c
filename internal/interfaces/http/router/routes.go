package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kitabayar/backend/internal/interfaces/http/dto"
	"github.com/kitabayar/backend/internal/interfaces/http/handler"
	"github.com/kitabayar/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every HTTP handler served by the API
type Handlers struct {
	Auth           *handler.AuthHandler
	User           *handler.UserHandler
	Resident       *handler.ResidentHandler
	LegacyResident *handler.LegacyResidentHandler
	BillingConfig  *handler.BillingConfigHandler
	Bill           *handler.BillHandler
	Payment        *handler.PaymentHandler
	Dashboard      *handler.DashboardHandler
	System         *handler.SystemHandler
}

// Config controls authentication and the optional surfaces
type Config struct {
	JWT middleware.JWTConfig
	// AuthLimiter throttles login, registration and refresh per client IP.
	// Nil disables it.
	AuthLimiter *middleware.RateLimiter
	Swagger     middleware.SwaggerConfig
	// SwaggerHandler serves /swagger/*any; nil leaves the route unregistered
	SwaggerHandler gin.HandlerFunc
}

// Mount registers the health check, docs, the legacy resident surface and
// the versioned API on the engine.
//
// Roles: ADMIN reaches everything. STAFF manages residents, bills and
// payments and reads billing configuration and dashboards. RESIDENT is
// limited to its own profile, overview and checkout.
func Mount(engine *gin.Engine, h Handlers, cfg Config) {
	authenticated := middleware.JWTAuth(cfg.JWT)
	staff := middleware.RequireStaff()
	admin := middleware.RequireAdmin()

	engine.GET("/health", h.System.Health)
	if cfg.SwaggerHandler != nil {
		engine.GET("/swagger/*any", middleware.SwaggerProtection(cfg.Swagger), cfg.SwaggerHandler)
	}
	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.CodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})

	legacy := engine.Group("/api/residents", authenticated, staff)
	legacy.GET("", h.LegacyResident.List)
	legacy.POST("", h.LegacyResident.Create)
	legacy.PUT("", h.LegacyResident.Replace)
	legacy.DELETE("", h.LegacyResident.Delete)

	r := NewRouter(engine, WithAPIVersion("v1"))

	// Public authentication endpoints
	publicAuth := NewDomainGroup("auth", "/auth")
	if cfg.AuthLimiter != nil {
		publicAuth.Use(middleware.RateLimitByKey(cfg.AuthLimiter, func(c *gin.Context) string {
			return "auth:" + c.ClientIP()
		}))
	}
	publicAuth.POST("/login", h.Auth.Login)
	publicAuth.POST("/register", h.Auth.Register)
	publicAuth.POST("/refresh", h.Auth.RefreshToken)

	session := NewDomainGroup("session", "/auth").Use(authenticated)
	session.POST("/logout", h.Auth.Logout)
	session.GET("/me", h.Auth.Me)
	session.PUT("/password", h.Auth.ChangePassword)

	// Called by Midtrans; authenticity comes from the signature key
	notifications := NewDomainGroup("notifications", "/payments/notifications")
	notifications.POST("/midtrans", h.Payment.MidtransNotification)

	system := NewDomainGroup("system", "/system").Use(authenticated, staff)
	system.GET("/info", h.System.GetSystemInfo)

	self := NewDomainGroup("self", "/me").Use(authenticated)
	self.GET("/overview", h.Dashboard.MyOverview)

	users := NewDomainGroup("users", "/users").Use(authenticated, admin)
	users.GET("", h.User.List)
	users.POST("", h.User.Create)
	users.GET("/:id", h.User.Get)
	users.PUT("/:id", h.User.Update)
	users.PUT("/:id/password", h.User.ResetPassword)
	users.DELETE("/:id", h.User.Delete)

	residents := NewDomainGroup("residents", "/residents").Use(authenticated, staff)
	residents.GET("", h.Resident.List)
	residents.POST("", h.Resident.Create)
	residents.GET("/:id", h.Resident.Get)
	residents.PUT("/:id", h.Resident.Update)
	residents.DELETE("/:id", h.Resident.Delete)
	residents.PUT("/:id/user", h.Resident.LinkUser)
	residents.DELETE("/:id/user", h.Resident.UnlinkUser)

	categories := NewDomainGroup("bill-categories", "/bill-categories").Use(authenticated, staff)
	categories.GET("", h.BillingConfig.ListCategories)
	categories.GET("/:id", h.BillingConfig.GetCategory)
	categories.POST("", admin, h.BillingConfig.CreateCategory)
	categories.PUT("/:id", admin, h.BillingConfig.UpdateCategory)
	categories.DELETE("/:id", admin, h.BillingConfig.DeleteCategory)

	billTypes := NewDomainGroup("bill-types", "/bill-types").Use(authenticated, staff)
	billTypes.GET("", h.BillingConfig.ListBillTypes)
	billTypes.GET("/:id", h.BillingConfig.GetBillType)
	billTypes.POST("", admin, h.BillingConfig.CreateBillType)
	billTypes.PUT("/:id", admin, h.BillingConfig.UpdateBillType)
	billTypes.DELETE("/:id", admin, h.BillingConfig.DeleteBillType)

	periods := NewDomainGroup("bill-periods", "/bill-periods").Use(authenticated, staff)
	periods.GET("", h.BillingConfig.ListPeriods)
	periods.GET("/:id", h.BillingConfig.GetPeriod)
	periods.POST("", admin, h.BillingConfig.CreatePeriod)
	periods.PUT("/:id", admin, h.BillingConfig.UpdatePeriod)
	periods.DELETE("/:id", admin, h.BillingConfig.DeletePeriod)
	periods.POST("/:id/issue", h.Bill.Issue)

	bills := NewDomainGroup("bills", "/bills").Use(authenticated, staff)
	bills.GET("", h.Bill.List)
	bills.POST("", h.Bill.Create)
	bills.POST("/mark-overdue", h.Bill.MarkOverdue)
	bills.GET("/:id", h.Bill.Get)
	bills.PUT("/:id", h.Bill.Update)
	bills.POST("/:id/cancel", h.Bill.Cancel)
	bills.DELETE("/:id", h.Bill.Delete)

	// Residents check out their own bills; ownership is enforced by the service
	checkout := NewDomainGroup("checkout", "/payments").Use(authenticated)
	checkout.POST("/checkout", h.Payment.Checkout)

	payments := NewDomainGroup("payments", "/payments").Use(authenticated, staff)
	payments.GET("", h.Payment.List)
	payments.POST("", h.Payment.Record)
	payments.GET("/summary", h.Payment.Summary)
	payments.GET("/:id", h.Payment.Get)
	payments.PUT("/:id/status", h.Payment.UpdateStatus)
	payments.DELETE("/:id", h.Payment.Delete)

	dashboard := NewDomainGroup("dashboard", "/dashboard").Use(authenticated, staff)
	dashboard.GET("/stats", h.Dashboard.AdminStats)
	dashboard.GET("/periods", h.Dashboard.BillsOverview)
	dashboard.GET("/periods/:id", h.Dashboard.PeriodDetail)

	r.Register(publicAuth).
		Register(session).
		Register(notifications).
		Register(system).
		Register(self).
		Register(users).
		Register(residents).
		Register(categories).
		Register(billTypes).
		Register(periods).
		Register(bills).
		Register(checkout).
		Register(payments).
		Register(dashboard)
	r.Setup()
}
