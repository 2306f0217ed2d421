package router

import (
	"net/http"
	"time"

	"github.com/fms/backend/internal/infrastructure/auth"
	"github.com/fms/backend/internal/infrastructure/logger"
	"github.com/fms/backend/internal/interfaces/http/handler"
	"github.com/fms/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Config carries everything route registration needs
type Config struct {
	Logger         *zap.Logger
	JWTService     *auth.JWTService
	TokenBlacklist auth.TokenBlacklist

	// Permissions backs every RequirePermissions gate; the set is resolved
	// from the assignment store per request, never from the token.
	Permissions middleware.PermissionResolver

	CORS            middleware.CORSConfig
	MaxBodySize     int64
	TrustedProxies  []string
	LoginRateLimit  int
	LoginRateWindow time.Duration

	Auth     *handler.AuthHandler
	Company  *handler.CompanyHandler
	User     *handler.UserHandler
	Role     *handler.RoleHandler
	Customer *handler.CustomerHandler
	Vendor   *handler.VendorHandler
	Invoice  *handler.DocumentHandler
	Bill     *handler.DocumentHandler

	// HealthCheck reports backing-store health. Defaults to a static OK.
	HealthCheck gin.HandlerFunc
}

// Setup builds the gin engine with the full middleware stack and route table
func Setup(cfg Config) *gin.Engine {
	engine := gin.New()

	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			cfg.Logger.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(cfg.Logger))
	engine.Use(logger.GinMiddleware(cfg.Logger))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(cfg.CORS))
	if cfg.MaxBodySize > 0 {
		engine.Use(middleware.BodyLimit(cfg.MaxBodySize))
	}

	healthCheck := cfg.HealthCheck
	if healthCheck == nil {
		healthCheck = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().Format(time.RFC3339)})
		}
	}
	engine.GET("/health", healthCheck)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService:     cfg.JWTService,
		TokenBlacklist: cfg.TokenBlacklist,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: cfg.Logger,
	}))

	registerAuthRoutes(api, cfg)
	registerCompanyRoutes(api, cfg)
	registerUserRoutes(api, cfg)
	registerRoleRoutes(api, cfg)
	registerCustomerRoutes(api, cfg)
	registerVendorRoutes(api, cfg)
	registerDocumentRoutes(api, cfg, "/invoices", cfg.Invoice, "ar.read", "ar.write")
	registerDocumentRoutes(api, cfg, "/bills", cfg.Bill, "ap.read", "ap.write")

	return engine
}

func registerAuthRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/auth")

	// Rate limiting on login slows brute force beyond the account lockout.
	loginHandlers := []gin.HandlerFunc{}
	if cfg.LoginRateLimit > 0 {
		loginHandlers = append(loginHandlers, middleware.RateLimitByIP(cfg.LoginRateLimit, cfg.LoginRateWindow))
	}
	loginHandlers = append(loginHandlers, cfg.Auth.Login)

	group.POST("/login", loginHandlers...)
	group.POST("/refresh", cfg.Auth.RefreshToken)
	group.POST("/logout", cfg.Auth.Logout)
	group.GET("/me", cfg.Auth.Me)
	group.POST("/change-password", cfg.Auth.ChangePassword)
}

func registerCompanyRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/companies")

	// Any authenticated user can create a company and becomes its admin.
	group.POST("", cfg.Company.CreateCompany)
	group.GET("", cfg.Company.ListCompanies)
	group.POST("/switch", cfg.Company.SwitchCompany)
	group.GET("/current", cfg.Company.GetCompany)
	group.PUT("/current", middleware.RequirePermissions(cfg.Permissions, "company.manage"), cfg.Company.UpdateCompany)
}

func registerUserRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/users")
	group.Use(middleware.RequirePermissions(cfg.Permissions, "user.manage"))

	group.POST("", cfg.User.CreateUser)
	group.GET("", cfg.User.ListUsers)
	group.GET("/:id", cfg.User.GetUser)
	group.PUT("/:id", cfg.User.UpdateUser)
	group.POST("/:id/activate", cfg.User.ActivateUser)
	group.POST("/:id/deactivate", cfg.User.DeactivateUser)
	group.POST("/:id/unlock", cfg.User.UnlockUser)
	group.POST("/:id/reset-password", cfg.User.ResetPassword)
	group.PUT("/:id/roles", cfg.User.AssignRoles)
	group.POST("/:id/memberships", cfg.User.AddMembership)
}

func registerRoleRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/roles")
	group.Use(middleware.RequirePermissions(cfg.Permissions, "user.manage"))

	group.POST("", cfg.Role.CreateRole)
	group.GET("", cfg.Role.ListRoles)
	group.GET("/:id", cfg.Role.GetRole)

	api.GET("/permissions", middleware.RequirePermissions(cfg.Permissions, "user.manage"), cfg.Role.ListPermissions)
}

func registerCustomerRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/customers")

	read := middleware.RequirePermissions(cfg.Permissions, "customer.read")
	write := middleware.RequirePermissions(cfg.Permissions, "customer.write")

	group.POST("", write, cfg.Customer.CreateCustomer)
	group.GET("", read, cfg.Customer.ListCustomers)
	group.GET("/:id", read, cfg.Customer.GetCustomer)
	group.PUT("/:id", write, cfg.Customer.UpdateCustomer)
	group.POST("/:id/activate", write, cfg.Customer.ActivateCustomer)
	group.POST("/:id/deactivate", write, cfg.Customer.DeactivateCustomer)
}

func registerVendorRoutes(api *gin.RouterGroup, cfg Config) {
	group := api.Group("/vendors")

	read := middleware.RequirePermissions(cfg.Permissions, "vendor.read")
	write := middleware.RequirePermissions(cfg.Permissions, "vendor.write")

	group.POST("", write, cfg.Vendor.CreateVendor)
	group.GET("", read, cfg.Vendor.ListVendors)
	group.GET("/:id", read, cfg.Vendor.GetVendor)
	group.PUT("/:id", write, cfg.Vendor.UpdateVendor)
	group.POST("/:id/activate", write, cfg.Vendor.ActivateVendor)
	group.POST("/:id/deactivate", write, cfg.Vendor.DeactivateVendor)
}

func registerDocumentRoutes(api *gin.RouterGroup, cfg Config, prefix string, h *handler.DocumentHandler, readPerm, writePerm string) {
	group := api.Group(prefix)

	read := middleware.RequirePermissions(cfg.Permissions, readPerm)
	write := middleware.RequirePermissions(cfg.Permissions, writePerm)

	group.POST("", write, h.CreateDocument)
	group.GET("", read, h.ListDocuments)
	group.GET("/:id", read, h.GetDocument)
	group.PUT("/:id", write, h.UpdateDocument)
	group.POST("/:id/void", write, h.VoidDocument)
	group.POST("/:id/payments", write, h.ApplyPayment)
	group.GET("/:id/payments", read, h.ListPayments)
}
