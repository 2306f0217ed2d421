package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	financeapp "github.com/fms/backend/internal/application/finance"
	identityapp "github.com/fms/backend/internal/application/identity"
	partnerapp "github.com/fms/backend/internal/application/partner"
	"github.com/fms/backend/internal/infrastructure/auth"
	"github.com/fms/backend/internal/infrastructure/cache"
	"github.com/fms/backend/internal/infrastructure/config"
	"github.com/fms/backend/internal/infrastructure/logger"
	"github.com/fms/backend/internal/infrastructure/persistence"
	"github.com/fms/backend/internal/interfaces/http/handler"
	"github.com/fms/backend/internal/interfaces/http/middleware"
	"github.com/fms/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting FMS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database with zap-backed GORM logging
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabase(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	companyRepo := persistence.NewGormCompanyRepository(db.DB)
	membershipRepo := persistence.NewGormMembershipRepository(db.DB)
	roleRepo := persistence.NewGormRoleRepository(db.DB)
	permissionRepo := persistence.NewGormPermissionRepository(db.DB)
	assignmentRepo := persistence.NewGormRoleAssignmentRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	vendorRepo := persistence.NewGormVendorRepository(db.DB)
	documentRepo := persistence.NewGormDocumentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Token revocation and permission cache back onto Redis when enabled,
	// otherwise onto in-process stores.
	var blacklist auth.TokenBlacklist
	var permissionCache cache.PermissionCache
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		blacklist = redisBlacklist

		redisCache, err := cache.NewRedisPermissionCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, cache.WithRedisPermissionTTL(cfg.Cache.PermissionTTL), cache.WithRedisPermissionLogger(log))
		if err != nil {
			log.Fatal("Failed to connect to Redis for permission cache", zap.Error(err))
		}
		permissionCache = redisCache
		log.Info("Redis stores enabled",
			zap.String("host", cfg.Redis.Host),
			zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		permissionCache = cache.NewInMemoryPermissionCache(
			cache.WithPermissionTTL(cfg.Cache.PermissionTTL),
			cache.WithPermissionLogger(log),
		)
		log.Info("Using in-memory token blacklist and permission cache")
	}

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	permissionService := identityapp.NewPermissionService(assignmentRepo, permissionCache, log)
	authService := identityapp.NewAuthService(
		userRepo, membershipRepo, permissionService, jwtService, blacklist,
		identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockDuration,
		}, log)
	userService := identityapp.NewUserService(userRepo, membershipRepo, assignmentRepo, permissionService, log)
	companyService := identityapp.NewCompanyService(
		companyRepo, membershipRepo, roleRepo, assignmentRepo, permissionService, jwtService, log)
	roleService := identityapp.NewRoleService(roleRepo, permissionRepo, log)

	customerService := partnerapp.NewCustomerService(customerRepo, log)
	vendorService := partnerapp.NewVendorService(vendorRepo, log)

	invoiceService := financeapp.NewInvoiceService(companyRepo, customerRepo, documentRepo, txScope, log)
	billService := financeapp.NewBillService(companyRepo, vendorRepo, documentRepo, txScope, log)
	invoicePaymentService := financeapp.NewInvoicePaymentService(paymentRepo, txScope, log)
	billPaymentService := financeapp.NewBillPaymentService(paymentRepo, txScope, log)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := router.Setup(router.Config{
		Logger:         log,
		JWTService:     jwtService,
		TokenBlacklist: blacklist,
		Permissions:    permissionService,
		CORS: middleware.CORSConfig{
			AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
			AllowMethods:     cfg.HTTP.CORSAllowMethods,
			AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
			ExposeHeaders:    []string{"X-Request-ID"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		},
		MaxBodySize:     1 << 20,
		TrustedProxies:  cfg.HTTP.TrustedProxies,
		LoginRateLimit:  10,
		LoginRateWindow: time.Minute,

		Auth:     handler.NewAuthHandler(authService, permissionService),
		Company:  handler.NewCompanyHandler(companyService),
		User:     handler.NewUserHandler(userService),
		Role:     handler.NewRoleHandler(roleService),
		Customer: handler.NewCustomerHandler(customerService),
		Vendor:   handler.NewVendorHandler(vendorService),
		Invoice:  handler.NewDocumentHandler(invoiceService, invoicePaymentService),
		Bill:     handler.NewDocumentHandler(billService, billPaymentService),

		HealthCheck: healthHandler(db),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness of the database connection
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
