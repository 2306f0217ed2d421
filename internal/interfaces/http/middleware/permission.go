package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PermissionResolver yields a user's effective permission codes in a company.
// The gate resolves on every request, so a role revocation applies to
// outstanding tokens as soon as the resolver's cache entry is invalidated.
type PermissionResolver interface {
	Resolve(ctx context.Context, userID, companyID uuid.UUID) ([]string, error)
}

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	Resolver PermissionResolver
	Logger   *zap.Logger
}

// RequirePermissions creates middleware that requires ALL of the listed
// permissions. A missing permission aborts with 403; the response does not
// say which permission was missing.
func RequirePermissions(resolver PermissionResolver, permissions ...string) gin.HandlerFunc {
	return RequirePermissionsWithConfig(PermissionConfig{Resolver: resolver}, permissions...)
}

// RequirePermissionsWithConfig creates permission middleware with custom config
func RequirePermissionsWithConfig(cfg PermissionConfig, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handlePermissionDenied(c, cfg, permissions, "No authentication claims found")
			return
		}

		userID, err := claims.GetUserUUID()
		if err != nil {
			handlePermissionDenied(c, cfg, permissions, "Malformed user ID in claims")
			return
		}
		companyID, err := claims.GetTenantUUID()
		if err != nil {
			handlePermissionDenied(c, cfg, permissions, "Malformed tenant ID in claims")
			return
		}

		granted, err := cfg.Resolver.Resolve(c.Request.Context(), userID, companyID)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("Permission resolution failed",
					zap.String("user_id", claims.UserID),
					zap.String("company_id", claims.TenantID),
					zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INTERNAL_ERROR",
					"message": "Failed to resolve permissions",
				},
			})
			return
		}

		if !hasAll(granted, permissions) {
			handlePermissionDenied(c, cfg, permissions, "User lacks one or more required permissions")
			return
		}

		c.Next()
	}
}

func hasAll(granted, required []string) bool {
	set := make(map[string]struct{}, len(granted))
	for _, p := range granted {
		set[p] = struct{}{}
	}
	for _, p := range required {
		if _, ok := set[p]; !ok {
			return false
		}
	}
	return true
}

// handlePermissionDenied handles permission denied scenarios
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, requiredPerms []string, reason string) {
	if cfg.Logger != nil {
		userID := ""
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
		}

		cfg.Logger.Warn("Permission denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.Strings("required_permissions", requiredPerms),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Access denied: insufficient permissions",
		},
	})
}
