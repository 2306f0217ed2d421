package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fms/backend/internal/infrastructure/auth"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

// stubResolver serves a mutable permission set, standing in for the
// assignment store behind the permission service.
type stubResolver struct {
	permissions []string
	err         error
	calls       int
}

func (r *stubResolver) Resolve(ctx context.Context, userID, companyID uuid.UUID) ([]string, error) {
	r.calls++
	return r.permissions, r.err
}

func testClaims() *auth.Claims {
	return &auth.Claims{
		UserID:   uuid.New().String(),
		TenantID: uuid.New().String(),
	}
}

func setupPermissionRouter(claims *auth.Claims, resolver *stubResolver, required ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if claims != nil {
			c.Set(JWTClaimsKey, claims)
		}
		c.Next()
	})
	r.GET("/resource", RequirePermissions(resolver, required...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doPermissionRequest(r *gin.Engine) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRequirePermissions_AllPresent(t *testing.T) {
	resolver := &stubResolver{permissions: []string{"ar.read", "ar.write", "customer.read"}}
	w := doPermissionRequest(setupPermissionRouter(testClaims(), resolver, "ar.read", "ar.write"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, resolver.calls)
}

func TestRequirePermissions_OneMissing(t *testing.T) {
	// AND semantics: holding a subset is not enough.
	resolver := &stubResolver{permissions: []string{"ar.read"}}
	w := doPermissionRequest(setupPermissionRouter(testClaims(), resolver, "ar.read", "ar.write"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "FORBIDDEN")
	// The response must not name the missing permission.
	assert.NotContains(t, w.Body.String(), "ar.write")
}

func TestRequirePermissions_NoClaims(t *testing.T) {
	resolver := &stubResolver{permissions: []string{"ar.read"}}
	w := doPermissionRequest(setupPermissionRouter(nil, resolver, "ar.read"))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Zero(t, resolver.calls)
}

func TestRequirePermissions_EmptyRequirement(t *testing.T) {
	resolver := &stubResolver{}
	w := doPermissionRequest(setupPermissionRouter(testClaims(), resolver))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePermissions_ResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("assignment store down")}
	w := doPermissionRequest(setupPermissionRouter(testClaims(), resolver, "ar.read"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
}

func TestRequirePermissions_RevocationAppliesToLiveSession(t *testing.T) {
	// The gate consults the resolver per request, so a revocation takes
	// effect without waiting for the access token to expire.
	claims := testClaims()
	resolver := &stubResolver{permissions: []string{"ar.write"}}
	router := setupPermissionRouter(claims, resolver, "ar.write")

	w := doPermissionRequest(router)
	assert.Equal(t, http.StatusOK, w.Code)

	resolver.permissions = nil

	w = doPermissionRequest(router)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, 2, resolver.calls)
}
