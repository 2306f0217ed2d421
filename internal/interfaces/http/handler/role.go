package handler

import (
	"github.com/fms/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
)

// RoleHandler handles role and permission catalog HTTP requests
type RoleHandler struct {
	BaseHandler
	roleService *identity.RoleService
}

// NewRoleHandler creates a new role handler
func NewRoleHandler(roleService *identity.RoleService) *RoleHandler {
	return &RoleHandler{
		roleService: roleService,
	}
}

// CreateRole creates a tenant-scoped role
// POST /api/v1/roles
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req CreateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	role, err := h.roleService.CreateRole(c.Request.Context(), companyID, req.Name, req.Description, req.PermissionCodes)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, role)
}

// GetRole returns a single role with its permissions
// GET /api/v1/roles/:id
func (h *RoleHandler) GetRole(c *gin.Context) {
	roleID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.roleService.GetRole(c.Request.Context(), roleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, role)
}

// ListRoles lists system roles plus the active company's roles
// GET /api/v1/roles
func (h *RoleHandler) ListRoles(c *gin.Context) {
	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	roles, err := h.roleService.ListRoles(c.Request.Context(), companyID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, roles)
}

// ListPermissions lists the permission catalog
// GET /api/v1/permissions
func (h *RoleHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.roleService.ListPermissions(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, permissions)
}
