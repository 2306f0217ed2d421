package handler

import (
	"github.com/fms/backend/internal/application/identity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserHandler handles user management HTTP requests
type UserHandler struct {
	BaseHandler
	userService *identity.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *identity.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// CreateUser creates a new user with a membership in the active company
// POST /api/v1/users
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	roleIDs, err := parseUUIDs(req.RoleIDs)
	if err != nil {
		h.BadRequest(c, "Invalid role_ids")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), identity.CreateUserInput{
		Username:    req.Username,
		Password:    req.Password,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		CompanyID:   companyID,
		RoleIDs:     roleIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, user)
}

// ListUsers lists users
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	result, err := h.userService.ListUsers(c.Request.Context(), identity.ListUsersInput{
		Keyword:  req.Keyword,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Users, result.Total, result.Page, result.PageSize)
}

// GetUser returns a single user
// GET /api/v1/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// UpdateUser updates a user's profile fields
// PUT /api/v1/users/:id
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), identity.UpdateUserInput{
		UserID:      userID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, user)
}

// ActivateUser re-activates a deactivated user
// POST /api/v1/users/:id/activate
func (h *UserHandler) ActivateUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.ActivateUser(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// DeactivateUser deactivates a user
// POST /api/v1/users/:id/deactivate
func (h *UserHandler) DeactivateUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeactivateUser(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// UnlockUser clears a user's lockout state
// POST /api/v1/users/:id/unlock
func (h *UserHandler) UnlockUser(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.userService.UnlockUser(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ResetPassword sets a new password for a user (admin operation)
// POST /api/v1/users/:id/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AssignRoles replaces a user's roles in the active company
// PUT /api/v1/users/:id/roles
func (h *UserHandler) AssignRoles(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AssignRolesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	roleIDs, err := parseUUIDs(req.RoleIDs)
	if err != nil {
		h.BadRequest(c, "Invalid role_ids")
		return
	}

	err = h.userService.AssignRoles(c.Request.Context(), identity.AssignRolesInput{
		UserID:    userID,
		CompanyID: companyID,
		RoleIDs:   roleIDs,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMembership grants a user access to the active company
// POST /api/v1/users/:id/memberships
func (h *UserHandler) AddMembership(c *gin.Context) {
	userID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	companyID, err := getCompanyID(c)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if err := h.userService.AddMembership(c.Request.Context(), userID, companyID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// parseUUIDs parses a list of UUID strings
func parseUUIDs(values []string) ([]uuid.UUID, error) {
	if len(values) == 0 {
		return nil, nil
	}
	ids := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		id, err := uuid.Parse(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
