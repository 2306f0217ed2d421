package handler

// CreateUserRequest represents the request body for creating a user
type CreateUserRequest struct {
	Username    string   `json:"username" binding:"required,min=3,max=100"`
	Password    string   `json:"password" binding:"required,min=8,max=128"`
	Email       string   `json:"email" binding:"omitempty,email"`
	DisplayName string   `json:"display_name" binding:"max=200"`
	RoleIDs     []string `json:"role_ids" binding:"omitempty,dive,uuid"`
}

// UpdateUserRequest represents the request body for updating a user
type UpdateUserRequest struct {
	Email       string `json:"email" binding:"omitempty,email"`
	DisplayName string `json:"display_name" binding:"max=200"`
}

// ResetPasswordRequest represents the request body for an admin password reset
type ResetPasswordRequest struct {
	NewPassword string `json:"new_password" binding:"required,min=8,max=128"`
}

// AssignRolesRequest represents the request body for replacing a user's roles
// in the active company
type AssignRolesRequest struct {
	RoleIDs []string `json:"role_ids" binding:"required,dive,uuid"`
}

// ListUsersRequest represents query parameters for listing users
type ListUsersRequest struct {
	Keyword  string `form:"keyword"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE LOCKED"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

// CreateRoleRequest represents the request body for creating a role
type CreateRoleRequest struct {
	Name            string   `json:"name" binding:"required,min=1,max=100"`
	Description     string   `json:"description"`
	PermissionCodes []string `json:"permission_codes" binding:"required,min=1"`
}
