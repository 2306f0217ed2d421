package identity

import (
	"context"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserService manages user accounts and role assignments
type UserService struct {
	userRepo       identity.UserRepository
	membershipRepo identity.MembershipRepository
	assignmentRepo identity.RoleAssignmentRepository
	permissions    *PermissionService
	logger         *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(
	userRepo identity.UserRepository,
	membershipRepo identity.MembershipRepository,
	assignmentRepo identity.RoleAssignmentRepository,
	permissions *PermissionService,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		assignmentRepo: assignmentRepo,
		permissions:    permissions,
		logger:         logger,
	}
}

// CreateUser creates a user, adds it to the given company, and assigns the
// requested roles there. The company membership becomes the user's default
// since a new user has no other.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*UserDTO, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.ErrDuplicate
	}

	user, err := identity.NewUser(input.Username, input.Password, input.Email)
	if err != nil {
		return nil, err
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	membership := identity.NewMembership(user.ID, input.CompanyID, true)
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	if len(input.RoleIDs) > 0 {
		if err := s.assignmentRepo.Replace(ctx, user.ID, input.CompanyID, input.RoleIDs); err != nil {
			return nil, err
		}
		s.permissions.Invalidate(ctx, user.ID, input.CompanyID)
	}

	s.logger.Info("User created",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username),
		zap.String("company_id", input.CompanyID.String()))

	dto := userToDTO(user)
	return &dto, nil
}

// GetUser returns a user by ID
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := userToDTO(user)
	return &dto, nil
}

// ListUsers returns a filtered page of users
func (s *UserService) ListUsers(ctx context.Context, input ListUsersInput) (*UserListResult, error) {
	filter := identity.UserFilter{
		Keyword:  input.Keyword,
		Page:     input.Page,
		PageSize: input.PageSize,
	}
	if input.Status != "" {
		status := identity.UserStatus(input.Status)
		filter.Status = &status
	}

	users, total, err := s.userRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = userToDTO(user)
	}

	return &UserListResult{
		Users:    dtos,
		Total:    total,
		Page:     filter.Page,
		PageSize: filter.Limit(),
	}, nil
}

// UpdateUser updates a user's profile fields
func (s *UserService) UpdateUser(ctx context.Context, input UpdateUserInput) (*UserDTO, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	if input.Email != "" {
		if err := user.SetEmail(input.Email); err != nil {
			return nil, err
		}
	}
	if input.DisplayName != "" {
		if err := user.SetDisplayName(input.DisplayName); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	dto := userToDTO(user)
	return &dto, nil
}

// ActivateUser re-enables a deactivated account
func (s *UserService) ActivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Activate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// DeactivateUser disables an account without deleting it
func (s *UserService) DeactivateUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Deactivate(); err != nil {
		return err
	}
	return s.userRepo.Update(ctx, user)
}

// UnlockUser clears a lockout before its window expires
func (s *UserService) UnlockUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.Unlock(); err != nil {
		return err
	}

	s.logger.Info("User unlocked by administrator", zap.String("user_id", userID.String()))
	return s.userRepo.Update(ctx, user)
}

// ResetPassword sets a new password without requiring the current one
func (s *UserService) ResetPassword(ctx context.Context, userID uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := user.SetPassword(newPassword); err != nil {
		return err
	}

	s.logger.Info("Password reset by administrator", zap.String("user_id", userID.String()))
	return s.userRepo.Update(ctx, user)
}

// AssignRoles replaces the user's role set in a company. The cached permission
// set for (user, company) is invalidated so revocation takes effect
// immediately.
func (s *UserService) AssignRoles(ctx context.Context, input AssignRolesInput) error {
	if _, err := s.userRepo.FindByID(ctx, input.UserID); err != nil {
		return err
	}
	if _, err := s.membershipRepo.FindByUserAndCompany(ctx, input.UserID, input.CompanyID); err != nil {
		if err == shared.ErrNotFound {
			return shared.ErrNoAccess
		}
		return err
	}

	if err := s.assignmentRepo.Replace(ctx, input.UserID, input.CompanyID, input.RoleIDs); err != nil {
		return err
	}
	s.permissions.Invalidate(ctx, input.UserID, input.CompanyID)

	s.logger.Info("Roles assigned",
		zap.String("user_id", input.UserID.String()),
		zap.String("company_id", input.CompanyID.String()),
		zap.Int("role_count", len(input.RoleIDs)))
	return nil
}

// AddMembership adds a user to a company. The membership is non-default
// unless the user had none before.
func (s *UserService) AddMembership(ctx context.Context, userID, companyID uuid.UUID) error {
	existing, err := s.membershipRepo.FindByUser(ctx, userID)
	if err != nil {
		return err
	}
	for _, m := range existing {
		if m.CompanyID == companyID {
			return shared.ErrDuplicate
		}
	}

	membership := identity.NewMembership(userID, companyID, len(existing) == 0)
	return s.membershipRepo.Create(ctx, membership)
}

func userToDTO(u *identity.User) UserDTO {
	return UserDTO{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		DisplayName:    u.GetDisplayNameOrUsername(),
		Status:         string(u.Status),
		FailedAttempts: u.FailedAttempts,
		LockedUntil:    u.LockedUntil,
		LastLoginAt:    u.LastLoginAt,
		CreatedAt:      u.CreatedAt,
	}
}
