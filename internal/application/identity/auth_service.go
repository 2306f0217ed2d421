package identity

import (
	"context"
	"time"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthServiceConfig contains configuration for the auth service
type AuthServiceConfig struct {
	MaxLoginAttempts int           // Maximum failed login attempts before lock
	LockDuration     time.Duration // How long to lock the account after max attempts
}

// DefaultAuthServiceConfig returns default configuration
func DefaultAuthServiceConfig() AuthServiceConfig {
	return AuthServiceConfig{
		MaxLoginAttempts: 5,
		LockDuration:     30 * time.Minute,
	}
}

// AuthService handles authentication operations
type AuthService struct {
	userRepo       identity.UserRepository
	membershipRepo identity.MembershipRepository
	permissions    *PermissionService
	jwtService     *auth.JWTService
	blacklist      auth.TokenBlacklist
	config         AuthServiceConfig
	logger         *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo identity.UserRepository,
	membershipRepo identity.MembershipRepository,
	permissions *PermissionService,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	config AuthServiceConfig,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		userRepo:       userRepo,
		membershipRepo: membershipRepo,
		permissions:    permissions,
		jwtService:     jwtService,
		blacklist:      blacklist,
		config:         config,
		logger:         logger,
	}
}

// Login authenticates a user and returns tokens scoped to the user's default
// company. A lock that expired is cleared before the lock check, so the user
// gets a normal credential check after the window passes.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	s.logger.Info("Login attempt", zap.String("username", input.Username))

	user, err := s.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		s.logger.Warn("User not found during login", zap.String("username", input.Username))
		return nil, shared.ErrInvalidCredentials
	}

	if user.UnlockIfExpired(time.Now()) {
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to persist auto-unlock", zap.Error(err))
		}
	}

	if user.IsLocked() {
		s.logger.Warn("Login attempt for locked account", zap.String("username", input.Username))
		return nil, shared.ErrAccountLocked
	}
	if user.IsInactive() {
		s.logger.Warn("Login attempt for inactive account", zap.String("username", input.Username))
		return nil, shared.ErrAccountInactive
	}

	if !user.VerifyPassword(input.Password) {
		locked := user.RecordLoginFailure(s.config.MaxLoginAttempts, s.config.LockDuration)
		if err := s.userRepo.Update(ctx, user); err != nil {
			s.logger.Error("Failed to update user after login failure", zap.Error(err))
		}

		if locked {
			s.logger.Warn("Account locked after repeated failures",
				zap.String("username", input.Username),
				zap.Int("attempts", s.config.MaxLoginAttempts))
		}
		// The locking attempt itself still reports bad credentials; the
		// caller learns about the lock on the next attempt.
		return nil, shared.ErrInvalidCredentials
	}

	user.RecordLoginSuccess()
	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user after successful login", zap.Error(err))
		// Don't fail the login - just log the error
	}

	memberships, err := s.membershipRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	membership := identity.DefaultMembership(memberships)
	if membership == nil {
		s.logger.Warn("Login without any company membership", zap.String("username", input.Username))
		return nil, shared.ErrNoCompanyAssigned
	}

	permissions, err := s.permissions.Resolve(ctx, user.ID, membership.CompanyID)
	if err != nil {
		return nil, err
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		TenantID: membership.CompanyID,
		UserID:   user.ID,
		Username: user.Username,
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("username", user.Username),
		zap.String("user_id", user.ID.String()),
		zap.String("company_id", membership.CompanyID.String()))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User: UserInfo{
			ID:          user.ID,
			Username:    user.Username,
			DisplayName: user.GetDisplayNameOrUsername(),
			Email:       user.Email,
			CompanyID:   membership.CompanyID,
			Permissions: permissions,
		},
	}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair. The tenant
// is re-resolved from the user's current default membership rather than
// trusted from the old token.
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		s.logger.Warn("Refresh token validation failed", zap.Error(err))
		switch err {
		case auth.ErrExpiredToken:
			return nil, shared.ErrTokenExpired
		default:
			return nil, shared.ErrInvalidToken
		}
	}

	if revoked, err := s.blacklist.IsRevoked(ctx, claims.ID); err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
	} else if revoked {
		return nil, shared.ErrTokenRevoked
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, shared.ErrInvalidToken
	}
	if user.IsLocked() {
		return nil, shared.ErrAccountLocked
	}
	if user.IsInactive() {
		return nil, shared.ErrAccountInactive
	}

	memberships, err := s.membershipRepo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	membership := identity.DefaultMembership(memberships)
	if membership == nil {
		return nil, shared.ErrNoCompanyAssigned
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken, membership.CompanyID, user.Username)
	if err != nil {
		if err == auth.ErrMaxRefreshExceeded {
			return nil, shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
		}
		return nil, shared.ErrInvalidToken
	}

	// Rotate: the old refresh token is dead once exchanged
	if ttl := claims.GetRemainingTTL(); ttl > 0 {
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			s.logger.Error("Failed to revoke rotated refresh token", zap.Error(err))
		}
	}

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the session's tokens for their remaining lifetimes
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if input.AccessToken != "" {
		if claims, err := s.jwtService.ValidateAccessToken(input.AccessToken); err == nil {
			if ttl := claims.GetRemainingTTL(); ttl > 0 {
				if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
					s.logger.Error("Failed to revoke access token", zap.Error(err))
				}
			}
		}
	}

	if input.RefreshToken != "" {
		if claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken); err == nil {
			if ttl := claims.GetRemainingTTL(); ttl > 0 {
				if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
					s.logger.Error("Failed to revoke refresh token", zap.Error(err))
				}
			}
		}
	}

	return nil
}

// ChangePassword changes a user's password after verifying the current one
func (s *AuthService) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return err
	}

	if err := user.ChangePassword(input.CurrentPassword, input.NewPassword); err != nil {
		return err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}
