package identity

import (
	"context"

	"github.com/fms/backend/internal/domain/identity"
	"github.com/fms/backend/internal/domain/shared"
	"github.com/fms/backend/internal/domain/shared/valueobject"
	"github.com/fms/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CompanyAdminRoleName is the seeded role granted to company creators
const CompanyAdminRoleName = "Company Admin"

// CompanyService manages companies, memberships, and company switching
type CompanyService struct {
	companyRepo    identity.CompanyRepository
	membershipRepo identity.MembershipRepository
	roleRepo       identity.RoleRepository
	assignmentRepo identity.RoleAssignmentRepository
	permissions    *PermissionService
	jwtService     *auth.JWTService
	logger         *zap.Logger
}

// NewCompanyService creates a new company service
func NewCompanyService(
	companyRepo identity.CompanyRepository,
	membershipRepo identity.MembershipRepository,
	roleRepo identity.RoleRepository,
	assignmentRepo identity.RoleAssignmentRepository,
	permissions *PermissionService,
	jwtService *auth.JWTService,
	logger *zap.Logger,
) *CompanyService {
	return &CompanyService{
		companyRepo:    companyRepo,
		membershipRepo: membershipRepo,
		roleRepo:       roleRepo,
		assignmentRepo: assignmentRepo,
		permissions:    permissions,
		jwtService:     jwtService,
		logger:         logger,
	}
}

// CreateCompany creates a company with default settings and grants the
// creator a non-default membership plus the Company Admin role in it. The
// creator's current default company is left untouched.
func (s *CompanyService) CreateCompany(ctx context.Context, input CreateCompanyInput) (*CompanyDTO, error) {
	company, err := identity.NewCompany(input.Name, input.CreatedBy)
	if err != nil {
		return nil, err
	}
	if input.TaxID != "" || input.Address != "" || input.Phone != "" {
		if err := company.Update("", input.TaxID, input.Address, input.Phone); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, err
	}

	membership := identity.NewMembership(input.CreatedBy, company.ID, false)
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		return nil, err
	}

	// The admin grant is best-effort: a missing seed role must not fail
	// company creation.
	if adminRole, err := s.roleRepo.FindByName(ctx, company.ID, CompanyAdminRoleName); err == nil {
		if err := s.assignmentRepo.Replace(ctx, input.CreatedBy, company.ID, []uuid.UUID{adminRole.ID}); err != nil {
			s.logger.Error("Failed to grant admin role to company creator",
				zap.String("company_id", company.ID.String()),
				zap.Error(err))
		}
		s.permissions.Invalidate(ctx, input.CreatedBy, company.ID)
	} else {
		s.logger.Warn("Company admin role not found, creator has no permissions in new company",
			zap.String("company_id", company.ID.String()))
	}

	s.logger.Info("Company created",
		zap.String("company_id", company.ID.String()),
		zap.String("name", company.Name),
		zap.String("created_by", input.CreatedBy.String()))

	dto := companyToDTO(company, false)
	return &dto, nil
}

// UpdateCompany updates company info and settings
func (s *CompanyService) UpdateCompany(ctx context.Context, input UpdateCompanyInput) (*CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := company.Update(input.Name, input.TaxID, input.Address, input.Phone); err != nil {
		return nil, err
	}
	if input.Currency != "" {
		if err := company.SetCurrency(valueobject.Currency(input.Currency)); err != nil {
			return nil, err
		}
	}
	if input.TaxRate != nil {
		if err := company.SetTaxRate(*input.TaxRate); err != nil {
			return nil, err
		}
	}
	if input.FiscalYearStart != nil {
		if err := company.SetFiscalYearStart(*input.FiscalYearStart); err != nil {
			return nil, err
		}
	}

	if err := s.companyRepo.Update(ctx, company); err != nil {
		return nil, err
	}

	dto := companyToDTO(company, false)
	return &dto, nil
}

// GetCompany returns a company by ID
func (s *CompanyService) GetCompany(ctx context.Context, companyID uuid.UUID) (*CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	dto := companyToDTO(company, false)
	return &dto, nil
}

// ListCompanies returns the companies the user belongs to, with the default
// membership flagged
func (s *CompanyService) ListCompanies(ctx context.Context, userID uuid.UUID) ([]CompanyDTO, error) {
	companies, err := s.companyRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	memberships, err := s.membershipRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	defaults := make(map[uuid.UUID]bool, len(memberships))
	for _, m := range memberships {
		defaults[m.CompanyID] = m.IsDefault
	}

	dtos := make([]CompanyDTO, len(companies))
	for i, company := range companies {
		dtos[i] = companyToDTO(company, defaults[company.ID])
	}
	return dtos, nil
}

// SwitchCompany switches the user's active company. The membership check
// comes first: without one the user gets NoAccess and nothing changes. On
// success the switched-to company becomes the user's default and a new
// access token scoped to it is issued.
func (s *CompanyService) SwitchCompany(ctx context.Context, input SwitchCompanyInput) (*SwitchCompanyResult, error) {
	if _, err := s.membershipRepo.FindByUserAndCompany(ctx, input.UserID, input.CompanyID); err != nil {
		if err == shared.ErrNotFound {
			return nil, shared.ErrNoAccess
		}
		return nil, err
	}

	company, err := s.companyRepo.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, err
	}

	if err := s.membershipRepo.SetDefault(ctx, input.UserID, input.CompanyID); err != nil {
		return nil, err
	}

	// Warm the permission cache for the new tenant context.
	if _, err := s.permissions.Resolve(ctx, input.UserID, input.CompanyID); err != nil {
		return nil, err
	}

	token, expiresAt, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		TenantID: input.CompanyID,
		UserID:   input.UserID,
		Username: input.Username,
	})
	if err != nil {
		s.logger.Error("Failed to generate access token for company switch", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication token")
	}

	s.logger.Info("Company switched",
		zap.String("user_id", input.UserID.String()),
		zap.String("company_id", input.CompanyID.String()))

	return &SwitchCompanyResult{
		AccessToken:          token,
		AccessTokenExpiresAt: expiresAt,
		TokenType:            "Bearer",
		Company:              companyToDTO(company, true),
	}, nil
}

func companyToDTO(c *identity.Company, isDefault bool) CompanyDTO {
	return CompanyDTO{
		ID:              c.ID,
		Name:            c.Name,
		TaxID:           c.TaxID,
		Address:         c.Address,
		Phone:           c.Phone,
		Currency:        string(c.Currency),
		TaxRate:         c.TaxRate,
		FiscalYearStart: c.FiscalYearStart,
		IsDefault:       isDefault,
		CreatedAt:       c.CreatedAt,
	}
}
