package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
	"github.com/staffdesk/ops_portal_app/internal/utils"
)

// staffService provides staff management and credential verification.
type staffService struct {
	staffRepo  portsrepo.StaffRepositoryFacade
	branchRepo portsrepo.BranchRepositoryFacade
	outbox     *mailer.Outbox
}

// NewStaffService creates a new StaffService.
func NewStaffService(staffRepo portsrepo.StaffRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade, outbox *mailer.Outbox) portssvc.StaffSvcFacade {
	return &staffService{
		staffRepo:  staffRepo,
		branchRepo: branchRepo,
		outbox:     outbox,
	}
}

// Ensure staffService implements the portssvc.StaffSvcFacade interface
var _ portssvc.StaffSvcFacade = (*staffService)(nil)

// CreateStaff registers a new staff member and sends the welcome email.
func (s *staffService) CreateStaff(ctx context.Context, req dto.CreateStaffRequest, creatorStaffID string) (*domain.Staff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	branch, err := s.branchRepo.FindBranchByCode(ctx, req.Branch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "branch not found: "+req.Branch, apperrors.ErrNotFound)
		}
		return nil, err
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	role := domain.RoleStaff
	if req.Role == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	now := time.Now()
	staff := domain.Staff{
		StaffID:      uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Branch:       branch.Code,
		Role:         role,
		PasswordHash: passwordHash,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorStaffID,
		},
	}

	if err := s.staffRepo.SaveStaff(ctx, staff); err != nil {
		return nil, err
	}

	logger.Info("Staff member created", slog.String("staff_id", staff.StaffID), slog.String("branch", staff.Branch))

	s.outbox.EnqueueRendered(mailer.EmailWelcome, &mailer.WelcomePayload{
		StaffName: staff.Name,
		Branch:    staff.Branch,
		Role:      string(staff.Role),
	}, []string{staff.Email})

	return &staff, nil
}

// GetStaffByID retrieves a staff member by ID.
func (s *staffService) GetStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	return s.staffRepo.FindStaffByID(ctx, staffID)
}

// GetStaffByEmail retrieves a staff member by email.
func (s *staffService) GetStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	return s.staffRepo.FindStaffByEmail(ctx, email)
}

// ListStaffByBranch retrieves active staff of a branch.
func (s *staffService) ListStaffByBranch(ctx context.Context, branch string) ([]domain.Staff, error) {
	return s.staffRepo.ListStaffByBranch(ctx, branch)
}

// ListAdmins retrieves all active staff with the admin role.
func (s *staffService) ListAdmins(ctx context.Context) ([]domain.Staff, error) {
	return s.staffRepo.ListAdmins(ctx)
}

// UpdateStaff updates profile fields of a staff member.
func (s *staffService) UpdateStaff(ctx context.Context, staffID string, req dto.UpdateStaffRequest, editorStaffID string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		staff.Name = *req.Name
	}
	if req.Phone != nil {
		staff.Phone = *req.Phone
	}
	if req.Branch != nil {
		if _, err := s.branchRepo.FindBranchByCode(ctx, *req.Branch); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewAppError(404, "branch not found: "+*req.Branch, apperrors.ErrNotFound)
			}
			return nil, err
		}
		staff.Branch = *req.Branch
	}
	if req.Role != nil {
		staff.Role = domain.StaffRole(*req.Role)
	}
	staff.LastUpdatedAt = time.Now()
	staff.LastUpdatedBy = editorStaffID

	if err := s.staffRepo.UpdateStaff(ctx, *staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// DeactivateStaff marks a staff member inactive.
func (s *staffService) DeactivateStaff(ctx context.Context, staffID string, editorStaffID string) error {
	return s.staffRepo.DeactivateStaff(ctx, staffID, editorStaffID, time.Now())
}

// VerifyCredentials checks email+password and returns the staff member on success.
func (s *staffService) VerifyCredentials(ctx context.Context, email string, password string) (*domain.Staff, error) {
	staff, err := s.staffRepo.FindStaffByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so callers can't probe for accounts.
			return nil, apperrors.ErrUnauthorized
		}
		return nil, err
	}
	if !staff.IsActive {
		return nil, apperrors.ErrUnauthorized
	}
	if !utils.CheckPasswordHash(password, staff.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return staff, nil
}

// UpsertFromGoogle finds or creates a staff member from a verified Google profile.
// New SSO users land in the default branch with the staff role until an admin
// assigns them properly.
func (s *staffService) UpsertFromGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Staff, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !info.VerifiedEmail {
		return nil, apperrors.NewAppError(401, "google account email is not verified", apperrors.ErrUnauthorized)
	}

	staff, err := s.staffRepo.FindStaffByEmail(ctx, info.Email)
	if err == nil {
		if !staff.IsActive {
			return nil, apperrors.ErrUnauthorized
		}
		return staff, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	branches, err := s.branchRepo.ListBranches(ctx, false)
	if err != nil {
		return nil, err
	}
	if len(branches) == 0 {
		return nil, apperrors.NewAppError(500, "no active branch to place new SSO user in", apperrors.ErrInternal)
	}

	now := time.Now()
	newStaff := domain.Staff{
		StaffID:  uuid.NewString(),
		Name:     info.Name,
		Email:    info.Email,
		Branch:   branches[0].Code,
		Role:     domain.RoleStaff,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "google-sso",
			LastUpdatedAt: now,
			LastUpdatedBy: "google-sso",
		},
	}
	if err := s.staffRepo.SaveStaff(ctx, newStaff); err != nil {
		return nil, err
	}

	logger.Info("Staff member created via Google SSO", slog.String("staff_id", newStaff.StaffID))

	s.outbox.EnqueueRendered(mailer.EmailWelcome, &mailer.WelcomePayload{
		StaffName: newStaff.Name,
		Branch:    newStaff.Branch,
		Role:      string(newStaff.Role),
	}, []string{newStaff.Email})

	return &newStaff, nil
}

// StoreRefreshToken persists the hashed refresh token for a staff member.
func (s *staffService) StoreRefreshToken(ctx context.Context, staffID string, tokenHash string, expiresAt time.Time) error {
	return s.staffRepo.UpdateRefreshToken(ctx, staffID, tokenHash, &expiresAt)
}

// ClearRefreshToken removes the stored refresh token on logout.
func (s *staffService) ClearRefreshToken(ctx context.Context, staffID string) error {
	return s.staffRepo.UpdateRefreshToken(ctx, staffID, "", nil)
}
