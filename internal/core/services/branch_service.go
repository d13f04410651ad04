package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// branchService provides branch management operations.
type branchService struct {
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates a new BranchService.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{branchRepo: branchRepo}
}

// Ensure branchService implements the portssvc.BranchSvcFacade interface
var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// CreateBranch creates a new branch. Branch codes are normalized to upper case.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorStaffID string) (*domain.Branch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	branch := domain.Branch{
		BranchID:    uuid.NewString(),
		Name:        req.Name,
		Code:        strings.ToUpper(req.Code),
		Address:     req.Address,
		AutoApprove: req.AutoApprove,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorStaffID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		return nil, err
	}

	logger.Info("Branch created", slog.String("branch_code", branch.Code))
	return &branch, nil
}

// GetBranchByCode retrieves a branch by its short code.
func (s *branchService) GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByCode(ctx, strings.ToUpper(code))
}

// ListBranches retrieves all branches, optionally including inactive ones.
func (s *branchService) ListBranches(ctx context.Context, includeInactive bool) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx, includeInactive)
}

// UpdateBranch updates name, address, auto-approve and active flags.
func (s *branchService) UpdateBranch(ctx context.Context, code string, req dto.UpdateBranchRequest, editorStaffID string) (*domain.Branch, error) {
	branch, err := s.branchRepo.FindBranchByCode(ctx, strings.ToUpper(code))
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		branch.Name = *req.Name
	}
	if req.Address != nil {
		branch.Address = *req.Address
	}
	if req.AutoApprove != nil {
		branch.AutoApprove = *req.AutoApprove
	}
	if req.IsActive != nil {
		branch.IsActive = *req.IsActive
	}
	branch.LastUpdatedAt = time.Now()
	branch.LastUpdatedBy = editorStaffID

	if err := s.branchRepo.UpdateBranch(ctx, *branch); err != nil {
		return nil, err
	}
	return branch, nil
}
