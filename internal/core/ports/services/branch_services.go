package services

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// BranchSvcFacade exposes branch management operations.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creatorStaffID string) (*domain.Branch, error)
	GetBranchByCode(ctx context.Context, code string) (*domain.Branch, error)
	ListBranches(ctx context.Context, includeInactive bool) ([]domain.Branch, error)
	UpdateBranch(ctx context.Context, code string, req dto.UpdateBranchRequest, editorStaffID string) (*domain.Branch, error)
}
