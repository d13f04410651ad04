package repositories

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// BranchRepositoryFacade defines persistence operations for branches.
type BranchRepositoryFacade interface {
	// SaveBranch inserts a new branch.
	SaveBranch(ctx context.Context, branch domain.Branch) error

	// FindBranchByCode retrieves a branch by its short code.
	FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error)

	// ListBranches retrieves all branches, optionally including inactive ones.
	ListBranches(ctx context.Context, includeInactive bool) ([]domain.Branch, error)

	// UpdateBranch updates name, address, auto-approve and active flags.
	UpdateBranch(ctx context.Context, branch domain.Branch) error
}
