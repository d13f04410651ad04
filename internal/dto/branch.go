package dto

import "github.com/staffdesk/ops_portal_app/internal/core/domain"

// CreateBranchRequest defines the payload for creating a branch.
type CreateBranchRequest struct {
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required,alphanum,max=10"`
	Address     string `json:"address"`
	AutoApprove bool   `json:"autoApprove"`
}

// UpdateBranchRequest defines the mutable fields of a branch.
type UpdateBranchRequest struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	AutoApprove *bool   `json:"autoApprove"`
	IsActive    *bool   `json:"isActive"`
}

// BranchResponse defines the data returned for a branch.
type BranchResponse struct {
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Address     string `json:"address,omitempty"`
	AutoApprove bool   `json:"autoApprove"`
	IsActive    bool   `json:"isActive"`
}

// ToBranchResponse converts a domain.Branch to its response DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID:    b.BranchID,
		Name:        b.Name,
		Code:        b.Code,
		Address:     b.Address,
		AutoApprove: b.AutoApprove,
		IsActive:    b.IsActive,
	}
}
