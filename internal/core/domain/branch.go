package domain

// Branch is a physical/organizational unit with its own cash book and staff.
type Branch struct {
	BranchID    string `json:"branchID"` // Primary Key (UUID)
	Name        string `json:"name"`
	Code        string `json:"code"` // Short unique code, used as the tenancy key
	Address     string `json:"address,omitempty"`
	AutoApprove bool   `json:"autoApprove"` // Cash transactions skip the pending review state
	IsActive    bool   `json:"isActive"`
	AuditFields
}
