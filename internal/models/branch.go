package models

// Branch is the branches row shape.
type Branch struct {
	BranchID    string `json:"branchID"`
	Name        string `json:"name"`
	Code        string `json:"code"`
	Address     string `json:"address,omitempty"`
	AutoApprove bool   `json:"autoApprove"`
	IsActive    bool   `json:"isActive"`
	AuditFields
}
