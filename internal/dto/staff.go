package dto

import (
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CreateStaffRequest defines the payload for registering a staff member.
type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Branch   string `json:"branch" binding:"required"`
	Role     string `json:"role" binding:"omitempty,oneof=STAFF ADMIN"`
	Password string `json:"password" binding:"required,min=8"`
}

// UpdateStaffRequest defines the mutable profile fields of a staff member.
type UpdateStaffRequest struct {
	Name   *string `json:"name"`
	Phone  *string `json:"phone"`
	Branch *string `json:"branch"`
	Role   *string `json:"role" binding:"omitempty,oneof=STAFF ADMIN"`
}

// StaffResponse defines the data returned for a staff member.
type StaffResponse struct {
	StaffID      string     `json:"staffID"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone,omitempty"`
	Branch       string     `json:"branch"`
	Role         string     `json:"role"`
	LastViewedAt *time.Time `json:"lastViewedAt,omitempty"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// ToStaffResponse converts a domain.Staff to its response DTO.
func ToStaffResponse(s *domain.Staff) StaffResponse {
	return StaffResponse{
		StaffID:      s.StaffID,
		Name:         s.Name,
		Email:        s.Email,
		Phone:        s.Phone,
		Branch:       s.Branch,
		Role:         string(s.Role),
		LastViewedAt: s.LastViewedAt,
		IsActive:     s.IsActive,
		CreatedAt:    s.CreatedAt,
	}
}

// ToStaffResponses converts a slice of domain.Staff to response DTOs.
func ToStaffResponses(staff []domain.Staff) []StaffResponse {
	responses := make([]StaffResponse, len(staff))
	for i, s := range staff {
		responses[i] = ToStaffResponse(&s)
	}
	return responses
}
