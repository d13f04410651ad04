package models

import "time"

// StaffRole mirrors domain.StaffRole at the storage layer.
type StaffRole string

const (
	RoleStaff StaffRole = "STAFF"
	RoleAdmin StaffRole = "ADMIN"
)

// Staff is the staff row shape.
type Staff struct {
	StaffID                string     `json:"staffID"`
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone,omitempty"`
	Branch                 string     `json:"branch"`
	Role                   StaffRole  `json:"role"`
	PasswordHash           string     `json:"-"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	LastViewedAt           *time.Time `json:"lastViewedAt,omitempty"`
	IsActive               bool       `json:"isActive"`
	AuditFields
}
