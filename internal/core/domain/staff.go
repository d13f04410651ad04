package domain

import "time"

// StaffRole distinguishes regular staff from portal administrators.
type StaffRole string

const (
	RoleStaff StaffRole = "STAFF"
	RoleAdmin StaffRole = "ADMIN"
)

// Staff represents a portal user. Admins receive broadcast notifications and
// review pending cash transactions and service requests.
type Staff struct {
	StaffID                string     `json:"staffID"` // Primary Key (UUID)
	Name                   string     `json:"name"`
	Email                  string     `json:"email"`
	Phone                  string     `json:"phone,omitempty"`
	Branch                 string     `json:"branch"` // FK -> Branch.Code
	Role                   StaffRole  `json:"role"`
	PasswordHash           string     `json:"-"`
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	LastViewedAt           *time.Time `json:"lastViewedAt,omitempty"` // Notification read watermark
	IsActive               bool       `json:"isActive"`
	AuditFields
}

// GoogleUserInfo holds the subset of the Google profile used to upsert staff on SSO sign-in.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
