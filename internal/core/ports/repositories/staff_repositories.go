package repositories

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// StaffReader defines read operations for staff data.
type StaffReader interface {
	// FindStaffByID retrieves a staff member by ID.
	FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error)

	// FindStaffByEmail retrieves a staff member by email, or ErrNotFound.
	FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error)

	// ListStaffByBranch retrieves active staff of a branch.
	ListStaffByBranch(ctx context.Context, branch string) ([]domain.Staff, error)

	// ListAdmins retrieves all active staff with the admin role.
	ListAdmins(ctx context.Context) ([]domain.Staff, error)
}

// StaffWriter defines write operations for staff data.
type StaffWriter interface {
	// SaveStaff inserts a new staff member.
	SaveStaff(ctx context.Context, staff domain.Staff) error

	// UpdateStaff updates profile fields of a staff member.
	UpdateStaff(ctx context.Context, staff domain.Staff) error

	// UpdateRefreshToken stores the hashed refresh token and its expiry for a staff member.
	UpdateRefreshToken(ctx context.Context, staffID string, tokenHash string, expiresAt *time.Time) error

	// UpdateLastViewedAt moves the notification read watermark of a staff member forward.
	UpdateLastViewedAt(ctx context.Context, staffID string, viewedAt time.Time) error

	// DeactivateStaff marks a staff member inactive.
	DeactivateStaff(ctx context.Context, staffID string, updatedBy string, updatedAt time.Time) error
}

// StaffRepositoryFacade combines all staff repository interfaces.
type StaffRepositoryFacade interface {
	StaffReader
	StaffWriter
}
