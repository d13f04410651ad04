package services

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// AttendanceSvcFacade exposes attendance tracking operations.
type AttendanceSvcFacade interface {
	// CheckIn opens today's attendance record for the staff member. Returns
	// ErrDuplicate when a record already exists for the day.
	CheckIn(ctx context.Context, staffID string, req dto.CheckInRequest) (*domain.AttendanceRecord, error)

	// CheckOut stamps the check-out time on today's open record.
	CheckOut(ctx context.Context, staffID string) (*domain.AttendanceRecord, error)

	// ListMonthlyRecords retrieves a staff member's records for the month containing the given date.
	ListMonthlyRecords(ctx context.Context, staffID string, month time.Time) ([]domain.AttendanceRecord, error)

	// GetBranchSummary aggregates a branch's attendance for one day.
	GetBranchSummary(ctx context.Context, branch string, date time.Time) (*domain.AttendanceSummary, error)
}
