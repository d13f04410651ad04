package repositories

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// AttendanceRepositoryFacade defines persistence operations for attendance records.
type AttendanceRepositoryFacade interface {
	// SaveRecord inserts a new attendance record. Returns ErrDuplicate if a record
	// already exists for (staffID, date).
	SaveRecord(ctx context.Context, record domain.AttendanceRecord) error

	// FindRecordByStaffAndDate retrieves the record of a staff member for a calendar day.
	FindRecordByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*domain.AttendanceRecord, error)

	// UpdateRecord updates check-out, status and notes of a record.
	UpdateRecord(ctx context.Context, record domain.AttendanceRecord) error

	// ListRecordsByStaffAndMonth retrieves all records of a staff member within the
	// month containing the given date.
	ListRecordsByStaffAndMonth(ctx context.Context, staffID string, month time.Time) ([]domain.AttendanceRecord, error)

	// SummarizeBranchByDate aggregates a branch's attendance counts for one day.
	SummarizeBranchByDate(ctx context.Context, branch string, date time.Time) (*domain.AttendanceSummary, error)
}
