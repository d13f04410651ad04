package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// attendanceService provides attendance tracking operations.
type attendanceService struct {
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	staffRepo      portsrepo.StaffRepositoryFacade
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo portsrepo.AttendanceRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade) portssvc.AttendanceSvcFacade {
	return &attendanceService{
		attendanceRepo: attendanceRepo,
		staffRepo:      staffRepo,
	}
}

// Ensure attendanceService implements the portssvc.AttendanceSvcFacade interface
var _ portssvc.AttendanceSvcFacade = (*attendanceService)(nil)

// truncateToDay zeroes the time component, keeping the calendar day in UTC.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CheckIn opens today's attendance record for the staff member.
func (s *attendanceService) CheckIn(ctx context.Context, staffID string, req dto.CheckInRequest) (*domain.AttendanceRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	staff, err := s.staffRepo.FindStaffByID(ctx, staffID)
	if err != nil {
		return nil, err
	}

	status := domain.AttendanceStatus(req.Status)
	if status == "" {
		status = domain.AttendancePresent
	}

	now := time.Now()
	record := domain.AttendanceRecord{
		RecordID: uuid.NewString(),
		StaffID:  staffID,
		Branch:   staff.Branch,
		Date:     truncateToDay(now),
		CheckIn:  now,
		Status:   status,
		Notes:    req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     staffID,
			LastUpdatedAt: now,
			LastUpdatedBy: staffID,
		},
	}

	if err := s.attendanceRepo.SaveRecord(ctx, record); err != nil {
		return nil, err
	}

	logger.Info("Attendance check-in recorded", slog.String("staff_id", staffID), slog.String("status", string(status)))
	return &record, nil
}

// CheckOut stamps the check-out time on today's open record.
func (s *attendanceService) CheckOut(ctx context.Context, staffID string) (*domain.AttendanceRecord, error) {
	now := time.Now()
	record, err := s.attendanceRepo.FindRecordByStaffAndDate(ctx, staffID, truncateToDay(now))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "no attendance record to check out from today", apperrors.ErrNotFound)
		}
		return nil, err
	}
	if record.CheckOut != nil {
		return nil, apperrors.NewAppError(409, "already checked out today", apperrors.ErrConflict)
	}

	record.CheckOut = &now
	record.LastUpdatedAt = now
	record.LastUpdatedBy = staffID

	if err := s.attendanceRepo.UpdateRecord(ctx, *record); err != nil {
		return nil, err
	}
	return record, nil
}

// ListMonthlyRecords retrieves a staff member's records for the month containing the given date.
func (s *attendanceService) ListMonthlyRecords(ctx context.Context, staffID string, month time.Time) ([]domain.AttendanceRecord, error) {
	return s.attendanceRepo.ListRecordsByStaffAndMonth(ctx, staffID, month)
}

// GetBranchSummary aggregates a branch's attendance for one day.
func (s *attendanceService) GetBranchSummary(ctx context.Context, branch string, date time.Time) (*domain.AttendanceSummary, error) {
	return s.attendanceRepo.SummarizeBranchByDate(ctx, branch, truncateToDay(date))
}
