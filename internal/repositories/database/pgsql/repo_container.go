package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all pgsql-backed repositories for the service layer.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	branchRepo := newPgxBranchRepository(dbPool)
	staffRepo := newPgxStaffRepository(dbPool)
	cashbookRepo := newPgxCashbookRepository(dbPool)
	taskRepo := newPgxTaskRepository(dbPool)
	attendanceRepo := newPgxAttendanceRepository(dbPool)
	requestRepo := newPgxRequestRepository(dbPool)
	notificationRepo := newPgxNotificationRepository(dbPool)
	reportingRepo := newPgxReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		BranchRepo:       branchRepo,
		StaffRepo:        staffRepo,
		CashbookRepo:     cashbookRepo,
		TaskRepo:         taskRepo,
		AttendanceRepo:   attendanceRepo,
		RequestRepo:      requestRepo,
		NotificationRepo: notificationRepo,
		ReportingRepo:    reportingRepo,
	}
}
