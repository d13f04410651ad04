package services

import (
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, outbox *mailer.Outbox) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Notification goes first since cashbook, task and request fan-out depend on it.
	container.Notification = NewNotificationService(repos.NotificationRepo, repos.StaffRepo)

	container.Branch = NewBranchService(repos.BranchRepo)
	container.Staff = NewStaffService(repos.StaffRepo, repos.BranchRepo, outbox)
	container.Cashbook = NewCashbookService(repos.CashbookRepo, repos.BranchRepo, repos.StaffRepo, container.Notification, outbox)
	container.Task = NewTaskService(repos.TaskRepo, repos.StaffRepo, container.Notification, outbox)
	container.Attendance = NewAttendanceService(repos.AttendanceRepo, repos.StaffRepo)
	container.Request = NewRequestService(repos.RequestRepo, repos.StaffRepo, repos.BranchRepo, container.Notification, outbox)
	container.Reporting = NewReportingService(
		repos.BranchRepo,
		repos.StaffRepo,
		repos.CashbookRepo,
		repos.AttendanceRepo,
		repos.RequestRepo,
		repos.ReportingRepo,
		container.Cashbook,
		outbox,
	)

	container.TokenService = NewTokenService(cfg, repos.StaffRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
