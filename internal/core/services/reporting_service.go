package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// reportingService builds the daily activity report and mails it to admins.
type reportingService struct {
	branchRepo     portsrepo.BranchRepositoryFacade
	staffRepo      portsrepo.StaffRepositoryFacade
	cashbookRepo   portsrepo.CashbookRepositoryFacade
	attendanceRepo portsrepo.AttendanceRepositoryFacade
	requestRepo    portsrepo.RequestRepositoryFacade
	reportingRepo  portsrepo.ReportingRepositoryFacade
	cashbookSvc    portssvc.CashbookSvcFacade
	outbox         *mailer.Outbox
}

// NewReportingService creates a new ReportingService.
func NewReportingService(
	branchRepo portsrepo.BranchRepositoryFacade,
	staffRepo portsrepo.StaffRepositoryFacade,
	cashbookRepo portsrepo.CashbookRepositoryFacade,
	attendanceRepo portsrepo.AttendanceRepositoryFacade,
	requestRepo portsrepo.RequestRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	cashbookSvc portssvc.CashbookSvcFacade,
	outbox *mailer.Outbox,
) portssvc.ReportingSvcFacade {
	return &reportingService{
		branchRepo:     branchRepo,
		staffRepo:      staffRepo,
		cashbookRepo:   cashbookRepo,
		attendanceRepo: attendanceRepo,
		requestRepo:    requestRepo,
		reportingRepo:  reportingRepo,
		cashbookSvc:    cashbookSvc,
		outbox:         outbox,
	}
}

// Ensure reportingService implements the portssvc.ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// BuildDailyReport aggregates per-branch counts for the given day.
func (s *reportingService) BuildDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	branches, err := s.branchRepo.ListBranches(ctx, false)
	if err != nil {
		return nil, err
	}

	report := &domain.DailyReport{Date: date}
	for _, branch := range branches {
		stats := domain.BranchDailyStats{Branch: branch.Code}

		if open, err := s.reportingRepo.CountTasksByBranchAndStatus(ctx, branch.Code, domain.TaskOpen, date); err == nil {
			stats.TasksOpen = open
		} else {
			logger.Warn("Failed to count open tasks", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}
		if completed, err := s.reportingRepo.CountTasksByBranchAndStatus(ctx, branch.Code, domain.TaskCompleted, date); err == nil {
			stats.TasksCompleted = completed
		} else {
			logger.Warn("Failed to count completed tasks", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}

		if summary, err := s.attendanceRepo.SummarizeBranchByDate(ctx, branch.Code, date); err == nil {
			stats.StaffPresent = summary.Present + summary.HalfDay
			stats.StaffAbsent = summary.Absent
		} else {
			logger.Warn("Failed to summarize attendance", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}

		cashIn, cashOut, err := s.cashbookRepo.SumApprovedByBranchAndDate(ctx, branch.Code, date)
		if err == nil {
			stats.CashInTotal = cashIn
			stats.CashOutTotal = cashOut
		} else {
			logger.Warn("Failed to sum cash movements", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}

		if pending, err := s.cashbookRepo.CountByBranchAndStatus(ctx, branch.Code, domain.VerificationPending); err == nil {
			stats.PendingApprovals = pending
		} else {
			logger.Warn("Failed to count pending approvals", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}
		if pendingReqs, err := s.requestRepo.CountByBranchAndStatus(ctx, branch.Code, domain.RequestSubmitted); err == nil {
			stats.PendingRequests = pendingReqs
		} else {
			logger.Warn("Failed to count pending requests", slog.String("branch", branch.Code), slog.String("error", err.Error()))
		}

		report.Branches = append(report.Branches, stats)
	}

	return report, nil
}

// SendDailyReport builds the report and emails it to every active admin.
func (s *reportingService) SendDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		return nil, 0, err
	}
	if len(admins) == 0 {
		return nil, 0, apperrors.NewAppError(404, "no admin recipients for daily report", apperrors.ErrNotFound)
	}

	report, err := s.BuildDailyReport(ctx, date)
	if err != nil {
		return nil, 0, err
	}

	lines := make([]mailer.DailyReportBranchLine, 0, len(report.Branches))
	for _, stats := range report.Branches {
		balance, balErr := s.cashbookSvc.GetBranchBalance(ctx, stats.Branch)
		closing := "0.00"
		if balErr == nil {
			closing = balance.Balance.StringFixed(2)
		} else if !errors.Is(balErr, apperrors.ErrNotFound) {
			logger.Warn("Failed to resolve closing balance for report", slog.String("branch", stats.Branch), slog.String("error", balErr.Error()))
		}

		lines = append(lines, mailer.DailyReportBranchLine{
			Branch:          stats.Branch,
			PresentCount:    stats.StaffPresent,
			AbsentCount:     stats.StaffAbsent,
			OpenTasks:       stats.TasksOpen,
			PendingCash:     stats.PendingApprovals,
			PendingRequests: stats.PendingRequests,
			ApprovedCashIn:  stats.CashInTotal.StringFixed(2),
			ApprovedCashOut: stats.CashOutTotal.StringFixed(2),
			ClosingBalance:  closing,
		})
	}

	recipients := staffEmails(admins)
	s.outbox.EnqueueRendered(mailer.EmailDailyReport, &mailer.DailyReportPayload{
		ReportDate: date.Format("2006-01-02"),
		Branches:   lines,
	}, recipients)

	logger.Info("Daily report queued",
		slog.String("date", date.Format("2006-01-02")),
		slog.Int("branches", len(report.Branches)),
		slog.Int("recipients", len(recipients)),
	)
	return report, len(recipients), nil
}
