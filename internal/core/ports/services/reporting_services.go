package services

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// ReportingSvcFacade builds the daily activity report and mails it to admins.
type ReportingSvcFacade interface {
	// BuildDailyReport aggregates per-branch counts for the given day.
	BuildDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, error)

	// SendDailyReport builds the report and emails it to every active admin.
	// It returns the report and the number of recipients. Returns ErrNotFound
	// when no admin exists.
	SendDailyReport(ctx context.Context, date time.Time) (*domain.DailyReport, int, error)
}
