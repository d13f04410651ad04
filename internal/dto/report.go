package dto

import (
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// DailyReportResponse is returned by the cron endpoint after the report is mailed.
type DailyReportResponse struct {
	Date       time.Time                 `json:"date"`
	Branches   []domain.BranchDailyStats `json:"branches"`
	Recipients int                       `json:"recipients"`
}
