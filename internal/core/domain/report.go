package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BranchDailyStats aggregates one branch's activity for a single day.
type BranchDailyStats struct {
	Branch           string          `json:"branch"`
	TasksOpen        int             `json:"tasksOpen"`
	TasksCompleted   int             `json:"tasksCompleted"`
	StaffPresent     int             `json:"staffPresent"`
	StaffAbsent      int             `json:"staffAbsent"`
	CashInTotal      decimal.Decimal `json:"cashInTotal"`
	CashOutTotal     decimal.Decimal `json:"cashOutTotal"`
	PendingApprovals int             `json:"pendingApprovals"`
	PendingRequests  int             `json:"pendingRequests"`
}

// DailyReport is the organization-wide roll-up emailed to admins by the cron endpoint.
type DailyReport struct {
	Date     time.Time          `json:"date"`
	Branches []BranchDailyStats `json:"branches"`
}
