package repositories

import (
	"context"
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// ReportingRepositoryFacade defines read-only aggregation queries for the daily report.
type ReportingRepositoryFacade interface {
	// CountTasksByBranchAndStatus counts a branch's tasks in the given status; for
	// completed tasks only those completed on the given day are counted.
	CountTasksByBranchAndStatus(ctx context.Context, branch string, status domain.TaskStatus, date time.Time) (int, error)
}
