package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	BaseRepository
}

// newPgxReportingRepository creates a new repository for daily report aggregation queries.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxReportingRepository implements portsrepo.ReportingRepositoryFacade
var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

// CountTasksByBranchAndStatus counts a branch's tasks in the given status; for
// completed tasks only those completed on the given day are counted.
func (r *PgxReportingRepository) CountTasksByBranchAndStatus(ctx context.Context, branch string, status domain.TaskStatus, date time.Time) (int, error) {
	query := `SELECT COUNT(*) FROM tasks WHERE branch = $1 AND status = $2`
	args := []interface{}{branch, string(status)}
	if status == domain.TaskCompleted {
		query += ` AND completed_at::date = $3::date`
		args = append(args, date)
	}
	query += `;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count tasks for branch "+branch, err)
	}
	return count, nil
}
