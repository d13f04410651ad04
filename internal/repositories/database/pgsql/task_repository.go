package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/mapping"
	"github.com/staffdesk/ops_portal_app/internal/utils/pagination"
)

type PgxTaskRepository struct {
	BaseRepository
}

// newPgxTaskRepository creates a new repository for task data.
func newPgxTaskRepository(pool *pgxpool.Pool) portsrepo.TaskRepositoryFacade {
	return &PgxTaskRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTaskRepository implements portsrepo.TaskRepositoryFacade
var _ portsrepo.TaskRepositoryFacade = (*PgxTaskRepository)(nil)

const taskColumns = `
	task_id, title, description, assigned_to, assigned_by, branch, priority, status,
	due_date, completed_at, created_at, created_by, last_updated_at, last_updated_by`

func scanTask(row pgx.Row) (models.Task, error) {
	var t models.Task
	err := row.Scan(
		&t.TaskID,
		&t.Title,
		&t.Description,
		&t.AssignedTo,
		&t.AssignedBy,
		&t.Branch,
		&t.Priority,
		&t.Status,
		&t.DueDate,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTask inserts a new task.
func (r *PgxTaskRepository) SaveTask(ctx context.Context, task domain.Task) error {
	modelTask := mapping.ToModelTask(task)
	query := `
		INSERT INTO tasks (
			task_id, title, description, assigned_to, assigned_by, branch, priority, status,
			due_date, completed_at, created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelTask.TaskID,
		modelTask.Title,
		modelTask.Description,
		modelTask.AssignedTo,
		modelTask.AssignedBy,
		modelTask.Branch,
		modelTask.Priority,
		modelTask.Status,
		modelTask.DueDate,
		modelTask.CompletedAt,
		modelTask.CreatedAt,
		modelTask.CreatedBy,
		modelTask.LastUpdatedAt,
		modelTask.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert task "+modelTask.TaskID, err)
	}
	return nil
}

// FindTaskByID retrieves a task by ID.
func (r *PgxTaskRepository) FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1;`

	modelTask, err := scanTask(r.Pool.QueryRow(ctx, query, taskID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find task by ID "+taskID, err)
	}

	domainTask := mapping.ToDomainTask(modelTask)
	return &domainTask, nil
}

// ListTasksByAssignee retrieves a paginated list of tasks assigned to a staff member.
func (r *PgxTaskRepository) ListTasksByAssignee(ctx context.Context, staffID string, limit int, nextToken *string) ([]domain.Task, *string, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks WHERE assigned_to = $1`
	return r.listTasks(ctx, baseQuery, []interface{}{staffID}, limit, nextToken)
}

// ListTasksByBranch retrieves a paginated list of tasks for a branch, optionally filtered by status.
func (r *PgxTaskRepository) ListTasksByBranch(ctx context.Context, branch string, status *domain.TaskStatus, limit int, nextToken *string) ([]domain.Task, *string, error) {
	baseQuery := `SELECT ` + taskColumns + ` FROM tasks WHERE branch = $1`
	args := []interface{}{branch}
	if status != nil {
		args = append(args, string(*status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}
	return r.listTasks(ctx, baseQuery, args, limit, nextToken)
}

// listTasks runs a task listing query with token-based pagination over (due_date, created_at).
func (r *PgxTaskRepository) listTasks(ctx context.Context, baseQuery string, args []interface{}, limit int, nextToken *string) ([]domain.Task, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	orderByClause := `ORDER BY due_date DESC, created_at DESC`

	if nextToken != nil && *nextToken != "" {
		lastDueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastDueDate, lastCreatedAt)
		baseQuery += ` AND (due_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query tasks", err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, fetchLimit)
	for rows.Next() {
		t, scanErr := scanTask(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan task row", scanErr)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating task rows", err)
	}

	var nextTokenVal *string
	if len(tasks) > limit {
		lastTask := tasks[limit-1]
		token := pagination.EncodeToken(lastTask.DueDate, lastTask.CreatedAt)
		nextTokenVal = &token
		tasks = tasks[:limit]
	}

	results := make([]domain.Task, len(tasks))
	for i, t := range tasks {
		results[i] = mapping.ToDomainTask(t)
	}
	return results, nextTokenVal, nil
}

// UpdateTask updates content and status fields of a task.
func (r *PgxTaskRepository) UpdateTask(ctx context.Context, task domain.Task) error {
	modelTask := mapping.ToModelTask(task)
	query := `
		UPDATE tasks
		SET title = $2, description = $3, assigned_to = $4, priority = $5, status = $6,
		    due_date = $7, completed_at = $8, last_updated_at = $9, last_updated_by = $10
		WHERE task_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTask.TaskID,
		modelTask.Title,
		modelTask.Description,
		modelTask.AssignedTo,
		modelTask.Priority,
		modelTask.Status,
		modelTask.DueDate,
		modelTask.CompletedAt,
		modelTask.LastUpdatedAt,
		modelTask.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update task "+modelTask.TaskID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
