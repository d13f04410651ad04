package repositories

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// TaskRepositoryFacade defines persistence operations for tasks.
type TaskRepositoryFacade interface {
	// SaveTask inserts a new task.
	SaveTask(ctx context.Context, task domain.Task) error

	// FindTaskByID retrieves a task by ID.
	FindTaskByID(ctx context.Context, taskID string) (*domain.Task, error)

	// ListTasksByAssignee retrieves a paginated list of tasks assigned to a staff member.
	ListTasksByAssignee(ctx context.Context, staffID string, limit int, nextToken *string) ([]domain.Task, *string, error)

	// ListTasksByBranch retrieves a paginated list of tasks for a branch, optionally
	// filtered by status.
	ListTasksByBranch(ctx context.Context, branch string, status *domain.TaskStatus, limit int, nextToken *string) ([]domain.Task, *string, error)

	// UpdateTask updates content and status fields of a task.
	UpdateTask(ctx context.Context, task domain.Task) error
}
