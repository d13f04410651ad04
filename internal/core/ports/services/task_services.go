package services

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// TaskSvcFacade exposes task management operations.
type TaskSvcFacade interface {
	CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorStaffID string) (*domain.Task, error)
	GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error)
	UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, editorStaffID string) (*domain.Task, error)

	// UpdateTaskStatus moves a task through its lifecycle. Completing a task stamps
	// CompletedAt and notifies the assigner.
	UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, editorStaffID string) (*domain.Task, error)

	ListTasksByAssignee(ctx context.Context, staffID string, params dto.ListTasksParams) (*dto.ListTasksResponse, error)
	ListTasksByBranch(ctx context.Context, branch string, params dto.ListTasksParams) (*dto.ListTasksResponse, error)
}
