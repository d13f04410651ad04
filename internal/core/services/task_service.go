package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// validTaskTransitions defines the allowed task status transitions.
var validTaskTransitions = map[domain.TaskStatus][]domain.TaskStatus{
	domain.TaskOpen:       {domain.TaskInProgress, domain.TaskCompleted, domain.TaskCancelled},
	domain.TaskInProgress: {domain.TaskCompleted, domain.TaskCancelled, domain.TaskOpen},
}

// taskService provides task management operations.
type taskService struct {
	taskRepo  portsrepo.TaskRepositoryFacade
	staffRepo portsrepo.StaffRepositoryFacade
	notifier  portssvc.NotificationSvcFacade
	outbox    *mailer.Outbox
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo portsrepo.TaskRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade, notifier portssvc.NotificationSvcFacade, outbox *mailer.Outbox) portssvc.TaskSvcFacade {
	return &taskService{
		taskRepo:  taskRepo,
		staffRepo: staffRepo,
		notifier:  notifier,
		outbox:    outbox,
	}
}

// Ensure taskService implements the portssvc.TaskSvcFacade interface
var _ portssvc.TaskSvcFacade = (*taskService)(nil)

// CreateTask creates a task and notifies the assignee.
func (s *taskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest, creatorStaffID string) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignee, err := s.staffRepo.FindStaffByID(ctx, req.AssignedTo)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "assignee not found: "+req.AssignedTo, apperrors.ErrNotFound)
		}
		return nil, err
	}

	priority := domain.TaskPriority(req.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	now := time.Now()
	task := domain.Task{
		TaskID:      uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		AssignedBy:  creatorStaffID,
		Branch:      req.Branch,
		Priority:    priority,
		Status:      domain.TaskOpen,
		DueDate:     req.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorStaffID,
		},
	}

	if err := s.taskRepo.SaveTask(ctx, task); err != nil {
		return nil, err
	}

	logger.Info("Task created", slog.String("task_id", task.TaskID), slog.String("assigned_to", task.AssignedTo))

	// Best-effort fan-out; the task is already saved.
	if err := s.notifier.NotifyUser(ctx, task.AssignedTo, domain.NotifyTaskAssigned,
		"New task assigned: "+task.Title,
		"You have been assigned a new "+string(task.Priority)+" priority task at "+task.Branch,
		map[string]string{"taskID": task.TaskID}); err != nil {
		logger.Warn("Failed to notify assignee of new task", slog.String("error", err.Error()))
	}

	assigner, err := s.staffRepo.FindStaffByID(ctx, creatorStaffID)
	assignerName := creatorStaffID
	if err == nil {
		assignerName = assigner.Name
	}
	s.outbox.EnqueueRendered(mailer.EmailTaskAssigned, &mailer.TaskAssignedPayload{
		AssigneeName: assignee.Name,
		AssignerName: assignerName,
		TaskTitle:    task.Title,
		Priority:     string(task.Priority),
		DueDate:      task.DueDate.Format("2006-01-02"),
		Branch:       task.Branch,
	}, []string{assignee.Email})

	return &task, nil
}

// GetTaskByID retrieves a task by ID.
func (s *taskService) GetTaskByID(ctx context.Context, taskID string) (*domain.Task, error) {
	return s.taskRepo.FindTaskByID(ctx, taskID)
}

// UpdateTask updates content fields of a task.
func (s *taskService) UpdateTask(ctx context.Context, taskID string, req dto.UpdateTaskRequest, editorStaffID string) (*domain.Task, error) {
	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Priority != nil {
		task.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	task.LastUpdatedAt = time.Now()
	task.LastUpdatedBy = editorStaffID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}
	return task, nil
}

// UpdateTaskStatus moves a task through its lifecycle. Completing a task stamps
// CompletedAt and notifies the assigner.
func (s *taskService) UpdateTaskStatus(ctx context.Context, taskID string, status domain.TaskStatus, editorStaffID string) (*domain.Task, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	task, err := s.taskRepo.FindTaskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	if !isValidTaskTransition(task.Status, status) {
		return nil, apperrors.NewAppError(409, "invalid task status transition: "+string(task.Status)+" -> "+string(status), apperrors.ErrConflict)
	}

	now := time.Now()
	task.Status = status
	if status == domain.TaskCompleted {
		task.CompletedAt = &now
	}
	task.LastUpdatedAt = now
	task.LastUpdatedBy = editorStaffID

	if err := s.taskRepo.UpdateTask(ctx, *task); err != nil {
		return nil, err
	}

	logger.Info("Task status updated", slog.String("task_id", task.TaskID), slog.String("status", string(status)))

	if status == domain.TaskCompleted {
		s.fanOutCompletion(ctx, *task)
	}

	return task, nil
}

func isValidTaskTransition(from, to domain.TaskStatus) bool {
	for _, allowed := range validTaskTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// fanOutCompletion notifies the assigner and emails them. Best-effort.
func (s *taskService) fanOutCompletion(ctx context.Context, task domain.Task) {
	logger := middleware.GetLoggerFromCtx(ctx)

	assignee, err := s.staffRepo.FindStaffByID(ctx, task.AssignedTo)
	if err != nil {
		logger.Warn("Failed to resolve assignee for completion fan-out", slog.String("error", err.Error()))
		return
	}

	if err := s.notifier.NotifyUser(ctx, task.AssignedBy, domain.NotifyTaskCompleted,
		"Task completed: "+task.Title,
		assignee.Name+" completed the task at "+task.Branch,
		map[string]string{"taskID": task.TaskID}); err != nil {
		logger.Warn("Failed to notify assigner of completion", slog.String("error", err.Error()))
	}

	assigner, err := s.staffRepo.FindStaffByID(ctx, task.AssignedBy)
	if err != nil {
		logger.Warn("Failed to resolve assigner for completion email", slog.String("error", err.Error()))
		return
	}
	completedAt := time.Now()
	if task.CompletedAt != nil {
		completedAt = *task.CompletedAt
	}
	s.outbox.EnqueueRendered(mailer.EmailTaskCompleted, &mailer.TaskCompletedPayload{
		AssigneeName: assignee.Name,
		TaskTitle:    task.Title,
		Branch:       task.Branch,
		CompletedAt:  completedAt.Format("2006-01-02 15:04"),
	}, []string{assigner.Email})
}

// ListTasksByAssignee retrieves a paginated list of tasks assigned to a staff member.
func (s *taskService) ListTasksByAssignee(ctx context.Context, staffID string, params dto.ListTasksParams) (*dto.ListTasksResponse, error) {
	tasks, nextToken, err := s.taskRepo.ListTasksByAssignee(ctx, staffID, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTasksResponse{Tasks: dto.ToTaskResponses(tasks), NextToken: nextToken}, nil
}

// ListTasksByBranch retrieves a paginated list of tasks for a branch.
func (s *taskService) ListTasksByBranch(ctx context.Context, branch string, params dto.ListTasksParams) (*dto.ListTasksResponse, error) {
	var status *domain.TaskStatus
	if params.Status != nil && *params.Status != "" {
		st := domain.TaskStatus(*params.Status)
		status = &st
	}
	tasks, nextToken, err := s.taskRepo.ListTasksByBranch(ctx, branch, status, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListTasksResponse{Tasks: dto.ToTaskResponses(tasks), NextToken: nextToken}, nil
}
