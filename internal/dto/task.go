package dto

import (
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	AssignedTo  string    `json:"assignedTo" binding:"required"`
	Branch      string    `json:"branch" binding:"required"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
}

// UpdateTaskRequest defines the mutable content fields of a task.
type UpdateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH"`
	DueDate     *time.Time `json:"dueDate"`
}

// UpdateTaskStatusRequest moves a task through its lifecycle.
type UpdateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=OPEN IN_PROGRESS COMPLETED CANCELLED"`
}

// TaskResponse defines the data returned for a task.
type TaskResponse struct {
	TaskID      string     `json:"taskID"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssignedTo  string     `json:"assignedTo"`
	AssignedBy  string     `json:"assignedBy"`
	Branch      string     `json:"branch"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     time.Time  `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ListTasksParams holds query parameters for listing tasks.
type ListTasksParams struct {
	Status    *string `form:"status"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListTasksResponse is the paginated task listing.
type ListTasksResponse struct {
	Tasks     []TaskResponse `json:"tasks"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToTaskResponse converts a domain.Task to its response DTO.
func ToTaskResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		TaskID:      t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		AssignedTo:  t.AssignedTo,
		AssignedBy:  t.AssignedBy,
		Branch:      t.Branch,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		DueDate:     t.DueDate,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
	}
}

// ToTaskResponses converts a slice of domain.Task to response DTOs.
func ToTaskResponses(tasks []domain.Task) []TaskResponse {
	responses := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		responses[i] = ToTaskResponse(&t)
	}
	return responses
}
