package domain

import "time"

// TaskPriority indicates urgency of a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TaskStatus indicates the lifecycle state of a task.
type TaskStatus string

const (
	TaskOpen       TaskStatus = "OPEN"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
	TaskCancelled  TaskStatus = "CANCELLED"
)

// Task is a unit of work assigned to a staff member.
type Task struct {
	TaskID      string       `json:"taskID"` // Primary Key (UUID)
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AssignedTo  string       `json:"assignedTo"` // FK -> Staff.StaffID
	AssignedBy  string       `json:"assignedBy"` // FK -> Staff.StaffID
	Branch      string       `json:"branch"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     time.Time    `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	AuditFields
}
