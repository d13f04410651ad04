package models

import "time"

// TaskPriority mirrors domain.TaskPriority at the storage layer.
type TaskPriority string

// TaskStatus mirrors domain.TaskStatus at the storage layer.
type TaskStatus string

// Task is the tasks row shape.
type Task struct {
	TaskID      string       `json:"taskID"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	AssignedTo  string       `json:"assignedTo"`
	AssignedBy  string       `json:"assignedBy"`
	Branch      string       `json:"branch"`
	Priority    TaskPriority `json:"priority"`
	Status      TaskStatus   `json:"status"`
	DueDate     time.Time    `json:"dueDate"`
	CompletedAt *time.Time   `json:"completedAt,omitempty"`
	AuditFields
}
