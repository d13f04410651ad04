package mapping

import (
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/models"
)

// ToModelTask converts a domain task to its row shape.
func ToModelTask(d domain.Task) models.Task {
	return models.Task{
		TaskID:      d.TaskID,
		Title:       d.Title,
		Description: d.Description,
		AssignedTo:  d.AssignedTo,
		AssignedBy:  d.AssignedBy,
		Branch:      d.Branch,
		Priority:    models.TaskPriority(d.Priority),
		Status:      models.TaskStatus(d.Status),
		DueDate:     d.DueDate,
		CompletedAt: d.CompletedAt,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTask converts a task row to the domain shape.
func ToDomainTask(m models.Task) domain.Task {
	return domain.Task{
		TaskID:      m.TaskID,
		Title:       m.Title,
		Description: m.Description,
		AssignedTo:  m.AssignedTo,
		AssignedBy:  m.AssignedBy,
		Branch:      m.Branch,
		Priority:    domain.TaskPriority(m.Priority),
		Status:      domain.TaskStatus(m.Status),
		DueDate:     m.DueDate,
		CompletedAt: m.CompletedAt,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
