package mapping

import (
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/models"
)

// ToModelServiceRequest converts a domain service request to its row shape.
func ToModelServiceRequest(d domain.ServiceRequest) models.ServiceRequest {
	return models.ServiceRequest{
		RequestID:     d.RequestID,
		RequestType:   models.RequestType(d.RequestType),
		Branch:        d.Branch,
		StaffID:       d.StaffID,
		Subject:       d.Subject,
		Description:   d.Description,
		Quantity:      d.Quantity,
		EstimatedCost: d.EstimatedCost,
		Status:        models.RequestStatus(d.Status),
		ReviewedBy:    d.ReviewedBy,
		ReviewedAt:    d.ReviewedAt,
		ReviewNotes:   d.ReviewNotes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainServiceRequest converts a service request row to the domain shape.
func ToDomainServiceRequest(m models.ServiceRequest) domain.ServiceRequest {
	return domain.ServiceRequest{
		RequestID:     m.RequestID,
		RequestType:   domain.RequestType(m.RequestType),
		Branch:        m.Branch,
		StaffID:       m.StaffID,
		Subject:       m.Subject,
		Description:   m.Description,
		Quantity:      m.Quantity,
		EstimatedCost: m.EstimatedCost,
		Status:        domain.RequestStatus(m.Status),
		ReviewedBy:    m.ReviewedBy,
		ReviewedAt:    m.ReviewedAt,
		ReviewNotes:   m.ReviewNotes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
