package mapping

import (
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/models"
)

// ToModelStaff converts a domain staff member to its row shape.
func ToModelStaff(d domain.Staff) models.Staff {
	return models.Staff{
		StaffID:                d.StaffID,
		Name:                   d.Name,
		Email:                  d.Email,
		Phone:                  d.Phone,
		Branch:                 d.Branch,
		Role:                   models.StaffRole(d.Role),
		PasswordHash:           d.PasswordHash,
		RefreshTokenHash:       d.RefreshTokenHash,
		RefreshTokenExpiryTime: d.RefreshTokenExpiryTime,
		LastViewedAt:           d.LastViewedAt,
		IsActive:               d.IsActive,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainStaff converts a staff row to the domain shape.
func ToDomainStaff(m models.Staff) domain.Staff {
	return domain.Staff{
		StaffID:                m.StaffID,
		Name:                   m.Name,
		Email:                  m.Email,
		Phone:                  m.Phone,
		Branch:                 m.Branch,
		Role:                   domain.StaffRole(m.Role),
		PasswordHash:           m.PasswordHash,
		RefreshTokenHash:       m.RefreshTokenHash,
		RefreshTokenExpiryTime: m.RefreshTokenExpiryTime,
		LastViewedAt:           m.LastViewedAt,
		IsActive:               m.IsActive,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
