package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CreateServiceRequestRequest defines the payload for submitting a service request.
type CreateServiceRequestRequest struct {
	RequestType   string           `json:"requestType" binding:"required,oneof=MAINTENANCE PURCHASE SCRAP STATIONARY"`
	Branch        string           `json:"branch" binding:"required"`
	Subject       string           `json:"subject" binding:"required"`
	Description   string           `json:"description"`
	Quantity      int              `json:"quantity" binding:"omitempty,min=1"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost"`
}

// ReviewServiceRequestRequest approves or rejects a submitted request.
type ReviewServiceRequestRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

// ServiceRequestResponse defines the data returned for a service request.
type ServiceRequestResponse struct {
	RequestID     string           `json:"requestID"`
	RequestType   string           `json:"requestType"`
	Branch        string           `json:"branch"`
	StaffID       string           `json:"staffID"`
	Subject       string           `json:"subject"`
	Description   string           `json:"description,omitempty"`
	Quantity      int              `json:"quantity,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Status        string           `json:"status"`
	ReviewedBy    *string          `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time       `json:"reviewedAt,omitempty"`
	ReviewNotes   string           `json:"reviewNotes,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

// ListServiceRequestsParams holds query parameters for listing service requests.
type ListServiceRequestsParams struct {
	Branch      *string `form:"branch"`
	RequestType *string `form:"type"`
	Status      *string `form:"status"`
	Limit       int     `form:"limit"`
	NextToken   *string `form:"nextToken"`
}

// ListServiceRequestsResponse is the paginated service request listing.
type ListServiceRequestsResponse struct {
	Requests  []ServiceRequestResponse `json:"requests"`
	NextToken *string                  `json:"nextToken,omitempty"`
}

// ToServiceRequestResponse converts a domain.ServiceRequest to its response DTO.
func ToServiceRequestResponse(r *domain.ServiceRequest) ServiceRequestResponse {
	return ServiceRequestResponse{
		RequestID:     r.RequestID,
		RequestType:   string(r.RequestType),
		Branch:        r.Branch,
		StaffID:       r.StaffID,
		Subject:       r.Subject,
		Description:   r.Description,
		Quantity:      r.Quantity,
		EstimatedCost: r.EstimatedCost,
		Status:        string(r.Status),
		ReviewedBy:    r.ReviewedBy,
		ReviewedAt:    r.ReviewedAt,
		ReviewNotes:   r.ReviewNotes,
		CreatedAt:     r.CreatedAt,
	}
}

// ToServiceRequestResponses converts a slice of service requests to response DTOs.
func ToServiceRequestResponses(reqs []domain.ServiceRequest) []ServiceRequestResponse {
	responses := make([]ServiceRequestResponse, len(reqs))
	for i, r := range reqs {
		responses[i] = ToServiceRequestResponse(&r)
	}
	return responses
}
