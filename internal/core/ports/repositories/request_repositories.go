package repositories

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// RequestListFilter narrows a service request listing. Nil fields are ignored.
type RequestListFilter struct {
	Branch      *string
	RequestType *domain.RequestType
	Status      *domain.RequestStatus
}

// RequestRepositoryFacade defines persistence operations for service requests.
type RequestRepositoryFacade interface {
	// SaveRequest inserts a new service request.
	SaveRequest(ctx context.Context, req domain.ServiceRequest) error

	// FindRequestByID retrieves a service request by ID.
	FindRequestByID(ctx context.Context, requestID string) (*domain.ServiceRequest, error)

	// ListRequests retrieves a paginated, filtered list of service requests.
	ListRequests(ctx context.Context, filter RequestListFilter, limit int, nextToken *string) ([]domain.ServiceRequest, *string, error)

	// UpdateRequest updates status and review fields of a service request.
	UpdateRequest(ctx context.Context, req domain.ServiceRequest) error

	// CountByBranchAndStatus counts requests of a branch in the given status.
	CountByBranchAndStatus(ctx context.Context, branch string, status domain.RequestStatus) (int, error)
}
