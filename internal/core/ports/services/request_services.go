package services

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// RequestSvcFacade exposes service request operations.
type RequestSvcFacade interface {
	SubmitRequest(ctx context.Context, req dto.CreateServiceRequestRequest, submitterStaffID string) (*domain.ServiceRequest, error)
	GetRequestByID(ctx context.Context, requestID string) (*domain.ServiceRequest, error)

	// ReviewRequest approves or rejects a submitted request. Returns ErrConflict if
	// the request is not in the SUBMITTED state.
	ReviewRequest(ctx context.Context, requestID string, approve bool, notes string, reviewerStaffID string) (*domain.ServiceRequest, error)

	// FulfillRequest marks an approved request fulfilled.
	FulfillRequest(ctx context.Context, requestID string, editorStaffID string) (*domain.ServiceRequest, error)

	ListRequests(ctx context.Context, params dto.ListServiceRequestsParams) (*dto.ListServiceRequestsResponse, error)
}
