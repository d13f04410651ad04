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

// requestService provides service request operations.
type requestService struct {
	requestRepo portsrepo.RequestRepositoryFacade
	staffRepo   portsrepo.StaffRepositoryFacade
	branchRepo  portsrepo.BranchRepositoryFacade
	notifier    portssvc.NotificationSvcFacade
	outbox      *mailer.Outbox
}

// NewRequestService creates a new RequestService.
func NewRequestService(requestRepo portsrepo.RequestRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade, notifier portssvc.NotificationSvcFacade, outbox *mailer.Outbox) portssvc.RequestSvcFacade {
	return &requestService{
		requestRepo: requestRepo,
		staffRepo:   staffRepo,
		branchRepo:  branchRepo,
		notifier:    notifier,
		outbox:      outbox,
	}
}

// Ensure requestService implements the portssvc.RequestSvcFacade interface
var _ portssvc.RequestSvcFacade = (*requestService)(nil)

// SubmitRequest records a new service request and notifies admins.
func (s *requestService) SubmitRequest(ctx context.Context, req dto.CreateServiceRequestRequest, submitterStaffID string) (*domain.ServiceRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.branchRepo.FindBranchByCode(ctx, req.Branch); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "branch not found: "+req.Branch, apperrors.ErrNotFound)
		}
		return nil, err
	}

	now := time.Now()
	request := domain.ServiceRequest{
		RequestID:     uuid.NewString(),
		RequestType:   domain.RequestType(req.RequestType),
		Branch:        req.Branch,
		StaffID:       submitterStaffID,
		Subject:       req.Subject,
		Description:   req.Description,
		Quantity:      req.Quantity,
		EstimatedCost: req.EstimatedCost,
		Status:        domain.RequestSubmitted,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterStaffID,
		},
	}

	if err := s.requestRepo.SaveRequest(ctx, request); err != nil {
		return nil, err
	}

	logger.Info("Service request submitted",
		slog.String("request_id", request.RequestID),
		slog.String("type", string(request.RequestType)),
		slog.String("branch", request.Branch),
	)

	s.fanOutSubmission(ctx, request)
	return &request, nil
}

// GetRequestByID retrieves a service request by ID.
func (s *requestService) GetRequestByID(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	return s.requestRepo.FindRequestByID(ctx, requestID)
}

// ReviewRequest approves or rejects a submitted request.
func (s *requestService) ReviewRequest(ctx context.Context, requestID string, approve bool, notes string, reviewerStaffID string) (*domain.ServiceRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestSubmitted {
		return nil, apperrors.NewAppError(409, "request is not awaiting review: "+string(request.Status), apperrors.ErrConflict)
	}

	now := time.Now()
	if approve {
		request.Status = domain.RequestApproved
	} else {
		request.Status = domain.RequestRejected
	}
	request.ReviewedBy = &reviewerStaffID
	request.ReviewedAt = &now
	request.ReviewNotes = notes
	request.LastUpdatedAt = now
	request.LastUpdatedBy = reviewerStaffID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		return nil, err
	}

	logger.Info("Service request reviewed",
		slog.String("request_id", request.RequestID),
		slog.String("status", string(request.Status)),
	)

	s.fanOutReview(ctx, *request, reviewerStaffID, notes)
	return request, nil
}

// FulfillRequest marks an approved request fulfilled.
func (s *requestService) FulfillRequest(ctx context.Context, requestID string, editorStaffID string) (*domain.ServiceRequest, error) {
	request, err := s.requestRepo.FindRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != domain.RequestApproved {
		return nil, apperrors.NewAppError(409, "only approved requests can be fulfilled: "+string(request.Status), apperrors.ErrConflict)
	}

	now := time.Now()
	request.Status = domain.RequestFulfilled
	request.LastUpdatedAt = now
	request.LastUpdatedBy = editorStaffID

	if err := s.requestRepo.UpdateRequest(ctx, *request); err != nil {
		return nil, err
	}

	s.fanOutReview(ctx, *request, editorStaffID, request.ReviewNotes)
	return request, nil
}

// ListRequests retrieves a paginated, filtered list of service requests.
func (s *requestService) ListRequests(ctx context.Context, params dto.ListServiceRequestsParams) (*dto.ListServiceRequestsResponse, error) {
	filter := portsrepo.RequestListFilter{Branch: params.Branch}
	if params.RequestType != nil && *params.RequestType != "" {
		rt := domain.RequestType(*params.RequestType)
		filter.RequestType = &rt
	}
	if params.Status != nil && *params.Status != "" {
		st := domain.RequestStatus(*params.Status)
		filter.Status = &st
	}

	requests, nextToken, err := s.requestRepo.ListRequests(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListServiceRequestsResponse{
		Requests:  dto.ToServiceRequestResponses(requests),
		NextToken: nextToken,
	}, nil
}

// fanOutSubmission notifies admins of a new request. Best-effort.
func (s *requestService) fanOutSubmission(ctx context.Context, request domain.ServiceRequest) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submitter, err := s.staffRepo.FindStaffByID(ctx, request.StaffID)
	if err != nil {
		logger.Warn("Failed to resolve submitter for request fan-out", slog.String("error", err.Error()))
		return
	}

	title := "New " + string(request.RequestType) + " request"
	message := submitter.Name + " at " + request.Branch + ": " + request.Subject
	metadata := map[string]string{"requestID": request.RequestID, "branch": request.Branch}
	if err := s.notifier.NotifyAdmins(ctx, domain.NotifyRequestSubmitted, title, message, metadata); err != nil {
		logger.Warn("Failed to notify admins of new request", slog.String("error", err.Error()))
	}

	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		logger.Warn("Failed to list admins for request email", slog.String("error", err.Error()))
		return
	}
	description := request.Description
	if description == "" {
		description = request.Subject
	}
	s.outbox.EnqueueRendered(mailer.EmailRequestSubmitted, &mailer.RequestSubmittedPayload{
		StaffName:   submitter.Name,
		Branch:      request.Branch,
		RequestType: string(request.RequestType),
		Description: description,
	}, staffEmails(admins))
}

// fanOutReview notifies the submitter of the review verdict. Best-effort.
func (s *requestService) fanOutReview(ctx context.Context, request domain.ServiceRequest, reviewerStaffID, notes string) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submitter, err := s.staffRepo.FindStaffByID(ctx, request.StaffID)
	if err != nil {
		logger.Warn("Failed to resolve submitter for review fan-out", slog.String("error", err.Error()))
		return
	}
	reviewer, err := s.staffRepo.FindStaffByID(ctx, reviewerStaffID)
	if err != nil {
		logger.Warn("Failed to resolve reviewer for review fan-out", slog.String("error", err.Error()))
		return
	}

	title := "Your " + string(request.RequestType) + " request was " + string(request.Status)
	metadata := map[string]string{"requestID": request.RequestID, "branch": request.Branch}
	if err := s.notifier.NotifyUser(ctx, request.StaffID, domain.NotifyRequestReviewed, title, notes, metadata); err != nil {
		logger.Warn("Failed to notify submitter of review", slog.String("error", err.Error()))
	}

	s.outbox.EnqueueRendered(mailer.EmailRequestReviewed, &mailer.RequestReviewedPayload{
		StaffName:    submitter.Name,
		ReviewerName: reviewer.Name,
		Branch:       request.Branch,
		RequestType:  string(request.RequestType),
		Status:       string(request.Status),
		Note:         notes,
	}, []string{submitter.Email})
}
