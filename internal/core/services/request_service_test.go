package services_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/core/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
)

// --- Mock RequestRepository ---
type MockRequestRepository struct {
	mock.Mock
}

var _ portsrepo.RequestRepositoryFacade = (*MockRequestRepository)(nil)

func (m *MockRequestRepository) SaveRequest(ctx context.Context, req domain.ServiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRequest), args.Error(1)
}

func (m *MockRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestListFilter, limit int, nextToken *string) ([]domain.ServiceRequest, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.ServiceRequest), returnedToken, args.Error(2)
}

func (m *MockRequestRepository) UpdateRequest(ctx context.Context, req domain.ServiceRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockRequestRepository) CountByBranchAndStatus(ctx context.Context, branch string, status domain.RequestStatus) (int, error) {
	args := m.Called(ctx, branch, status)
	return args.Int(0), args.Error(1)
}

// --- Test Suite ---

type RequestServiceTestSuite struct {
	suite.Suite
	mockRequestRepo *MockRequestRepository
	mockStaffRepo   *MockStaffRepository
	mockBranchRepo  *MockBranchRepository
	mockNotifier    *MockNotificationService
	service         portssvc.RequestSvcFacade

	submitterID string
	reviewerID  string
	submitter   domain.Staff
	reviewer    domain.Staff
	branch      domain.Branch
}

func TestRequestServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RequestServiceTestSuite))
}

func (suite *RequestServiceTestSuite) SetupTest() {
	suite.mockRequestRepo = new(MockRequestRepository)
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockNotifier = new(MockNotificationService)
	outbox := mailer.NewOutbox(&mailer.NoopSender{}, slog.Default(), 16)
	suite.service = services.NewRequestService(suite.mockRequestRepo, suite.mockStaffRepo, suite.mockBranchRepo, suite.mockNotifier, outbox)

	suite.submitterID = uuid.NewString()
	suite.reviewerID = uuid.NewString()
	suite.submitter = domain.Staff{StaffID: suite.submitterID, Name: "Asha Verma", Email: "asha@example.com", Branch: "NB", Role: domain.RoleStaff}
	suite.reviewer = domain.Staff{StaffID: suite.reviewerID, Name: "Ravi Mehta", Email: "ravi@example.com", Branch: "HO", Role: domain.RoleAdmin}
	suite.branch = domain.Branch{BranchID: uuid.NewString(), Name: "North Branch", Code: "NB", IsActive: true}
}

func (suite *RequestServiceTestSuite) TestSubmitRequest_Success() {
	ctx := context.Background()
	req := dto.CreateServiceRequestRequest{
		RequestType: "MAINTENANCE",
		Branch:      "NB",
		Subject:     "AC not cooling",
		Description: "Unit in the front office",
	}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "NB").Return(&suite.branch, nil).Once()
	suite.mockRequestRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.ServiceRequest")).Return(nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.submitterID).Return(&suite.submitter, nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyRequestSubmitted, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockStaffRepo.On("ListAdmins", ctx).Return([]domain.Staff{suite.reviewer}, nil).Once()

	created, err := suite.service.SubmitRequest(ctx, req, suite.submitterID)

	suite.Require().NoError(err)
	suite.NotEmpty(created.RequestID)
	suite.Equal(domain.RequestSubmitted, created.Status)
	suite.Equal(domain.RequestMaintenance, created.RequestType)
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *RequestServiceTestSuite) TestSubmitRequest_UnknownBranch() {
	ctx := context.Background()
	req := dto.CreateServiceRequestRequest{RequestType: "PURCHASE", Branch: "ZZ", Subject: "Printer"}
	suite.mockBranchRepo.On("FindBranchByCode", ctx, "ZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SubmitRequest(ctx, req, suite.submitterID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) expectReviewFanOut(ctx context.Context, notifType domain.NotificationType) {
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.submitterID).Return(&suite.submitter, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.reviewerID).Return(&suite.reviewer, nil).Once()
	suite.mockNotifier.On("NotifyUser", ctx, suite.submitterID, notifType, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
}

func (suite *RequestServiceTestSuite) TestReviewRequest_Approve() {
	ctx := context.Background()
	requestID := uuid.NewString()
	submitted := &domain.ServiceRequest{
		RequestID:   requestID,
		RequestType: domain.RequestPurchase,
		Branch:      "NB",
		StaffID:     suite.submitterID,
		Subject:     "New chairs",
		Status:      domain.RequestSubmitted,
	}
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(submitted, nil).Once()
	suite.mockRequestRepo.On("UpdateRequest", ctx, mock.AnythingOfType("domain.ServiceRequest")).Return(nil).Once()
	suite.expectReviewFanOut(ctx, domain.NotifyRequestReviewed)

	reviewed, err := suite.service.ReviewRequest(ctx, requestID, true, "approved within budget", suite.reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestApproved, reviewed.Status)
	suite.Require().NotNil(reviewed.ReviewedBy)
	suite.Equal(suite.reviewerID, *reviewed.ReviewedBy)
	suite.NotNil(reviewed.ReviewedAt)
	suite.Equal("approved within budget", reviewed.ReviewNotes)
}

func (suite *RequestServiceTestSuite) TestReviewRequest_Reject() {
	ctx := context.Background()
	requestID := uuid.NewString()
	submitted := &domain.ServiceRequest{
		RequestID: requestID,
		StaffID:   suite.submitterID,
		Branch:    "NB",
		Status:    domain.RequestSubmitted,
	}
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(submitted, nil).Once()
	suite.mockRequestRepo.On("UpdateRequest", ctx, mock.AnythingOfType("domain.ServiceRequest")).Return(nil).Once()
	suite.expectReviewFanOut(ctx, domain.NotifyRequestReviewed)

	reviewed, err := suite.service.ReviewRequest(ctx, requestID, false, "no budget this quarter", suite.reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestRejected, reviewed.Status)
}

func (suite *RequestServiceTestSuite) TestReviewRequest_AlreadyReviewed() {
	ctx := context.Background()
	requestID := uuid.NewString()
	approved := &domain.ServiceRequest{RequestID: requestID, Status: domain.RequestApproved}
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(approved, nil).Once()

	_, err := suite.service.ReviewRequest(ctx, requestID, true, "", suite.reviewerID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockRequestRepo.AssertNotCalled(suite.T(), "UpdateRequest", mock.Anything, mock.Anything)
}

func (suite *RequestServiceTestSuite) TestFulfillRequest_OnlyFromApproved() {
	ctx := context.Background()

	for _, status := range []domain.RequestStatus{domain.RequestSubmitted, domain.RequestRejected, domain.RequestFulfilled} {
		requestID := uuid.NewString()
		req := &domain.ServiceRequest{RequestID: requestID, Status: status}
		suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(req, nil).Once()

		_, err := suite.service.FulfillRequest(ctx, requestID, suite.reviewerID)

		suite.Require().Error(err, "fulfilling a %s request must fail", status)
		suite.ErrorIs(err, apperrors.ErrConflict)
	}

	requestID := uuid.NewString()
	approved := &domain.ServiceRequest{
		RequestID: requestID,
		StaffID:   suite.submitterID,
		Branch:    "NB",
		Status:    domain.RequestApproved,
	}
	suite.mockRequestRepo.On("FindRequestByID", ctx, requestID).Return(approved, nil).Once()
	suite.mockRequestRepo.On("UpdateRequest", ctx, mock.AnythingOfType("domain.ServiceRequest")).Return(nil).Once()
	suite.expectReviewFanOut(ctx, domain.NotifyRequestReviewed)

	fulfilled, err := suite.service.FulfillRequest(ctx, requestID, suite.reviewerID)

	suite.Require().NoError(err)
	suite.Equal(domain.RequestFulfilled, fulfilled.Status)
}
