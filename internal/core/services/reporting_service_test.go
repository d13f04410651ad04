package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
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

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepositoryFacade = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) CountTasksByBranchAndStatus(ctx context.Context, branch string, status domain.TaskStatus, date time.Time) (int, error) {
	args := m.Called(ctx, branch, status, date)
	return args.Int(0), args.Error(1)
}

// --- Mock CashbookService ---
type MockCashbookService struct {
	mock.Mock
}

var _ portssvc.CashbookSvcFacade = (*MockCashbookService)(nil)

func (m *MockCashbookService) CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, creatorStaffID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, req, creatorStaffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookService) ApproveTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID, verifierID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookService) RejectTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID, verifierID, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateCashTransactionRequest, editorStaffID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID, req, editorStaffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookService) DeleteTransaction(ctx context.Context, transactionID string, editorStaffID string) error {
	args := m.Called(ctx, transactionID, editorStaffID)
	return args.Error(0)
}

func (m *MockCashbookService) ListTransactions(ctx context.Context, branch string, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error) {
	args := m.Called(ctx, branch, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListCashTransactionsResponse), args.Error(1)
}

func (m *MockCashbookService) GetBranchBalance(ctx context.Context, branch string) (*dto.BranchBalanceResponse, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.BranchBalanceResponse), args.Error(1)
}

func (m *MockCashbookService) GetOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchOpeningBalance), args.Error(1)
}

func (m *MockCashbookService) SetOpeningBalance(ctx context.Context, branch string, req dto.SetOpeningBalanceRequest, editorStaffID string) (*domain.BranchOpeningBalance, error) {
	args := m.Called(ctx, branch, req, editorStaffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchOpeningBalance), args.Error(1)
}

// captureSender records delivered emails so a test can inspect the rendered body.
type captureSender struct {
	delivered chan mailer.OutboxMessage
}

func (s *captureSender) Send(ctx context.Context, to []string, subject, htmlBody string) error {
	s.delivered <- mailer.OutboxMessage{To: to, Subject: subject, HTMLBody: htmlBody}
	return nil
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockBranchRepo     *MockBranchRepository
	mockStaffRepo      *MockStaffRepository
	mockCashbookRepo   *MockCashbookRepository
	mockAttendanceRepo *MockAttendanceRepository
	mockRequestRepo    *MockRequestRepository
	mockReportingRepo  *MockReportingRepository
	mockCashbookSvc    *MockCashbookService
	sender             *captureSender
	outbox             *mailer.Outbox
	cancelOutbox       context.CancelFunc
	service            portssvc.ReportingSvcFacade

	ctx    context.Context
	date   time.Time
	branch domain.Branch
	admin  domain.Staff
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.mockCashbookRepo = new(MockCashbookRepository)
	suite.mockAttendanceRepo = new(MockAttendanceRepository)
	suite.mockRequestRepo = new(MockRequestRepository)
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockCashbookSvc = new(MockCashbookService)

	suite.sender = &captureSender{delivered: make(chan mailer.OutboxMessage, 4)}
	suite.outbox = mailer.NewOutbox(suite.sender, slog.Default(), 16)
	outboxCtx, cancel := context.WithCancel(context.Background())
	suite.cancelOutbox = cancel
	suite.outbox.Start(outboxCtx, 1)

	suite.service = services.NewReportingService(
		suite.mockBranchRepo,
		suite.mockStaffRepo,
		suite.mockCashbookRepo,
		suite.mockAttendanceRepo,
		suite.mockRequestRepo,
		suite.mockReportingRepo,
		suite.mockCashbookSvc,
		suite.outbox,
	)

	suite.ctx = context.Background()
	suite.date = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	suite.branch = domain.Branch{Name: "Bengaluru", Code: "BLR", IsActive: true}
	suite.admin = domain.Staff{Name: "Ravi Mehta", Email: "ravi@example.com", Role: domain.RoleAdmin}
}

func (suite *ReportingServiceTestSuite) TearDownTest() {
	suite.outbox.Close()
	suite.cancelOutbox()
}

// expectBranchStats wires every per-branch aggregation query for suite.branch.
func (suite *ReportingServiceTestSuite) expectBranchStats() {
	suite.mockBranchRepo.On("ListBranches", suite.ctx, false).Return([]domain.Branch{suite.branch}, nil).Once()
	suite.mockReportingRepo.On("CountTasksByBranchAndStatus", suite.ctx, "BLR", domain.TaskOpen, suite.date).Return(4, nil).Once()
	suite.mockReportingRepo.On("CountTasksByBranchAndStatus", suite.ctx, "BLR", domain.TaskCompleted, suite.date).Return(6, nil).Once()
	suite.mockAttendanceRepo.On("SummarizeBranchByDate", suite.ctx, "BLR", suite.date).
		Return(&domain.AttendanceSummary{Branch: "BLR", Date: suite.date, Present: 5, Absent: 3, HalfDay: 2}, nil).Once()
	suite.mockCashbookRepo.On("SumApprovedByBranchAndDate", suite.ctx, "BLR", suite.date).
		Return(decimal.NewFromInt(1200), decimal.NewFromInt(450), nil).Once()
	suite.mockCashbookRepo.On("CountByBranchAndStatus", suite.ctx, "BLR", domain.VerificationPending).Return(2, nil).Once()
	suite.mockRequestRepo.On("CountByBranchAndStatus", suite.ctx, "BLR", domain.RequestSubmitted).Return(1, nil).Once()
}

func (suite *ReportingServiceTestSuite) TestBuildDailyReport_CarriesAttendanceCounts() {
	suite.expectBranchStats()

	report, err := suite.service.BuildDailyReport(suite.ctx, suite.date)

	suite.Require().NoError(err)
	suite.Require().Len(report.Branches, 1)
	stats := report.Branches[0]
	suite.Equal("BLR", stats.Branch)
	suite.Equal(7, stats.StaffPresent, "present should include half days")
	suite.Equal(3, stats.StaffAbsent)
	suite.Equal(4, stats.TasksOpen)
	suite.Equal(6, stats.TasksCompleted)
	suite.Equal(2, stats.PendingApprovals)
	suite.Equal(1, stats.PendingRequests)
	suite.True(stats.CashInTotal.Equal(decimal.NewFromInt(1200)))
	suite.True(stats.CashOutTotal.Equal(decimal.NewFromInt(450)))
	suite.mockAttendanceRepo.AssertExpectations(suite.T())
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSendDailyReport_EmailsAbsentCount() {
	suite.mockStaffRepo.On("ListAdmins", suite.ctx).Return([]domain.Staff{suite.admin}, nil).Once()
	suite.expectBranchStats()
	suite.mockCashbookSvc.On("GetBranchBalance", suite.ctx, "BLR").
		Return(&dto.BranchBalanceResponse{Branch: "BLR", Balance: decimal.NewFromInt(980)}, nil).Once()

	report, recipients, err := suite.service.SendDailyReport(suite.ctx, suite.date)

	suite.Require().NoError(err)
	suite.Equal(1, recipients)
	suite.Require().Len(report.Branches, 1)
	suite.Equal(3, report.Branches[0].StaffAbsent)

	select {
	case msg := <-suite.sender.delivered:
		suite.Equal([]string{"ravi@example.com"}, msg.To)
		suite.Equal("Daily operations report for 2025-06-02", msg.Subject)
		suite.Contains(msg.HTMLBody, "<td>7</td><td>3</td>", "present and absent counts should appear in the report table")
		suite.Contains(msg.HTMLBody, "980.00")
	case <-time.After(2 * time.Second):
		suite.Fail("daily report email was not delivered")
	}
	suite.mockCashbookSvc.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestSendDailyReport_NoAdmins() {
	suite.mockStaffRepo.On("ListAdmins", suite.ctx).Return([]domain.Staff{}, nil).Once()

	report, recipients, err := suite.service.SendDailyReport(suite.ctx, suite.date)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(report)
	suite.Zero(recipients)
	suite.mockBranchRepo.AssertNotCalled(suite.T(), "ListBranches", mock.Anything, mock.Anything)
}
