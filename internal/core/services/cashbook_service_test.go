package services_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
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

// --- Mock CashbookRepository ---
type MockCashbookRepository struct {
	mock.Mock
}

// Ensure MockCashbookRepository implements portsrepo.CashbookRepositoryWithTx
var _ portsrepo.CashbookRepositoryWithTx = (*MockCashbookRepository)(nil)

func (m *MockCashbookRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(pgx.Tx)
	return tx, args.Error(1)
}

func (m *MockCashbookRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashbookRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockCashbookRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockCashbookRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookRepository) FindLatestApprovedTransaction(ctx context.Context, branch string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookRepository) FindLatestApprovedTransactionForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.CashTransaction, error) {
	args := m.Called(ctx, tx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CashTransaction), args.Error(1)
}

func (m *MockCashbookRepository) ListTransactionsByBranch(ctx context.Context, branch string, limit int, nextToken *string) ([]domain.CashTransaction, *string, error) {
	args := m.Called(ctx, branch, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.CashTransaction), returnedToken, args.Error(2)
}

func (m *MockCashbookRepository) SumApprovedByBranchAndDate(ctx context.Context, branch string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, branch, date)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockCashbookRepository) CountByBranchAndStatus(ctx context.Context, branch string, status domain.VerificationStatus) (int, error) {
	args := m.Called(ctx, branch, status)
	return args.Int(0), args.Error(1)
}

func (m *MockCashbookRepository) UpdateVerification(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error {
	args := m.Called(ctx, tx, txn)
	return args.Error(0)
}

func (m *MockCashbookRepository) UpdateTransaction(ctx context.Context, txn domain.CashTransaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockCashbookRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

func (m *MockCashbookRepository) FindOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchOpeningBalance), args.Error(1)
}

func (m *MockCashbookRepository) FindOpeningBalanceForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.BranchOpeningBalance, error) {
	args := m.Called(ctx, tx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BranchOpeningBalance), args.Error(1)
}

func (m *MockCashbookRepository) UpsertOpeningBalance(ctx context.Context, ob domain.BranchOpeningBalance, adjustment domain.BalanceAdjustment) error {
	args := m.Called(ctx, ob, adjustment)
	return args.Error(0)
}

// --- Mock BranchRepository ---
type MockBranchRepository struct {
	mock.Mock
}

var _ portsrepo.BranchRepositoryFacade = (*MockBranchRepository)(nil)

func (m *MockBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

func (m *MockBranchRepository) FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) ListBranches(ctx context.Context, includeInactive bool) ([]domain.Branch, error) {
	args := m.Called(ctx, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Branch), args.Error(1)
}

func (m *MockBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	args := m.Called(ctx, branch)
	return args.Error(0)
}

// --- Mock StaffRepository ---
type MockStaffRepository struct {
	mock.Mock
}

var _ portsrepo.StaffRepositoryFacade = (*MockStaffRepository)(nil)

func (m *MockStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	args := m.Called(ctx, staffID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListStaffByBranch(ctx context.Context, branch string) ([]domain.Staff, error) {
	args := m.Called(ctx, branch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) ListAdmins(ctx context.Context) ([]domain.Staff, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Staff), args.Error(1)
}

func (m *MockStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	args := m.Called(ctx, staff)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateRefreshToken(ctx context.Context, staffID string, tokenHash string, expiresAt *time.Time) error {
	args := m.Called(ctx, staffID, tokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockStaffRepository) UpdateLastViewedAt(ctx context.Context, staffID string, viewedAt time.Time) error {
	args := m.Called(ctx, staffID, viewedAt)
	return args.Error(0)
}

func (m *MockStaffRepository) DeactivateStaff(ctx context.Context, staffID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, staffID, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock NotificationService ---
type MockNotificationService struct {
	mock.Mock
}

var _ portssvc.NotificationSvcFacade = (*MockNotificationService)(nil)

func (m *MockNotificationService) NotifyUser(ctx context.Context, userID string, notifType domain.NotificationType, title, message string, metadata map[string]string) error {
	args := m.Called(ctx, userID, notifType, title, message, metadata)
	return args.Error(0)
}

func (m *MockNotificationService) NotifyAdmins(ctx context.Context, notifType domain.NotificationType, title, message string, metadata map[string]string) error {
	args := m.Called(ctx, notifType, title, message, metadata)
	return args.Error(0)
}

func (m *MockNotificationService) ListNotifications(ctx context.Context, userID string, params dto.ListNotificationsParams) (*dto.ListNotificationsResponse, error) {
	args := m.Called(ctx, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListNotificationsResponse), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, userID string, notificationID string) error {
	args := m.Called(ctx, userID, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockNotificationService) GetViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ViewedStateResponse), args.Error(1)
}

func (m *MockNotificationService) TouchViewedState(ctx context.Context, userID string) (*dto.ViewedStateResponse, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ViewedStateResponse), args.Error(1)
}

// --- Test Suite ---

type CashbookServiceTestSuite struct {
	suite.Suite
	mockCashbookRepo *MockCashbookRepository
	mockBranchRepo   *MockBranchRepository
	mockStaffRepo    *MockStaffRepository
	mockNotifier     *MockNotificationService
	outbox           *mailer.Outbox
	service          portssvc.CashbookSvcFacade

	autoBranch   domain.Branch
	manualBranch domain.Branch
	staffID      string
	verifierID   string
	submitter    domain.Staff
	verifier     domain.Staff
}

func TestCashbookServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CashbookServiceTestSuite))
}

func (suite *CashbookServiceTestSuite) SetupTest() {
	suite.mockCashbookRepo = new(MockCashbookRepository)
	suite.mockBranchRepo = new(MockBranchRepository)
	suite.mockStaffRepo = new(MockStaffRepository)
	suite.mockNotifier = new(MockNotificationService)
	suite.outbox = mailer.NewOutbox(&mailer.NoopSender{}, slog.Default(), 16)
	suite.service = services.NewCashbookService(suite.mockCashbookRepo, suite.mockBranchRepo, suite.mockStaffRepo, suite.mockNotifier, suite.outbox)

	suite.staffID = uuid.NewString()
	suite.verifierID = uuid.NewString()
	suite.autoBranch = domain.Branch{
		BranchID:    uuid.NewString(),
		Name:        "Head Office",
		Code:        "HO",
		AutoApprove: true,
		IsActive:    true,
	}
	suite.manualBranch = domain.Branch{
		BranchID:    uuid.NewString(),
		Name:        "North Branch",
		Code:        "NB",
		AutoApprove: false,
		IsActive:    true,
	}
	suite.submitter = domain.Staff{
		StaffID: suite.staffID,
		Name:    "Asha Verma",
		Email:   "asha@example.com",
		Branch:  "NB",
		Role:    domain.RoleStaff,
	}
	suite.verifier = domain.Staff{
		StaffID: suite.verifierID,
		Name:    "Ravi Mehta",
		Email:   "ravi@example.com",
		Branch:  "HO",
		Role:    domain.RoleAdmin,
	}
}

// expectBalanceChainLock wires the tx begin/lock/commit sequence with the given
// opening balance and latest approved transaction (either may be absent).
func (suite *CashbookServiceTestSuite) expectBalanceChainLock(branch string, opening *domain.BranchOpeningBalance, latest *domain.CashTransaction) {
	ctx := mock.Anything
	suite.mockCashbookRepo.On("Begin", ctx).Return(nil, nil).Once()
	suite.mockCashbookRepo.On("Rollback", ctx, mock.Anything).Return(nil).Maybe()
	if opening != nil {
		suite.mockCashbookRepo.On("FindOpeningBalanceForUpdate", ctx, mock.Anything, branch).Return(opening, nil).Once()
	} else {
		suite.mockCashbookRepo.On("FindOpeningBalanceForUpdate", ctx, mock.Anything, branch).Return(nil, apperrors.ErrNotFound).Once()
	}
	if latest != nil {
		suite.mockCashbookRepo.On("FindLatestApprovedTransactionForUpdate", ctx, mock.Anything, branch).Return(latest, nil).Once()
	} else {
		suite.mockCashbookRepo.On("FindLatestApprovedTransactionForUpdate", ctx, mock.Anything, branch).Return(nil, apperrors.ErrNotFound).Once()
	}
	suite.mockCashbookRepo.On("Commit", ctx, mock.Anything).Return(nil).Once()
}

func (suite *CashbookServiceTestSuite) TestCreateTransaction_AutoApprove_ChainsBalance() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		Branch:          "HO",
		TransactionDate: time.Now(),
		VoucherNo:       "V-1001",
		CashIn:          decimal.NewFromInt(500),
	}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HO").Return(&suite.autoBranch, nil).Once()

	latest := &domain.CashTransaction{
		TransactionID:      uuid.NewString(),
		Branch:             "HO",
		Balance:            decimal.NewFromInt(1000),
		VerificationStatus: domain.VerificationApproved,
	}
	suite.expectBalanceChainLock("HO", nil, latest)

	var saved domain.CashTransaction
	suite.mockCashbookRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.AnythingOfType("domain.CashTransaction")).
		Run(func(args mock.Arguments) { saved = args.Get(2).(domain.CashTransaction) }).
		Return(nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.staffID)

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.Equal(domain.VerificationApproved, created.VerificationStatus)
	suite.True(created.Balance.Equal(decimal.NewFromInt(1500)), "1000 + 500 should chain to 1500, got %s", created.Balance)
	suite.Require().NotNil(created.VerifiedBy)
	suite.Equal(suite.staffID, *created.VerifiedBy)
	suite.NotNil(created.VerifiedAt)
	suite.True(saved.Balance.Equal(created.Balance))
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestCreateTransaction_AutoApprove_FiresLowBalanceAlert() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		Branch:          "HO",
		TransactionDate: time.Now(),
		VoucherNo:       "V-1002",
		CashOut:         decimal.NewFromInt(200),
	}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HO").Return(&suite.autoBranch, nil).Once()

	// 600 - 200 = 400 crosses the 500 threshold from above.
	latest := &domain.CashTransaction{
		TransactionID:      uuid.NewString(),
		Branch:             "HO",
		Balance:            decimal.NewFromInt(600),
		VerificationStatus: domain.VerificationApproved,
	}
	suite.expectBalanceChainLock("HO", nil, latest)

	suite.mockCashbookRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.AnythingOfType("domain.CashTransaction")).Return(nil).Once()

	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyLowBalance, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockStaffRepo.On("ListAdmins", ctx).Return([]domain.Staff{suite.verifier}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.VerificationApproved, created.VerificationStatus)
	suite.True(created.Balance.Equal(decimal.NewFromInt(400)))
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockStaffRepo.AssertExpectations(suite.T())
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestCreateTransaction_ManualBranch_PendingPlaceholder() {
	ctx := context.Background()
	req := dto.CreateCashTransactionRequest{
		Branch:          "NB",
		TransactionDate: time.Now(),
		VoucherNo:       "V-2001",
		CashOut:         decimal.NewFromInt(200),
	}

	suite.mockBranchRepo.On("FindBranchByCode", ctx, "NB").Return(&suite.manualBranch, nil).Once()

	opening := &domain.BranchOpeningBalance{Branch: "NB", OpeningBalance: decimal.NewFromInt(750)}
	suite.expectBalanceChainLock("NB", opening, nil)

	suite.mockCashbookRepo.On("SaveTransaction", mock.Anything, mock.Anything, mock.AnythingOfType("domain.CashTransaction")).Return(nil).Once()

	// Fan-out to admins after commit.
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(&suite.submitter, nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyCashSubmitted, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockStaffRepo.On("ListAdmins", ctx).Return([]domain.Staff{suite.verifier}, nil).Once()

	created, err := suite.service.CreateTransaction(ctx, req, suite.staffID)

	suite.Require().NoError(err)
	suite.Equal(domain.VerificationPending, created.VerificationStatus)
	// Placeholder balance; the real one is computed at approval time.
	suite.True(created.Balance.Equal(decimal.NewFromInt(750)))
	suite.Nil(created.VerifiedBy)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestCreateTransaction_InvalidAmounts() {
	ctx := context.Background()
	cases := []struct {
		name    string
		cashIn  decimal.Decimal
		cashOut decimal.Decimal
	}{
		{"both zero", decimal.Zero, decimal.Zero},
		{"both positive", decimal.NewFromInt(10), decimal.NewFromInt(20)},
		{"negative in", decimal.NewFromInt(-5), decimal.Zero},
		{"negative out", decimal.Zero, decimal.NewFromInt(-5)},
	}
	for _, tc := range cases {
		req := dto.CreateCashTransactionRequest{
			Branch:          "HO",
			TransactionDate: time.Now(),
			VoucherNo:       "V-X",
			CashIn:          tc.cashIn,
			CashOut:         tc.cashOut,
		}
		_, err := suite.service.CreateTransaction(ctx, req, suite.staffID)
		suite.Require().Error(err, tc.name)
		suite.ErrorIs(err, apperrors.ErrValidation, tc.name)
	}
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CashbookServiceTestSuite) TestCreateTransaction_InactiveBranch() {
	ctx := context.Background()
	inactive := suite.autoBranch
	inactive.IsActive = false
	suite.mockBranchRepo.On("FindBranchByCode", ctx, "HO").Return(&inactive, nil).Once()

	req := dto.CreateCashTransactionRequest{
		Branch:          "HO",
		TransactionDate: time.Now(),
		VoucherNo:       "V-1",
		CashIn:          decimal.NewFromInt(100),
	}
	_, err := suite.service.CreateTransaction(ctx, req, suite.staffID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
}

func (suite *CashbookServiceTestSuite) TestApproveTransaction_ComputesBalanceAndFiresLowBalanceAlert() {
	ctx := context.Background()
	txnID := uuid.NewString()
	pending := &domain.CashTransaction{
		TransactionID:      txnID,
		Branch:             "NB",
		StaffID:            suite.staffID,
		TransactionDate:    time.Now(),
		CashOut:            decimal.NewFromInt(2000),
		Balance:            decimal.NewFromInt(1500),
		VerificationStatus: domain.VerificationPending,
	}
	suite.mockCashbookRepo.On("FindTransactionByID", ctx, txnID).Return(pending, nil).Once()

	latest := &domain.CashTransaction{Balance: decimal.NewFromInt(1500), VerificationStatus: domain.VerificationApproved}
	suite.expectBalanceChainLock("NB", nil, latest)

	var verified domain.CashTransaction
	suite.mockCashbookRepo.On("UpdateVerification", mock.Anything, mock.Anything, mock.AnythingOfType("domain.CashTransaction")).
		Run(func(args mock.Arguments) { verified = args.Get(2).(domain.CashTransaction) }).
		Return(nil).Once()

	// Verdict fan-out.
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(&suite.submitter, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.verifierID).Return(&suite.verifier, nil).Once()
	suite.mockNotifier.On("NotifyUser", ctx, suite.staffID, domain.NotifyCashApproved, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyCashApproved, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockStaffRepo.On("ListAdmins", ctx).Return([]domain.Staff{suite.verifier}, nil)

	// 1500 - 2000 = -500 crosses the 500 threshold from above.
	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyLowBalance, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	approved, err := suite.service.ApproveTransaction(ctx, txnID, suite.verifierID, "checked receipts")

	suite.Require().NoError(err)
	suite.Equal(domain.VerificationApproved, approved.VerificationStatus)
	suite.True(approved.Balance.Equal(decimal.NewFromInt(-500)), "1500 - 2000 should be -500, got %s", approved.Balance)
	suite.Require().NotNil(approved.VerifiedBy)
	suite.Equal(suite.verifierID, *approved.VerifiedBy)
	suite.Equal("checked receipts", approved.VerificationNotes)
	suite.True(verified.Balance.Equal(approved.Balance))
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestApproveTransaction_AlreadyFinal() {
	ctx := context.Background()
	txnID := uuid.NewString()
	final := &domain.CashTransaction{
		TransactionID:      txnID,
		Branch:             "NB",
		VerificationStatus: domain.VerificationApproved,
	}
	suite.mockCashbookRepo.On("FindTransactionByID", ctx, txnID).Return(final, nil).Once()

	_, err := suite.service.ApproveTransaction(ctx, txnID, suite.verifierID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	// A non-pending transaction is a client error, not a conflict status.
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "Begin", mock.Anything)
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "UpdateVerification", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashbookServiceTestSuite) TestRejectTransaction_AlreadyFinal() {
	ctx := context.Background()
	txnID := uuid.NewString()
	final := &domain.CashTransaction{
		TransactionID:      txnID,
		Branch:             "NB",
		VerificationStatus: domain.VerificationRejected,
	}
	suite.mockCashbookRepo.On("FindTransactionByID", ctx, txnID).Return(final, nil).Once()

	_, err := suite.service.RejectTransaction(ctx, txnID, suite.verifierID, "")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(400, appErr.Code)
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "UpdateVerification", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CashbookServiceTestSuite) TestRejectTransaction_LeavesBalanceUntouched() {
	ctx := context.Background()
	txnID := uuid.NewString()
	placeholder := decimal.NewFromInt(750)
	pending := &domain.CashTransaction{
		TransactionID:      txnID,
		Branch:             "NB",
		StaffID:            suite.staffID,
		TransactionDate:    time.Now(),
		CashOut:            decimal.NewFromInt(300),
		Balance:            placeholder,
		VerificationStatus: domain.VerificationPending,
	}
	suite.mockCashbookRepo.On("FindTransactionByID", ctx, txnID).Return(pending, nil).Once()
	suite.mockCashbookRepo.On("Begin", mock.Anything).Return(nil, nil).Once()
	suite.mockCashbookRepo.On("Rollback", mock.Anything, mock.Anything).Return(nil).Maybe()

	var verified domain.CashTransaction
	suite.mockCashbookRepo.On("UpdateVerification", mock.Anything, mock.Anything, mock.AnythingOfType("domain.CashTransaction")).
		Run(func(args mock.Arguments) { verified = args.Get(2).(domain.CashTransaction) }).
		Return(nil).Once()
	suite.mockCashbookRepo.On("Commit", mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.staffID).Return(&suite.submitter, nil).Once()
	suite.mockStaffRepo.On("FindStaffByID", ctx, suite.verifierID).Return(&suite.verifier, nil).Once()
	suite.mockNotifier.On("NotifyUser", ctx, suite.staffID, domain.NotifyCashRejected, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockNotifier.On("NotifyAdmins", ctx, domain.NotifyCashRejected, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockStaffRepo.On("ListAdmins", ctx).Return([]domain.Staff{suite.verifier}, nil)

	rejected, err := suite.service.RejectTransaction(ctx, txnID, suite.verifierID, "missing bill")

	suite.Require().NoError(err)
	suite.Equal(domain.VerificationRejected, rejected.VerificationStatus)
	suite.True(rejected.Balance.Equal(placeholder), "rejection must not change the stored balance")
	suite.True(verified.Balance.Equal(placeholder))
	// No balance chain read for a rejection.
	suite.mockCashbookRepo.AssertNotCalled(suite.T(), "FindOpeningBalanceForUpdate", mock.Anything, mock.Anything, mock.Anything)
	suite.mockCashbookRepo.AssertExpectations(suite.T())
}

func (suite *CashbookServiceTestSuite) TestGetBranchBalance_FallsBackToOpeningBalance() {
	ctx := context.Background()
	suite.mockCashbookRepo.On("FindLatestApprovedTransaction", ctx, "NB").Return(nil, apperrors.ErrNotFound).Once()
	asOf := time.Now().Add(-24 * time.Hour)
	ob := &domain.BranchOpeningBalance{
		Branch:         "NB",
		OpeningBalance: decimal.NewFromInt(900),
		AuditFields:    domain.AuditFields{LastUpdatedAt: asOf},
	}
	suite.mockCashbookRepo.On("FindOpeningBalance", ctx, "NB").Return(ob, nil).Once()

	resp, err := suite.service.GetBranchBalance(ctx, "NB")

	suite.Require().NoError(err)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(900)))
	suite.Equal(asOf, resp.AsOf)
}

func (suite *CashbookServiceTestSuite) TestGetBranchBalance_NoDataStartsFromZero() {
	ctx := context.Background()
	suite.mockCashbookRepo.On("FindLatestApprovedTransaction", ctx, "NB").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCashbookRepo.On("FindOpeningBalance", ctx, "NB").Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.GetBranchBalance(ctx, "NB")

	suite.Require().NoError(err)
	suite.True(resp.Balance.IsZero())
}
