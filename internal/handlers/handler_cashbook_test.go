package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/handlers"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

// --- Mock CashbookService ---
type MockCashbookService struct {
	mock.Mock
}

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

// Ensure mock implements the interface
var _ portssvc.CashbookSvcFacade = (*MockCashbookService)(nil)

// --- Test Suite ---
type CashbookHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCashbookService *MockCashbookService
	jwtSecret           string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CashbookHandlerTestSuite) generateTestToken(staffID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "ops-portal-test",
		Subject:   staffID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CashbookHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	// Use the actual AuthMiddleware
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockCashbookService = new(MockCashbookService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCashbookRoutes(v1, suite.mockCashbookService)
}

func (suite *CashbookHandlerTestSuite) authedRequest(method, url string, body any, staffID string) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		err := json.NewEncoder(&buf).Encode(body)
		suite.Require().NoError(err)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(staffID))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// --- Test Cases ---

func (suite *CashbookHandlerTestSuite) TestCreateTransaction_Success() {
	staffID := uuid.NewString()
	reqBody := dto.CreateCashTransactionRequest{
		Branch:          "BLR",
		TransactionDate: time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
		VoucherNo:       "V-1042",
		CashIn:          decimal.NewFromInt(1500),
	}
	expected := &domain.CashTransaction{
		TransactionID:      uuid.NewString(),
		Branch:             "BLR",
		StaffID:            staffID,
		TransactionDate:    reqBody.TransactionDate,
		VoucherNo:          "V-1042",
		CashIn:             decimal.NewFromInt(1500),
		Balance:            decimal.NewFromInt(2500),
		VerificationStatus: domain.VerificationApproved,
	}

	suite.mockCashbookService.On("CreateTransaction",
		mock.Anything,
		mock.MatchedBy(func(r dto.CreateCashTransactionRequest) bool {
			return r.Branch == "BLR" && r.VoucherNo == "V-1042" && r.CashIn.Equal(decimal.NewFromInt(1500))
		}),
		staffID,
	).Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/cashbook/transactions", reqBody, staffID))

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.CashTransactionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(expected.TransactionID, resp.TransactionID)
	suite.Equal("APPROVED", resp.VerificationStatus)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(2500)))

	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestCreateTransaction_MissingToken() {
	reqBody := dto.CreateCashTransactionRequest{
		Branch:          "BLR",
		TransactionDate: time.Now(),
		VoucherNo:       "V-1",
		CashIn:          decimal.NewFromInt(10),
	}
	var buf bytes.Buffer
	suite.Require().NoError(json.NewEncoder(&buf).Encode(reqBody))
	req, _ := http.NewRequest(http.MethodPost, "/api/v1/cashbook/transactions", &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCashbookService.AssertNotCalled(suite.T(), "CreateTransaction")
}

func (suite *CashbookHandlerTestSuite) TestApproveTransaction_Success() {
	staffID := uuid.NewString()
	verifierID := uuid.NewString()
	txnID := uuid.NewString()
	expected := &domain.CashTransaction{
		TransactionID:      txnID,
		Branch:             "BLR",
		Balance:            decimal.NewFromInt(900),
		VerificationStatus: domain.VerificationApproved,
		VerifiedBy:         &verifierID,
	}

	suite.mockCashbookService.On("ApproveTransaction", mock.Anything, txnID, verifierID, "ok").
		Return(expected, nil).Once()

	body := dto.VerifyCashTransactionRequest{ID: txnID, VerifierID: verifierID, Note: "ok"}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/cashbook/transactions/approve", body, staffID))

	suite.Equal(http.StatusOK, w.Code)

	var resp struct {
		Success bool                        `json:"success"`
		Data    dto.CashTransactionResponse `json:"data"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Success)
	suite.Equal(txnID, resp.Data.TransactionID)
	suite.Equal("APPROVED", resp.Data.VerificationStatus)

	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestApproveTransaction_AlreadyFinal() {
	staffID := uuid.NewString()
	verifierID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockCashbookService.On("ApproveTransaction", mock.Anything, txnID, verifierID, "").
		Return(nil, apperrors.NewAppError(400, "transaction is not pending: APPROVED", apperrors.ErrConflict)).Once()

	body := dto.VerifyCashTransactionRequest{ID: txnID, VerifierID: verifierID}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodPost, "/api/v1/cashbook/transactions/approve", body, staffID))

	suite.Equal(http.StatusBadRequest, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("transaction is not pending: APPROVED", resp.Error)
	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestGetTransaction_NotFound() {
	staffID := uuid.NewString()
	txnID := uuid.NewString()

	suite.mockCashbookService.On("GetTransactionByID", mock.Anything, txnID).
		Return(nil, apperrors.ErrNotFound).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/cashbook/transactions/"+txnID, nil, staffID))

	suite.Equal(http.StatusNotFound, w.Code)

	var resp handlers.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.NotEmpty(resp.Error)

	suite.mockCashbookService.AssertExpectations(suite.T())
}

func (suite *CashbookHandlerTestSuite) TestGetBranchBalance_Success() {
	staffID := uuid.NewString()
	expected := &dto.BranchBalanceResponse{
		Branch:  "BLR",
		Balance: decimal.NewFromInt(4200),
		AsOf:    time.Now(),
	}

	suite.mockCashbookService.On("GetBranchBalance", mock.Anything, "BLR").
		Return(expected, nil).Once()

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, suite.authedRequest(http.MethodGet, "/api/v1/cashbook/branches/BLR/balance", nil, staffID))

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.BranchBalanceResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("BLR", resp.Branch)
	suite.True(resp.Balance.Equal(decimal.NewFromInt(4200)))

	suite.mockCashbookService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCashbookHandler(t *testing.T) {
	suite.Run(t, new(CashbookHandlerTestSuite))
}
