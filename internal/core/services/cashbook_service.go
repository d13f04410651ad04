package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	portssvc "github.com/staffdesk/ops_portal_app/internal/core/ports/services"
	"github.com/staffdesk/ops_portal_app/internal/dto"
	"github.com/staffdesk/ops_portal_app/internal/mailer"
	"github.com/staffdesk/ops_portal_app/internal/middleware"
)

var (
	ErrCashAmountInvalid = errors.New("exactly one of cashIn/cashOut must be a positive amount")
	ErrBranchInactive    = errors.New("branch is not active")
)

// lowBalanceThreshold is the branch balance below which an alert is raised.
var lowBalanceThreshold = decimal.NewFromInt(500)

// cashbookService provides cash book entry, approval workflow and opening balance operations.
type cashbookService struct {
	cashbookRepo portsrepo.CashbookRepositoryWithTx
	branchRepo   portsrepo.BranchRepositoryFacade
	staffRepo    portsrepo.StaffRepositoryFacade
	notifier     portssvc.NotificationSvcFacade
	outbox       *mailer.Outbox
}

// NewCashbookService creates a new CashbookService.
func NewCashbookService(cashbookRepo portsrepo.CashbookRepositoryWithTx, branchRepo portsrepo.BranchRepositoryFacade, staffRepo portsrepo.StaffRepositoryFacade, notifier portssvc.NotificationSvcFacade, outbox *mailer.Outbox) portssvc.CashbookSvcFacade {
	return &cashbookService{
		cashbookRepo: cashbookRepo,
		branchRepo:   branchRepo,
		staffRepo:    staffRepo,
		notifier:     notifier,
		outbox:       outbox,
	}
}

// Ensure cashbookService implements the portssvc.CashbookSvcFacade interface
var _ portssvc.CashbookSvcFacade = (*cashbookService)(nil)

func validateAmounts(cashIn, cashOut decimal.Decimal) error {
	if cashIn.IsNegative() || cashOut.IsNegative() {
		return ErrCashAmountInvalid
	}
	inSet := cashIn.IsPositive()
	outSet := cashOut.IsPositive()
	if inSet == outSet { // both set or both zero
		return ErrCashAmountInvalid
	}
	return nil
}

// previousBalanceInTx locks the branch's opening balance row and resolves the
// balance the next approved transaction chains from: the latest approved
// transaction's stored balance, or the opening balance when no approved
// transaction exists. Branches without an opening balance row start from zero.
func (s *cashbookService) previousBalanceInTx(ctx context.Context, dbTx pgx.Tx, branch string) (decimal.Decimal, error) {
	openingBalance := decimal.Zero
	ob, err := s.cashbookRepo.FindOpeningBalanceForUpdate(ctx, dbTx, branch)
	if err == nil {
		openingBalance = ob.OpeningBalance
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	latest, err := s.cashbookRepo.FindLatestApprovedTransactionForUpdate(ctx, dbTx, branch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return openingBalance, nil
		}
		return decimal.Zero, err
	}
	return latest.Balance, nil
}

// CreateTransaction records a cash movement. Depending on the branch's
// auto-approve setting the transaction is stored approved with its running
// balance, or pending with a placeholder balance.
func (s *cashbookService) CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, creatorStaffID string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := validateAmounts(req.CashIn, req.CashOut); err != nil {
		return nil, apperrors.NewAppError(400, err.Error(), apperrors.ErrValidation)
	}

	branch, err := s.branchRepo.FindBranchByCode(ctx, req.Branch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(404, "branch not found: "+req.Branch, apperrors.ErrNotFound)
		}
		return nil, err
	}
	if !branch.IsActive {
		return nil, apperrors.NewAppError(400, ErrBranchInactive.Error(), apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.CashTransaction{
		TransactionID:      uuid.NewString(),
		Branch:             branch.Code,
		StaffID:            creatorStaffID,
		TransactionDate:    req.TransactionDate,
		VoucherNo:          req.VoucherNo,
		PrimaryList:        req.PrimaryList,
		NatureOfExpense:    req.NatureOfExpense,
		BillStatus:         req.BillStatus,
		CashIn:             req.CashIn,
		CashOut:            req.CashOut,
		VerificationStatus: domain.VerificationPending,
		AttachmentURLs:     req.AttachmentURLs,
		Notes:              req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorStaffID,
		},
	}

	var prevBalance decimal.Decimal

	dbTx, err := s.cashbookRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.cashbookRepo.Rollback(ctx, dbTx)

	// The opening balance row lock serializes all writers of this branch's
	// balance chain; two concurrent submissions cannot both chain from the
	// same previous balance.
	prevBalance, err = s.previousBalanceInTx(ctx, dbTx, branch.Code)
	if err != nil {
		return nil, err
	}

	if branch.AutoApprove {
		txn.VerificationStatus = domain.VerificationApproved
		txn.Balance = prevBalance.Add(txn.Delta())
		txn.VerifiedBy = &creatorStaffID
		verifiedAt := now
		txn.VerifiedAt = &verifiedAt
	} else {
		// Placeholder only; the real running balance is computed at approval time.
		txn.Balance = prevBalance
	}

	if err := s.cashbookRepo.SaveTransaction(ctx, dbTx, txn); err != nil {
		return nil, err
	}
	if err := s.cashbookRepo.Commit(ctx, dbTx); err != nil {
		return nil, err
	}

	logger.Info("Cash transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("branch", txn.Branch),
		slog.String("status", string(txn.VerificationStatus)),
	)

	if branch.AutoApprove {
		s.fireLowBalanceAlertIfCrossed(ctx, branch.Code, prevBalance, txn.Balance)
	} else {
		s.fanOutSubmission(ctx, txn)
	}

	return &txn, nil
}

// ApproveTransaction transitions a pending transaction to approved, computing
// and storing its running balance.
func (s *cashbookService) ApproveTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.cashbookRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsFinal() {
		return nil, apperrors.NewAppError(400, "transaction is not pending: "+string(txn.VerificationStatus), apperrors.ErrConflict)
	}

	now := time.Now()

	dbTx, err := s.cashbookRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.cashbookRepo.Rollback(ctx, dbTx)

	prevBalance, err := s.previousBalanceInTx(ctx, dbTx, txn.Branch)
	if err != nil {
		return nil, err
	}

	txn.Balance = prevBalance.Add(txn.Delta())
	txn.VerificationStatus = domain.VerificationApproved
	txn.VerifiedBy = &verifierID
	txn.VerifiedAt = &now
	txn.VerificationNotes = note
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = verifierID

	if err := s.cashbookRepo.UpdateVerification(ctx, dbTx, *txn); err != nil {
		return nil, err
	}
	if err := s.cashbookRepo.Commit(ctx, dbTx); err != nil {
		return nil, err
	}

	logger.Info("Cash transaction approved",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("branch", txn.Branch),
		slog.String("verifier_id", verifierID),
	)

	s.fanOutVerdict(ctx, *txn, verifierID, note, true)
	s.fireLowBalanceAlertIfCrossed(ctx, txn.Branch, prevBalance, txn.Balance)

	return txn, nil
}

// RejectTransaction transitions a pending transaction to rejected without
// touching the balance.
func (s *cashbookService) RejectTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txn, err := s.cashbookRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsFinal() {
		return nil, apperrors.NewAppError(400, "transaction is not pending: "+string(txn.VerificationStatus), apperrors.ErrConflict)
	}

	now := time.Now()
	txn.VerificationStatus = domain.VerificationRejected
	txn.VerifiedBy = &verifierID
	txn.VerifiedAt = &now
	txn.VerificationNotes = note
	txn.LastUpdatedAt = now
	txn.LastUpdatedBy = verifierID

	dbTx, err := s.cashbookRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.cashbookRepo.Rollback(ctx, dbTx)

	if err := s.cashbookRepo.UpdateVerification(ctx, dbTx, *txn); err != nil {
		return nil, err
	}
	if err := s.cashbookRepo.Commit(ctx, dbTx); err != nil {
		return nil, err
	}

	logger.Info("Cash transaction rejected",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("branch", txn.Branch),
		slog.String("verifier_id", verifierID),
	)

	s.fanOutVerdict(ctx, *txn, verifierID, note, false)

	return txn, nil
}

// GetTransactionByID retrieves a single transaction.
func (s *cashbookService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	return s.cashbookRepo.FindTransactionByID(ctx, transactionID)
}

// UpdateTransaction edits content fields. Stored balances are not recomputed.
func (s *cashbookService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateCashTransactionRequest, editorStaffID string) (*domain.CashTransaction, error) {
	txn, err := s.cashbookRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.VoucherNo != nil {
		txn.VoucherNo = *req.VoucherNo
	}
	if req.PrimaryList != nil {
		txn.PrimaryList = *req.PrimaryList
	}
	if req.NatureOfExpense != nil {
		txn.NatureOfExpense = *req.NatureOfExpense
	}
	if req.BillStatus != nil {
		txn.BillStatus = *req.BillStatus
	}
	if req.AttachmentURLs != nil {
		txn.AttachmentURLs = req.AttachmentURLs
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = editorStaffID

	if err := s.cashbookRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, err
	}
	return txn, nil
}

// DeleteTransaction removes a transaction. Stored balances of other rows are not recomputed.
func (s *cashbookService) DeleteTransaction(ctx context.Context, transactionID string, editorStaffID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.cashbookRepo.DeleteTransaction(ctx, transactionID); err != nil {
		return err
	}
	logger.Info("Cash transaction deleted",
		slog.String("transaction_id", transactionID),
		slog.String("deleted_by", editorStaffID),
	)
	return nil
}

// ListTransactions retrieves a paginated list of a branch's transactions.
func (s *cashbookService) ListTransactions(ctx context.Context, branch string, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error) {
	txns, nextToken, err := s.cashbookRepo.ListTransactionsByBranch(ctx, branch, params.Limit, params.NextToken)
	if err != nil {
		return nil, err
	}
	return &dto.ListCashTransactionsResponse{
		Transactions: dto.ToCashTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// GetBranchBalance returns the branch's current running balance.
func (s *cashbookService) GetBranchBalance(ctx context.Context, branch string) (*dto.BranchBalanceResponse, error) {
	latest, err := s.cashbookRepo.FindLatestApprovedTransaction(ctx, branch)
	if err == nil {
		return &dto.BranchBalanceResponse{Branch: branch, Balance: latest.Balance, AsOf: *latest.VerifiedAt}, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	ob, err := s.cashbookRepo.FindOpeningBalance(ctx, branch)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &dto.BranchBalanceResponse{Branch: branch, Balance: decimal.Zero, AsOf: time.Now()}, nil
		}
		return nil, err
	}
	return &dto.BranchBalanceResponse{Branch: branch, Balance: ob.OpeningBalance, AsOf: ob.LastUpdatedAt}, nil
}

// GetOpeningBalance retrieves the opening balance row of a branch.
func (s *cashbookService) GetOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error) {
	return s.cashbookRepo.FindOpeningBalance(ctx, branch)
}

// SetOpeningBalance creates or replaces the opening balance of a branch,
// recording the change in the adjustment history.
func (s *cashbookService) SetOpeningBalance(ctx context.Context, branch string, req dto.SetOpeningBalanceRequest, editorStaffID string) (*domain.BranchOpeningBalance, error) {
	if _, err := s.branchRepo.FindBranchByCode(ctx, branch); err != nil {
		return nil, err
	}

	now := time.Now()
	existing, err := s.cashbookRepo.FindOpeningBalance(ctx, branch)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	ob := domain.BranchOpeningBalance{
		Branch:         branch,
		OpeningBalance: req.OpeningBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     editorStaffID,
			LastUpdatedAt: now,
			LastUpdatedBy: editorStaffID,
		},
	}
	if existing != nil {
		ob.ID = existing.ID
		ob.CreatedAt = existing.CreatedAt
		ob.CreatedBy = existing.CreatedBy
	} else {
		ob.ID = uuid.NewString()
	}

	adjustment := domain.BalanceAdjustment{
		Date:   now,
		Amount: req.OpeningBalance,
		Note:   req.Note,
	}
	if err := s.cashbookRepo.UpsertOpeningBalance(ctx, ob, adjustment); err != nil {
		return nil, err
	}

	return s.cashbookRepo.FindOpeningBalance(ctx, branch)
}

// --- side effect fan-out ---

// fanOutSubmission notifies admins that a pending transaction awaits verification.
// Best-effort: failures are logged and never roll back the saved transaction.
func (s *cashbookService) fanOutSubmission(ctx context.Context, txn domain.CashTransaction) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submitter, err := s.staffRepo.FindStaffByID(ctx, txn.StaffID)
	if err != nil {
		logger.Warn("Failed to resolve submitter for cash submission fan-out", slog.String("staff_id", txn.StaffID), slog.String("error", err.Error()))
		return
	}

	title := "Cash entry awaiting verification"
	message := submitter.Name + " submitted a cash entry for " + txn.Branch
	metadata := map[string]string{"transactionID": txn.TransactionID, "branch": txn.Branch}
	if err := s.notifier.NotifyAdmins(ctx, domain.NotifyCashSubmitted, title, message, metadata); err != nil {
		logger.Warn("Failed to notify admins of cash submission", slog.String("error", err.Error()))
	}

	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		logger.Warn("Failed to list admins for cash submission email", slog.String("error", err.Error()))
		return
	}
	s.outbox.EnqueueRendered(mailer.EmailCashSubmitted, &mailer.CashSubmittedPayload{
		StaffName:       submitter.Name,
		Branch:          txn.Branch,
		TransactionDate: txn.TransactionDate.Format("2006-01-02"),
		CashIn:          txn.CashIn.StringFixed(2),
		CashOut:         txn.CashOut.StringFixed(2),
		Description:     txn.Notes,
	}, staffEmails(admins))
}

// fanOutVerdict notifies the submitter and all admins of an approval or rejection,
// and emails every resolved recipient.
func (s *cashbookService) fanOutVerdict(ctx context.Context, txn domain.CashTransaction, verifierID, note string, approved bool) {
	logger := middleware.GetLoggerFromCtx(ctx)

	submitter, err := s.staffRepo.FindStaffByID(ctx, txn.StaffID)
	if err != nil {
		logger.Warn("Failed to resolve submitter for verdict fan-out", slog.String("staff_id", txn.StaffID), slog.String("error", err.Error()))
		return
	}
	verifier, err := s.staffRepo.FindStaffByID(ctx, verifierID)
	if err != nil {
		logger.Warn("Failed to resolve verifier for verdict fan-out", slog.String("staff_id", verifierID), slog.String("error", err.Error()))
		return
	}

	notifType := domain.NotifyCashApproved
	verdict := "approved"
	if !approved {
		notifType = domain.NotifyCashRejected
		verdict = "rejected"
	}
	title := "Cash entry " + verdict
	message := "Your cash entry for " + txn.Branch + " dated " + txn.TransactionDate.Format("2006-01-02") + " was " + verdict + " by " + verifier.Name
	metadata := map[string]string{"transactionID": txn.TransactionID, "branch": txn.Branch}

	if err := s.notifier.NotifyUser(ctx, txn.StaffID, notifType, title, message, metadata); err != nil {
		logger.Warn("Failed to notify submitter of verdict", slog.String("error", err.Error()))
	}
	if err := s.notifier.NotifyAdmins(ctx, notifType, title, submitter.Name+"'s cash entry for "+txn.Branch+" was "+verdict, metadata); err != nil {
		logger.Warn("Failed to notify admins of verdict", slog.String("error", err.Error()))
	}

	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		logger.Warn("Failed to list admins for verdict email", slog.String("error", err.Error()))
		admins = nil
	}
	recipients := staffEmails(append(admins, *submitter))

	if approved {
		s.outbox.EnqueueRendered(mailer.EmailCashApproved, &mailer.CashApprovedPayload{
			StaffName:       submitter.Name,
			VerifierName:    verifier.Name,
			Branch:          txn.Branch,
			TransactionDate: txn.TransactionDate.Format("2006-01-02"),
			Balance:         txn.Balance.StringFixed(2),
			Note:            note,
		}, recipients)
	} else {
		s.outbox.EnqueueRendered(mailer.EmailCashRejected, &mailer.CashRejectedPayload{
			StaffName:       submitter.Name,
			VerifierName:    verifier.Name,
			Branch:          txn.Branch,
			TransactionDate: txn.TransactionDate.Format("2006-01-02"),
			Note:            note,
		}, recipients)
	}
}

// fireLowBalanceAlertIfCrossed raises the low balance alert when the balance
// crosses below the threshold from at-or-above it. Best-effort.
func (s *cashbookService) fireLowBalanceAlertIfCrossed(ctx context.Context, branch string, prevBalance, newBalance decimal.Decimal) {
	if prevBalance.LessThan(lowBalanceThreshold) || newBalance.GreaterThanOrEqual(lowBalanceThreshold) {
		return
	}
	logger := middleware.GetLoggerFromCtx(ctx)

	title := "Low balance alert: " + branch
	message := "Cash balance at " + branch + " dropped to " + newBalance.StringFixed(2)
	if err := s.notifier.NotifyAdmins(ctx, domain.NotifyLowBalance, title, message, map[string]string{"branch": branch, "balance": newBalance.StringFixed(2)}); err != nil {
		logger.Warn("Failed to notify admins of low balance", slog.String("error", err.Error()))
	}

	admins, err := s.staffRepo.ListAdmins(ctx)
	if err != nil {
		logger.Warn("Failed to list admins for low balance email", slog.String("error", err.Error()))
		return
	}
	s.outbox.EnqueueRendered(mailer.EmailLowBalanceAlert, &mailer.LowBalanceAlertPayload{
		Branch:    branch,
		Balance:   newBalance.StringFixed(2),
		Threshold: lowBalanceThreshold.StringFixed(0),
	}, staffEmails(admins))
}

// staffEmails extracts the deduplicated email addresses of the given staff.
func staffEmails(staff []domain.Staff) []string {
	seen := make(map[string]struct{}, len(staff))
	emails := make([]string, 0, len(staff))
	for _, s := range staff {
		if s.Email == "" {
			continue
		}
		if _, ok := seen[s.Email]; ok {
			continue
		}
		seen[s.Email] = struct{}{}
		emails = append(emails, s.Email)
	}
	return emails
}
