package services

import (
	"context"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/dto"
)

// CashbookSvcFacade exposes the cash book operations: transaction entry, the
// approval workflow and the opening balance store.
type CashbookSvcFacade interface {
	// CreateTransaction records a cash movement. Depending on the branch's
	// auto-approve setting the transaction is stored approved with its running
	// balance, or pending with a placeholder balance.
	CreateTransaction(ctx context.Context, req dto.CreateCashTransactionRequest, creatorStaffID string) (*domain.CashTransaction, error)

	// ApproveTransaction transitions a pending transaction to approved, computing
	// and storing its running balance. Returns ErrConflict if not pending.
	ApproveTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error)

	// RejectTransaction transitions a pending transaction to rejected without
	// touching the balance. Returns ErrConflict if not pending.
	RejectTransaction(ctx context.Context, transactionID string, verifierID string, note string) (*domain.CashTransaction, error)

	// GetTransactionByID retrieves a single transaction.
	GetTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// UpdateTransaction edits content fields. Stored balances are not recomputed.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateCashTransactionRequest, editorStaffID string) (*domain.CashTransaction, error)

	// DeleteTransaction removes a transaction. Stored balances of other rows are
	// not recomputed.
	DeleteTransaction(ctx context.Context, transactionID string, editorStaffID string) error

	// ListTransactions retrieves a paginated list of a branch's transactions.
	ListTransactions(ctx context.Context, branch string, params dto.ListCashTransactionsParams) (*dto.ListCashTransactionsResponse, error)

	// GetBranchBalance returns the branch's current running balance (latest approved
	// transaction balance, or the opening balance when none exists).
	GetBranchBalance(ctx context.Context, branch string) (*dto.BranchBalanceResponse, error)

	// GetOpeningBalance retrieves the opening balance row of a branch.
	GetOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error)

	// SetOpeningBalance creates or replaces the opening balance of a branch,
	// recording the change in the adjustment history.
	SetOpeningBalance(ctx context.Context, branch string, req dto.SetOpeningBalanceRequest, editorStaffID string) (*domain.BranchOpeningBalance, error)
}
