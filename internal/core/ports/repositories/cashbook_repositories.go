package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CashTransactionReader defines read operations for cash transaction data.
type CashTransactionReader interface {
	// FindTransactionByID retrieves a specific cash transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error)

	// FindLatestApprovedTransaction retrieves the most recent approved transaction for a
	// branch ordered by (verified_at DESC, transaction_date DESC), or ErrNotFound if none.
	FindLatestApprovedTransaction(ctx context.Context, branch string) (*domain.CashTransaction, error)

	// FindLatestApprovedTransactionForUpdate is the locking variant used inside the
	// balance-chain write path. Must be called within a transaction.
	FindLatestApprovedTransactionForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.CashTransaction, error)

	// ListTransactionsByBranch retrieves a paginated list of transactions for a branch
	// using token-based pagination. It returns the transactions, a token for the next
	// page, and an error.
	ListTransactionsByBranch(ctx context.Context, branch string, limit int, nextToken *string) ([]domain.CashTransaction, *string, error)

	// SumApprovedByBranchAndDate returns the cash_in and cash_out totals over approved
	// transactions of a branch for a single calendar day.
	SumApprovedByBranchAndDate(ctx context.Context, branch string, date time.Time) (decimal.Decimal, decimal.Decimal, error)

	// CountByBranchAndStatus counts transactions of a branch in the given status.
	CountByBranchAndStatus(ctx context.Context, branch string, status domain.VerificationStatus) (int, error)
}

// CashTransactionWriter defines write operations for cash transaction data.
type CashTransactionWriter interface {
	// SaveTransaction inserts a new cash transaction within the given DB transaction.
	SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error

	// UpdateVerification updates status, balance and verifier fields of a transaction
	// within the given DB transaction.
	UpdateVerification(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error

	// UpdateTransaction updates content fields (not balance or status) of a transaction.
	UpdateTransaction(ctx context.Context, txn domain.CashTransaction) error

	// DeleteTransaction removes a transaction. Stored balances of other rows are not
	// recomputed.
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// OpeningBalanceRepository defines operations on the per-branch opening balance row.
type OpeningBalanceRepository interface {
	// FindOpeningBalance retrieves the opening balance row for a branch.
	FindOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error)

	// FindOpeningBalanceForUpdate retrieves and locks the opening balance row for a
	// branch. The lock serializes concurrent writers of the branch's balance chain.
	// Must be called within a transaction.
	FindOpeningBalanceForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.BranchOpeningBalance, error)

	// UpsertOpeningBalance creates or replaces the opening balance for a branch,
	// appending the adjustment to the history.
	UpsertOpeningBalance(ctx context.Context, ob domain.BranchOpeningBalance, adjustment domain.BalanceAdjustment) error
}

// CashbookRepositoryFacade combines all cash book repository interfaces.
type CashbookRepositoryFacade interface {
	CashTransactionReader
	CashTransactionWriter
	OpeningBalanceRepository
}

// CashbookRepositoryWithTx extends CashbookRepositoryFacade with transaction capabilities.
type CashbookRepositoryWithTx interface {
	CashbookRepositoryFacade
	TransactionManager
}
