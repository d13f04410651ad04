package pgsql

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/mapping"
	"github.com/staffdesk/ops_portal_app/internal/utils/pagination"
)

type PgxCashbookRepository struct {
	BaseRepository
}

// newPgxCashbookRepository creates a new repository for cash book data.
func newPgxCashbookRepository(pool *pgxpool.Pool) portsrepo.CashbookRepositoryWithTx {
	return &PgxCashbookRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxCashbookRepository implements portsrepo.CashbookRepositoryWithTx
var _ portsrepo.CashbookRepositoryWithTx = (*PgxCashbookRepository)(nil)

const cashTransactionColumns = `
	transaction_id, branch, staff_id, transaction_date, voucher_no, primary_list,
	nature_of_expense, bill_status, cash_in, cash_out, balance, verification_status,
	verified_by, verified_at, verification_notes, attachment_urls, notes,
	created_at, created_by, last_updated_at, last_updated_by`

// scanCashTransaction scans one cash_transactions row in column order.
func scanCashTransaction(row pgx.Row) (models.CashTransaction, error) {
	var t models.CashTransaction
	err := row.Scan(
		&t.TransactionID,
		&t.Branch,
		&t.StaffID,
		&t.TransactionDate,
		&t.VoucherNo,
		&t.PrimaryList,
		&t.NatureOfExpense,
		&t.BillStatus,
		&t.CashIn,
		&t.CashOut,
		&t.Balance,
		&t.VerificationStatus,
		&t.VerifiedBy,
		&t.VerifiedAt,
		&t.VerificationNotes,
		&t.AttachmentURLs,
		&t.Notes,
		&t.CreatedAt,
		&t.CreatedBy,
		&t.LastUpdatedAt,
		&t.LastUpdatedBy,
	)
	return t, err
}

// SaveTransaction inserts a new cash transaction within the given DB transaction.
func (r *PgxCashbookRepository) SaveTransaction(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error {
	modelTxn := mapping.ToModelCashTransaction(txn)
	query := `
		INSERT INTO cash_transactions (
			transaction_id, branch, staff_id, transaction_date, voucher_no, primary_list,
			nature_of_expense, bill_status, cash_in, cash_out, balance, verification_status,
			verified_by, verified_at, verification_notes, attachment_urls, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
	`
	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Branch,
		modelTxn.StaffID,
		modelTxn.TransactionDate,
		modelTxn.VoucherNo,
		modelTxn.PrimaryList,
		modelTxn.NatureOfExpense,
		modelTxn.BillStatus,
		modelTxn.CashIn,
		modelTxn.CashOut,
		modelTxn.Balance,
		modelTxn.VerificationStatus,
		modelTxn.VerifiedBy,
		modelTxn.VerifiedAt,
		modelTxn.VerificationNotes,
		modelTxn.AttachmentURLs,
		modelTxn.Notes,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "duplicate voucher number for branch "+modelTxn.Branch, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert cash transaction "+modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a specific cash transaction by its unique identifier.
func (r *PgxCashbookRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.CashTransaction, error) {
	query := `SELECT ` + cashTransactionColumns + ` FROM cash_transactions WHERE transaction_id = $1;`

	modelTxn, err := scanCashTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find cash transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainCashTransaction(modelTxn)
	return &domainTxn, nil
}

// FindLatestApprovedTransaction retrieves the most recent approved transaction for a branch.
func (r *PgxCashbookRepository) FindLatestApprovedTransaction(ctx context.Context, branch string) (*domain.CashTransaction, error) {
	query := `
		SELECT ` + cashTransactionColumns + `
		FROM cash_transactions
		WHERE branch = $1 AND verification_status = 'APPROVED'
		ORDER BY verified_at DESC, transaction_date DESC
		LIMIT 1;
	`
	modelTxn, err := scanCashTransaction(r.Pool.QueryRow(ctx, query, branch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find latest approved transaction for branch "+branch, err)
	}

	domainTxn := mapping.ToDomainCashTransaction(modelTxn)
	return &domainTxn, nil
}

// FindLatestApprovedTransactionForUpdate is the locking variant used inside the
// balance-chain write path.
func (r *PgxCashbookRepository) FindLatestApprovedTransactionForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.CashTransaction, error) {
	query := `
		SELECT ` + cashTransactionColumns + `
		FROM cash_transactions
		WHERE branch = $1 AND verification_status = 'APPROVED'
		ORDER BY verified_at DESC, transaction_date DESC
		LIMIT 1
		FOR UPDATE;
	`
	modelTxn, err := scanCashTransaction(tx.QueryRow(ctx, query, branch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock latest approved transaction for branch "+branch, err)
	}

	domainTxn := mapping.ToDomainCashTransaction(modelTxn)
	return &domainTxn, nil
}

// ListTransactionsByBranch retrieves a paginated list of transactions for a branch using token-based pagination.
// It returns the transactions, a token for the next page, and an error.
func (r *PgxCashbookRepository) ListTransactionsByBranch(ctx context.Context, branch string, limit int, nextToken *string) ([]domain.CashTransaction, *string, error) {
	// Default limit handling
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + cashTransactionColumns + `
		FROM cash_transactions
		WHERE branch = $1
	`
	// Ordering is crucial and must be stable
	orderByClause := `ORDER BY transaction_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{branch}

	if nextToken != nil && *nextToken != "" {
		lastTxnDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (transaction_date, created_at) < ($2, $3)`
		args = append(args, lastTxnDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query cash transactions for branch "+branch, err)
	}
	defer rows.Close()

	transactions := make([]models.CashTransaction, 0, fetchLimit)
	for rows.Next() {
		t, scanErr := scanCashTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan cash transaction row for branch "+branch, scanErr)
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating cash transaction rows for branch "+branch, err)
	}

	// Determine the next token
	var nextTokenVal *string
	if len(transactions) > limit {
		lastTxn := transactions[limit-1]
		token := pagination.EncodeToken(lastTxn.TransactionDate, lastTxn.CreatedAt)
		nextTokenVal = &token
		transactions = transactions[:limit]
	}

	results := make([]domain.CashTransaction, len(transactions))
	for i, t := range transactions {
		results[i] = mapping.ToDomainCashTransaction(t)
	}
	return results, nextTokenVal, nil
}

// SumApprovedByBranchAndDate returns the cash_in and cash_out totals over approved
// transactions of a branch for a single calendar day.
func (r *PgxCashbookRepository) SumApprovedByBranchAndDate(ctx context.Context, branch string, date time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(cash_in), 0), COALESCE(SUM(cash_out), 0)
		FROM cash_transactions
		WHERE branch = $1 AND verification_status = 'APPROVED' AND transaction_date::date = $2::date;
	`
	var cashIn, cashOut decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, branch, date).Scan(&cashIn, &cashOut); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to sum approved transactions for branch "+branch, err)
	}
	return cashIn, cashOut, nil
}

// CountByBranchAndStatus counts transactions of a branch in the given status.
func (r *PgxCashbookRepository) CountByBranchAndStatus(ctx context.Context, branch string, status domain.VerificationStatus) (int, error) {
	query := `SELECT COUNT(*) FROM cash_transactions WHERE branch = $1 AND verification_status = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, branch, string(status)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count transactions for branch "+branch, err)
	}
	return count, nil
}

// UpdateVerification updates status, balance and verifier fields of a transaction
// within the given DB transaction.
func (r *PgxCashbookRepository) UpdateVerification(ctx context.Context, tx pgx.Tx, txn domain.CashTransaction) error {
	modelTxn := mapping.ToModelCashTransaction(txn)
	query := `
		UPDATE cash_transactions
		SET balance = $2, verification_status = $3, verified_by = $4, verified_at = $5,
		    verification_notes = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Balance,
		modelTxn.VerificationStatus,
		modelTxn.VerifiedBy,
		modelTxn.VerifiedAt,
		modelTxn.VerificationNotes,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update verification of transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateTransaction updates content fields (not balance or status) of a transaction.
func (r *PgxCashbookRepository) UpdateTransaction(ctx context.Context, txn domain.CashTransaction) error {
	modelTxn := mapping.ToModelCashTransaction(txn)
	query := `
		UPDATE cash_transactions
		SET transaction_date = $2, voucher_no = $3, primary_list = $4, nature_of_expense = $5,
		    bill_status = $6, cash_in = $7, cash_out = $8, attachment_urls = $9, notes = $10,
		    last_updated_at = $11, last_updated_by = $12
		WHERE transaction_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.TransactionDate,
		modelTxn.VoucherNo,
		modelTxn.PrimaryList,
		modelTxn.NatureOfExpense,
		modelTxn.BillStatus,
		modelTxn.CashIn,
		modelTxn.CashOut,
		modelTxn.AttachmentURLs,
		modelTxn.Notes,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "duplicate voucher number for branch "+modelTxn.Branch, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to update cash transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction. Stored balances of other rows are not recomputed.
func (r *PgxCashbookRepository) DeleteTransaction(ctx context.Context, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM cash_transactions WHERE transaction_id = $1;`, transactionID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete cash transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

const openingBalanceColumns = `
	id, branch, opening_balance, history,
	created_at, created_by, last_updated_at, last_updated_by`

func scanOpeningBalance(row pgx.Row) (models.BranchOpeningBalance, error) {
	var ob models.BranchOpeningBalance
	var historyJSON []byte
	err := row.Scan(
		&ob.ID,
		&ob.Branch,
		&ob.OpeningBalance,
		&historyJSON,
		&ob.CreatedAt,
		&ob.CreatedBy,
		&ob.LastUpdatedAt,
		&ob.LastUpdatedBy,
	)
	if err != nil {
		return ob, err
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &ob.History); err != nil {
			return ob, err
		}
	}
	return ob, nil
}

// FindOpeningBalance retrieves the opening balance row for a branch.
func (r *PgxCashbookRepository) FindOpeningBalance(ctx context.Context, branch string) (*domain.BranchOpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM branch_opening_balances WHERE branch = $1;`

	modelOB, err := scanOpeningBalance(r.Pool.QueryRow(ctx, query, branch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find opening balance for branch "+branch, err)
	}

	domainOB := mapping.ToDomainOpeningBalance(modelOB)
	return &domainOB, nil
}

// FindOpeningBalanceForUpdate retrieves and locks the opening balance row for a branch.
// The lock serializes concurrent writers of the branch's balance chain.
func (r *PgxCashbookRepository) FindOpeningBalanceForUpdate(ctx context.Context, tx pgx.Tx, branch string) (*domain.BranchOpeningBalance, error) {
	query := `SELECT ` + openingBalanceColumns + ` FROM branch_opening_balances WHERE branch = $1 FOR UPDATE;`

	modelOB, err := scanOpeningBalance(tx.QueryRow(ctx, query, branch))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock opening balance for branch "+branch, err)
	}

	domainOB := mapping.ToDomainOpeningBalance(modelOB)
	return &domainOB, nil
}

// UpsertOpeningBalance creates or replaces the opening balance for a branch,
// appending the adjustment to the history.
func (r *PgxCashbookRepository) UpsertOpeningBalance(ctx context.Context, ob domain.BranchOpeningBalance, adjustment domain.BalanceAdjustment) error {
	// The insert path gets the adjustment as the initial history; the conflict
	// path appends it to whatever history the row already carries.
	adjustmentJSON, err := json.Marshal([]models.BalanceAdjustment{{Date: adjustment.Date, Amount: adjustment.Amount, Note: adjustment.Note}})
	if err != nil {
		return apperrors.NewAppError(500, "failed to marshal balance adjustment for branch "+ob.Branch, err)
	}

	query := `
		INSERT INTO branch_opening_balances (
			id, branch, opening_balance, history,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (branch) DO UPDATE
		SET opening_balance = EXCLUDED.opening_balance,
		    history = branch_opening_balances.history || EXCLUDED.history,
		    last_updated_at = EXCLUDED.last_updated_at,
		    last_updated_by = EXCLUDED.last_updated_by;
	`
	_, err = r.Pool.Exec(ctx, query,
		ob.ID,
		ob.Branch,
		ob.OpeningBalance,
		adjustmentJSON,
		ob.CreatedAt,
		ob.CreatedBy,
		ob.LastUpdatedAt,
		ob.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to upsert opening balance for branch "+ob.Branch, err)
	}
	return nil
}
