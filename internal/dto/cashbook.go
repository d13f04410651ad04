package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CreateCashTransactionRequest defines the payload for creating a cash transaction.
// Exactly one of CashIn/CashOut must be non-zero; the service enforces this.
type CreateCashTransactionRequest struct {
	Branch          string          `json:"branch" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	VoucherNo       string          `json:"voucherNo" binding:"required"`
	PrimaryList     string          `json:"primaryList"`
	NatureOfExpense string          `json:"natureOfExpense"`
	BillStatus      string          `json:"billStatus"`
	CashIn          decimal.Decimal `json:"cashIn"`
	CashOut         decimal.Decimal `json:"cashOut"`
	AttachmentURLs  []string        `json:"attachmentURLs"`
	Notes           string          `json:"notes"`
}

// UpdateCashTransactionRequest defines the editable content fields of a transaction.
// Balance and verification status are never updated through this path.
type UpdateCashTransactionRequest struct {
	TransactionDate *time.Time `json:"transactionDate"`
	VoucherNo       *string    `json:"voucherNo"`
	PrimaryList     *string    `json:"primaryList"`
	NatureOfExpense *string    `json:"natureOfExpense"`
	BillStatus      *string    `json:"billStatus"`
	AttachmentURLs  []string   `json:"attachmentURLs"`
	Notes           *string    `json:"notes"`
}

// VerifyCashTransactionRequest is the body of the approve/reject endpoint.
type VerifyCashTransactionRequest struct {
	ID         string `json:"id" binding:"required"`
	Note       string `json:"note"`
	VerifierID string `json:"verifier_id" binding:"required"`
}

// SetOpeningBalanceRequest defines the payload for setting a branch opening balance.
type SetOpeningBalanceRequest struct {
	OpeningBalance decimal.Decimal `json:"openingBalance" binding:"required"`
	Note           string          `json:"note"`
}

// CashTransactionResponse defines the data returned for a cash transaction.
type CashTransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	Branch             string          `json:"branch"`
	StaffID            string          `json:"staffID"`
	TransactionDate    time.Time       `json:"transactionDate"`
	VoucherNo          string          `json:"voucherNo"`
	PrimaryList        string          `json:"primaryList,omitempty"`
	NatureOfExpense    string          `json:"natureOfExpense,omitempty"`
	BillStatus         string          `json:"billStatus,omitempty"`
	CashIn             decimal.Decimal `json:"cashIn"`
	CashOut            decimal.Decimal `json:"cashOut"`
	Balance            decimal.Decimal `json:"balance"`
	VerificationStatus string          `json:"verificationStatus"`
	VerifiedBy         *string         `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time      `json:"verifiedAt,omitempty"`
	VerificationNotes  string          `json:"verificationNotes,omitempty"`
	AttachmentURLs     []string        `json:"attachmentURLs,omitempty"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
}

// ListCashTransactionsParams holds query parameters for listing transactions.
type ListCashTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListCashTransactionsResponse is the paginated transaction listing.
type ListCashTransactionsResponse struct {
	Transactions []CashTransactionResponse `json:"transactions"`
	NextToken    *string                   `json:"nextToken,omitempty"`
}

// OpeningBalanceResponse defines the data returned for a branch opening balance.
type OpeningBalanceResponse struct {
	Branch         string                     `json:"branch"`
	OpeningBalance decimal.Decimal            `json:"openingBalance"`
	History        []domain.BalanceAdjustment `json:"history,omitempty"`
}

// BranchBalanceResponse is the current running balance of a branch.
type BranchBalanceResponse struct {
	Branch  string          `json:"branch"`
	Balance decimal.Decimal `json:"balance"`
	AsOf    time.Time       `json:"asOf"`
}

// ToCashTransactionResponse converts a domain.CashTransaction to its response DTO.
func ToCashTransactionResponse(t *domain.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		TransactionID:      t.TransactionID,
		Branch:             t.Branch,
		StaffID:            t.StaffID,
		TransactionDate:    t.TransactionDate,
		VoucherNo:          t.VoucherNo,
		PrimaryList:        t.PrimaryList,
		NatureOfExpense:    t.NatureOfExpense,
		BillStatus:         t.BillStatus,
		CashIn:             t.CashIn,
		CashOut:            t.CashOut,
		Balance:            t.Balance,
		VerificationStatus: string(t.VerificationStatus),
		VerifiedBy:         t.VerifiedBy,
		VerifiedAt:         t.VerifiedAt,
		VerificationNotes:  t.VerificationNotes,
		AttachmentURLs:     t.AttachmentURLs,
		Notes:              t.Notes,
		CreatedAt:          t.CreatedAt,
	}
}

// ToCashTransactionResponses converts a slice of domain transactions to response DTOs.
func ToCashTransactionResponses(txns []domain.CashTransaction) []CashTransactionResponse {
	responses := make([]CashTransactionResponse, len(txns))
	for i, txn := range txns {
		responses[i] = ToCashTransactionResponse(&txn)
	}
	return responses
}
