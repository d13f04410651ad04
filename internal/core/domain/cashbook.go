package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus indicates where a cash transaction sits in the approval workflow.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// CashTransaction represents a single cash movement in a branch's cash book.
// Exactly one of CashIn/CashOut is non-zero. Balance is the branch running
// balance immediately after this transaction and is meaningful only while
// VerificationStatus is APPROVED; for pending rows it holds the balance as of
// creation time as a placeholder.
type CashTransaction struct {
	TransactionID     string             `json:"transactionID"` // Primary Key (UUID)
	Branch            string             `json:"branch"`        // FK -> Branch.Code
	StaffID           string             `json:"staffID"`       // Submitting staff member
	TransactionDate   time.Time          `json:"transactionDate"`
	VoucherNo         string             `json:"voucherNo"` // Unique per branch
	PrimaryList       string             `json:"primaryList"`
	NatureOfExpense   string             `json:"natureOfExpense"`
	BillStatus        string             `json:"billStatus"`
	CashIn            decimal.Decimal    `json:"cashIn"`
	CashOut           decimal.Decimal    `json:"cashOut"`
	Balance           decimal.Decimal    `json:"balance"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedBy        *string            `json:"verifiedBy,omitempty"`
	VerifiedAt        *time.Time         `json:"verifiedAt,omitempty"`
	VerificationNotes string             `json:"verificationNotes,omitempty"`
	AttachmentURLs    []string           `json:"attachmentURLs,omitempty"`
	Notes             string             `json:"notes,omitempty"`
	AuditFields
}

// Delta returns the signed effect of this transaction on the branch balance.
func (t CashTransaction) Delta() decimal.Decimal {
	return t.CashIn.Sub(t.CashOut)
}

// IsFinal reports whether the transaction has left the PENDING state.
// Approved and rejected transactions never transition again.
func (t CashTransaction) IsFinal() bool {
	return t.VerificationStatus != VerificationPending
}

// BalanceAdjustment is one entry in a branch's opening balance history.
type BalanceAdjustment struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// BranchOpeningBalance is the base amount a branch's cash book starts from,
// with an append-only history of manual adjustments.
type BranchOpeningBalance struct {
	ID             string              `json:"id"` // Primary Key (UUID)
	Branch         string              `json:"branch"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	History        []BalanceAdjustment `json:"history,omitempty"`
	AuditFields
}
