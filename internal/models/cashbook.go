package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// VerificationStatus mirrors domain.VerificationStatus at the storage layer.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "PENDING"
	VerificationApproved VerificationStatus = "APPROVED"
	VerificationRejected VerificationStatus = "REJECTED"
)

// CashTransaction is the cash_transactions row shape.
type CashTransaction struct {
	TransactionID      string             `json:"transactionID"`
	Branch             string             `json:"branch"`
	StaffID            string             `json:"staffID"`
	TransactionDate    time.Time          `json:"transactionDate"`
	VoucherNo          string             `json:"voucherNo"`
	PrimaryList        string             `json:"primaryList"`
	NatureOfExpense    string             `json:"natureOfExpense"`
	BillStatus         string             `json:"billStatus"`
	CashIn             decimal.Decimal    `json:"cashIn"`
	CashOut            decimal.Decimal    `json:"cashOut"`
	Balance            decimal.Decimal    `json:"balance"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerifiedBy         *string            `json:"verifiedBy,omitempty"`
	VerifiedAt         *time.Time         `json:"verifiedAt,omitempty"`
	VerificationNotes  string             `json:"verificationNotes,omitempty"`
	AttachmentURLs     []string           `json:"attachmentURLs,omitempty"`
	Notes              string             `json:"notes,omitempty"`
	AuditFields
}

// BalanceAdjustment is one entry of the balance_history JSONB column.
type BalanceAdjustment struct {
	Date   time.Time       `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note,omitempty"`
}

// BranchOpeningBalance is the branch_opening_balances row shape.
type BranchOpeningBalance struct {
	ID             string              `json:"id"`
	Branch         string              `json:"branch"`
	OpeningBalance decimal.Decimal     `json:"openingBalance"`
	History        []BalanceAdjustment `json:"history,omitempty"`
	AuditFields
}
