package mapping

import (
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	"github.com/staffdesk/ops_portal_app/internal/models"
)

// ToModelCashTransaction converts a domain cash transaction to its row shape.
func ToModelCashTransaction(d domain.CashTransaction) models.CashTransaction {
	return models.CashTransaction{
		TransactionID:      d.TransactionID,
		Branch:             d.Branch,
		StaffID:            d.StaffID,
		TransactionDate:    d.TransactionDate,
		VoucherNo:          d.VoucherNo,
		PrimaryList:        d.PrimaryList,
		NatureOfExpense:    d.NatureOfExpense,
		BillStatus:         d.BillStatus,
		CashIn:             d.CashIn,
		CashOut:            d.CashOut,
		Balance:            d.Balance,
		VerificationStatus: models.VerificationStatus(d.VerificationStatus),
		VerifiedBy:         d.VerifiedBy,
		VerifiedAt:         d.VerifiedAt,
		VerificationNotes:  d.VerificationNotes,
		AttachmentURLs:     d.AttachmentURLs,
		Notes:              d.Notes,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCashTransaction converts a row to the domain shape.
func ToDomainCashTransaction(m models.CashTransaction) domain.CashTransaction {
	return domain.CashTransaction{
		TransactionID:      m.TransactionID,
		Branch:             m.Branch,
		StaffID:            m.StaffID,
		TransactionDate:    m.TransactionDate,
		VoucherNo:          m.VoucherNo,
		PrimaryList:        m.PrimaryList,
		NatureOfExpense:    m.NatureOfExpense,
		BillStatus:         m.BillStatus,
		CashIn:             m.CashIn,
		CashOut:            m.CashOut,
		Balance:            m.Balance,
		VerificationStatus: domain.VerificationStatus(m.VerificationStatus),
		VerifiedBy:         m.VerifiedBy,
		VerifiedAt:         m.VerifiedAt,
		VerificationNotes:  m.VerificationNotes,
		AttachmentURLs:     m.AttachmentURLs,
		Notes:              m.Notes,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainOpeningBalance converts an opening balance row to the domain shape.
func ToDomainOpeningBalance(m models.BranchOpeningBalance) domain.BranchOpeningBalance {
	history := make([]domain.BalanceAdjustment, len(m.History))
	for i, h := range m.History {
		history[i] = domain.BalanceAdjustment{Date: h.Date, Amount: h.Amount, Note: h.Note}
	}
	return domain.BranchOpeningBalance{
		ID:             m.ID,
		Branch:         m.Branch,
		OpeningBalance: m.OpeningBalance,
		History:        history,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBalanceHistory converts domain adjustments to the JSONB shape.
func ToModelBalanceHistory(history []domain.BalanceAdjustment) []models.BalanceAdjustment {
	out := make([]models.BalanceAdjustment, len(history))
	for i, h := range history {
		out[i] = models.BalanceAdjustment{Date: h.Date, Amount: h.Amount, Note: h.Note}
	}
	return out
}
