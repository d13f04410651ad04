package mailer

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
)

// EmailType discriminates the transactional email templates the portal can send.
type EmailType string

const (
	EmailTaskAssigned     EmailType = "task_assigned"
	EmailTaskCompleted    EmailType = "task_completed"
	EmailTaskOverdue      EmailType = "task_overdue"
	EmailCashSubmitted    EmailType = "cash_submitted"
	EmailCashApproved     EmailType = "cash_approved"
	EmailCashRejected     EmailType = "cash_rejected"
	EmailLowBalanceAlert  EmailType = "low_balance_alert"
	EmailRequestSubmitted EmailType = "request_submitted"
	EmailRequestReviewed  EmailType = "request_reviewed"
	EmailDailyReport      EmailType = "daily_report"
	EmailWelcome          EmailType = "welcome"
)

// Payload structs carry the data a template needs. Every field the template
// depends on is marked required so a malformed dispatch fails before render.

type TaskAssignedPayload struct {
	AssigneeName string `json:"assignee_name" validate:"required"`
	AssignerName string `json:"assigner_name" validate:"required"`
	TaskTitle    string `json:"task_title" validate:"required"`
	Priority     string `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	DueDate      string `json:"due_date"`
	Branch       string `json:"branch" validate:"required"`
}

type TaskCompletedPayload struct {
	AssigneeName string `json:"assignee_name" validate:"required"`
	TaskTitle    string `json:"task_title" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	CompletedAt  string `json:"completed_at" validate:"required"`
}

type TaskOverduePayload struct {
	AssigneeName string `json:"assignee_name" validate:"required"`
	TaskTitle    string `json:"task_title" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	DueDate      string `json:"due_date" validate:"required"`
}

type CashSubmittedPayload struct {
	StaffName       string `json:"staff_name" validate:"required"`
	Branch          string `json:"branch" validate:"required"`
	TransactionDate string `json:"transaction_date" validate:"required"`
	CashIn          string `json:"cash_in" validate:"required"`
	CashOut         string `json:"cash_out" validate:"required"`
	Description     string `json:"description"`
}

type CashApprovedPayload struct {
	StaffName       string `json:"staff_name" validate:"required"`
	VerifierName    string `json:"verifier_name" validate:"required"`
	Branch          string `json:"branch" validate:"required"`
	TransactionDate string `json:"transaction_date" validate:"required"`
	Balance         string `json:"balance" validate:"required"`
	Note            string `json:"note"`
}

type CashRejectedPayload struct {
	StaffName       string `json:"staff_name" validate:"required"`
	VerifierName    string `json:"verifier_name" validate:"required"`
	Branch          string `json:"branch" validate:"required"`
	TransactionDate string `json:"transaction_date" validate:"required"`
	Note            string `json:"note"`
}

type LowBalanceAlertPayload struct {
	Branch    string `json:"branch" validate:"required"`
	Balance   string `json:"balance" validate:"required"`
	Threshold string `json:"threshold" validate:"required"`
}

type RequestSubmittedPayload struct {
	StaffName   string `json:"staff_name" validate:"required"`
	Branch      string `json:"branch" validate:"required"`
	RequestType string `json:"request_type" validate:"required,oneof=MAINTENANCE PURCHASE SCRAP STATIONARY"`
	Description string `json:"description" validate:"required"`
}

type RequestReviewedPayload struct {
	StaffName    string `json:"staff_name" validate:"required"`
	ReviewerName string `json:"reviewer_name" validate:"required"`
	Branch       string `json:"branch" validate:"required"`
	RequestType  string `json:"request_type" validate:"required"`
	Status       string `json:"status" validate:"required,oneof=APPROVED REJECTED FULFILLED"`
	Note         string `json:"note"`
}

type DailyReportBranchLine struct {
	Branch           string `json:"branch" validate:"required"`
	PresentCount     int    `json:"present_count"`
	AbsentCount      int    `json:"absent_count"`
	OpenTasks        int    `json:"open_tasks"`
	PendingCash      int    `json:"pending_cash"`
	PendingRequests  int    `json:"pending_requests"`
	ApprovedCashIn   string `json:"approved_cash_in"`
	ApprovedCashOut  string `json:"approved_cash_out"`
	ClosingBalance   string `json:"closing_balance"`
}

type DailyReportPayload struct {
	ReportDate string                  `json:"report_date" validate:"required"`
	Branches   []DailyReportBranchLine `json:"branches" validate:"required,min=1,dive"`
}

type WelcomePayload struct {
	StaffName string `json:"staff_name" validate:"required"`
	Branch    string `json:"branch" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=STAFF ADMIN"`
}

// emailSpec binds one EmailType to its payload shape, subject line and template.
type emailSpec struct {
	newPayload   func() any
	subject      func(payload any) string
	templateName string
}

var registry = map[EmailType]emailSpec{
	EmailTaskAssigned: {
		newPayload:   func() any { return &TaskAssignedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("New task assigned: %s", p.(*TaskAssignedPayload).TaskTitle) },
		templateName: "task_assigned",
	},
	EmailTaskCompleted: {
		newPayload:   func() any { return &TaskCompletedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Task completed: %s", p.(*TaskCompletedPayload).TaskTitle) },
		templateName: "task_completed",
	},
	EmailTaskOverdue: {
		newPayload:   func() any { return &TaskOverduePayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Task overdue: %s", p.(*TaskOverduePayload).TaskTitle) },
		templateName: "task_overdue",
	},
	EmailCashSubmitted: {
		newPayload:   func() any { return &CashSubmittedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Cash entry submitted for %s", p.(*CashSubmittedPayload).Branch) },
		templateName: "cash_submitted",
	},
	EmailCashApproved: {
		newPayload:   func() any { return &CashApprovedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Cash entry approved for %s", p.(*CashApprovedPayload).Branch) },
		templateName: "cash_approved",
	},
	EmailCashRejected: {
		newPayload:   func() any { return &CashRejectedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Cash entry rejected for %s", p.(*CashRejectedPayload).Branch) },
		templateName: "cash_rejected",
	},
	EmailLowBalanceAlert: {
		newPayload:   func() any { return &LowBalanceAlertPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Low balance alert: %s", p.(*LowBalanceAlertPayload).Branch) },
		templateName: "low_balance_alert",
	},
	EmailRequestSubmitted: {
		newPayload:   func() any { return &RequestSubmittedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("New %s request from %s", p.(*RequestSubmittedPayload).RequestType, p.(*RequestSubmittedPayload).Branch) },
		templateName: "request_submitted",
	},
	EmailRequestReviewed: {
		newPayload:   func() any { return &RequestReviewedPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Your %s request was %s", p.(*RequestReviewedPayload).RequestType, p.(*RequestReviewedPayload).Status) },
		templateName: "request_reviewed",
	},
	EmailDailyReport: {
		newPayload:   func() any { return &DailyReportPayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Daily operations report for %s", p.(*DailyReportPayload).ReportDate) },
		templateName: "daily_report",
	},
	EmailWelcome: {
		newPayload:   func() any { return &WelcomePayload{} },
		subject:      func(p any) string { return fmt.Sprintf("Welcome aboard, %s", p.(*WelcomePayload).StaffName) },
		templateName: "welcome",
	},
}

// KnownTypes returns every registered email type. Useful for validation errors.
func KnownTypes() []EmailType {
	types := make([]EmailType, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	return types
}

// DecodePayload unmarshals and validates the raw JSON payload for the given
// email type. It returns apperrors.ErrValidation wrapped errors for unknown
// types, malformed JSON and missing required fields.
func DecodePayload(emailType EmailType, raw json.RawMessage, validate *validator.Validate) (any, error) {
	spec, ok := registry[emailType]
	if !ok {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("unknown email type: %s", emailType), apperrors.ErrValidation)
	}

	payload := spec.newPayload()
	if err := json.Unmarshal(raw, payload); err != nil {
		return nil, apperrors.NewAppError(400, "invalid email payload JSON", apperrors.ErrValidation)
	}
	if err := validate.Struct(payload); err != nil {
		return nil, apperrors.NewAppError(400, fmt.Sprintf("email payload validation failed: %v", err), apperrors.ErrValidation)
	}
	return payload, nil
}

// Render produces the subject and HTML body for a decoded payload.
func Render(emailType EmailType, payload any) (subject, htmlBody string, err error) {
	spec, ok := registry[emailType]
	if !ok {
		return "", "", apperrors.NewAppError(400, fmt.Sprintf("unknown email type: %s", emailType), apperrors.ErrValidation)
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, spec.templateName, payload); err != nil {
		return "", "", fmt.Errorf("rendering email template %q: %w", spec.templateName, err)
	}
	return spec.subject(payload), buf.String(), nil
}
