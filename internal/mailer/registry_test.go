package mailer

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
)

func TestDecodePayload_TaskAssigned(t *testing.T) {
	validate := validator.New()
	raw := json.RawMessage(`{
		"assignee_name": "Priya",
		"assigner_name": "Ravi",
		"task_title": "Restock stationary cupboard",
		"priority": "HIGH",
		"due_date": "2025-07-01",
		"branch": "BLR-01"
	}`)

	payload, err := DecodePayload(EmailTaskAssigned, raw, validate)
	require.NoError(t, err)

	typed, ok := payload.(*TaskAssignedPayload)
	require.True(t, ok)
	assert.Equal(t, "Priya", typed.AssigneeName)
	assert.Equal(t, "HIGH", typed.Priority)
}

func TestDecodePayload_MissingRequiredField(t *testing.T) {
	validate := validator.New()
	raw := json.RawMessage(`{"assigner_name": "Ravi", "task_title": "x", "priority": "LOW", "branch": "BLR-01"}`)

	_, err := DecodePayload(EmailTaskAssigned, raw, validate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestDecodePayload_UnknownType(t *testing.T) {
	validate := validator.New()
	_, err := DecodePayload(EmailType("party_invite"), json.RawMessage(`{}`), validate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestDecodePayload_MalformedJSON(t *testing.T) {
	validate := validator.New()
	_, err := DecodePayload(EmailWelcome, json.RawMessage(`{"staff_name":`), validate)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestRender_AllRegisteredTypesHaveTemplates(t *testing.T) {
	validate := validator.New()

	samples := map[EmailType]json.RawMessage{
		EmailTaskAssigned:     json.RawMessage(`{"assignee_name":"A","assigner_name":"B","task_title":"T","priority":"LOW","branch":"BLR-01"}`),
		EmailTaskCompleted:    json.RawMessage(`{"assignee_name":"A","task_title":"T","branch":"BLR-01","completed_at":"2025-07-01"}`),
		EmailTaskOverdue:      json.RawMessage(`{"assignee_name":"A","task_title":"T","branch":"BLR-01","due_date":"2025-06-30"}`),
		EmailCashSubmitted:    json.RawMessage(`{"staff_name":"A","branch":"BLR-01","transaction_date":"2025-07-01","cash_in":"100.00","cash_out":"0.00"}`),
		EmailCashApproved:     json.RawMessage(`{"staff_name":"A","verifier_name":"B","branch":"BLR-01","transaction_date":"2025-07-01","balance":"1500.00"}`),
		EmailCashRejected:     json.RawMessage(`{"staff_name":"A","verifier_name":"B","branch":"BLR-01","transaction_date":"2025-07-01"}`),
		EmailLowBalanceAlert:  json.RawMessage(`{"branch":"BLR-01","balance":"-500.00","threshold":"500"}`),
		EmailRequestSubmitted: json.RawMessage(`{"staff_name":"A","branch":"BLR-01","request_type":"PURCHASE","description":"New chairs"}`),
		EmailRequestReviewed:  json.RawMessage(`{"staff_name":"A","reviewer_name":"B","branch":"BLR-01","request_type":"PURCHASE","status":"APPROVED"}`),
		EmailDailyReport:      json.RawMessage(`{"report_date":"2025-07-01","branches":[{"branch":"BLR-01","present_count":5,"absent_count":1,"open_tasks":3,"pending_cash":2,"pending_requests":1,"approved_cash_in":"1000.00","approved_cash_out":"200.00","closing_balance":"1800.00"}]}`),
		EmailWelcome:          json.RawMessage(`{"staff_name":"A","branch":"BLR-01","role":"STAFF"}`),
	}

	require.Len(t, samples, len(KnownTypes()), "every registered type needs a sample here")

	for emailType, raw := range samples {
		payload, err := DecodePayload(emailType, raw, validate)
		require.NoError(t, err, "decode %s", emailType)

		subject, body, err := Render(emailType, payload)
		require.NoError(t, err, "render %s", emailType)
		assert.NotEmpty(t, subject, "subject %s", emailType)
		assert.Contains(t, body, "operations portal", "body %s", emailType)
	}
}

func TestRender_EscapesHTMLInUserContent(t *testing.T) {
	payload := &WelcomePayload{StaffName: "<script>alert(1)</script>", Branch: "BLR-01", Role: "STAFF"}

	_, body, err := Render(EmailWelcome, payload)
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}
