package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestType distinguishes the service request categories the portal supports.
type RequestType string

const (
	RequestMaintenance RequestType = "MAINTENANCE"
	RequestPurchase    RequestType = "PURCHASE"
	RequestScrap       RequestType = "SCRAP"
	RequestStationary  RequestType = "STATIONARY"
)

// RequestStatus is the lifecycle state of a service request.
type RequestStatus string

const (
	RequestSubmitted RequestStatus = "SUBMITTED"
	RequestApproved  RequestStatus = "APPROVED"
	RequestRejected  RequestStatus = "REJECTED"
	RequestFulfilled RequestStatus = "FULFILLED"
)

// ServiceRequest is a maintenance/purchase/scrap/stationary request raised by branch staff.
type ServiceRequest struct {
	RequestID     string           `json:"requestID"` // Primary Key (UUID)
	RequestType   RequestType      `json:"requestType"`
	Branch        string           `json:"branch"`
	StaffID       string           `json:"staffID"`
	Subject       string           `json:"subject"`
	Description   string           `json:"description,omitempty"`
	Quantity      int              `json:"quantity,omitempty"`
	EstimatedCost *decimal.Decimal `json:"estimatedCost,omitempty"`
	Status        RequestStatus    `json:"status"`
	ReviewedBy    *string          `json:"reviewedBy,omitempty"`
	ReviewedAt    *time.Time       `json:"reviewedAt,omitempty"`
	ReviewNotes   string           `json:"reviewNotes,omitempty"`
	AuditFields
}
