package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestType mirrors domain.RequestType at the storage layer.
type RequestType string

// RequestStatus mirrors domain.RequestStatus at the storage layer.
type RequestStatus string

// ServiceRequest is the service_requests row shape.
type ServiceRequest struct {
	RequestID     string           `json:"requestID"`
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
