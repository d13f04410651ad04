package dto

import (
	"time"

	"github.com/staffdesk/ops_portal_app/internal/core/domain"
)

// CheckInRequest defines the payload for marking attendance.
type CheckInRequest struct {
	Status string `json:"status" binding:"omitempty,oneof=PRESENT ABSENT HALF_DAY LEAVE"`
	Notes  string `json:"notes"`
}

// AttendanceRecordResponse defines the data returned for an attendance record.
type AttendanceRecordResponse struct {
	RecordID string     `json:"recordID"`
	StaffID  string     `json:"staffID"`
	Branch   string     `json:"branch"`
	Date     time.Time  `json:"date"`
	CheckIn  time.Time  `json:"checkIn"`
	CheckOut *time.Time `json:"checkOut,omitempty"`
	Status   string     `json:"status"`
	Notes    string     `json:"notes,omitempty"`
}

// ToAttendanceRecordResponse converts a domain.AttendanceRecord to its response DTO.
func ToAttendanceRecordResponse(r *domain.AttendanceRecord) AttendanceRecordResponse {
	return AttendanceRecordResponse{
		RecordID: r.RecordID,
		StaffID:  r.StaffID,
		Branch:   r.Branch,
		Date:     r.Date,
		CheckIn:  r.CheckIn,
		CheckOut: r.CheckOut,
		Status:   string(r.Status),
		Notes:    r.Notes,
	}
}

// ToAttendanceRecordResponses converts a slice of records to response DTOs.
func ToAttendanceRecordResponses(records []domain.AttendanceRecord) []AttendanceRecordResponse {
	responses := make([]AttendanceRecordResponse, len(records))
	for i, r := range records {
		responses[i] = ToAttendanceRecordResponse(&r)
	}
	return responses
}
