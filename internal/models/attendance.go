package models

import "time"

// AttendanceStatus mirrors domain.AttendanceStatus at the storage layer.
type AttendanceStatus string

// AttendanceRecord is the attendance_records row shape.
type AttendanceRecord struct {
	RecordID string           `json:"recordID"`
	StaffID  string           `json:"staffID"`
	Branch   string           `json:"branch"`
	Date     time.Time        `json:"date"`
	CheckIn  time.Time        `json:"checkIn"`
	CheckOut *time.Time       `json:"checkOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
	Notes    string           `json:"notes,omitempty"`
	AuditFields
}
