package domain

import "time"

// AttendanceStatus classifies a day's attendance record.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
	AttendanceHalfDay AttendanceStatus = "HALF_DAY"
	AttendanceLeave   AttendanceStatus = "LEAVE"
)

// AttendanceRecord captures one staff member's attendance for one calendar day.
// At most one record exists per (StaffID, Date).
type AttendanceRecord struct {
	RecordID string           `json:"recordID"` // Primary Key (UUID)
	StaffID  string           `json:"staffID"`
	Branch   string           `json:"branch"`
	Date     time.Time        `json:"date"` // Calendar day, time component zeroed
	CheckIn  time.Time        `json:"checkIn"`
	CheckOut *time.Time       `json:"checkOut,omitempty"`
	Status   AttendanceStatus `json:"status"`
	Notes    string           `json:"notes,omitempty"`
	AuditFields
}

// AttendanceSummary aggregates one branch's attendance for a single day.
type AttendanceSummary struct {
	Branch  string `json:"branch"`
	Date    time.Time `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	HalfDay int    `json:"halfDay"`
	OnLeave int    `json:"onLeave"`
}
