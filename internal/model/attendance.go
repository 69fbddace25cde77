package model

import "time"

// AttendanceStatus is the recorded presence of a student on a date.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// AttendanceRecord is the single row kept per (student, date).
type AttendanceRecord struct {
	ID        int              `json:"id"`
	StudentID int              `json:"student_id"`
	Date      Date             `json:"date"`
	Status    AttendanceStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// AttendanceEventType names what happened to a mark-present request.
type AttendanceEventType string

const (
	EventMarked   AttendanceEventType = "marked"
	EventConflict AttendanceEventType = "conflict"
	EventSeeded   AttendanceEventType = "seeded"
)

// AttendanceEvent is broadcast to live listeners and persisted in the audit trail.
type AttendanceEvent struct {
	Type       AttendanceEventType `json:"type"`
	StudentID  int                 `json:"student_id,omitempty"`
	Date       Date                `json:"date"`
	Status     AttendanceStatus    `json:"status,omitempty"`
	RecordID   int                 `json:"record_id,omitempty"`
	Count      int                 `json:"count,omitempty"`
	RequestID  string              `json:"request_id,omitempty"`
	OccurredAt time.Time           `json:"occurred_at"`
}
