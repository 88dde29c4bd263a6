package models

import "time"

// AttendanceRow is one check-in from the attendance listings, newest first.
type AttendanceRow struct {
	FirstName       string    `json:"first_name"`
	LastName        *string   `json:"last_name,omitempty"`
	Email           string    `json:"email"`
	AttendanceAtUTC time.Time `json:"attendance_at_utc"`
}

// MarkAttendanceResult reports the session a check-in was attached to.
// AlreadyMarked is true when the member had already checked in for that
// session; this is a normal outcome, not an error.
type MarkAttendanceResult struct {
	SessionID     string `json:"session_id"`
	AlreadyMarked bool   `json:"already_marked"`
}

// DummyMarkAttendance receives the daily check-in JSON request.
type DummyMarkAttendance struct {
	Email string `json:"email" validate:"required,email"`
}

// DummyMarkAttendanceDirect receives the manual check-in JSON request.
// StartAt is RFC 3339; duplicate calls intentionally create duplicate
// sessions, this path is for administrative entries.
type DummyMarkAttendanceDirect struct {
	Email   string `json:"email" validate:"required,email"`
	Title   string `json:"title" validate:"required"`
	StartAt string `json:"start_at" validate:"required"`
}
