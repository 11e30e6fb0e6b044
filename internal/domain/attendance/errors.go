package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("already checked in for this date")
	ErrAlreadyCheckedOut = errors.New("already checked out for this date")
	ErrNoCheckIn         = errors.New("no check-in found for this date")

	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrDuplicateRecord    = errors.New("attendance record already exists for this date")
)
