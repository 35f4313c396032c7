package attendance

import "errors"

var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAttendanceExists   = errors.New("attendance already recorded for this day")
	ErrInvalidStatus      = errors.New("invalid attendance status")
	ErrInvalidDateRange   = errors.New("invalid attendance date range")
)
