package attendance

import "errors"

var (
	ErrRecordNotFound  = errors.New("attendance record not found")
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already exists for this date")
)
