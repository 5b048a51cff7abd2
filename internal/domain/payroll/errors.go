package payroll

import "errors"

var (
	ErrPeriodNotFound        = errors.New("payroll period not found")
	ErrPeriodExists          = errors.New("payroll period already exists for this month")
	ErrPeriodLocked          = errors.New("payroll period is locked")
	ErrPeriodHasPaidSalaries = errors.New("payroll period has paid salaries")
	ErrSalaryNotFound        = errors.New("calculated salary not found")
	ErrSalaryAlreadyPaid     = errors.New("salary is already marked paid")
	ErrInvalidMode           = errors.New("invalid calculation mode")
)
