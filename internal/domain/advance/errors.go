package advance

import "errors"

var (
	ErrAdvanceNotFound        = errors.New("advance not found")
	ErrCannotChangeEmployee   = errors.New("advance cannot be moved to another employee")
	ErrAdvanceAlreadyDeducted = errors.New("advance has repayments and cannot be deleted")
)
