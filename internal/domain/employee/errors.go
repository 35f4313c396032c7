package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeDeactivated = errors.New("employee is already deactivated")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
)
