package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrComponentNotFound       = errors.New("salary component not found")
	ErrComponentNameExists     = errors.New("salary component name already exists")
	ErrComponentInUse          = errors.New("salary component is assigned to employees and cannot be deleted")
	ErrAssignmentNotFound      = errors.New("salary component assignment not found")
	ErrPayrollRecordNotFound   = errors.New("payroll record not found")
	ErrPayrollRecordExists     = errors.New("payroll record already exists for this period")
	ErrPayrollRecordLocked     = errors.New("payroll record is locked")
	ErrInvalidStatusTransition = errors.New("invalid payroll status transition")
	ErrInvalidPeriod           = errors.New("invalid payroll period")
	ErrCannotDeletePaidRecord  = errors.New("cannot delete a paid payroll record")
	ErrMissingBasicComponent   = errors.New("salary structure has no basic component")
	ErrPaymentMethodRequired   = errors.New("payment method is required")
)

// ResolutionError reports an unresolvable salary component: a dangling
// percentage base, a cyclic reference chain, or a formula that failed to
// evaluate.
type ResolutionError struct {
	Component string
	Reason    string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve component %q: %s", e.Component, e.Reason)
}

// CalculationError wraps any failure during a single employee's payroll
// calculation so batch runs can attribute it without aborting.
type CalculationError struct {
	EmployeeID string
	Err        error
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("payroll calculation failed for employee %s: %v", e.EmployeeID, e.Err)
}

func (e *CalculationError) Unwrap() error {
	return e.Err
}
