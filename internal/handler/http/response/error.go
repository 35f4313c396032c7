package response

import (
	"errors"
	"net/http"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/company"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Unresolvable salary structures carry the offending component name
	var resolutionErr *payroll.ResolutionError
	if errors.As(err, &resolutionErr) {
		UnprocessableEntity(w, resolutionErr.Error())
		return
	}

	switch {
	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmployeeDeactivated):
		Conflict(w, "Employee is already deactivated")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceExists):
		Conflict(w, "Attendance already recorded for this day")
	case errors.Is(err, attendance.ErrInvalidStatus):
		BadRequest(w, "Invalid attendance status", nil)
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid attendance date range", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrComponentNameExists):
		Conflict(w, "Salary component name already exists")
	case errors.Is(err, payroll.ErrComponentInUse):
		Conflict(w, "Salary component is assigned to employees")
	case errors.Is(err, payroll.ErrAssignmentNotFound):
		NotFound(w, "Salary component assignment not found")
	case errors.Is(err, payroll.ErrPayrollRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollRecordExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollRecordLocked):
		Conflict(w, "Payroll record is locked")
	case errors.Is(err, payroll.ErrInvalidStatusTransition):
		UnprocessableEntity(w, "Invalid payroll status transition")
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrCannotDeletePaidRecord):
		Conflict(w, "Cannot delete a paid payroll record")
	case errors.Is(err, payroll.ErrMissingBasicComponent):
		UnprocessableEntity(w, "Salary structure has no basic component")
	case errors.Is(err, payroll.ErrPaymentMethodRequired):
		BadRequest(w, "Payment method is required", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
