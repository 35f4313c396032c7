package employee

import (
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode   string           `json:"employee_code"`
	FullName       string           `json:"full_name"`
	Email          *string          `json:"email,omitempty"`
	EmploymentType string           `json:"employment_type"`
	HireDate       string           `json:"hire_date"`
	BaseSalary     *decimal.Decimal `json:"base_salary,omitempty"`
}

var validEmploymentTypes = []string{
	string(EmploymentTypePermanent), string(EmploymentTypeProbation),
	string(EmploymentTypeContract), string(EmploymentTypeInternship),
	string(EmploymentTypeFreelance),
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if !validator.IsInSlice(r.EmploymentType, validEmploymentTypes) {
		errs = append(errs, validator.ValidationError{Field: "employment_type", Message: "is not a valid employment type"})
	}
	if _, ok := validator.IsValidDate(r.HireDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "hire_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if r.BaseSalary != nil && r.BaseSalary.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                 string           `json:"id"`
	CompanyID          string           `json:"company_id"`
	EmployeeCode       string           `json:"employee_code"`
	FullName           string           `json:"full_name"`
	Email              *string          `json:"email,omitempty"`
	EmploymentType     string           `json:"employment_type"`
	EmploymentStatus   string           `json:"employment_status"`
	HireDate           string           `json:"hire_date"`
	BaseSalary         *decimal.Decimal `json:"base_salary,omitempty"`
	EarnedLeaveBalance float64          `json:"earned_leave_balance"`
	CasualLeaveBalance float64          `json:"casual_leave_balance"`
	SickLeaveBalance   float64          `json:"sick_leave_balance"`
}
