package payroll

import (
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== COMPONENT DTOs ==========

type CreateComponentRequest struct {
	Name         string          `json:"name"`
	Direction    string          `json:"direction"` // "earning" or "deduction"
	Category     string          `json:"category"`
	CalcType     string          `json:"calc_type"` // "fixed", "percentage" or "formula"
	Value        decimal.Decimal `json:"value"`
	PercentageOf *string         `json:"percentage_of,omitempty"`
	Formula      *string         `json:"formula,omitempty"`
	IsTaxable    *bool           `json:"is_taxable,omitempty"`
}

var validCategories = []string{
	string(CategoryBasic), string(CategoryAllowance), string(CategoryBonus),
	string(CategoryTax), string(CategoryProvidentFund), string(CategoryESI),
	string(CategoryLoan), string(CategoryOther),
}

func (r *CreateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if r.Direction != string(DirectionEarning) && r.Direction != string(DirectionDeduction) {
		errs = append(errs, validator.ValidationError{Field: "direction", Message: "must be 'earning' or 'deduction'"})
	}
	if !validator.IsInSlice(r.Category, validCategories) {
		errs = append(errs, validator.ValidationError{Field: "category", Message: "is not a valid category"})
	}
	if r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}

	switch r.CalcType {
	case string(CalculationFixed):
	case string(CalculationPercentage):
		if r.Value.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: "value", Message: "percentage must not exceed 100"})
		}
		if r.PercentageOf == nil || validator.IsEmpty(*r.PercentageOf) {
			errs = append(errs, validator.ValidationError{Field: "percentage_of", Message: "is required for percentage components"})
		}
	case string(CalculationFormula):
		if r.Formula == nil || validator.IsEmpty(*r.Formula) {
			errs = append(errs, validator.ValidationError{Field: "formula", Message: "is required for formula components"})
		}
	default:
		errs = append(errs, validator.ValidationError{Field: "calc_type", Message: "must be 'fixed', 'percentage' or 'formula'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateComponentRequest struct {
	ID           string
	Name         *string          `json:"name,omitempty"`
	Value        *decimal.Decimal `json:"value,omitempty"`
	PercentageOf *string          `json:"percentage_of,omitempty"`
	Formula      *string          `json:"formula,omitempty"`
	IsTaxable    *bool            `json:"is_taxable,omitempty"`
	IsActive     *bool            `json:"is_active,omitempty"`
}

func (r *UpdateComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "must not be empty"})
	}
	if r.Value != nil && r.Value.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "value", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID           string          `json:"id"`
	CompanyID    string          `json:"company_id"`
	Name         string          `json:"name"`
	Direction    string          `json:"direction"`
	Category     string          `json:"category"`
	CalcType     string          `json:"calc_type"`
	Value        decimal.Decimal `json:"value"`
	PercentageOf *string         `json:"percentage_of,omitempty"`
	Formula      *string         `json:"formula,omitempty"`
	IsTaxable    bool            `json:"is_taxable"`
	IsActive     bool            `json:"is_active"`
}

// ========== ASSIGNMENT DTOs ==========

type AssignComponentRequest struct {
	EmployeeID        string  `json:"-"`
	SalaryComponentID string  `json:"salary_component_id"`
	EffectiveDate     *string `json:"effective_date,omitempty"`
	EndDate           *string `json:"end_date,omitempty"`
}

func (r *AssignComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.SalaryComponentID) {
		errs = append(errs, validator.ValidationError{Field: "salary_component_id", Message: "is required"})
	}
	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "effective_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}
	if r.EndDate != nil {
		if _, ok := validator.IsValidDate(*r.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignmentResponse struct {
	ID                string  `json:"id"`
	EmployeeID        string  `json:"employee_id"`
	SalaryComponentID string  `json:"salary_component_id"`
	ComponentName     string  `json:"component_name"`
	Direction         string  `json:"direction"`
	CalcType          string  `json:"calc_type"`
	EffectiveDate     string  `json:"effective_date"`
	EndDate           *string `json:"end_date,omitempty"`
}

// ========== CALCULATION / RUN DTOs ==========

type CalculateRequest struct {
	EmployeeID  string `json:"employee_id"`
	PeriodMonth int    `json:"period_month"`
	PeriodYear  int    `json:"period_year"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
	Force       bool   `json:"force,omitempty"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	errs = append(errs, validatePeriod(r.PeriodMonth, r.PeriodYear, r.PeriodStart, r.PeriodEnd)...)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RunPayrollRequest struct {
	PeriodMonth int      `json:"period_month"`
	PeriodYear  int      `json:"period_year"`
	PeriodStart string   `json:"period_start"`
	PeriodEnd   string   `json:"period_end"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // Empty = all active employees
	Force       bool     `json:"force,omitempty"`
}

func (r *RunPayrollRequest) Validate() error {
	errs := validatePeriod(r.PeriodMonth, r.PeriodYear, r.PeriodStart, r.PeriodEnd)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validatePeriod(month, year int, start, end string) validator.ValidationErrors {
	var errs validator.ValidationErrors

	if month < 1 || month > 12 {
		errs = append(errs, validator.ValidationError{Field: "period_month", Message: "must be between 1 and 12"})
	}
	if year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "period_year", Message: "must be 2000 or later"})
	}

	from, okFrom := validator.IsValidDate(start)
	if !okFrom {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	to, okTo := validator.IsValidDate(end)
	if !okTo {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if okFrom && okTo && to.Before(from) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	return errs
}

// RunOutcome enum for per-employee batch results
type RunOutcome string

const (
	OutcomeSuccess RunOutcome = "success"
	OutcomeFailed  RunOutcome = "failed"
	OutcomeSkipped RunOutcome = "skipped"
)

type RunResult struct {
	EmployeeID   string           `json:"employee_id"`
	EmployeeName string           `json:"employee_name,omitempty"`
	Outcome      RunOutcome       `json:"outcome"`
	Message      string           `json:"message,omitempty"`
	NetSalary    *decimal.Decimal `json:"net_salary,omitempty"`
}

type RunSummary struct {
	RunID       string      `json:"run_id"`
	PeriodMonth int         `json:"period_month"`
	PeriodYear  int         `json:"period_year"`
	Success     int         `json:"success"`
	Failed      int         `json:"failed"`
	Skipped     int         `json:"skipped"`
	Results     []RunResult `json:"results"`
}

// ========== LIFECYCLE DTOs ==========

type MarkPaidRequest struct {
	ID            string
	PaymentMethod string  `json:"payment_method"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.PaymentMethod) {
		errs = append(errs, validator.ValidationError{Field: "payment_method", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRecordRequest carries the only mutable fields of an unlocked record.
// Anything else on the wire is ignored by design; there is no generic merge.
type UpdateRecordRequest struct {
	ID      string
	Remarks *string `json:"remarks,omitempty"`
}

type RecordResponse struct {
	ID           string `json:"id"`
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	EmployeeCode string `json:"employee_code,omitempty"`
	PeriodMonth  int    `json:"period_month"`
	PeriodYear   int    `json:"period_year"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`

	TotalWorkingDays float64 `json:"total_working_days"`
	PresentDays      float64 `json:"present_days"`
	AbsentDays       float64 `json:"absent_days"`
	LeaveDays        float64 `json:"leave_days"`
	HalfDays         float64 `json:"half_days"`
	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`

	BasicSalary     decimal.Decimal `json:"basic_salary"`
	Earnings        []Item          `json:"earnings"`
	Deductions      []Item          `json:"deductions"`
	GrossEarnings   decimal.Decimal `json:"gross_earnings"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	TaxDeducted     decimal.Decimal `json:"tax_deducted"`
	PFContribution  decimal.Decimal `json:"pf_contribution"`
	ESIContribution decimal.Decimal `json:"esi_contribution"`

	Status        string  `json:"status"`
	IsLocked      bool    `json:"is_locked"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	ApprovedAt    *string `json:"approved_at,omitempty"`
	PaymentMethod *string `json:"payment_method,omitempty"`
	PaymentDate   *string `json:"payment_date,omitempty"`
	TransactionID *string `json:"transaction_id,omitempty"`
	Remarks       *string `json:"remarks,omitempty"`
}

type RecordFilter struct {
	PeriodMonth *int    `json:"period_month,omitempty"`
	PeriodYear  *int    `json:"period_year,omitempty"`
	Status      *string `json:"status,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
	Page        int     `json:"page"`
	Limit       int     `json:"limit"`
}

type ListRecordResponse struct {
	Data       []RecordResponse `json:"data"`
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
}

// PeriodBounds returns the parsed period range of a validated request.
func PeriodBounds(start, end string) (time.Time, time.Time) {
	from, _ := time.Parse("2006-01-02", start)
	to, _ := time.Parse("2006-01-02", end)
	return from, to
}
