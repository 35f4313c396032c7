package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentDirection enum
type ComponentDirection string

const (
	DirectionEarning   ComponentDirection = "earning"
	DirectionDeduction ComponentDirection = "deduction"
)

// ComponentCategory enum
type ComponentCategory string

const (
	CategoryBasic         ComponentCategory = "basic"
	CategoryAllowance     ComponentCategory = "allowance"
	CategoryBonus         ComponentCategory = "bonus"
	CategoryTax           ComponentCategory = "tax"
	CategoryProvidentFund ComponentCategory = "provident_fund"
	CategoryESI           ComponentCategory = "esi"
	CategoryLoan          ComponentCategory = "loan"
	CategoryOther         ComponentCategory = "other"
)

// CalculationType enum
type CalculationType string

const (
	CalculationFixed      CalculationType = "fixed"
	CalculationPercentage CalculationType = "percentage"
	CalculationFormula    CalculationType = "formula"
)

// SalaryComponent - Master salary component. Name is unique per company.
// Percentage components reference another component's name whose resolved
// amount is the percentage base. Formula components carry an expression
// evaluated against already-resolved component amounts.
type SalaryComponent struct {
	ID           string
	CompanyID    string
	Name         string
	Direction    ComponentDirection
	Category     ComponentCategory
	CalcType     CalculationType
	Value        decimal.Decimal
	PercentageOf *string
	Formula      *string
	IsTaxable    bool
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// EmployeeSalaryComponent - Component assignment to an employee's salary structure
type EmployeeSalaryComponent struct {
	ID                string
	EmployeeID        string
	SalaryComponentID string
	EffectiveDate     time.Time
	EndDate           *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined fields
	Component *SalaryComponent
}

// Status enum for the payroll record lifecycle
type Status string

const (
	StatusDraft      Status = "draft"
	StatusCalculated Status = "calculated"
	StatusApproved   Status = "approved"
	StatusPaid       Status = "paid"
	StatusCancelled  Status = "cancelled"
)

// Item - One resolved earning or deduction line on a payroll record
type Item struct {
	Component string          `json:"component"`
	Amount    decimal.Decimal `json:"amount"`
	IsTaxable bool            `json:"is_taxable"`
}

// Record - Computed monthly payroll result, one per (employee, month, year).
// Once IsLocked is true no field may change; no unlock is exposed.
type Record struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PeriodMonth int
	PeriodYear  int
	PeriodStart time.Time
	PeriodEnd   time.Time

	TotalWorkingDays float64
	PresentDays      float64
	AbsentDays       float64
	LeaveDays        float64
	HalfDays         float64
	RegularHours     float64
	OvertimeHours    float64

	BasicSalary     decimal.Decimal
	Earnings        []Item
	Deductions      []Item
	GrossEarnings   decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	TaxDeducted     decimal.Decimal
	PFContribution  decimal.Decimal
	ESIContribution decimal.Decimal

	Status        Status
	IsLocked      bool
	ApprovedBy    *string
	ApprovedAt    *time.Time
	PaymentMethod *string
	PaymentDate   *time.Time
	TransactionID *string
	Remarks       *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// CanApprove reports whether the record may transition to approved.
func (r Record) CanApprove() bool {
	return !r.IsLocked && r.Status == StatusCalculated
}

// CanMarkPaid reports whether the record may transition to paid.
func (r Record) CanMarkPaid() bool {
	return !r.IsLocked && r.Status == StatusApproved
}

// CanCancel reports whether the record may transition to cancelled.
func (r Record) CanCancel() bool {
	return !r.IsLocked && (r.Status == StatusDraft || r.Status == StatusCalculated)
}
