package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID               string
	CompanyID        string
	EmployeeCode     string
	FullName         string
	Email            *string
	EmploymentType   EmploymentType
	EmploymentStatus EmploymentStatus
	HireDate         time.Time
	BaseSalary       *decimal.Decimal

	// Leave balances in days
	EarnedLeaveBalance float64
	CasualLeaveBalance float64
	SickLeaveBalance   float64

	DeactivatedAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type EmploymentType string

const (
	EmploymentTypePermanent  EmploymentType = "permanent"
	EmploymentTypeProbation  EmploymentType = "probation"
	EmploymentTypeContract   EmploymentType = "contract"
	EmploymentTypeInternship EmploymentType = "internship"
	EmploymentTypeFreelance  EmploymentType = "freelance"
)

type EmploymentStatus string

const (
	EmploymentStatusActive      EmploymentStatus = "active"
	EmploymentStatusDeactivated EmploymentStatus = "deactivated"
)
