package payroll

import (
	"context"
	"errors"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Calculate computes and persists a single payroll record for one employee
// and period. An existing unlocked record is only replaced when Force is
// set; a locked record is never touched.
func (s *PayrollServiceImpl) Calculate(ctx context.Context, companyID string, actorID string, req payroll.CalculateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	existing, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, emp.ID, req.PeriodMonth, req.PeriodYear, companyID)
	exists := err == nil
	if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		return payroll.RecordResponse{}, err
	}
	if exists && existing.IsLocked {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordLocked
	}
	if exists && !req.Force {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordExists
	}

	from, to := payroll.PeriodBounds(req.PeriodStart, req.PeriodEnd)
	record, err := s.buildRecord(ctx, companyID, emp, req.PeriodMonth, req.PeriodYear, from, to)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	var saved payroll.Record
	if exists {
		record.ID = existing.ID
		saved, err = s.payrollRepo.ReplaceRecord(ctx, record)
	} else {
		saved, err = s.payrollRepo.CreateRecord(ctx, record)
	}
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionCreate, saved.ID, map[string]any{
		"employee_id":  saved.EmployeeID,
		"period_month": saved.PeriodMonth,
		"period_year":  saved.PeriodYear,
		"net_salary":   saved.NetSalary,
		"forced":       req.Force && exists,
	})

	return mapToRecordResponse(saved), nil
}

// buildRecord is the pure calculation: a function of the employee's salary
// structure and attendance in range at call time. Re-running it with
// unchanged inputs yields an identical record.
func (s *PayrollServiceImpl) buildRecord(ctx context.Context, companyID string, emp employee.Employee, month, year int, from, to time.Time) (payroll.Record, error) {
	summary, err := s.attendanceSvc.Summarize(ctx, companyID, emp.ID, from, to)
	if err != nil {
		return payroll.Record{}, err
	}

	assignments, err := s.payrollRepo.GetEmployeeStructure(ctx, emp.ID, companyID, true)
	if err != nil {
		return payroll.Record{}, err
	}
	components := make([]payroll.SalaryComponent, 0, len(assignments))
	for _, a := range assignments {
		if a.Component != nil {
			components = append(components, *a.Component)
		}
	}

	baseSalary := decimal.Zero
	if emp.BaseSalary != nil {
		baseSalary = *emp.BaseSalary
	}

	resolved, err := s.resolver.Resolve(components, baseSalary)
	if err != nil {
		return payroll.Record{}, err
	}

	// Basic salary: the resolved basic-category component, falling back to
	// the employee's base salary when the structure has none.
	basic := decimal.Zero
	haveBasic := false
	for _, c := range components {
		if c.Category == payroll.CategoryBasic {
			basic = resolved.Amounts[c.Name]
			haveBasic = true
			break
		}
	}
	if !haveBasic {
		if emp.BaseSalary == nil {
			return payroll.Record{}, payroll.ErrMissingBasicComponent
		}
		basic = *emp.BaseSalary
	}

	gross := decimal.Zero
	for _, item := range resolved.Earnings {
		gross = gross.Add(item.Amount)
	}
	totalDeductions := decimal.Zero
	for _, item := range resolved.Deductions {
		totalDeductions = totalDeductions.Add(item.Amount)
	}

	// Statutory withholdings by deduction category
	tax, pf, esi := decimal.Zero, decimal.Zero, decimal.Zero
	for _, c := range components {
		if c.Direction != payroll.DirectionDeduction {
			continue
		}
		switch c.Category {
		case payroll.CategoryTax:
			tax = tax.Add(resolved.Amounts[c.Name])
		case payroll.CategoryProvidentFund:
			pf = pf.Add(resolved.Amounts[c.Name])
		case payroll.CategoryESI:
			esi = esi.Add(resolved.Amounts[c.Name])
		}
	}

	return payroll.Record{
		CompanyID:   companyID,
		EmployeeID:  emp.ID,
		PeriodMonth: month,
		PeriodYear:  year,
		PeriodStart: from,
		PeriodEnd:   to,

		TotalWorkingDays: summary.TotalWorkingDays,
		PresentDays:      summary.PresentDays,
		AbsentDays:       summary.AbsentDays,
		LeaveDays:        summary.LeaveDays,
		HalfDays:         summary.HalfDays,
		RegularHours:     summary.RegularHours,
		OvertimeHours:    summary.OvertimeHours,

		BasicSalary:     basic,
		Earnings:        resolved.Earnings,
		Deductions:      resolved.Deductions,
		GrossEarnings:   gross,
		TotalDeductions: totalDeductions,
		NetSalary:       gross.Sub(totalDeductions),
		TaxDeducted:     tax,
		PFContribution:  pf,
		ESIContribution: esi,

		Status: payroll.StatusCalculated,
	}, nil
}
