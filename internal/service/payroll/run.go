package payroll

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
)

// Run computes payroll for a batch of employees. Each employee commits
// independently: one failure never aborts the batch, and a crash mid-run
// leaves already-written records standing. Only a failure to load the
// employee set itself aborts the whole run.
func (s *PayrollServiceImpl) Run(ctx context.Context, companyID string, actorID string, req payroll.RunPayrollRequest) (payroll.RunSummary, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunSummary{}, err
	}

	if _, err := s.companyRepo.GetByID(ctx, companyID); err != nil {
		return payroll.RunSummary{}, err
	}

	from, to := payroll.PeriodBounds(req.PeriodStart, req.PeriodEnd)

	summary := payroll.RunSummary{
		RunID:       uuid.NewString(),
		PeriodMonth: req.PeriodMonth,
		PeriodYear:  req.PeriodYear,
		Results:     []payroll.RunResult{},
	}

	// Load the employee set; explicit IDs keep their request order, absent
	// IDs are reported as per-employee failures rather than aborting.
	var toProcess []runTarget
	if len(req.EmployeeIDs) > 0 {
		found, err := s.employeeRepo.GetByIDs(ctx, req.EmployeeIDs, companyID)
		if err != nil {
			return payroll.RunSummary{}, err
		}
		byID := make(map[string]employee.Employee, len(found))
		for _, emp := range found {
			byID[emp.ID] = emp
		}
		for _, id := range req.EmployeeIDs {
			emp, ok := byID[id]
			toProcess = append(toProcess, runTarget{id: id, emp: emp, found: ok})
		}
	} else {
		active, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
		if err != nil {
			return payroll.RunSummary{}, err
		}
		for _, emp := range active {
			toProcess = append(toProcess, runTarget{id: emp.ID, emp: emp, found: true})
		}
	}

	for _, target := range toProcess {
		result := s.runOne(ctx, companyID, target, req, from, to)
		switch result.Outcome {
		case payroll.OutcomeSuccess:
			summary.Success++
		case payroll.OutcomeSkipped:
			summary.Skipped++
		case payroll.OutcomeFailed:
			summary.Failed++
			s.logger.Warn("payroll calculation failed",
				slog.String("run_id", summary.RunID),
				slog.String("employee_id", result.EmployeeID),
				slog.String("error", result.Message),
			)
		}
		summary.Results = append(summary.Results, result)
	}

	s.auditRun(ctx, companyID, actorID, summary)

	return summary, nil
}

type runTarget struct {
	id    string
	emp   employee.Employee
	found bool
}

func (s *PayrollServiceImpl) runOne(ctx context.Context, companyID string, target runTarget, req payroll.RunPayrollRequest, from, to time.Time) payroll.RunResult {
	result := payroll.RunResult{EmployeeID: target.id}

	if !target.found {
		result.Outcome = payroll.OutcomeFailed
		result.Message = employee.ErrEmployeeNotFound.Error()
		return result
	}
	result.EmployeeName = target.emp.FullName

	existing, err := s.payrollRepo.GetRecordByEmployeePeriod(ctx, target.id, req.PeriodMonth, req.PeriodYear, companyID)
	exists := err == nil
	if err != nil && !errors.Is(err, payroll.ErrPayrollRecordNotFound) {
		result.Outcome = payroll.OutcomeFailed
		result.Message = err.Error()
		return result
	}

	if exists && existing.IsLocked {
		result.Outcome = payroll.OutcomeSkipped
		result.Message = "payroll is locked"
		return result
	}
	if exists && !req.Force {
		result.Outcome = payroll.OutcomeSkipped
		result.Message = "payroll already exists"
		return result
	}

	record, err := s.buildRecord(ctx, companyID, target.emp, req.PeriodMonth, req.PeriodYear, from, to)
	if err != nil {
		calcErr := &payroll.CalculationError{EmployeeID: target.id, Err: err}
		result.Outcome = payroll.OutcomeFailed
		result.Message = calcErr.Error()
		return result
	}

	var saved payroll.Record
	if exists {
		record.ID = existing.ID
		saved, err = s.payrollRepo.ReplaceRecord(ctx, record)
	} else {
		saved, err = s.payrollRepo.CreateRecord(ctx, record)
		// A concurrent run may have written the record between the existence
		// check and the insert; the uniqueness constraint is the backstop.
		if errors.Is(err, payroll.ErrPayrollRecordExists) {
			result.Outcome = payroll.OutcomeSkipped
			result.Message = "payroll already exists"
			return result
		}
	}
	if err != nil {
		result.Outcome = payroll.OutcomeFailed
		result.Message = err.Error()
		return result
	}

	result.Outcome = payroll.OutcomeSuccess
	result.NetSalary = &saved.NetSalary
	return result
}

func (s *PayrollServiceImpl) auditRun(ctx context.Context, companyID, actorID string, summary payroll.RunSummary) {
	entry := audit.Entry{
		CompanyID: companyID,
		Actor:     actorID,
		Action:    audit.ActionRun,
		Entity:    "payroll_run",
		EntityID:  summary.RunID,
		Payload: map[string]any{
			"period_month": summary.PeriodMonth,
			"period_year":  summary.PeriodYear,
			"success":      summary.Success,
			"failed":       summary.Failed,
			"skipped":      summary.Skipped,
		},
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("audit sink write failed",
			slog.String("action", audit.ActionRun),
			slog.String("entity_id", summary.RunID),
			slog.String("error", err.Error()),
		)
	}
}
