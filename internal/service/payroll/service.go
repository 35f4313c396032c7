package payroll

import (
	"context"
	"log/slog"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/company"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
)

type PayrollServiceImpl struct {
	payrollRepo   payroll.PayrollRepository
	employeeRepo  employee.EmployeeRepository
	companyRepo   company.CompanyRepository
	attendanceSvc attendance.AttendanceService
	resolver      *Resolver
	auditSink     audit.Sink
	logger        *slog.Logger
}

func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
	attendanceSvc attendance.AttendanceService,
	resolver *Resolver,
	auditSink audit.Sink,
	logger *slog.Logger,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		companyRepo:   companyRepo,
		attendanceSvc: attendanceSvc,
		resolver:      resolver,
		auditSink:     auditSink,
		logger:        logger,
	}
}

// ========== COMPONENTS ==========

func (s *PayrollServiceImpl) CreateComponent(ctx context.Context, companyID string, req payroll.CreateComponentRequest) (payroll.ComponentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.ComponentResponse{}, err
	}

	isTaxable := false
	if req.IsTaxable != nil {
		isTaxable = *req.IsTaxable
	}

	component := payroll.SalaryComponent{
		CompanyID:    companyID,
		Name:         req.Name,
		Direction:    payroll.ComponentDirection(req.Direction),
		Category:     payroll.ComponentCategory(req.Category),
		CalcType:     payroll.CalculationType(req.CalcType),
		Value:        req.Value,
		PercentageOf: req.PercentageOf,
		Formula:      req.Formula,
		IsTaxable:    isTaxable,
		IsActive:     true,
	}

	created, err := s.payrollRepo.CreateComponent(ctx, component)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return mapToComponentResponse(created), nil
}

func (s *PayrollServiceImpl) GetComponent(ctx context.Context, companyID string, id string) (payroll.ComponentResponse, error) {
	component, err := s.payrollRepo.GetComponentByID(ctx, id, companyID)
	if err != nil {
		return payroll.ComponentResponse{}, err
	}

	return mapToComponentResponse(component), nil
}

func (s *PayrollServiceImpl) ListComponents(ctx context.Context, companyID string, activeOnly bool) ([]payroll.ComponentResponse, error) {
	components, err := s.payrollRepo.GetComponentsByCompanyID(ctx, companyID, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.ComponentResponse, 0, len(components))
	for _, c := range components {
		result = append(result, mapToComponentResponse(c))
	}

	return result, nil
}

func (s *PayrollServiceImpl) UpdateComponent(ctx context.Context, companyID string, req payroll.UpdateComponentRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return s.payrollRepo.UpdateComponent(ctx, companyID, req)
}

func (s *PayrollServiceImpl) DeleteComponent(ctx context.Context, companyID string, id string) error {
	// No component is deleted while any employee structure references it;
	// the repository enforces this atomically.
	return s.payrollRepo.DeleteComponent(ctx, id, companyID)
}

// ========== EMPLOYEE STRUCTURE ==========

func (s *PayrollServiceImpl) AssignComponent(ctx context.Context, companyID string, req payroll.AssignComponentRequest) (payroll.AssignmentResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.AssignmentResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return payroll.AssignmentResponse{}, err
	}
	component, err := s.payrollRepo.GetComponentByID(ctx, req.SalaryComponentID, companyID)
	if err != nil {
		return payroll.AssignmentResponse{}, err
	}

	effectiveDate := time.Now()
	if req.EffectiveDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EffectiveDate)
		if err == nil {
			effectiveDate = parsed
		}
	}

	var endDate *time.Time
	if req.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.EndDate)
		if err == nil {
			endDate = &parsed
		}
	}

	assignment := payroll.EmployeeSalaryComponent{
		EmployeeID:        req.EmployeeID,
		SalaryComponentID: req.SalaryComponentID,
		EffectiveDate:     effectiveDate,
		EndDate:           endDate,
	}

	created, err := s.payrollRepo.AssignComponent(ctx, assignment, companyID)
	if err != nil {
		return payroll.AssignmentResponse{}, err
	}
	created.Component = &component

	return mapToAssignmentResponse(created), nil
}

func (s *PayrollServiceImpl) GetEmployeeStructure(ctx context.Context, companyID string, employeeID string) ([]payroll.AssignmentResponse, error) {
	assignments, err := s.payrollRepo.GetEmployeeStructure(ctx, employeeID, companyID, false)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		result = append(result, mapToAssignmentResponse(a))
	}

	return result, nil
}

func (s *PayrollServiceImpl) RemoveAssignment(ctx context.Context, companyID string, id string) error {
	return s.payrollRepo.RemoveAssignment(ctx, id, companyID)
}

// ========== LIFECYCLE ==========

func (s *PayrollServiceImpl) GetRecord(ctx context.Context, companyID string, id string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return mapToRecordResponse(record), nil
}

func (s *PayrollServiceImpl) ListRecords(ctx context.Context, companyID string, filter payroll.RecordFilter) (payroll.ListRecordResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.payrollRepo.ListRecords(ctx, companyID, filter)
	if err != nil {
		return payroll.ListRecordResponse{}, err
	}

	data := make([]payroll.RecordResponse, 0, len(records))
	for _, r := range records {
		data = append(data, mapToRecordResponse(r))
	}

	return payroll.ListRecordResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

func (s *PayrollServiceImpl) UpdateRecord(ctx context.Context, companyID string, actorID string, req payroll.UpdateRecordRequest) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.IsLocked {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordLocked
	}

	if err := s.payrollRepo.UpdateRecordRemarks(ctx, companyID, req); err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionUpdate, record.ID, map[string]any{
		"remarks": req.Remarks,
	})

	return s.GetRecord(ctx, companyID, req.ID)
}

func (s *PayrollServiceImpl) Approve(ctx context.Context, companyID string, id string, actorID string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.IsLocked {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordLocked
	}
	if !record.CanApprove() {
		return payroll.RecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	approved, err := s.payrollRepo.MarkApproved(ctx, id, companyID, actorID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionApprove, approved.ID, map[string]any{
		"employee_id":  approved.EmployeeID,
		"period_month": approved.PeriodMonth,
		"period_year":  approved.PeriodYear,
	})

	return mapToRecordResponse(approved), nil
}

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, companyID string, actorID string, req payroll.MarkPaidRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	record, err := s.payrollRepo.GetRecordByID(ctx, req.ID, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.IsLocked {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordLocked
	}
	if !record.CanMarkPaid() {
		return payroll.RecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	paid, err := s.payrollRepo.MarkPaid(ctx, companyID, req)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionPay, paid.ID, map[string]any{
		"employee_id":    paid.EmployeeID,
		"payment_method": req.PaymentMethod,
		"transaction_id": req.TransactionID,
	})

	return mapToRecordResponse(paid), nil
}

func (s *PayrollServiceImpl) Cancel(ctx context.Context, companyID string, id string, actorID string) (payroll.RecordResponse, error) {
	record, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if record.IsLocked {
		return payroll.RecordResponse{}, payroll.ErrPayrollRecordLocked
	}
	if !record.CanCancel() {
		return payroll.RecordResponse{}, payroll.ErrInvalidStatusTransition
	}

	cancelled, err := s.payrollRepo.MarkCancelled(ctx, id, companyID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionCancel, cancelled.ID, map[string]any{
		"employee_id": cancelled.EmployeeID,
	})

	return mapToRecordResponse(cancelled), nil
}

func (s *PayrollServiceImpl) DeleteRecord(ctx context.Context, companyID string, id string, actorID string) error {
	record, err := s.payrollRepo.GetRecordByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if record.IsLocked {
		return payroll.ErrPayrollRecordLocked
	}
	if record.Status == payroll.StatusPaid {
		return payroll.ErrCannotDeletePaidRecord
	}

	if err := s.payrollRepo.DeleteRecord(ctx, id, companyID); err != nil {
		return err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionDelete, id, map[string]any{
		"employee_id": record.EmployeeID,
	})

	return nil
}

// ========== HELPERS ==========

// recordAudit writes a payroll audit entry. The sink is fire-and-forget:
// a failed write is logged, never surfaced to the caller.
func (s *PayrollServiceImpl) recordAudit(ctx context.Context, companyID, actor, action, entityID string, payload map[string]any) {
	entry := audit.Entry{
		CompanyID: companyID,
		Actor:     actor,
		Action:    action,
		Entity:    "payroll_record",
		EntityID:  entityID,
		Payload:   payload,
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("audit sink write failed",
			slog.String("action", action),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
	}
}

func mapToComponentResponse(c payroll.SalaryComponent) payroll.ComponentResponse {
	return payroll.ComponentResponse{
		ID:           c.ID,
		CompanyID:    c.CompanyID,
		Name:         c.Name,
		Direction:    string(c.Direction),
		Category:     string(c.Category),
		CalcType:     string(c.CalcType),
		Value:        c.Value,
		PercentageOf: c.PercentageOf,
		Formula:      c.Formula,
		IsTaxable:    c.IsTaxable,
		IsActive:     c.IsActive,
	}
}

func mapToAssignmentResponse(a payroll.EmployeeSalaryComponent) payroll.AssignmentResponse {
	var endDateStr *string
	if a.EndDate != nil {
		str := a.EndDate.Format("2006-01-02")
		endDateStr = &str
	}

	resp := payroll.AssignmentResponse{
		ID:                a.ID,
		EmployeeID:        a.EmployeeID,
		SalaryComponentID: a.SalaryComponentID,
		EffectiveDate:     a.EffectiveDate.Format("2006-01-02"),
		EndDate:           endDateStr,
	}
	if a.Component != nil {
		resp.ComponentName = a.Component.Name
		resp.Direction = string(a.Component.Direction)
		resp.CalcType = string(a.Component.CalcType)
	}
	return resp
}

func mapToRecordResponse(r payroll.Record) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		PeriodMonth: r.PeriodMonth,
		PeriodYear:  r.PeriodYear,
		PeriodStart: r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   r.PeriodEnd.Format("2006-01-02"),

		TotalWorkingDays: r.TotalWorkingDays,
		PresentDays:      r.PresentDays,
		AbsentDays:       r.AbsentDays,
		LeaveDays:        r.LeaveDays,
		HalfDays:         r.HalfDays,
		RegularHours:     r.RegularHours,
		OvertimeHours:    r.OvertimeHours,

		BasicSalary:     r.BasicSalary,
		Earnings:        r.Earnings,
		Deductions:      r.Deductions,
		GrossEarnings:   r.GrossEarnings,
		TotalDeductions: r.TotalDeductions,
		NetSalary:       r.NetSalary,
		TaxDeducted:     r.TaxDeducted,
		PFContribution:  r.PFContribution,
		ESIContribution: r.ESIContribution,

		Status:        string(r.Status),
		IsLocked:      r.IsLocked,
		ApprovedBy:    r.ApprovedBy,
		PaymentMethod: r.PaymentMethod,
		TransactionID: r.TransactionID,
		Remarks:       r.Remarks,
	}

	if r.EmployeeName != nil {
		resp.EmployeeName = *r.EmployeeName
	}
	if r.EmployeeCode != nil {
		resp.EmployeeCode = *r.EmployeeCode
	}
	if r.ApprovedAt != nil {
		str := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &str
	}
	if r.PaymentDate != nil {
		str := r.PaymentDate.Format(time.RFC3339)
		resp.PaymentDate = &str
	}

	return resp
}
