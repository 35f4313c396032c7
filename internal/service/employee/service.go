package employee

import (
	"context"
	"log/slog"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
)

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	auditSink    audit.Sink
	logger       *slog.Logger
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	auditSink audit.Sink,
	logger *slog.Logger,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		auditSink:    auditSink,
		logger:       logger,
	}
}

func (s *EmployeeServiceImpl) Create(ctx context.Context, companyID string, actorID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	hireDate, _ := time.Parse("2006-01-02", req.HireDate)

	emp := employee.Employee{
		CompanyID:        companyID,
		EmployeeCode:     req.EmployeeCode,
		FullName:         req.FullName,
		Email:            req.Email,
		EmploymentType:   employee.EmploymentType(req.EmploymentType),
		EmploymentStatus: employee.EmploymentStatusActive,
		HireDate:         hireDate,
		BaseSalary:       req.BaseSalary,
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionCreate, created.ID)

	return mapToResponse(created), nil
}

func (s *EmployeeServiceImpl) Get(ctx context.Context, companyID string, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(emp), nil
}

func (s *EmployeeServiceImpl) ListActive(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.GetActiveByCompanyID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	return result, nil
}

// Deactivate soft-deletes: employees with payroll history are never removed,
// only taken out of the active set.
func (s *EmployeeServiceImpl) Deactivate(ctx context.Context, companyID string, id string, actorID string) error {
	emp, err := s.employeeRepo.GetByID(ctx, id, companyID)
	if err != nil {
		return err
	}
	if emp.EmploymentStatus == employee.EmploymentStatusDeactivated {
		return employee.ErrEmployeeDeactivated
	}

	if err := s.employeeRepo.Deactivate(ctx, id, companyID); err != nil {
		return err
	}

	s.recordAudit(ctx, companyID, actorID, audit.ActionUpdate, id)

	return nil
}

func (s *EmployeeServiceImpl) recordAudit(ctx context.Context, companyID, actor, action, entityID string) {
	entry := audit.Entry{
		CompanyID: companyID,
		Actor:     actor,
		Action:    action,
		Entity:    "employee",
		EntityID:  entityID,
	}
	if err := s.auditSink.Record(ctx, entry); err != nil {
		s.logger.Warn("audit sink write failed",
			slog.String("action", action),
			slog.String("entity_id", entityID),
			slog.String("error", err.Error()),
		)
	}
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                 emp.ID,
		CompanyID:          emp.CompanyID,
		EmployeeCode:       emp.EmployeeCode,
		FullName:           emp.FullName,
		Email:              emp.Email,
		EmploymentType:     string(emp.EmploymentType),
		EmploymentStatus:   string(emp.EmploymentStatus),
		HireDate:           emp.HireDate.Format("2006-01-02"),
		BaseSalary:         emp.BaseSalary,
		EarnedLeaveBalance: emp.EarnedLeaveBalance,
		CasualLeaveBalance: emp.CasualLeaveBalance,
		SickLeaveBalance:   emp.SickLeaveBalance,
	}
}
