package payroll

import "context"

// PayrollRepository defines data access methods for salary components and
// payroll records. All methods include companyID to prevent cross-company
// data access.
type PayrollRepository interface {
	// Components
	CreateComponent(ctx context.Context, component SalaryComponent) (SalaryComponent, error)
	GetComponentByID(ctx context.Context, id string, companyID string) (SalaryComponent, error)
	GetComponentsByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]SalaryComponent, error)
	UpdateComponent(ctx context.Context, companyID string, req UpdateComponentRequest) error
	// DeleteComponent refuses with ErrComponentInUse while any employee
	// structure references the component.
	DeleteComponent(ctx context.Context, id string, companyID string) error

	// Employee structure
	AssignComponent(ctx context.Context, assignment EmployeeSalaryComponent, companyID string) (EmployeeSalaryComponent, error)
	GetEmployeeStructure(ctx context.Context, employeeID string, companyID string, activeOnly bool) ([]EmployeeSalaryComponent, error)
	RemoveAssignment(ctx context.Context, id string, companyID string) error

	// Payroll records
	CreateRecord(ctx context.Context, record Record) (Record, error)
	ReplaceRecord(ctx context.Context, record Record) (Record, error)
	GetRecordByID(ctx context.Context, id string, companyID string) (Record, error)
	GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (Record, error)
	ListRecords(ctx context.Context, companyID string, filter RecordFilter) ([]Record, int64, error)
	UpdateRecordRemarks(ctx context.Context, companyID string, req UpdateRecordRequest) error
	MarkApproved(ctx context.Context, id string, companyID string, approvedBy string) (Record, error)
	MarkPaid(ctx context.Context, companyID string, req MarkPaidRequest) (Record, error)
	MarkCancelled(ctx context.Context, id string, companyID string) (Record, error)
	DeleteRecord(ctx context.Context, id string, companyID string) error
}
