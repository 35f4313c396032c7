package payroll

import "context"

// PayrollService is the core payroll surface: component management, single
// calculations, batch runs and the record lifecycle. Company scoping is an
// explicit parameter on every call; callers decide where the tenant comes
// from (JWT claims on the HTTP surface).
type PayrollService interface {
	// Components
	CreateComponent(ctx context.Context, companyID string, req CreateComponentRequest) (ComponentResponse, error)
	GetComponent(ctx context.Context, companyID string, id string) (ComponentResponse, error)
	ListComponents(ctx context.Context, companyID string, activeOnly bool) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, companyID string, req UpdateComponentRequest) error
	DeleteComponent(ctx context.Context, companyID string, id string) error

	// Employee structure
	AssignComponent(ctx context.Context, companyID string, req AssignComponentRequest) (AssignmentResponse, error)
	GetEmployeeStructure(ctx context.Context, companyID string, employeeID string) ([]AssignmentResponse, error)
	RemoveAssignment(ctx context.Context, companyID string, id string) error

	// Calculation and runs
	Calculate(ctx context.Context, companyID string, actorID string, req CalculateRequest) (RecordResponse, error)
	Run(ctx context.Context, companyID string, actorID string, req RunPayrollRequest) (RunSummary, error)

	// Lifecycle
	GetRecord(ctx context.Context, companyID string, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, companyID string, filter RecordFilter) (ListRecordResponse, error)
	UpdateRecord(ctx context.Context, companyID string, actorID string, req UpdateRecordRequest) (RecordResponse, error)
	Approve(ctx context.Context, companyID string, id string, actorID string) (RecordResponse, error)
	MarkPaid(ctx context.Context, companyID string, actorID string, req MarkPaidRequest) (RecordResponse, error)
	Cancel(ctx context.Context, companyID string, id string, actorID string) (RecordResponse, error)
	DeleteRecord(ctx context.Context, companyID string, id string, actorID string) error
}
