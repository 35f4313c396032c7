package employee

import "context"

type EmployeeService interface {
	Create(ctx context.Context, companyID string, actorID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	Get(ctx context.Context, companyID string, id string) (EmployeeResponse, error)
	ListActive(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	Deactivate(ctx context.Context, companyID string, id string, actorID string) error
}
