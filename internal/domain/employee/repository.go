package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string, companyID string) ([]Employee, error)
	GetActiveByCompanyID(ctx context.Context, companyID string) ([]Employee, error)
	Create(ctx context.Context, emp Employee) (Employee, error)
	Deactivate(ctx context.Context, id string, companyID string) error
}
