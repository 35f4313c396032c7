package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, company_id, employee_code, full_name, email, employment_type,
	employment_status, hire_date, base_salary,
	earned_leave_balance, casual_leave_balance, sick_leave_balance,
	deactivated_at, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.EmployeeCode, &e.FullName, &e.Email, &e.EmploymentType,
		&e.EmploymentStatus, &e.HireDate, &e.BaseSalary,
		&e.EarnedLeaveBalance, &e.CasualLeaveBalance, &e.SickLeaveBalance,
		&e.DeactivatedAt, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = $1 AND company_id = $2
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE id = ANY($1) AND company_id = $2
	`, employeeColumns)

	rows, err := q.Query(ctx, query, ids, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM employees
		WHERE company_id = $1 AND employment_status = 'active'
		ORDER BY employee_code
	`, employeeColumns)

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, nil
}

func (r *employeeRepository) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (
			company_id, employee_code, full_name, email, employment_type,
			employment_status, hire_date, base_salary
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING %s
	`, employeeColumns)

	e, err := scanEmployee(q.QueryRow(ctx, query,
		emp.CompanyID, emp.EmployeeCode, emp.FullName, emp.Email, emp.EmploymentType,
		emp.EmploymentStatus, emp.HireDate, emp.BaseSalary,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employee_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

func (r *employeeRepository) Deactivate(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employment_status = 'deactivated', deactivated_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND employment_status = 'active'
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to deactivate employee: %w", err)
	}

	return nil
}
