package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== COMPONENTS ==========

func (r *payrollRepository) CreateComponent(ctx context.Context, component payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (
			company_id, name, direction, category, calc_type, value,
			percentage_of, formula, is_taxable, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, company_id, name, direction, category, calc_type, value,
			percentage_of, formula, is_taxable, is_active, created_at, updated_at
	`

	var c payroll.SalaryComponent
	err := q.QueryRow(ctx, query,
		component.CompanyID, component.Name, component.Direction, component.Category,
		component.CalcType, component.Value, component.PercentageOf, component.Formula,
		component.IsTaxable, component.IsActive,
	).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Direction, &c.Category, &c.CalcType, &c.Value,
		&c.PercentageOf, &c.Formula, &c.IsTaxable, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_component_name") {
			return payroll.SalaryComponent{}, payroll.ErrComponentNameExists
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetComponentByID(ctx context.Context, id string, companyID string) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, direction, category, calc_type, value,
			   percentage_of, formula, is_taxable, is_active, created_at, updated_at
		FROM salary_components
		WHERE id = $1 AND company_id = $2
	`

	var c payroll.SalaryComponent
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Direction, &c.Category, &c.CalcType, &c.Value,
		&c.PercentageOf, &c.Formula, &c.IsTaxable, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to get salary component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetComponentsByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, name, direction, category, calc_type, value,
			   percentage_of, formula, is_taxable, is_active, created_at, updated_at
		FROM salary_components
		WHERE company_id = $1
	`
	if activeOnly {
		query += " AND is_active = true"
	}
	query += " ORDER BY direction, category, name"

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []payroll.SalaryComponent
	for rows.Next() {
		var c payroll.SalaryComponent
		if err := rows.Scan(
			&c.ID, &c.CompanyID, &c.Name, &c.Direction, &c.Category, &c.CalcType, &c.Value,
			&c.PercentageOf, &c.Formula, &c.IsTaxable, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}

func (r *payrollRepository) UpdateComponent(ctx context.Context, companyID string, req payroll.UpdateComponentRequest) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID, companyID}
	argIdx := 3

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Value != nil {
		setParts = append(setParts, fmt.Sprintf("value = $%d", argIdx))
		args = append(args, *req.Value)
		argIdx++
	}
	if req.PercentageOf != nil {
		setParts = append(setParts, fmt.Sprintf("percentage_of = $%d", argIdx))
		args = append(args, *req.PercentageOf)
		argIdx++
	}
	if req.Formula != nil {
		setParts = append(setParts, fmt.Sprintf("formula = $%d", argIdx))
		args = append(args, *req.Formula)
		argIdx++
	}
	if req.IsTaxable != nil {
		setParts = append(setParts, fmt.Sprintf("is_taxable = $%d", argIdx))
		args = append(args, *req.IsTaxable)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE salary_components
		SET %s
		WHERE id = $1 AND company_id = $2
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrComponentNotFound
		}
		if strings.Contains(err.Error(), "uk_salary_component_name") {
			return payroll.ErrComponentNameExists
		}
		return fmt.Errorf("failed to update salary component: %w", err)
	}

	return nil
}

// DeleteComponent checks for assignments and deletes in one transaction, so
// a concurrent assignment cannot slip in between the check and the delete.
func (r *payrollRepository) DeleteComponent(ctx context.Context, id string, companyID string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		countQuery := `
			SELECT COUNT(*)
			FROM employee_salary_components esc
			JOIN salary_components sc ON esc.salary_component_id = sc.id
			WHERE esc.salary_component_id = $1 AND sc.company_id = $2
		`

		var count int64
		if err := q.QueryRow(ctx, countQuery, id, companyID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count component assignments: %w", err)
		}
		if count > 0 {
			return payroll.ErrComponentInUse
		}

		query := `DELETE FROM salary_components WHERE id = $1 AND company_id = $2 RETURNING id`

		var deletedID string
		err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrComponentNotFound
			}
			return fmt.Errorf("failed to delete salary component: %w", err)
		}

		return nil
	})
}

// ========== EMPLOYEE STRUCTURE ==========

func (r *payrollRepository) AssignComponent(ctx context.Context, assignment payroll.EmployeeSalaryComponent, companyID string) (payroll.EmployeeSalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employee_salary_components (employee_id, salary_component_id, effective_date, end_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, employee_id, salary_component_id, effective_date, end_date, created_at, updated_at
	`

	var a payroll.EmployeeSalaryComponent
	err := q.QueryRow(ctx, query,
		assignment.EmployeeID, assignment.SalaryComponentID, assignment.EffectiveDate, assignment.EndDate,
	).Scan(
		&a.ID, &a.EmployeeID, &a.SalaryComponentID, &a.EffectiveDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return payroll.EmployeeSalaryComponent{}, fmt.Errorf("failed to assign salary component: %w", err)
	}

	return a, nil
}

func (r *payrollRepository) GetEmployeeStructure(ctx context.Context, employeeID string, companyID string, activeOnly bool) ([]payroll.EmployeeSalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT esc.id, esc.employee_id, esc.salary_component_id,
			   esc.effective_date, esc.end_date, esc.created_at, esc.updated_at,
			   sc.id, sc.company_id, sc.name, sc.direction, sc.category, sc.calc_type, sc.value,
			   sc.percentage_of, sc.formula, sc.is_taxable, sc.is_active, sc.created_at, sc.updated_at
		FROM employee_salary_components esc
		JOIN salary_components sc ON esc.salary_component_id = sc.id
		JOIN employees e ON esc.employee_id = e.id
		WHERE esc.employee_id = $1 AND e.company_id = $2
	`
	if activeOnly {
		query += ` AND sc.is_active = true
			AND esc.effective_date <= CURRENT_DATE AND (esc.end_date IS NULL OR esc.end_date >= CURRENT_DATE)`
	}
	query += " ORDER BY sc.calc_type, sc.name"

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee salary structure: %w", err)
	}
	defer rows.Close()

	var assignments []payroll.EmployeeSalaryComponent
	for rows.Next() {
		var a payroll.EmployeeSalaryComponent
		var c payroll.SalaryComponent
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.SalaryComponentID,
			&a.EffectiveDate, &a.EndDate, &a.CreatedAt, &a.UpdatedAt,
			&c.ID, &c.CompanyID, &c.Name, &c.Direction, &c.Category, &c.CalcType, &c.Value,
			&c.PercentageOf, &c.Formula, &c.IsTaxable, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan employee salary structure: %w", err)
		}
		a.Component = &c
		assignments = append(assignments, a)
	}

	return assignments, nil
}

func (r *payrollRepository) RemoveAssignment(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM employee_salary_components esc
		USING employees e
		WHERE esc.id = $1 AND esc.employee_id = e.id AND e.company_id = $2
		RETURNING esc.id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrAssignmentNotFound
		}
		return fmt.Errorf("failed to remove salary component assignment: %w", err)
	}

	return nil
}

// ========== PAYROLL RECORDS ==========

const recordColumns = `
	pr.id, pr.company_id, pr.employee_id, pr.period_month, pr.period_year,
	pr.period_start, pr.period_end,
	pr.total_working_days, pr.present_days, pr.absent_days, pr.leave_days,
	pr.half_days, pr.regular_hours, pr.overtime_hours,
	pr.basic_salary, pr.earnings, pr.deductions, pr.gross_earnings,
	pr.total_deductions, pr.net_salary, pr.tax_deducted, pr.pf_contribution,
	pr.esi_contribution,
	pr.status, pr.is_locked, pr.approved_by, pr.approved_at, pr.payment_method,
	pr.payment_date, pr.transaction_id, pr.remarks, pr.created_at, pr.updated_at
`

func scanRecord(row pgx.Row, extraDest ...interface{}) (payroll.Record, error) {
	var rec payroll.Record
	var earningsBytes, deductionsBytes []byte

	dest := []interface{}{
		&rec.ID, &rec.CompanyID, &rec.EmployeeID, &rec.PeriodMonth, &rec.PeriodYear,
		&rec.PeriodStart, &rec.PeriodEnd,
		&rec.TotalWorkingDays, &rec.PresentDays, &rec.AbsentDays, &rec.LeaveDays,
		&rec.HalfDays, &rec.RegularHours, &rec.OvertimeHours,
		&rec.BasicSalary, &earningsBytes, &deductionsBytes, &rec.GrossEarnings,
		&rec.TotalDeductions, &rec.NetSalary, &rec.TaxDeducted, &rec.PFContribution,
		&rec.ESIContribution,
		&rec.Status, &rec.IsLocked, &rec.ApprovedBy, &rec.ApprovedAt, &rec.PaymentMethod,
		&rec.PaymentDate, &rec.TransactionID, &rec.Remarks, &rec.CreatedAt, &rec.UpdatedAt,
	}
	dest = append(dest, extraDest...)

	if err := row.Scan(dest...); err != nil {
		return payroll.Record{}, err
	}

	_ = json.Unmarshal(earningsBytes, &rec.Earnings)
	_ = json.Unmarshal(deductionsBytes, &rec.Deductions)

	return rec, nil
}

func (r *payrollRepository) CreateRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	earningsJSON, _ := json.Marshal(record.Earnings)
	deductionsJSON, _ := json.Marshal(record.Deductions)

	query := fmt.Sprintf(`
		INSERT INTO payroll_records AS pr (
			company_id, employee_id, period_month, period_year, period_start, period_end,
			total_working_days, present_days, absent_days, leave_days, half_days,
			regular_hours, overtime_hours,
			basic_salary, earnings, deductions, gross_earnings, total_deductions,
			net_salary, tax_deducted, pf_contribution, esi_contribution, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.CompanyID, record.EmployeeID, record.PeriodMonth, record.PeriodYear, record.PeriodStart, record.PeriodEnd,
		record.TotalWorkingDays, record.PresentDays, record.AbsentDays, record.LeaveDays, record.HalfDays,
		record.RegularHours, record.OvertimeHours,
		record.BasicSalary, earningsJSON, deductionsJSON, record.GrossEarnings, record.TotalDeductions,
		record.NetSalary, record.TaxDeducted, record.PFContribution, record.ESIContribution, record.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_employee_period") {
			return payroll.Record{}, payroll.ErrPayrollRecordExists
		}
		return payroll.Record{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return rec, nil
}

// ReplaceRecord overwrites every computed field of an existing record but
// refuses to touch a locked one. Lifecycle fields are reset to the fresh
// calculation's state.
func (r *payrollRepository) ReplaceRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	earningsJSON, _ := json.Marshal(record.Earnings)
	deductionsJSON, _ := json.Marshal(record.Deductions)

	query := fmt.Sprintf(`
		UPDATE payroll_records pr
		SET period_start = $3, period_end = $4,
			total_working_days = $5, present_days = $6, absent_days = $7,
			leave_days = $8, half_days = $9, regular_hours = $10, overtime_hours = $11,
			basic_salary = $12, earnings = $13, deductions = $14, gross_earnings = $15,
			total_deductions = $16, net_salary = $17, tax_deducted = $18,
			pf_contribution = $19, esi_contribution = $20, status = $21,
			approved_by = NULL, approved_at = NULL, payment_method = NULL,
			payment_date = NULL, transaction_id = NULL,
			updated_at = NOW()
		WHERE pr.id = $1 AND pr.company_id = $2 AND pr.is_locked = false
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query,
		record.ID, record.CompanyID, record.PeriodStart, record.PeriodEnd,
		record.TotalWorkingDays, record.PresentDays, record.AbsentDays,
		record.LeaveDays, record.HalfDays, record.RegularHours, record.OvertimeHours,
		record.BasicSalary, earningsJSON, deductionsJSON, record.GrossEarnings,
		record.TotalDeductions, record.NetSalary, record.TaxDeducted,
		record.PFContribution, record.ESIContribution, record.Status,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordLocked
		}
		return payroll.Record{}, fmt.Errorf("failed to replace payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetRecordByID(ctx context.Context, id string, companyID string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s, e.full_name as employee_name, e.employee_code
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.id = $1 AND pr.company_id = $2
	`, recordColumns)

	var employeeName, employeeCode *string
	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID), &employeeName, &employeeCode)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}
	rec.EmployeeName = employeeName
	rec.EmployeeCode = employeeCode

	return rec, nil
}

func (r *payrollRepository) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM payroll_records pr
		WHERE pr.employee_id = $1 AND pr.period_month = $2 AND pr.period_year = $3 AND pr.company_id = $4
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, month, year, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrPayrollRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ListRecords(ctx context.Context, companyID string, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM payroll_records pr
		JOIN employees e ON pr.employee_id = e.id
		WHERE pr.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.PeriodMonth != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	if filter.PeriodYear != nil {
		baseQuery += fmt.Sprintf(" AND pr.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND pr.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll records: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT %s, e.full_name as employee_name, e.employee_code
		%s
		ORDER BY pr.period_year DESC, pr.period_month DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, recordColumns, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		var employeeName, employeeCode *string
		rec, err := scanRecord(rows, &employeeName, &employeeCode)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		rec.EmployeeName = employeeName
		rec.EmployeeCode = employeeCode
		records = append(records, rec)
	}

	return records, totalCount, nil
}

func (r *payrollRepository) UpdateRecordRemarks(ctx context.Context, companyID string, req payroll.UpdateRecordRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_records
		SET remarks = $3, updated_at = NOW()
		WHERE id = $1 AND company_id = $2 AND is_locked = false
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query, req.ID, companyID, req.Remarks).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordLocked
		}
		return fmt.Errorf("failed to update payroll record remarks: %w", err)
	}

	return nil
}

// Status transitions guard on the current status inside the UPDATE itself so
// a concurrent transition loses the race cleanly instead of double-applying.

func (r *payrollRepository) MarkApproved(ctx context.Context, id string, companyID string, approvedBy string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payroll_records pr
		SET status = 'approved', approved_by = $3, approved_at = NOW(), updated_at = NOW()
		WHERE pr.id = $1 AND pr.company_id = $2 AND pr.status = 'calculated' AND pr.is_locked = false
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID, approvedBy))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrInvalidStatusTransition
		}
		return payroll.Record{}, fmt.Errorf("failed to approve payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) MarkPaid(ctx context.Context, companyID string, req payroll.MarkPaidRequest) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payroll_records pr
		SET status = 'paid', is_locked = true, payment_method = $3, payment_date = NOW(),
			transaction_id = $4, remarks = COALESCE($5, remarks), updated_at = NOW()
		WHERE pr.id = $1 AND pr.company_id = $2 AND pr.status = 'approved' AND pr.is_locked = false
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, req.ID, companyID, req.PaymentMethod, req.TransactionID, req.Remarks))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrInvalidStatusTransition
		}
		return payroll.Record{}, fmt.Errorf("failed to mark payroll record paid: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) MarkCancelled(ctx context.Context, id string, companyID string) (payroll.Record, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE payroll_records pr
		SET status = 'cancelled', updated_at = NOW()
		WHERE pr.id = $1 AND pr.company_id = $2 AND pr.status IN ('draft', 'calculated') AND pr.is_locked = false
		RETURNING %s
	`, recordColumns)

	rec, err := scanRecord(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrInvalidStatusTransition
		}
		return payroll.Record{}, fmt.Errorf("failed to cancel payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) DeleteRecord(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM payroll_records
		WHERE id = $1 AND company_id = $2 AND is_locked = false AND status != 'paid'
		RETURNING id
	`

	var deletedID string
	err := q.QueryRow(ctx, query, id, companyID).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollRecordNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}
