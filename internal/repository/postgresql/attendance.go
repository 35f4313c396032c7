package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

func (r *attendanceRepository) Create(ctx context.Context, att attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendances (
			company_id, employee_id, date, status, check_in, check_out,
			hours_worked, overtime_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, company_id, employee_id, date, status, check_in, check_out,
			hours_worked, overtime_hours, created_at, updated_at
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query,
		att.CompanyID, att.EmployeeID, att.Date, att.Status, att.CheckIn, att.CheckOut,
		att.HoursWorked, att.OvertimeHours,
	).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
		&a.HoursWorked, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_attendance_employee_date") {
			return attendance.Attendance{}, attendance.ErrAttendanceExists
		}
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, date, status, check_in, check_out,
			   hours_worked, overtime_hours, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date = $2 AND company_id = $3
	`

	var a attendance.Attendance
	err := q.QueryRow(ctx, query, employeeID, date, companyID).Scan(
		&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
		&a.HoursWorked, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance: %w", err)
	}

	return a, nil
}

func (r *attendanceRepository) GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, employee_id, date, status, check_in, check_out,
			   hours_worked, overtime_hours, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND date >= $2 AND date <= $3 AND company_id = $4
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, employeeID, from, to, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get attendance range: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
			&a.HoursWorked, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, nil
}

func (r *attendanceRepository) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseQuery := `
		FROM attendances a
		JOIN employees e ON a.employee_id = e.id
		WHERE a.company_id = $1
	`
	args := []interface{}{companyID}
	argIdx := 2

	if filter.EmployeeID != nil {
		baseQuery += fmt.Sprintf(" AND a.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		baseQuery += fmt.Sprintf(" AND a.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.DateFrom != nil {
		baseQuery += fmt.Sprintf(" AND a.date >= $%d", argIdx)
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		baseQuery += fmt.Sprintf(" AND a.date <= $%d", argIdx)
		args = append(args, *filter.DateTo)
		argIdx++
	}

	var totalCount int64
	countQuery := "SELECT COUNT(*) " + baseQuery
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	offset := (filter.Page - 1) * filter.Limit

	selectQuery := fmt.Sprintf(`
		SELECT a.id, a.company_id, a.employee_id, a.date, a.status, a.check_in, a.check_out,
			   a.hours_worked, a.overtime_hours, a.created_at, a.updated_at,
			   e.full_name as employee_name
		%s
		ORDER BY a.date DESC, e.employee_code
		LIMIT $%d OFFSET $%d
	`, baseQuery, argIdx, argIdx+1)

	args = append(args, filter.Limit, offset)

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendance records: %w", err)
	}
	defer rows.Close()

	var records []attendance.Attendance
	for rows.Next() {
		var a attendance.Attendance
		if err := rows.Scan(
			&a.ID, &a.CompanyID, &a.EmployeeID, &a.Date, &a.Status, &a.CheckIn, &a.CheckOut,
			&a.HoursWorked, &a.OvertimeHours, &a.CreatedAt, &a.UpdatedAt,
			&a.EmployeeName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, a)
	}

	return records, totalCount, nil
}
