package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, att Attendance) (Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time, companyID string) (Attendance, error)
	GetByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time, companyID string) ([]Attendance, error)
	List(ctx context.Context, companyID string, filter AttendanceFilter) ([]Attendance, int64, error)
}
