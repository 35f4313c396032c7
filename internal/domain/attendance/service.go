package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	Mark(ctx context.Context, companyID string, req MarkAttendanceRequest) (AttendanceResponse, error)
	BulkMark(ctx context.Context, companyID string, req BulkMarkRequest) ([]BulkMarkResult, error)
	List(ctx context.Context, companyID string, filter AttendanceFilter) (ListAttendanceResponse, error)
	Summarize(ctx context.Context, companyID string, employeeID string, from, to time.Time) (PeriodSummary, error)
}
