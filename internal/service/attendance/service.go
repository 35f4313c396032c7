package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func (s *AttendanceServiceImpl) Mark(ctx context.Context, companyID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID, companyID); err != nil {
		return attendance.AttendanceResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	// One record per employee per day
	_, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date, companyID)
	if err == nil {
		return attendance.AttendanceResponse{}, attendance.ErrAttendanceExists
	}
	if !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.AttendanceResponse{}, err
	}

	att := attendance.Attendance{
		CompanyID:  companyID,
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     attendance.Status(req.Status),
	}

	if req.CheckIn != nil {
		checkIn, _ := time.Parse(time.RFC3339, *req.CheckIn)
		att.CheckIn = &checkIn
	}
	if req.CheckOut != nil {
		checkOut, _ := time.Parse(time.RFC3339, *req.CheckOut)
		att.CheckOut = &checkOut
	}

	att.HoursWorked, att.OvertimeHours = deriveHours(att)

	created, err := s.attendanceRepo.Create(ctx, att)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *AttendanceServiceImpl) BulkMark(ctx context.Context, companyID string, req attendance.BulkMarkRequest) ([]attendance.BulkMarkResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	results := make([]attendance.BulkMarkResult, 0, len(req.Records))
	for _, rec := range req.Records {
		result := attendance.BulkMarkResult{
			EmployeeID: rec.EmployeeID,
			Date:       rec.Date,
		}

		if _, err := s.Mark(ctx, companyID, rec); err != nil {
			result.Success = false
			result.Message = err.Error()
		} else {
			result.Success = true
		}
		results = append(results, result)
	}

	return results, nil
}

func (s *AttendanceServiceImpl) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	records, totalCount, err := s.attendanceRepo.List(ctx, companyID, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	data := make([]attendance.AttendanceResponse, 0, len(records))
	for _, rec := range records {
		data = append(data, mapToResponse(rec))
	}

	return attendance.ListAttendanceResponse{
		Data:       data,
		TotalCount: totalCount,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// Summarize aggregates one employee's attendance over [from, to]. An empty
// range yields a zero summary, not an error.
func (s *AttendanceServiceImpl) Summarize(ctx context.Context, companyID string, employeeID string, from, to time.Time) (attendance.PeriodSummary, error) {
	if to.Before(from) {
		return attendance.PeriodSummary{}, attendance.ErrInvalidDateRange
	}

	records, err := s.attendanceRepo.GetByEmployeeAndRange(ctx, employeeID, from, to, companyID)
	if err != nil {
		return attendance.PeriodSummary{}, err
	}

	return SummarizeRecords(records), nil
}

// deriveHours computes worked and overtime hours from clock data. Anything
// beyond the 8-hour day counts as overtime; HoursWorked holds the regular
// portion only. Records without both timestamps keep zero hours; the
// aggregator applies the full-day default for present days.
func deriveHours(att attendance.Attendance) (hours, overtime float64) {
	if att.CheckIn == nil || att.CheckOut == nil || !att.CheckOut.After(*att.CheckIn) {
		return 0, 0
	}
	total := att.CheckOut.Sub(*att.CheckIn).Hours()
	if total > fullDayHours {
		return fullDayHours, total - fullDayHours
	}
	return total, 0
}

func mapToResponse(att attendance.Attendance) attendance.AttendanceResponse {
	resp := attendance.AttendanceResponse{
		ID:            att.ID,
		EmployeeID:    att.EmployeeID,
		Date:          att.Date.Format("2006-01-02"),
		Status:        string(att.Status),
		HoursWorked:   att.HoursWorked,
		OvertimeHours: att.OvertimeHours,
	}
	if att.EmployeeName != nil {
		resp.EmployeeName = *att.EmployeeName
	}
	if att.CheckIn != nil {
		str := att.CheckIn.Format(time.RFC3339)
		resp.CheckIn = &str
	}
	if att.CheckOut != nil {
		str := att.CheckOut.Format(time.RFC3339)
		resp.CheckOut = &str
	}
	return resp
}
