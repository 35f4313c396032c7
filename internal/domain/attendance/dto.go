package attendance

import (
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/validator"
)

type MarkAttendanceRequest struct {
	EmployeeID string  `json:"employee_id"`
	Date       string  `json:"date"`
	Status     string  `json:"status"`
	CheckIn    *string `json:"check_in,omitempty"`  // RFC3339
	CheckOut   *string `json:"check_out,omitempty"` // RFC3339
}

var validStatuses = []string{
	string(StatusPresent), string(StatusAbsent), string(StatusHalfDay),
	string(StatusLeave), string(StatusHoliday),
}

func (r *MarkAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if !validator.IsInSlice(r.Status, validStatuses) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "is not a valid attendance status"})
	}
	if r.CheckIn != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_in", Message: "must be a valid RFC3339 timestamp"})
		}
	}
	if r.CheckOut != nil {
		if _, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "check_out", Message: "must be a valid RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkMarkRequest struct {
	Records []MarkAttendanceRequest `json:"records"`
}

func (r *BulkMarkRequest) Validate() error {
	if len(r.Records) == 0 {
		return validator.ValidationErrors{{Field: "records", Message: "at least one record is required"}}
	}
	return nil
}

type BulkMarkResult struct {
	EmployeeID string `json:"employee_id"`
	Date       string `json:"date"`
	Success    bool   `json:"success"`
	Message    string `json:"message,omitempty"`
}

type AttendanceResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	Status        string  `json:"status"`
	CheckIn       *string `json:"check_in,omitempty"`
	CheckOut      *string `json:"check_out,omitempty"`
	HoursWorked   float64 `json:"hours_worked"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	DateFrom   *string `json:"date_from,omitempty"`
	DateTo     *string `json:"date_to,omitempty"`
	Page       int     `json:"page"`
	Limit      int     `json:"limit"`
}

type ListAttendanceResponse struct {
	Data       []AttendanceResponse `json:"data"`
	TotalCount int64                `json:"total_count"`
	Page       int                  `json:"page"`
	Limit      int                  `json:"limit"`
}
