package attendance

import "time"

// Status enum. Holiday rows carry no working-day weight; they exist so a day
// can be explicitly marked rather than silently missing.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half_day"
	StatusLeave   Status = "leave"
	StatusHoliday Status = "holiday"
)

// Attendance - one record per (employee, calendar day)
type Attendance struct {
	ID            string
	CompanyID     string
	EmployeeID    string
	Date          time.Time
	Status        Status
	CheckIn       *time.Time
	CheckOut      *time.Time
	HoursWorked   float64
	OvertimeHours float64
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// PeriodSummary - aggregate of one employee's attendance over a date range.
// HalfDays is the raw count of half-day records; their working-day weight is
// already split 0.5/0.5 into PresentDays and LeaveDays, so
// TotalWorkingDays = PresentDays + AbsentDays + LeaveDays.
type PeriodSummary struct {
	TotalWorkingDays float64 `json:"total_working_days"`
	PresentDays      float64 `json:"present_days"`
	AbsentDays       float64 `json:"absent_days"`
	LeaveDays        float64 `json:"leave_days"`
	HalfDays         float64 `json:"half_days"`
	RegularHours     float64 `json:"regular_hours"`
	OvertimeHours    float64 `json:"overtime_hours"`
}
