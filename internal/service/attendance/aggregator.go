package attendance

import (
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
)

const (
	fullDayHours = 8.0
	halfDayHours = 4.0
)

// SummarizeRecords reduces a set of attendance records into the period
// aggregate used by payroll. Days without a record contribute nothing:
// attendance must be explicitly marked, an unmarked day is not an absence.
// Holiday records are excluded from every counter.
func SummarizeRecords(records []attendance.Attendance) attendance.PeriodSummary {
	var s attendance.PeriodSummary

	for _, rec := range records {
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentDays++
			if rec.HoursWorked > 0 {
				s.RegularHours += rec.HoursWorked
			} else {
				s.RegularHours += fullDayHours
			}
			s.OvertimeHours += rec.OvertimeHours
		case attendance.StatusAbsent:
			s.AbsentDays++
		case attendance.StatusLeave:
			s.LeaveDays++
		case attendance.StatusHalfDay:
			// A half-day splits its weight between present and leave.
			s.PresentDays += 0.5
			s.LeaveDays += 0.5
			s.HalfDays++
			s.RegularHours += halfDayHours
		case attendance.StatusHoliday:
			continue
		default:
			continue
		}
		s.TotalWorkingDays++
	}

	return s
}
