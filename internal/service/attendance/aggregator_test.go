package attendance

import (
	"testing"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
)

func presentDay(hours, overtime float64) attendance.Attendance {
	return attendance.Attendance{Status: attendance.StatusPresent, HoursWorked: hours, OvertimeHours: overtime}
}

func dayWithStatus(status attendance.Status) attendance.Attendance {
	return attendance.Attendance{Status: status}
}

func TestSummarizeRecords_FullMonth(t *testing.T) {
	var records []attendance.Attendance
	for i := 0; i < 19; i++ {
		records = append(records, presentDay(8, 0))
	}
	// One long day: 10 hours on the clock splits into 8 regular + 2 overtime
	records = append(records, presentDay(8, 2))
	records = append(records, dayWithStatus(attendance.StatusLeave))
	records = append(records, dayWithStatus(attendance.StatusLeave))

	s := SummarizeRecords(records)

	assert.Equal(t, 20.0, s.PresentDays)
	assert.Equal(t, 2.0, s.LeaveDays)
	assert.Equal(t, 0.0, s.AbsentDays)
	assert.Equal(t, 22.0, s.TotalWorkingDays)
	assert.Equal(t, 160.0, s.RegularHours)
	assert.Equal(t, 2.0, s.OvertimeHours)
}

func TestSummarizeRecords_Empty(t *testing.T) {
	s := SummarizeRecords(nil)

	assert.Equal(t, attendance.PeriodSummary{}, s)
}

func TestSummarizeRecords_HalfDay(t *testing.T) {
	records := []attendance.Attendance{
		presentDay(8, 0),
		dayWithStatus(attendance.StatusHalfDay),
	}

	s := SummarizeRecords(records)

	assert.Equal(t, 1.5, s.PresentDays)
	assert.Equal(t, 0.5, s.LeaveDays)
	assert.Equal(t, 1.0, s.HalfDays)
	assert.Equal(t, 2.0, s.TotalWorkingDays)
	assert.Equal(t, 12.0, s.RegularHours)
}

func TestSummarizeRecords_HolidayExcluded(t *testing.T) {
	records := []attendance.Attendance{
		presentDay(8, 0),
		dayWithStatus(attendance.StatusHoliday),
		dayWithStatus(attendance.StatusAbsent),
	}

	s := SummarizeRecords(records)

	assert.Equal(t, 1.0, s.PresentDays)
	assert.Equal(t, 1.0, s.AbsentDays)
	assert.Equal(t, 2.0, s.TotalWorkingDays)
	assert.Equal(t, 8.0, s.RegularHours)
}

func TestSummarizeRecords_PresentWithoutClockDataGetsFullDay(t *testing.T) {
	records := []attendance.Attendance{
		presentDay(0, 0),
	}

	s := SummarizeRecords(records)

	assert.Equal(t, 8.0, s.RegularHours)
}

func TestSummarizeRecords_WorkingDayIdentity(t *testing.T) {
	records := []attendance.Attendance{
		presentDay(8, 0),
		presentDay(6.5, 0),
		dayWithStatus(attendance.StatusAbsent),
		dayWithStatus(attendance.StatusLeave),
		dayWithStatus(attendance.StatusHalfDay),
		dayWithStatus(attendance.StatusHalfDay),
		dayWithStatus(attendance.StatusHoliday),
	}

	s := SummarizeRecords(records)

	assert.Equal(t, s.TotalWorkingDays, s.PresentDays+s.AbsentDays+s.LeaveDays)
}

func TestDeriveHours(t *testing.T) {
	tests := []struct {
		name         string
		clockedHours float64
		wantHours    float64
		wantOvertime float64
	}{
		{name: "regular day", clockedHours: 8, wantHours: 8, wantOvertime: 0},
		{name: "short day", clockedHours: 5.5, wantHours: 5.5, wantOvertime: 0},
		{name: "long day", clockedHours: 10, wantHours: 8, wantOvertime: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkIn := mustParseTime(t, "2025-03-10T09:00:00Z")
			checkOut := checkIn.Add(durationHours(tt.clockedHours))
			att := attendance.Attendance{CheckIn: &checkIn, CheckOut: &checkOut}

			hours, overtime := deriveHours(att)

			assert.InDelta(t, tt.wantHours, hours, 1e-9)
			assert.InDelta(t, tt.wantOvertime, overtime, 1e-9)
		})
	}
}

func TestDeriveHours_MissingClockData(t *testing.T) {
	hours, overtime := deriveHours(attendance.Attendance{})

	assert.Equal(t, 0.0, hours)
	assert.Equal(t, 0.0, overtime)
}
