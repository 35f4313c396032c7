package payroll

import (
	"context"
	"testing"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marchRequest(employeeID string, force bool) payroll.CalculateRequest {
	return payroll.CalculateRequest{
		EmployeeID:  employeeID,
		PeriodMonth: 3,
		PeriodYear:  2025,
		PeriodStart: "2025-03-01",
		PeriodEnd:   "2025-03-31",
		Force:       force,
	}
}

func assignStandardStructure(t *testing.T, env *payrollTestEnv, employeeID string) {
	t.Helper()
	ctx := context.Background()

	components := []payroll.CreateComponentRequest{
		{Name: "Basic", Direction: string(payroll.DirectionEarning), Category: string(payroll.CategoryBasic), CalcType: string(payroll.CalculationFixed), Value: decimal.NewFromInt(30000)},
		{Name: "HRA", Direction: string(payroll.DirectionEarning), Category: string(payroll.CategoryAllowance), CalcType: string(payroll.CalculationPercentage), Value: decimal.NewFromInt(40), PercentageOf: strPtr("Basic")},
		{Name: "PF", Direction: string(payroll.DirectionDeduction), Category: string(payroll.CategoryProvidentFund), CalcType: string(payroll.CalculationPercentage), Value: decimal.NewFromInt(12), PercentageOf: strPtr("Basic")},
	}
	for _, req := range components {
		created, err := env.svc.CreateComponent(ctx, testCompanyID, req)
		require.NoError(t, err)

		_, err = env.svc.AssignComponent(ctx, testCompanyID, payroll.AssignComponentRequest{
			EmployeeID:        employeeID,
			SalaryComponentID: created.ID,
		})
		require.NoError(t, err)
	}
}

func strPtr(s string) *string {
	return &s
}

func TestCalculate(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))
	assignStandardStructure(t, env, "emp-1")
	env.attendanceSvc.summaries["emp-1"] = attendance.PeriodSummary{
		TotalWorkingDays: 22,
		PresentDays:      20,
		LeaveDays:        2,
		RegularHours:     160,
		OvertimeHours:    4,
	}

	resp, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))

	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusCalculated), resp.Status)
	assert.True(t, resp.BasicSalary.Equal(decimal.NewFromInt(30000)))
	assert.True(t, resp.GrossEarnings.Equal(decimal.NewFromInt(42000)))
	assert.True(t, resp.TotalDeductions.Equal(decimal.NewFromInt(3600)))
	assert.True(t, resp.NetSalary.Equal(decimal.NewFromInt(38400)))
	assert.True(t, resp.PFContribution.Equal(decimal.NewFromInt(3600)))
	assert.True(t, resp.TaxDeducted.IsZero())

	assert.Equal(t, 22.0, resp.TotalWorkingDays)
	assert.Equal(t, 20.0, resp.PresentDays)
	assert.Equal(t, 2.0, resp.LeaveDays)
	assert.Equal(t, 160.0, resp.RegularHours)
	assert.Equal(t, 4.0, resp.OvertimeHours)

	assert.Len(t, resp.Earnings, 2)
	assert.Len(t, resp.Deductions, 1)
}

func TestCalculate_ExistingRecordRejectedWithoutForce(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))
	assignStandardStructure(t, env, "emp-1")

	_, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))
	require.NoError(t, err)

	_, err = env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordExists)
}

func TestCalculate_ForceReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))
	assignStandardStructure(t, env, "emp-1")

	first, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))
	require.NoError(t, err)

	second, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", true))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, string(payroll.StatusCalculated), second.Status)

	// Recalculating with unchanged inputs yields identical figures
	assert.Equal(t, first.Earnings, second.Earnings)
	assert.Equal(t, first.Deductions, second.Deductions)
	assert.True(t, second.GrossEarnings.Equal(first.GrossEarnings))
	assert.True(t, second.TotalDeductions.Equal(first.TotalDeductions))
	assert.True(t, second.NetSalary.Equal(first.NetSalary))
}

func TestCalculate_LockedRecordRejected(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))
	seedRecord(env.payrollRepo, "emp-1", payroll.StatusPaid, true)

	_, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", true))
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordLocked)
}

func TestCalculate_UnknownEmployee(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()

	_, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("ghost", false))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCalculate_NoBasicAndNoBaseSalary(t *testing.T) {
	ctx := context.Background()
	emp := testEmployee("emp-1", 0)
	emp.BaseSalary = nil
	env := newPayrollTestEnv(emp)

	_, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))
	assert.ErrorIs(t, err, payroll.ErrMissingBasicComponent)
}

func TestCalculate_BaseSalaryFallback(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 25000))

	resp, err := env.svc.Calculate(ctx, testCompanyID, testActorID, marchRequest("emp-1", false))

	require.NoError(t, err)
	assert.True(t, resp.BasicSalary.Equal(decimal.NewFromInt(25000)))
	assert.True(t, resp.GrossEarnings.IsZero())
	assert.True(t, resp.NetSalary.IsZero())
}

func TestCalculate_InvalidPeriod(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))

	req := marchRequest("emp-1", false)
	req.PeriodMonth = 13

	_, err := env.svc.Calculate(ctx, testCompanyID, testActorID, req)
	assert.Error(t, err)
}
