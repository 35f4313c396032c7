package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/audit"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/company"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/formula"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCompanyID = "company-1"
	testActorID   = "user-1"
)

// ========== FAKES ==========

type fakePayrollRepo struct {
	components  map[string]payroll.SalaryComponent
	assignments map[string][]payroll.EmployeeSalaryComponent // keyed by employeeID
	records     map[string]payroll.Record                    // keyed by record ID
	nextID      int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		components:  make(map[string]payroll.SalaryComponent),
		assignments: make(map[string][]payroll.EmployeeSalaryComponent),
		records:     make(map[string]payroll.Record),
	}
}

func (f *fakePayrollRepo) newID() string {
	f.nextID++
	return fmt.Sprintf("id-%d", f.nextID)
}

func (f *fakePayrollRepo) CreateComponent(ctx context.Context, component payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	for _, c := range f.components {
		if c.CompanyID == component.CompanyID && c.Name == component.Name {
			return payroll.SalaryComponent{}, payroll.ErrComponentNameExists
		}
	}
	component.ID = f.newID()
	f.components[component.ID] = component
	return component, nil
}

func (f *fakePayrollRepo) GetComponentByID(ctx context.Context, id string, companyID string) (payroll.SalaryComponent, error) {
	c, ok := f.components[id]
	if !ok || c.CompanyID != companyID {
		return payroll.SalaryComponent{}, payroll.ErrComponentNotFound
	}
	return c, nil
}

func (f *fakePayrollRepo) GetComponentsByCompanyID(ctx context.Context, companyID string, activeOnly bool) ([]payroll.SalaryComponent, error) {
	var result []payroll.SalaryComponent
	for _, c := range f.components {
		if c.CompanyID != companyID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		result = append(result, c)
	}
	return result, nil
}

func (f *fakePayrollRepo) UpdateComponent(ctx context.Context, companyID string, req payroll.UpdateComponentRequest) error {
	c, ok := f.components[req.ID]
	if !ok || c.CompanyID != companyID {
		return payroll.ErrComponentNotFound
	}
	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Value != nil {
		c.Value = *req.Value
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}
	f.components[req.ID] = c
	return nil
}

func (f *fakePayrollRepo) DeleteComponent(ctx context.Context, id string, companyID string) error {
	c, ok := f.components[id]
	if !ok || c.CompanyID != companyID {
		return payroll.ErrComponentNotFound
	}
	for _, list := range f.assignments {
		for _, a := range list {
			if a.SalaryComponentID == id {
				return payroll.ErrComponentInUse
			}
		}
	}
	delete(f.components, id)
	return nil
}

func (f *fakePayrollRepo) AssignComponent(ctx context.Context, assignment payroll.EmployeeSalaryComponent, companyID string) (payroll.EmployeeSalaryComponent, error) {
	assignment.ID = f.newID()
	f.assignments[assignment.EmployeeID] = append(f.assignments[assignment.EmployeeID], assignment)
	return assignment, nil
}

func (f *fakePayrollRepo) GetEmployeeStructure(ctx context.Context, employeeID string, companyID string, activeOnly bool) ([]payroll.EmployeeSalaryComponent, error) {
	var result []payroll.EmployeeSalaryComponent
	for _, a := range f.assignments[employeeID] {
		c, ok := f.components[a.SalaryComponentID]
		if !ok || c.CompanyID != companyID {
			continue
		}
		if activeOnly && !c.IsActive {
			continue
		}
		component := c
		a.Component = &component
		result = append(result, a)
	}
	return result, nil
}

func (f *fakePayrollRepo) RemoveAssignment(ctx context.Context, id string, companyID string) error {
	for employeeID, list := range f.assignments {
		for i, a := range list {
			if a.ID == id {
				f.assignments[employeeID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return payroll.ErrAssignmentNotFound
}

func (f *fakePayrollRepo) CreateRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == record.EmployeeID && r.PeriodMonth == record.PeriodMonth && r.PeriodYear == record.PeriodYear {
			return payroll.Record{}, payroll.ErrPayrollRecordExists
		}
	}
	record.ID = f.newID()
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) ReplaceRecord(ctx context.Context, record payroll.Record) (payroll.Record, error) {
	existing, ok := f.records[record.ID]
	if !ok || existing.IsLocked {
		return payroll.Record{}, payroll.ErrPayrollRecordLocked
	}
	f.records[record.ID] = record
	return record, nil
}

func (f *fakePayrollRepo) GetRecordByID(ctx context.Context, id string, companyID string) (payroll.Record, error) {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID {
		return payroll.Record{}, payroll.ErrPayrollRecordNotFound
	}
	return r, nil
}

func (f *fakePayrollRepo) GetRecordByEmployeePeriod(ctx context.Context, employeeID string, month, year int, companyID string) (payroll.Record, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.PeriodMonth == month && r.PeriodYear == year && r.CompanyID == companyID {
			return r, nil
		}
	}
	return payroll.Record{}, payroll.ErrPayrollRecordNotFound
}

func (f *fakePayrollRepo) ListRecords(ctx context.Context, companyID string, filter payroll.RecordFilter) ([]payroll.Record, int64, error) {
	var result []payroll.Record
	for _, r := range f.records {
		if r.CompanyID != companyID {
			continue
		}
		if filter.Status != nil && string(r.Status) != *filter.Status {
			continue
		}
		if filter.EmployeeID != nil && r.EmployeeID != *filter.EmployeeID {
			continue
		}
		result = append(result, r)
	}
	return result, int64(len(result)), nil
}

func (f *fakePayrollRepo) UpdateRecordRemarks(ctx context.Context, companyID string, req payroll.UpdateRecordRequest) error {
	r, ok := f.records[req.ID]
	if !ok || r.IsLocked {
		return payroll.ErrPayrollRecordLocked
	}
	r.Remarks = req.Remarks
	f.records[req.ID] = r
	return nil
}

func (f *fakePayrollRepo) MarkApproved(ctx context.Context, id string, companyID string, approvedBy string) (payroll.Record, error) {
	r, ok := f.records[id]
	if !ok || r.Status != payroll.StatusCalculated || r.IsLocked {
		return payroll.Record{}, payroll.ErrInvalidStatusTransition
	}
	now := time.Now()
	r.Status = payroll.StatusApproved
	r.ApprovedBy = &approvedBy
	r.ApprovedAt = &now
	f.records[id] = r
	return r, nil
}

func (f *fakePayrollRepo) MarkPaid(ctx context.Context, companyID string, req payroll.MarkPaidRequest) (payroll.Record, error) {
	r, ok := f.records[req.ID]
	if !ok || r.Status != payroll.StatusApproved || r.IsLocked {
		return payroll.Record{}, payroll.ErrInvalidStatusTransition
	}
	now := time.Now()
	r.Status = payroll.StatusPaid
	r.IsLocked = true
	r.PaymentMethod = &req.PaymentMethod
	r.PaymentDate = &now
	r.TransactionID = req.TransactionID
	if req.Remarks != nil {
		r.Remarks = req.Remarks
	}
	f.records[req.ID] = r
	return r, nil
}

func (f *fakePayrollRepo) MarkCancelled(ctx context.Context, id string, companyID string) (payroll.Record, error) {
	r, ok := f.records[id]
	if !ok || r.IsLocked || (r.Status != payroll.StatusDraft && r.Status != payroll.StatusCalculated) {
		return payroll.Record{}, payroll.ErrInvalidStatusTransition
	}
	r.Status = payroll.StatusCancelled
	f.records[id] = r
	return r, nil
}

func (f *fakePayrollRepo) DeleteRecord(ctx context.Context, id string, companyID string) error {
	r, ok := f.records[id]
	if !ok || r.CompanyID != companyID {
		return payroll.ErrPayrollRecordNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(employees ...employee.Employee) *fakeEmployeeRepo {
	f := &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
	for _, emp := range employees {
		f.employees[emp.ID] = emp
	}
	return f
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByIDs(ctx context.Context, ids []string, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, id := range ids {
		if emp, ok := f.employees[id]; ok && emp.CompanyID == companyID {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) GetActiveByCompanyID(ctx context.Context, companyID string) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID && emp.EmploymentStatus == employee.EmploymentStatusActive {
			result = append(result, emp)
		}
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) Deactivate(ctx context.Context, id string, companyID string) error {
	emp, ok := f.employees[id]
	if !ok {
		return employee.ErrEmployeeNotFound
	}
	emp.EmploymentStatus = employee.EmploymentStatusDeactivated
	f.employees[id] = emp
	return nil
}

type fakeCompanyRepo struct{}

func (f *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	if id != testCompanyID {
		return company.Company{}, company.ErrCompanyNotFound
	}
	return company.Company{ID: id, Name: "Test Co", IsActive: true}, nil
}

type fakeAttendanceService struct {
	summaries map[string]attendance.PeriodSummary // keyed by employeeID
}

func (f *fakeAttendanceService) Mark(ctx context.Context, companyID string, req attendance.MarkAttendanceRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, nil
}

func (f *fakeAttendanceService) BulkMark(ctx context.Context, companyID string, req attendance.BulkMarkRequest) ([]attendance.BulkMarkResult, error) {
	return nil, nil
}

func (f *fakeAttendanceService) List(ctx context.Context, companyID string, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	return attendance.ListAttendanceResponse{}, nil
}

func (f *fakeAttendanceService) Summarize(ctx context.Context, companyID string, employeeID string, from, to time.Time) (attendance.PeriodSummary, error) {
	return f.summaries[employeeID], nil
}

type fakeAuditSink struct {
	entries []audit.Entry
}

func (f *fakeAuditSink) Record(ctx context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

// ========== TEST HARNESS ==========

type payrollTestEnv struct {
	svc           payroll.PayrollService
	payrollRepo   *fakePayrollRepo
	employeeRepo  *fakeEmployeeRepo
	attendanceSvc *fakeAttendanceService
	auditSink     *fakeAuditSink
}

func newPayrollTestEnv(employees ...employee.Employee) *payrollTestEnv {
	payrollRepo := newFakePayrollRepo()
	employeeRepo := newFakeEmployeeRepo(employees...)
	attendanceSvc := &fakeAttendanceService{summaries: make(map[string]attendance.PeriodSummary)}
	auditSink := &fakeAuditSink{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewPayrollService(
		payrollRepo,
		employeeRepo,
		&fakeCompanyRepo{},
		attendanceSvc,
		NewResolver(formula.NewEvaluator()),
		auditSink,
		logger,
	)

	return &payrollTestEnv{
		svc:           svc,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		attendanceSvc: attendanceSvc,
		auditSink:     auditSink,
	}
}

func testEmployee(id string, baseSalary int64) employee.Employee {
	base := decimal.NewFromInt(baseSalary)
	return employee.Employee{
		ID:               id,
		CompanyID:        testCompanyID,
		EmployeeCode:     "EMP-" + id,
		FullName:         "Employee " + id,
		EmploymentStatus: employee.EmploymentStatusActive,
		BaseSalary:       &base,
	}
}

func seedRecord(repo *fakePayrollRepo, employeeID string, status payroll.Status, locked bool) payroll.Record {
	record := payroll.Record{
		CompanyID:   testCompanyID,
		EmployeeID:  employeeID,
		PeriodMonth: 3,
		PeriodYear:  2025,
		Status:      status,
		NetSalary:   decimal.NewFromInt(38400),
	}
	created, _ := repo.CreateRecord(context.Background(), record)
	created.IsLocked = locked
	repo.records[created.ID] = created
	return created
}

// ========== COMPONENT TESTS ==========

func TestPayrollService_CreateComponent(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()

	req := payroll.CreateComponentRequest{
		Name:      "Basic",
		Direction: string(payroll.DirectionEarning),
		Category:  string(payroll.CategoryBasic),
		CalcType:  string(payroll.CalculationFixed),
		Value:     decimal.NewFromInt(30000),
	}

	resp, err := env.svc.CreateComponent(ctx, testCompanyID, req)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Basic", resp.Name)
	assert.True(t, resp.IsActive)
}

func TestPayrollService_CreateComponent_DuplicateName(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()

	req := payroll.CreateComponentRequest{
		Name:      "Basic",
		Direction: string(payroll.DirectionEarning),
		Category:  string(payroll.CategoryBasic),
		CalcType:  string(payroll.CalculationFixed),
		Value:     decimal.NewFromInt(30000),
	}

	_, err := env.svc.CreateComponent(ctx, testCompanyID, req)
	require.NoError(t, err)

	_, err = env.svc.CreateComponent(ctx, testCompanyID, req)
	assert.ErrorIs(t, err, payroll.ErrComponentNameExists)
}

func TestPayrollService_CreateComponent_PercentageRequiresReference(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()

	req := payroll.CreateComponentRequest{
		Name:      "HRA",
		Direction: string(payroll.DirectionEarning),
		Category:  string(payroll.CategoryAllowance),
		CalcType:  string(payroll.CalculationPercentage),
		Value:     decimal.NewFromInt(40),
	}

	_, err := env.svc.CreateComponent(ctx, testCompanyID, req)
	assert.Error(t, err)
}

func TestPayrollService_DeleteComponent_InUse(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv(testEmployee("emp-1", 30000))

	created, err := env.svc.CreateComponent(ctx, testCompanyID, payroll.CreateComponentRequest{
		Name:      "Basic",
		Direction: string(payroll.DirectionEarning),
		Category:  string(payroll.CategoryBasic),
		CalcType:  string(payroll.CalculationFixed),
		Value:     decimal.NewFromInt(30000),
	})
	require.NoError(t, err)

	_, err = env.svc.AssignComponent(ctx, testCompanyID, payroll.AssignComponentRequest{
		EmployeeID:        "emp-1",
		SalaryComponentID: created.ID,
	})
	require.NoError(t, err)

	err = env.svc.DeleteComponent(ctx, testCompanyID, created.ID)
	assert.ErrorIs(t, err, payroll.ErrComponentInUse)
}

// ========== LIFECYCLE TESTS ==========

func TestPayrollService_Approve(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusCalculated, false)

	resp, err := env.svc.Approve(ctx, testCompanyID, record.ID, testActorID)

	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusApproved), resp.Status)
	require.NotNil(t, resp.ApprovedBy)
	assert.Equal(t, testActorID, *resp.ApprovedBy)
	assert.NotNil(t, resp.ApprovedAt)

	require.Len(t, env.auditSink.entries, 1)
	assert.Equal(t, audit.ActionApprove, env.auditSink.entries[0].Action)
}

func TestPayrollService_Approve_WrongStatus(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusDraft, false)

	_, err := env.svc.Approve(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
}

func TestPayrollService_MarkPaid(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusApproved, false)

	txID := "TXN-001"
	resp, err := env.svc.MarkPaid(ctx, testCompanyID, testActorID, payroll.MarkPaidRequest{
		ID:            record.ID,
		PaymentMethod: "bank_transfer",
		TransactionID: &txID,
	})

	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusPaid), resp.Status)
	assert.True(t, resp.IsLocked)
	require.NotNil(t, resp.PaymentMethod)
	assert.Equal(t, "bank_transfer", *resp.PaymentMethod)
	assert.NotNil(t, resp.PaymentDate)
}

func TestPayrollService_MarkPaid_SkipsApproval(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusCalculated, false)

	_, err := env.svc.MarkPaid(ctx, testCompanyID, testActorID, payroll.MarkPaidRequest{
		ID:            record.ID,
		PaymentMethod: "bank_transfer",
	})
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
}

func TestPayrollService_MarkPaid_RequiresPaymentMethod(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusApproved, false)

	_, err := env.svc.MarkPaid(ctx, testCompanyID, testActorID, payroll.MarkPaidRequest{ID: record.ID})
	assert.Error(t, err)
}

func TestPayrollService_LockedRecordIsImmutable(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusPaid, true)

	remarks := "late adjustment"
	_, err := env.svc.UpdateRecord(ctx, testCompanyID, testActorID, payroll.UpdateRecordRequest{ID: record.ID, Remarks: &remarks})
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordLocked)

	_, err = env.svc.Approve(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordLocked)

	_, err = env.svc.Cancel(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordLocked)

	err = env.svc.DeleteRecord(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrPayrollRecordLocked)
}

func TestPayrollService_Cancel(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusCalculated, false)

	resp, err := env.svc.Cancel(ctx, testCompanyID, record.ID, testActorID)

	require.NoError(t, err)
	assert.Equal(t, string(payroll.StatusCancelled), resp.Status)
}

func TestPayrollService_Cancel_ApprovedRejected(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusApproved, false)

	_, err := env.svc.Cancel(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrInvalidStatusTransition)
}

func TestPayrollService_DeleteRecord_PaidRejected(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	// Paid but not locked should not occur in practice; the paid guard still holds
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusPaid, false)

	err := env.svc.DeleteRecord(ctx, testCompanyID, record.ID, testActorID)
	assert.ErrorIs(t, err, payroll.ErrCannotDeletePaidRecord)
}

func TestPayrollService_UpdateRecord_RemarksOnly(t *testing.T) {
	ctx := context.Background()
	env := newPayrollTestEnv()
	record := seedRecord(env.payrollRepo, "emp-1", payroll.StatusCalculated, false)

	remarks := "reviewed by finance"
	resp, err := env.svc.UpdateRecord(ctx, testCompanyID, testActorID, payroll.UpdateRecordRequest{ID: record.ID, Remarks: &remarks})

	require.NoError(t, err)
	require.NotNil(t, resp.Remarks)
	assert.Equal(t, remarks, *resp.Remarks)
	assert.Equal(t, string(payroll.StatusCalculated), resp.Status)
}
