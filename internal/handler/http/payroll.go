package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Components
	CreateComponent(w http.ResponseWriter, r *http.Request)
	GetComponent(w http.ResponseWriter, r *http.Request)
	ListComponents(w http.ResponseWriter, r *http.Request)
	UpdateComponent(w http.ResponseWriter, r *http.Request)
	DeleteComponent(w http.ResponseWriter, r *http.Request)

	// Employee structure
	AssignComponent(w http.ResponseWriter, r *http.Request)
	GetEmployeeStructure(w http.ResponseWriter, r *http.Request)
	RemoveAssignment(w http.ResponseWriter, r *http.Request)

	// Calculation and runs
	Calculate(w http.ResponseWriter, r *http.Request)
	Run(w http.ResponseWriter, r *http.Request)

	// Records
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	UpdateRecord(w http.ResponseWriter, r *http.Request)
	ApproveRecord(w http.ResponseWriter, r *http.Request)
	MarkRecordPaid(w http.ResponseWriter, r *http.Request)
	CancelRecord(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== COMPONENTS ==========

func (h *payrollHandlerImpl) CreateComponent(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CreateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateComponent(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary component created", result)
}

func (h *payrollHandlerImpl) GetComponent(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Component ID is required", nil)
		return
	}

	result, err := h.payrollService.GetComponent(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListComponents(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.payrollService.ListComponents(r.Context(), companyID, activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateComponent(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Component ID is required", nil)
		return
	}

	var req payroll.UpdateComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	if err := h.payrollService.UpdateComponent(r.Context(), companyID, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, nil)
}

func (h *payrollHandlerImpl) DeleteComponent(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Component ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteComponent(r.Context(), companyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary component deleted successfully", nil)
}

// ========== EMPLOYEE STRUCTURE ==========

func (h *payrollHandlerImpl) AssignComponent(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	var req payroll.AssignComponentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = employeeID

	result, err := h.payrollService.AssignComponent(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Component assigned to employee", result)
}

func (h *payrollHandlerImpl) GetEmployeeStructure(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	employeeID := chi.URLParam(r, "employeeId")
	if employeeID == "" {
		response.BadRequest(w, "Employee ID is required", nil)
		return
	}

	result, err := h.payrollService.GetEmployeeStructure(r.Context(), companyID, employeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) RemoveAssignment(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Assignment ID is required", nil)
		return
	}

	if err := h.payrollService.RemoveAssignment(r.Context(), companyID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Component assignment removed", nil)
}

// ========== CALCULATION / RUNS ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Calculate(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll calculated", result)
}

func (h *payrollHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Run(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), companyID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := parseRecordFilter(r)

	result, err := h.payrollService.ListRecords(r.Context(), companyID, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	response.SuccessWithMeta(w, result.Data, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: totalPages,
	})
}

func (h *payrollHandlerImpl) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	var req payroll.UpdateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.UpdateRecord(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ApproveRecord(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.Approve(r.Context(), companyID, id, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record approved", result)
}

func (h *payrollHandlerImpl) MarkRecordPaid(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ID = id

	result, err := h.payrollService.MarkPaid(r.Context(), companyID, actorID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record marked as paid", result)
}

func (h *payrollHandlerImpl) CancelRecord(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	result, err := h.payrollService.Cancel(r.Context(), companyID, id, actorID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record cancelled", result)
}

func (h *payrollHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	companyID, actorID, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll record ID is required", nil)
		return
	}

	if err := h.payrollService.DeleteRecord(r.Context(), companyID, id, actorID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

func parseRecordFilter(r *http.Request) payroll.RecordFilter {
	var filter payroll.RecordFilter
	q := r.URL.Query()

	if v := q.Get("period_month"); v != "" {
		if month, err := strconv.Atoi(v); err == nil {
			filter.PeriodMonth = &month
		}
	}
	if v := q.Get("period_year"); v != "" {
		if year, err := strconv.Atoi(v); err == nil {
			filter.PeriodYear = &year
		}
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	return filter
}
