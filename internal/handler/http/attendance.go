package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/attendance"
	"github.com/halcyon-hr/payroll-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Mark(w http.ResponseWriter, r *http.Request)
	BulkMark(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Summarize(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) Mark(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.MarkAttendanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.Mark(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded", result)
}

func (h *attendanceHandlerImpl) BulkMark(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req attendance.BulkMarkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	results, err := h.attendanceService.BulkMark(r.Context(), companyID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, results)
}

func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	companyID, _, err := tenantFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	filter := parseAttendanceFilter(r)

	result, err := h.attendanceService.List(r.Context(), companyID, filter)
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

func (h *attendanceHandlerImpl) Summarize(w http.ResponseWriter, r *http.Request) {
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

	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		response.BadRequest(w, "Query param 'from' must be a valid date (YYYY-MM-DD)", nil)
		return
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		response.BadRequest(w, "Query param 'to' must be a valid date (YYYY-MM-DD)", nil)
		return
	}

	summary, err := h.attendanceService.Summarize(r.Context(), companyID, employeeID, from, to)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

func parseAttendanceFilter(r *http.Request) attendance.AttendanceFilter {
	var filter attendance.AttendanceFilter
	q := r.URL.Query()

	if v := q.Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := q.Get("status"); v != "" {
		filter.Status = &v
	}
	if v := q.Get("date_from"); v != "" {
		filter.DateFrom = &v
	}
	if v := q.Get("date_to"); v != "" {
		filter.DateTo = &v
	}
	if v := q.Get("page"); v != "" {
		filter.Page, _ = strconv.Atoi(v)
	}
	if v := q.Get("limit"); v != "" {
		filter.Limit, _ = strconv.Atoi(v)
	}

	return filter
}
