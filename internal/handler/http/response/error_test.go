package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/halcyon-hr/payroll-backend-go/internal/domain/employee"
	"github.com/halcyon-hr/payroll-backend-go/internal/domain/payroll"
	"github.com/halcyon-hr/payroll-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func handleAndDecode(t *testing.T, err error) (int, Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	HandleError(rec, err)

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
	}{
		{name: "not found", err: employee.ErrEmployeeNotFound, wantCode: http.StatusNotFound, wantErr: "NOT_FOUND"},
		{name: "conflict", err: payroll.ErrPayrollRecordExists, wantCode: http.StatusConflict, wantErr: "CONFLICT"},
		{name: "locked record", err: payroll.ErrPayrollRecordLocked, wantCode: http.StatusConflict, wantErr: "CONFLICT"},
		{name: "invalid transition", err: payroll.ErrInvalidStatusTransition, wantCode: http.StatusUnprocessableEntity, wantErr: "UNPROCESSABLE_ENTITY"},
		{name: "missing basic", err: payroll.ErrMissingBasicComponent, wantCode: http.StatusUnprocessableEntity, wantErr: "UNPROCESSABLE_ENTITY"},
		{name: "invalid period", err: payroll.ErrInvalidPeriod, wantCode: http.StatusBadRequest, wantErr: "BAD_REQUEST"},
		{name: "unexpected", err: errors.New("boom"), wantCode: http.StatusInternalServerError, wantErr: "INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := handleAndDecode(t, tt.err)

			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.Success)
			require.NotNil(t, body.Error)
			assert.Equal(t, tt.wantErr, body.Error.Code)
		})
	}
}

func TestHandleError_ValidationErrors(t *testing.T) {
	err := validator.ValidationErrors{
		{Field: "period_month", Message: "must be between 1 and 12"},
	}

	code, body := handleAndDecode(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
	assert.Equal(t, "must be between 1 and 12", body.Error.Details["period_month"])
}

func TestHandleError_ResolutionError(t *testing.T) {
	err := &payroll.ResolutionError{Component: "HRA", Reason: "percentage base \"Basic\" not found in structure"}

	code, body := handleAndDecode(t, err)

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "UNPROCESSABLE_ENTITY", body.Error.Code)
	assert.Contains(t, body.Error.Message, "HRA")
}
