package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sniperthink/hrms-backend-go/internal/domain/payroll"
	"github.com/sniperthink/hrms-backend-go/internal/handler/http/response"
)

type PayrollHandler interface {
	Calculate(w http.ResponseWriter, r *http.Request)
	SaveDirect(w http.ResponseWriter, r *http.Request)
	SetPaidStatus(w http.ResponseWriter, r *http.Request)
	UpdateAdvanceDeduction(w http.ResponseWriter, r *http.Request)
	CreatePeriod(w http.ResponseWriter, r *http.Request)
	ListPeriods(w http.ResponseWriter, r *http.Request)
	GetPeriodDetail(w http.ResponseWriter, r *http.Request)
	LockPeriod(w http.ResponseWriter, r *http.Request)
	UnlockPeriod(w http.ResponseWriter, r *http.Request)
	DeletePeriod(w http.ResponseWriter, r *http.Request)
	GetOverview(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// Calculate implements PayrollHandler
func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Calculate(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveDirect implements PayrollHandler
func (h *payrollHandlerImpl) SaveDirect(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.SaveDirectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SaveDirect(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll entries saved", result)
}

// SetPaidStatus implements PayrollHandler
func (h *payrollHandlerImpl) SetPaidStatus(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.MarkPaidRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.SetPaidStatus(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payment status updated", result)
}

// UpdateAdvanceDeduction implements PayrollHandler
func (h *payrollHandlerImpl) UpdateAdvanceDeduction(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	salaryID := chi.URLParam(r, "id")
	if salaryID == "" {
		response.BadRequest(w, "Salary ID is required", nil)
		return
	}

	var req payroll.UpdateAdvanceDeductionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.SalaryID = salaryID

	result, err := h.payrollService.UpdateAdvanceDeduction(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Advance deduction updated", result)
}

// CreatePeriod implements PayrollHandler
func (h *payrollHandlerImpl) CreatePeriod(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	var req payroll.CreatePeriodRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body", nil)
			return
		}
	}

	result, err := h.payrollService.CreatePeriod(r.Context(), tenantID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll period created", result)
}

// ListPeriods implements PayrollHandler
func (h *payrollHandlerImpl) ListPeriods(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	result, err := h.payrollService.ListPeriods(r.Context(), tenantID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetPeriodDetail implements PayrollHandler
func (h *payrollHandlerImpl) GetPeriodDetail(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	result, err := h.payrollService.GetPeriodDetail(r.Context(), tenantID, id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// LockPeriod implements PayrollHandler
func (h *payrollHandlerImpl) LockPeriod(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, true)
}

// UnlockPeriod implements PayrollHandler
func (h *payrollHandlerImpl) UnlockPeriod(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, false)
}

func (h *payrollHandlerImpl) setLock(w http.ResponseWriter, r *http.Request, locked bool) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	if err := h.payrollService.SetPeriodLocked(r.Context(), tenantID, id, locked); err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Payroll period locked"
	if !locked {
		message = "Payroll period unlocked"
	}
	response.SuccessWithMessage(w, message, nil)
}

// DeletePeriod implements PayrollHandler
func (h *payrollHandlerImpl) DeletePeriod(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Period ID is required", nil)
		return
	}

	if err := h.payrollService.DeletePeriod(r.Context(), tenantID, id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll period deleted", nil)
}

// GetOverview implements PayrollHandler
func (h *payrollHandlerImpl) GetOverview(w http.ResponseWriter, r *http.Request) {
	tenantID, err := tenantIDFromRequest(r)
	if err != nil {
		response.Unauthorized(w, err.Error())
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"

	result, err := h.payrollService.GetOverview(r.Context(), tenantID, forceRefresh)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
