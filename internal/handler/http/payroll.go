package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/domain/payroll"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

type PayrollHandler interface {
	CreateDraft(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService  payroll.PayrollService
	workflowService approval.WorkflowService
}

func NewPayrollHandler(payrollService payroll.PayrollService, workflowService approval.WorkflowService) PayrollHandler {
	return &payrollHandlerImpl{
		payrollService:  payrollService,
		workflowService: workflowService,
	}
}

// CreateDraft implements PayrollHandler.
func (h *payrollHandlerImpl) CreateDraft(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.payrollService.CreateDraft(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll draft created", result)
}

// Get implements PayrollHandler.
func (h *payrollHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements PayrollHandler.
func (h *payrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListRecords(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Approve implements PayrollHandler. Payroll has no rejection path; the
// workflow refuses a reject decision for this kind.
func (h *payrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	identity, err := workforce.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	err = h.workflowService.Decide(r.Context(), approval.KindPayroll, id,
		identity.EmployeeID, identity.Role, approval.DecisionApprove, nil)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record approved", result)
}
