package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/approval"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	GrantAnnual(w http.ResponseWriter, r *http.Request)
	Reconcile(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	facade          workforce.Facade
	workflowService approval.WorkflowService
}

func NewLeaveHandler(facade workforce.Facade, workflowService approval.WorkflowService) LeaveHandler {
	return &leaveHandlerImpl{
		facade:          facade,
		workflowService: workflowService,
	}
}

// Submit implements LeaveHandler.
func (h *leaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd workforce.SubmitLeaveCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.SubmitLeaveRequest(r.Context(), cmd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", result)
}

// List implements LeaveHandler.
func (h *leaveHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.facade.ListLeaveRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements LeaveHandler. A partial approval answers 207 with the
// decided request so the client sees the committed status.
func (h *leaveHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var cmd workforce.DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.DecideLeaveRequest(r.Context(), id, cmd)
	if err != nil {
		if approval.IsPartial(err) {
			response.MultiStatus(w, err.Error(), result)
			return
		}
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request decided", result)
}

// GetBalances implements LeaveHandler.
func (h *leaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	result, err := h.facade.GetLeaveBalances(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GrantAnnual implements LeaveHandler.
func (h *leaveHandlerImpl) GrantAnnual(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	year, err := yearParam(r)
	if err != nil {
		response.BadRequest(w, "Query parameter 'year' must be a number", nil)
		return
	}

	result, err := h.facade.GrantAnnualLeave(r.Context(), employeeID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Annual leave granted", result)
}

// Reconcile implements LeaveHandler.
func (h *leaveHandlerImpl) Reconcile(w http.ResponseWriter, r *http.Request) {
	completed, err := h.workflowService.ReconcileLeaveEffects(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave effects reconciled", map[string]int{"completed": completed})
}

// yearParam reads the 'year' query parameter, defaulting to 0 when absent
// so services fall back to the current year.
func yearParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}
