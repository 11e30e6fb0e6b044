package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

type PurchaseHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
}

type purchaseHandlerImpl struct {
	facade workforce.Facade
}

func NewPurchaseHandler(facade workforce.Facade) PurchaseHandler {
	return &purchaseHandlerImpl{
		facade: facade,
	}
}

// Submit implements PurchaseHandler.
func (h *purchaseHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var cmd workforce.SubmitPurchaseCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.SubmitApprovableRequest(r.Context(), cmd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Purchase request submitted", result)
}

// List implements PurchaseHandler.
func (h *purchaseHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.facade.ListApprovableRequests(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Decide implements PurchaseHandler.
func (h *purchaseHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var cmd workforce.DecideCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.DecideApprovableRequest(r.Context(), id, cmd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Purchase request decided", result)
}
