package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/loomhr/workforce-backend-go/internal/domain/attendance"
	"github.com/loomhr/workforce-backend-go/internal/handler/http/response"
	"github.com/loomhr/workforce-backend-go/internal/service/workforce"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetToday(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetMonthlySummary(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	facade            workforce.Facade
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(facade workforce.Facade, attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		facade:            facade,
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var cmd workforce.CheckInCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.CheckIn(r.Context(), cmd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", result)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var cmd workforce.CheckOutCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.facade.CheckOut(r.Context(), cmd)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", result)
}

// GetToday implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetToday(w http.ResponseWriter, r *http.Request) {
	result, err := h.facade.GetTodayStatus(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// List implements AttendanceHandler.
func (h *attendanceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	yearMonth := r.URL.Query().Get("month")
	if yearMonth == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	result, err := h.facade.ListAttendance(r.Context(), yearMonth)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMonthlySummary implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetMonthlySummary(w http.ResponseWriter, r *http.Request) {
	yearMonth := r.URL.Query().Get("month")
	if yearMonth == "" {
		response.BadRequest(w, "Query parameter 'month' is required (YYYY-MM)", nil)
		return
	}

	result, err := h.facade.GetMonthlySummary(r.Context(), yearMonth)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Delete implements AttendanceHandler.
func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.DeleteAttendance(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted", nil)
}
