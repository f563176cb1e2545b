package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rosterline/attendance-engine-go/internal/domain/attendance"
	"github.com/rosterline/attendance-engine-go/internal/domain/holiday"
	"github.com/rosterline/attendance-engine-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	GetUserRecords(w http.ResponseWriter, r *http.Request)
	GetSettings(w http.ResponseWriter, r *http.Request)
	UpdateSettings(w http.ResponseWriter, r *http.Request)
	ListHolidays(w http.ResponseWriter, r *http.Request)
	AddHoliday(w http.ResponseWriter, r *http.Request)
	RemoveHoliday(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// GetUserRecords implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetUserRecords(w http.ResponseWriter, r *http.Request) {
	req := attendance.RecordRangeRequest{
		UserID:    chi.URLParam(r, "userID"),
		StartDate: r.URL.Query().Get("start_date"),
		EndDate:   r.URL.Query().Get("end_date"),
	}

	records, err := h.attendanceService.GetUserRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}

// GetSettings implements AttendanceHandler.
func (h *attendanceHandlerImpl) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.attendanceService.GetSettings(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, settings)
}

// UpdateSettings implements AttendanceHandler.
func (h *attendanceHandlerImpl) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req attendance.UpdateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	settings, err := h.attendanceService.UpdateSettings(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Settings updated", settings)
}

// ListHolidays implements AttendanceHandler.
func (h *attendanceHandlerImpl) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.attendanceService.ListHolidays(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, holidays)
}

// AddHoliday implements AttendanceHandler.
func (h *attendanceHandlerImpl) AddHoliday(w http.ResponseWriter, r *http.Request) {
	var req holiday.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.attendanceService.AddHoliday(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Holiday added", created)
}

// RemoveHoliday implements AttendanceHandler.
func (h *attendanceHandlerImpl) RemoveHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.RemoveHoliday(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Holiday removed", nil)
}
