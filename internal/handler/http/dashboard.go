package http

import (
	"net/http"
	"strconv"

	"github.com/rosterline/attendance-engine-go/internal/domain/dashboard"
	"github.com/rosterline/attendance-engine-go/internal/handler/http/response"
)

type DashboardHandler interface {
	GetSnapshot(w http.ResponseWriter, r *http.Request)
	GetAttendanceTrend(w http.ResponseWriter, r *http.Request)
	GetProductivityTrend(w http.ResponseWriter, r *http.Request)
	GetSiteRates(w http.ResponseWriter, r *http.Request)
}

type dashboardHandlerImpl struct {
	dashboardService dashboard.Service
}

func NewDashboardHandler(dashboardService dashboard.Service) DashboardHandler {
	return &dashboardHandlerImpl{
		dashboardService: dashboardService,
	}
}

// GetSnapshot implements DashboardHandler.
func (h *dashboardHandlerImpl) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.GetSnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, snapshot)
}

// GetAttendanceTrend implements DashboardHandler.
func (h *dashboardHandlerImpl) GetAttendanceTrend(w http.ResponseWriter, r *http.Request) {
	days, ok := trendDays(w, r)
	if !ok {
		return
	}

	trend, err := h.dashboardService.GetAttendanceTrend(r.Context(), days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trend)
}

// GetProductivityTrend implements DashboardHandler.
func (h *dashboardHandlerImpl) GetProductivityTrend(w http.ResponseWriter, r *http.Request) {
	days, ok := trendDays(w, r)
	if !ok {
		return
	}

	trend, err := h.dashboardService.GetProductivityTrend(r.Context(), days)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, trend)
}

// GetSiteRates implements DashboardHandler.
func (h *dashboardHandlerImpl) GetSiteRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.dashboardService.GetSiteRates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, rates)
}

func trendDays(w http.ResponseWriter, r *http.Request) (int, bool) {
	v := r.URL.Query().Get("days")
	if v == "" {
		return 0, true
	}

	days, err := strconv.Atoi(v)
	if err != nil || days < 1 || days > 90 {
		response.BadRequest(w, "days must be between 1 and 90", nil)
		return 0, false
	}

	return days, true
}
