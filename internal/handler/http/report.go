package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rosterline/attendance-engine-go/internal/domain/report"
	"github.com/rosterline/attendance-engine-go/internal/handler/http/response"
	"github.com/rosterline/attendance-engine-go/internal/pkg/export"
)

type ReportHandler interface {
	GenerateMuster(w http.ResponseWriter, r *http.Request)
	GenerateCustomLog(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.Service
}

func NewReportHandler(reportService report.Service) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// GenerateMuster implements ReportHandler. The format query selects the
// payload: json (default), csv or pdf.
func (h *reportHandlerImpl) GenerateMuster(w http.ResponseWriter, r *http.Request) {
	var req report.MusterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	muster, err := h.reportService.GenerateMuster(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		filename := fmt.Sprintf("muster-%d-%02d.csv", muster.Year, muster.Month)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if err := export.MusterCSV(w, muster); err != nil {
			response.InternalServerError(w, "Failed to export report")
		}
	case "pdf":
		filename := fmt.Sprintf("muster-%d-%02d.pdf", muster.Year, muster.Month)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if err := export.MusterPDF(w, muster); err != nil {
			response.InternalServerError(w, "Failed to export report")
		}
	default:
		response.Success(w, muster)
	}
}

// GenerateCustomLog implements ReportHandler.
func (h *reportHandlerImpl) GenerateCustomLog(w http.ResponseWriter, r *http.Request) {
	var req report.CustomLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	log, err := h.reportService.GenerateCustomLog(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		filename := fmt.Sprintf("attendance-log-%s-%s.csv", log.StartDate, log.EndDate)
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if err := export.CustomLogCSV(w, log); err != nil {
			response.InternalServerError(w, "Failed to export report")
		}
	case "pdf":
		filename := fmt.Sprintf("attendance-log-%s-%s.pdf", log.StartDate, log.EndDate)
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		if err := export.CustomLogPDF(w, log); err != nil {
			response.InternalServerError(w, "Failed to export report")
		}
	default:
		response.Success(w, log)
	}
}
