package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/timeutil"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

// Summary handles GET /api/reports/summary?date=YYYY-MM-DD (default today)
func (h *ReportHandler) Summary(w http.ResponseWriter, r *http.Request) {
	date, err := parseDateQuery(r, "date")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid date, expected YYYY-MM-DD")
		return
	}
	day := timeutil.Now()
	if date != nil {
		day = *date
	}

	summary, err := h.reports.DailySummary(r.Context(), day)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// ProfitAnalysis handles GET /api/activity/profit-analysis?startDate=&endDate=
func (h *ReportHandler) ProfitAnalysis(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	profits, err := h.reports.ProfitAnalysis(r.Context(), start, end)
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, profits)
}

// ExportCSV handles GET /api/reports/export/csv?startDate=&endDate=
func (h *ReportHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	start, end, ok := dateRange(w, r)
	if !ok {
		return
	}

	filename := fmt.Sprintf("sales_%s_%s.csv",
		start.Format(timeutil.DateLayout), end.Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.reports.ExportSalesCSV(r.Context(), w, start, end); err != nil {
		// Headers may already be out; best effort
		writeError(w, err)
	}
}

// CustomerStatementPDF handles GET /api/reports/customers/{id}/statement.pdf
func (h *ReportHandler) CustomerStatementPDF(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid customer id")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	if err := h.reports.WriteStatementPDF(r.Context(), w, id); err != nil {
		writeError(w, err)
	}
}

// dateRange reads required startDate/endDate query params. On failure it
// writes the 400 itself and returns ok=false.
func dateRange(w http.ResponseWriter, r *http.Request) (start, end time.Time, ok bool) {
	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw == "" || endRaw == "" {
		utils.Error(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	start, err := timeutil.ParseInWAT(timeutil.DateLayout, startRaw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid startDate, expected YYYY-MM-DD")
		return
	}
	end, err = timeutil.ParseInWAT(timeutil.DateLayout, endRaw)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "invalid endDate, expected YYYY-MM-DD")
		return
	}
	return start, end, true
}
