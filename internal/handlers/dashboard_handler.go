package handlers

import (
	"net/http"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/services"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

type DashboardHandler struct {
	reports *services.ReportService
}

func NewDashboardHandler(reports *services.ReportService) *DashboardHandler {
	return &DashboardHandler{reports: reports}
}

// Summary handles GET /api/dashboard/summary
func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.reports.DashboardSummary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}
