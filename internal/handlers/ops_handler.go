package handlers

import (
	"net/http"

	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/health"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/internal/monitoring"
	"github.com/isah4/Record-system-full-stack-web-app-sub000/pkg/utils"
)

// OpsHandler serves the operational endpoints: health and system stats
type OpsHandler struct {
	health    *health.Checker
	collector *monitoring.Collector
}

func NewOpsHandler(checker *health.Checker, collector *monitoring.Collector) *OpsHandler {
	return &OpsHandler{health: checker, collector: collector}
}

// Health handles GET /health. A degraded cache still answers 200; only a
// lost database flips the probe to 503.
func (h *OpsHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := h.health.Check(r.Context())
	code := http.StatusOK
	if status.Status == health.StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	utils.JSON(w, code, status)
}

// SystemStats handles GET /api/monitoring/system (admin only)
func (h *OpsHandler) SystemStats(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.collector.Collect(r.Context()))
}
