package handlers

import (
	"log/slog"
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Totals for the dashboard metric cards
// @Tags metrics
// @Produce json
// @Success 200 {object} repo.Metrics
// @Failure 500 {string} string "Internal error"
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := metricsRepo.GetDashboardMetrics(r.Context())
	if err != nil {
		logger.Error("dashboard metrics", slog.Any("error", err))
		http.Error(w, "failed to fetch metrics", http.StatusInternalServerError)
		return
	}
	respond(w, r, http.StatusOK, m)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	respond(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
