package handlers

import (
	"net/http"

	"github.com/pawcat-app/pawcat-backend/internal/api/httpx"
	"github.com/pawcat-app/pawcat-backend/internal/middleware"
	"github.com/pawcat-app/pawcat-backend/internal/models"
	"github.com/pawcat-app/pawcat-backend/internal/services"
)

type StatisticsHandler struct {
	stats *services.StatsService
}

func NewStatisticsHandler(stats *services.StatsService) *StatisticsHandler {
	return &StatisticsHandler{stats: stats}
}

func (h *StatisticsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	sum, err := h.stats.Summary(r.Context(), uid)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Statistics retrieved", sum)
}

func (h *StatisticsHandler) Categories(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	kind := models.TransactionType(r.URL.Query().Get("type"))
	period := services.Period(r.URL.Query().Get("period"))
	stats, err := h.stats.CategoryStats(r.Context(), uid, kind, period)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Category statistics retrieved", stats)
}

func (h *StatisticsHandler) MonthlyTrends(w http.ResponseWriter, r *http.Request) {
	uid, _ := middleware.UserID(r.Context())
	trends, err := h.stats.MonthlyTrends(r.Context(), uid, r.URL.Query().Get("year"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.Respond(w, http.StatusOK, "Monthly trends retrieved", trends)
}
