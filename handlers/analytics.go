package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/service"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	if period == "" {
		period = "weekly"
	}
	if period != "weekly" && period != "monthly" {
		utils.RespondError(w, http.StatusBadRequest, "period must be weekly or monthly")
		return
	}

	stats, err := h.Analytics.PeriodicSales(period)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch sales stats")
		utils.RespondError(w, http.StatusInternalServerError, "error fetching stats")
		return
	}

	if stats == nil {
		stats = []service.SalesBucket{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"stats": stats})
}

func (h *Handler) PaymentCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := h.Analytics.PaymentBreakdown()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch payment breakdown")
		utils.RespondError(w, http.StatusInternalServerError, "error fetching finance stats")
		return
	}

	utils.RespondJSON(w, http.StatusOK, collection)
}

func (h *Handler) TopItems(w http.ResponseWriter, r *http.Request) {
	query := service.TopItemsQuery{
		Period: r.URL.Query().Get("period"),
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			utils.RespondError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		query.Limit = limit
	}

	startRaw := r.URL.Query().Get("startDate")
	endRaw := r.URL.Query().Get("endDate")
	if startRaw != "" && endRaw != "" {
		start, err := time.Parse("2006-01-02", startRaw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "startDate must be YYYY-MM-DD")
			return
		}
		end, err := time.Parse("2006-01-02", endRaw)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "endDate must be YYYY-MM-DD")
			return
		}
		// make the end bound inclusive of the whole day
		end = end.Add(24*time.Hour - time.Nanosecond)
		query.StartDate = &start
		query.EndDate = &end
	}

	items, err := h.Analytics.TopItems(query)
	if err != nil {
		logrus.WithError(err).Error("failed to fetch top items")
		utils.RespondError(w, http.StatusInternalServerError, "error fetching top items")
		return
	}

	if items == nil {
		items = []service.ItemCount{}
	}
	utils.RespondJSON(w, http.StatusOK, items)
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Analytics.Dashboard()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch dashboard stats")
		utils.RespondError(w, http.StatusInternalServerError, "error fetching admin dashboard stats")
		return
	}

	utils.RespondJSON(w, http.StatusOK, stats)
}
