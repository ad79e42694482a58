package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/database/dbhelper"
	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

func BookTable(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Name   string `json:"name"`
		Phone  string `json:"phone"`
		Guests int    `json:"guests"`
		Time   string `json:"time"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.Name == "" || req.Phone == "" || req.Guests <= 0 {
		utils.RespondError(w, http.StatusBadRequest, "name, phone, and guests are required")
		return
	}
	if !utils.IsValidPhone(req.Phone) {
		utils.RespondError(w, http.StatusBadRequest, "phone must be 10 digits")
		return
	}

	var bookedFor *time.Time
	if req.Time != "" {
		t, err := time.Parse(time.RFC3339, req.Time)
		if err != nil {
			utils.RespondError(w, http.StatusBadRequest, "time must be RFC3339")
			return
		}
		bookedFor = &t
	}

	booking := &models.TableBooking{
		Name:   req.Name,
		Phone:  req.Phone,
		Guests: req.Guests,
		Time:   bookedFor,
	}

	if err := dbhelper.CreateBooking(booking); err != nil {
		logrus.WithError(err).Error("failed to create booking")
		utils.RespondError(w, http.StatusInternalServerError, "failed to book table")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Table booked successfully",
		"booking": booking,
	})
}

func UpcomingBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := dbhelper.ListUpcomingBookings()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch upcoming bookings")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch bookings")
		return
	}

	if bookings == nil {
		bookings = []models.TableBooking{}
	}
	utils.RespondJSON(w, http.StatusOK, bookings)
}
