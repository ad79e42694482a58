package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/service"
	"github.com/ZEESHAN8692/restaurant-backend/utils"
)

// GenerateBill is the admin quick-bill flow: a walk-in sale recorded directly,
// with no order behind it.
func (h *Handler) GenerateBill(w http.ResponseWriter, r *http.Request) {
	type requestItem struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
		Qty   int     `json:"qty"`
	}
	type request struct {
		CustomerName  string               `json:"customerName"`
		CustomerPhone string               `json:"customerPhone"`
		Items         []requestItem        `json:"items"`
		PaymentMethod models.PaymentMethod `json:"paymentMethod"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if req.CustomerName == "" || req.PaymentMethod == "" {
		utils.RespondError(w, http.StatusBadRequest, "customer name and payment method are required")
		return
	}
	if !req.PaymentMethod.IsValid() {
		utils.RespondError(w, http.StatusBadRequest, "invalid payment method")
		return
	}
	if len(req.Items) == 0 {
		utils.RespondError(w, http.StatusBadRequest, "at least one item is required")
		return
	}

	var total float64
	items := make([]models.BillItem, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Name == "" {
			utils.RespondError(w, http.StatusBadRequest, "item name is required")
			return
		}
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}

		// quick bills trust the counter price, but pick up the category from
		// the catalog when the item matches so category reports stay useful
		var category string
		if _, cat, err := h.Catalog.ActivePrice(item.Name); err == nil {
			category = cat
		} else if !errors.Is(err, service.ErrUnknownItem) {
			logrus.WithError(err).Warn("category lookup failed")
		}

		items = append(items, models.BillItem{
			Name:     item.Name,
			Price:    item.Price,
			Qty:      qty,
			Category: category,
		})
		total += item.Price * float64(qty)
	}

	bill := &models.Bill{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: req.PaymentMethod,
	}

	if err := h.Bills.CreateBill(bill); err != nil {
		logrus.WithError(err).Error("failed to create bill")
		utils.RespondError(w, http.StatusInternalServerError, "failed to generate bill")
		return
	}

	utils.RespondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Bill generated successfully",
		"bill":    bill,
	})
}

func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	bills, err := h.Bills.ListBills()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch bills")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch bills")
		return
	}

	if bills == nil {
		bills = []models.Bill{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(bills),
		"bills":   bills,
	})
}
