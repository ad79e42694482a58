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

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Items        []models.OrderItem `json:"items"`
		CustomerName string             `json:"customerName"`
		Phone        string             `json:"phone"`
		TableNumber  *int               `json:"table_number"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}

	if !utils.IsValidPhone(req.Phone) {
		utils.RespondError(w, http.StatusBadRequest, "phone must be 10 digits")
		return
	}

	result, err := h.Orders.PlaceOrder(service.PlaceOrderInput{
		Items:        req.Items,
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		TableNumber:  req.TableNumber,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrder) || errors.Is(err, service.ErrUnknownItem) {
			utils.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		logrus.WithError(err).Error("failed to place order")
		utils.RespondError(w, http.StatusInternalServerError, "failed to place order")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Order placed successfully, please scan QR to pay",
		"orderId":     result.OrderID,
		"qrCodeImage": result.QRCodeImage,
	})
}

func (h *Handler) PendingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.PendingOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch pending orders")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch pending orders")
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"data":    orders,
	})
}

func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	type request struct {
		OrderID string             `json:"orderId"`
		Status  models.OrderStatus `json:"status"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if req.OrderID == "" || req.Status == "" {
		utils.RespondError(w, http.StatusBadRequest, "orderId and status are required")
		return
	}

	if err := h.Orders.Transition(req.OrderID, req.Status); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			utils.RespondError(w, http.StatusBadRequest, "invalid status")
		case errors.Is(err, service.ErrOrderNotFound):
			utils.RespondError(w, http.StatusNotFound, "order not found")
		case errors.Is(err, service.ErrOrderNotPending):
			utils.RespondError(w, http.StatusBadRequest, "order is not pending payment")
		default:
			logrus.WithError(err).WithField("order_id", req.OrderID).Error("failed to update order")
			utils.RespondError(w, http.StatusInternalServerError, "failed to update order")
		}
		return
	}

	message := "Order cancelled successfully"
	if req.Status == models.OrderCompleted {
		message = "Order marked as completed and bill generated"
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": message,
	})
}

func (h *Handler) TodayOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.TodayCompletedOrders()
	if err != nil {
		logrus.WithError(err).Error("failed to fetch today's orders")
		utils.RespondError(w, http.StatusInternalServerError, "failed to fetch today's orders")
		return
	}

	if orders == nil {
		orders = []models.Order{}
	}
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(orders),
		"orders":  orders,
	})
}
