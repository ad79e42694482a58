package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZEESHAN8692/restaurant-backend/models"
	"github.com/ZEESHAN8692/restaurant-backend/service"
)

type stubOrderStore struct {
	orders  map[string]*models.Order
	created []*models.Order
}

func newStubOrderStore(orders ...*models.Order) *stubOrderStore {
	store := &stubOrderStore{orders: make(map[string]*models.Order)}
	for _, order := range orders {
		store.orders[order.OrderID] = order
	}
	return store
}

func (s *stubOrderStore) CreateOrder(order *models.Order) error {
	s.orders[order.OrderID] = order
	s.created = append(s.created, order)
	return nil
}

func (s *stubOrderStore) GetOrderByID(orderID string) (*models.Order, error) {
	return s.orders[orderID], nil
}

func (s *stubOrderStore) CompletePending(orderID string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != models.OrderPendingPayment {
		return nil, nil
	}
	order.Status = models.OrderCompleted
	order.Payment.Status = models.PaymentVerified
	return order, nil
}

func (s *stubOrderStore) CancelPending(orderID string) (*models.Order, error) {
	order, ok := s.orders[orderID]
	if !ok || order.Status != models.OrderPendingPayment {
		return nil, nil
	}
	order.Status = models.OrderCancelled
	return order, nil
}

func (s *stubOrderStore) ListPendingOrders() ([]models.Order, error)  { return nil, nil }
func (s *stubOrderStore) ListCompletedToday() ([]models.Order, error) { return nil, nil }

type stubBillStore struct {
	bills []*models.Bill
}

func (s *stubBillStore) CreateBill(bill *models.Bill) error {
	s.bills = append(s.bills, bill)
	return nil
}

type stubPrices struct{}

func (stubPrices) ActivePrice(name string) (float64, string, error) {
	if name == "Tea" {
		return 20, "Beverages", nil
	}
	return 0, "", service.ErrUnknownItem
}

type stubQR struct{}

func (stubQR) PaymentQR(amount float64, orderID string) (string, error) {
	return "data:image/png;base64,stub", nil
}

func newOrderHandler(store *stubOrderStore, bills *stubBillStore) *Handler {
	orders := service.NewOrderService(store, bills, stubPrices{}, service.UUIDAllocator{}, stubQR{})
	return &Handler{Orders: orders}
}

func doJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func TestCreateOrderRejectsBadPhone(t *testing.T) {
	h := newOrderHandler(newStubOrderStore(), &stubBillStore{})

	rec := doJSON(t, h.CreateOrder, map[string]interface{}{
		"customerName": "Asha",
		"phone":        "12345",
		"items":        []map[string]interface{}{{"name": "Tea", "qty": 2}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "phone must be 10 digits")
}

func TestCreateOrderUnknownItem(t *testing.T) {
	h := newOrderHandler(newStubOrderStore(), &stubBillStore{})

	rec := doJSON(t, h.CreateOrder, map[string]interface{}{
		"customerName": "Asha",
		"phone":        "9876543210",
		"items":        []map[string]interface{}{{"name": "Pizza", "qty": 1}},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "not on the menu")
}

func TestCreateOrderSuccess(t *testing.T) {
	store := newStubOrderStore()
	h := newOrderHandler(store, &stubBillStore{})

	rec := doJSON(t, h.CreateOrder, map[string]interface{}{
		"customerName": "Asha",
		"phone":        "9876543210",
		"items":        []map[string]interface{}{{"name": "Tea", "qty": 2}},
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message     string `json:"message"`
		OrderID     string `json:"orderId"`
		QRCodeImage string `json:"qrCodeImage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.OrderID, "ORD-")
	assert.Equal(t, "data:image/png;base64,stub", resp.QRCodeImage)
	require.Len(t, store.created, 1)
	assert.Equal(t, 40.0, store.created[0].Payment.Amount)
}

func TestUpdateOrderStatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		body       map[string]interface{}
		seed       *models.Order
		wantCode   int
		wantInBody string
	}{
		{
			name:       "missing fields",
			body:       map[string]interface{}{"orderId": "ORD-1"},
			wantCode:   http.StatusBadRequest,
			wantInBody: "orderId and status are required",
		},
		{
			name:       "invalid status",
			body:       map[string]interface{}{"orderId": "ORD-1", "status": "shipped"},
			wantCode:   http.StatusBadRequest,
			wantInBody: "invalid status",
		},
		{
			name:       "unknown order",
			body:       map[string]interface{}{"orderId": "ORD-missing", "status": "completed"},
			wantCode:   http.StatusNotFound,
			wantInBody: "order not found",
		},
		{
			name: "already completed",
			body: map[string]interface{}{"orderId": "ORD-done", "status": "completed"},
			seed: &models.Order{
				OrderID: "ORD-done",
				Status:  models.OrderCompleted,
			},
			wantCode:   http.StatusBadRequest,
			wantInBody: "not pending payment",
		},
		{
			name: "complete pending",
			body: map[string]interface{}{"orderId": "ORD-1", "status": "completed"},
			seed: &models.Order{
				OrderID: "ORD-1",
				Status:  models.OrderPendingPayment,
				Items:   []models.OrderItem{{Name: "Tea", Price: 20, Qty: 2}},
				Payment: models.Payment{Method: models.PaymentQR, Amount: 40},
			},
			wantCode:   http.StatusOK,
			wantInBody: "bill generated",
		},
		{
			name: "cancel pending",
			body: map[string]interface{}{"orderId": "ORD-1", "status": "cancelled"},
			seed: &models.Order{
				OrderID: "ORD-1",
				Status:  models.OrderPendingPayment,
				Items:   []models.OrderItem{{Name: "Tea", Price: 20, Qty: 2}},
				Payment: models.Payment{Method: models.PaymentQR, Amount: 40},
			},
			wantCode:   http.StatusOK,
			wantInBody: "Order cancelled successfully",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			store := newStubOrderStore()
			if testCase.seed != nil {
				store.orders[testCase.seed.OrderID] = testCase.seed
			}
			h := newOrderHandler(store, &stubBillStore{})

			rec := doJSON(t, h.UpdateOrder, testCase.body)
			assert.Equal(t, testCase.wantCode, rec.Code)
			assert.Contains(t, rec.Body.String(), testCase.wantInBody)
		})
	}
}
