package service

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZEESHAN8692/restaurant-backend/models"
)

type fakeOrderStore struct {
	mu     sync.Mutex
	orders map[string]*models.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: map[string]*models.Order{}}
}

func (f *fakeOrderStore) CreateOrder(order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *order
	f.orders[order.OrderID] = &cp
	return nil
}

func (f *fakeOrderStore) GetOrderByID(orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, nil
	}
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) CompletePending(orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.Status != models.OrderPendingPayment {
		return nil, nil
	}
	order.Status = models.OrderCompleted
	order.Payment.Status = models.PaymentVerified
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) CancelPending(orderID string) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok || order.Status != models.OrderPendingPayment {
		return nil, nil
	}
	order.Status = models.OrderCancelled
	order.Payment.Status = models.PaymentFailed
	cp := *order
	return &cp, nil
}

func (f *fakeOrderStore) ListPendingOrders() ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var pending []models.Order
	for _, order := range f.orders {
		if order.Status == models.OrderPendingPayment {
			pending = append(pending, *order)
		}
	}
	return pending, nil
}

func (f *fakeOrderStore) ListCompletedToday() ([]models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var completed []models.Order
	for _, order := range f.orders {
		if order.Status == models.OrderCompleted {
			completed = append(completed, *order)
		}
	}
	return completed, nil
}

type fakeBillStore struct {
	mu    sync.Mutex
	bills []models.Bill
}

func (f *fakeBillStore) CreateBill(bill *models.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills = append(f.bills, *bill)
	return nil
}

type menuEntry struct {
	price    float64
	category string
}

type fakePriceLookup struct {
	menu map[string]menuEntry
}

func (f *fakePriceLookup) ActivePrice(name string) (float64, string, error) {
	entry, ok := f.menu[name]
	if !ok {
		return 0, "", ErrUnknownItem
	}
	return entry.price, entry.category, nil
}

type fakeQR struct{}

func (fakeQR) PaymentQR(amount float64, orderID string) (string, error) {
	return "data:image/png;base64,Zg==", nil
}

func newTestService() (*OrderService, *fakeOrderStore, *fakeBillStore) {
	orders := newFakeOrderStore()
	bills := &fakeBillStore{}
	prices := &fakePriceLookup{menu: map[string]menuEntry{
		"Tea":    {price: 20, category: "Beverages"},
		"Samosa": {price: 15, category: "Snacks"},
	}}
	svc := NewOrderService(orders, bills, prices, UUIDAllocator{}, fakeQR{})
	return svc, orders, bills
}

func TestPlaceOrder(t *testing.T) {
	tests := []struct {
		name    string
		input   PlaceOrderInput
		wantErr error
	}{
		{
			name: "valid order",
			input: PlaceOrderInput{
				Items:        []models.OrderItem{{Name: "Tea", Qty: 2}, {Name: "Samosa", Qty: 3}},
				CustomerName: "Asha",
				Phone:        "9876543210",
			},
		},
		{
			name: "no items",
			input: PlaceOrderInput{
				CustomerName: "Asha",
				Phone:        "9876543210",
			},
			wantErr: ErrInvalidOrder,
		},
		{
			name: "missing customer",
			input: PlaceOrderInput{
				Items: []models.OrderItem{{Name: "Tea", Qty: 1}},
				Phone: "9876543210",
			},
			wantErr: ErrInvalidOrder,
		},
		{
			name: "unknown item",
			input: PlaceOrderInput{
				Items:        []models.OrderItem{{Name: "Pizza", Qty: 1}},
				CustomerName: "Asha",
				Phone:        "9876543210",
			},
			wantErr: ErrUnknownItem,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			svc, orders, _ := newTestService()

			result, err := svc.PlaceOrder(testCase.input)
			if testCase.wantErr != nil {
				assert.ErrorIs(t, err, testCase.wantErr)
				assert.Nil(t, result)
				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, result.OrderID)
			assert.Contains(t, result.QRCodeImage, "data:image/png;base64,")

			stored, err := orders.GetOrderByID(result.OrderID)
			require.NoError(t, err)
			require.NotNil(t, stored)
			assert.Equal(t, models.OrderPendingPayment, stored.Status)
			assert.Equal(t, models.PaymentQR, stored.Payment.Method)
			assert.Equal(t, models.PaymentPending, stored.Payment.Status)
		})
	}
}

func TestPlaceOrderComputesTotalFromCatalog(t *testing.T) {
	svc, orders, _ := newTestService()

	// client lies about prices; the catalog wins
	result, err := svc.PlaceOrder(PlaceOrderInput{
		Items: []models.OrderItem{
			{Name: "Tea", Price: 1, Qty: 2},
			{Name: "Samosa", Price: 1, Qty: 3},
		},
		CustomerName: "Asha",
		Phone:        "9876543210",
	})
	require.NoError(t, err)
	assert.Equal(t, 85.0, result.Amount)

	stored, err := orders.GetOrderByID(result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 85.0, stored.Payment.Amount)
	assert.Equal(t, 20.0, stored.Items[0].Price)
	assert.Equal(t, "Beverages", stored.Items[0].Category)
}

func TestTransitionCompleted(t *testing.T) {
	svc, orders, bills := newTestService()

	result, err := svc.PlaceOrder(PlaceOrderInput{
		Items:        []models.OrderItem{{Name: "Tea", Qty: 2}, {Name: "Samosa", Qty: 3}},
		CustomerName: "Asha",
		Phone:        "9876543210",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Transition(result.OrderID, models.OrderCompleted))

	stored, _ := orders.GetOrderByID(result.OrderID)
	assert.Equal(t, models.OrderCompleted, stored.Status)
	assert.Equal(t, models.PaymentVerified, stored.Payment.Status)

	require.Len(t, bills.bills, 1)
	bill := bills.bills[0]
	assert.Equal(t, 85.0, bill.TotalAmount)
	assert.Equal(t, models.PaymentUPI, bill.PaymentMethod)
	assert.Equal(t, "Asha", bill.CustomerName)
	assert.Equal(t, "9876543210", bill.CustomerPhone)
	assert.Len(t, bill.Items, 2)
}

func TestTransitionCancelled(t *testing.T) {
	svc, orders, bills := newTestService()

	result, err := svc.PlaceOrder(PlaceOrderInput{
		Items:        []models.OrderItem{{Name: "Tea", Qty: 1}},
		CustomerName: "Asha",
		Phone:        "9876543210",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Transition(result.OrderID, models.OrderCancelled))

	stored, _ := orders.GetOrderByID(result.OrderID)
	assert.Equal(t, models.OrderCancelled, stored.Status)
	assert.Equal(t, models.PaymentFailed, stored.Payment.Status)
	assert.Empty(t, bills.bills)
}

func TestTransitionRejectsNonPending(t *testing.T) {
	svc, _, bills := newTestService()

	result, err := svc.PlaceOrder(PlaceOrderInput{
		Items:        []models.OrderItem{{Name: "Tea", Qty: 1}},
		CustomerName: "Asha",
		Phone:        "9876543210",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Transition(result.OrderID, models.OrderCompleted))

	// second transition must fail, whichever target it asks for
	assert.ErrorIs(t, svc.Transition(result.OrderID, models.OrderCompleted), ErrOrderNotPending)
	assert.ErrorIs(t, svc.Transition(result.OrderID, models.OrderCancelled), ErrOrderNotPending)
	assert.Len(t, bills.bills, 1)
}

func TestTransitionUnknownOrder(t *testing.T) {
	svc, _, _ := newTestService()
	assert.ErrorIs(t, svc.Transition("ORD-missing", models.OrderCompleted), ErrOrderNotFound)
}

func TestTransitionInvalidTarget(t *testing.T) {
	svc, _, _ := newTestService()
	assert.ErrorIs(t, svc.Transition("ORD-any", models.OrderProcessing), ErrInvalidStatus)
	assert.ErrorIs(t, svc.Transition("ORD-any", models.OrderStatus("paid")), ErrInvalidStatus)
}

func TestConcurrentCompletionCreatesOneBill(t *testing.T) {
	svc, _, bills := newTestService()

	result, err := svc.PlaceOrder(PlaceOrderInput{
		Items:        []models.OrderItem{{Name: "Tea", Qty: 2}},
		CustomerName: "Asha",
		Phone:        "9876543210",
	})
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Transition(result.OrderID, models.OrderCompleted)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrOrderNotPending)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Len(t, bills.bills, 1)
}

func TestBillFromOrderRecomputesMissingAmount(t *testing.T) {
	order := &models.Order{
		CustomerName: "Asha",
		Phone:        "9876543210",
		Items: []models.OrderItem{
			{Name: "Tea", Price: 20, Qty: 2},
			{Name: "Samosa", Price: 15, Qty: 3},
		},
		Payment: models.Payment{Method: models.PaymentQR, Amount: 0},
	}

	bill := billFromOrder(order)
	assert.Equal(t, 85.0, bill.TotalAmount)
	assert.Equal(t, models.PaymentUPI, bill.PaymentMethod)
}
