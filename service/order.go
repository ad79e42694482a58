package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ZEESHAN8692/restaurant-backend/models"
)

var (
	ErrOrderNotFound   = errors.New("order not found")
	ErrOrderNotPending = errors.New("order is not pending payment")
	ErrUnknownItem     = errors.New("item is not on the menu")
	ErrInvalidStatus   = errors.New("invalid status")
	ErrInvalidOrder    = errors.New("invalid order")
)

// OrderStore persists orders. CompletePending and CancelPending are atomic
// conditional updates: they flip the status only while it is still
// pending_payment and return nil when no row matched, so two concurrent
// transitions on the same order cannot both succeed.
type OrderStore interface {
	CreateOrder(order *models.Order) error
	GetOrderByID(orderID string) (*models.Order, error)
	CompletePending(orderID string) (*models.Order, error)
	CancelPending(orderID string) (*models.Order, error)
	ListPendingOrders() ([]models.Order, error)
	ListCompletedToday() ([]models.Order, error)
}

type BillStore interface {
	CreateBill(bill *models.Bill) error
}

// PriceLookup resolves a line item against the catalog. The catalog price is
// authoritative; client-supplied prices are never trusted.
type PriceLookup interface {
	ActivePrice(name string) (price float64, category string, err error)
}

type IDAllocator interface {
	NewOrderID() string
}

type QRGenerator interface {
	PaymentQR(amount float64, orderID string) (string, error)
}

type UUIDAllocator struct{}

func (UUIDAllocator) NewOrderID() string {
	return "ORD-" + uuid.NewString()
}

type OrderService struct {
	orders OrderStore
	bills  BillStore
	prices PriceLookup
	ids    IDAllocator
	qr     QRGenerator
}

func NewOrderService(orders OrderStore, bills BillStore, prices PriceLookup, ids IDAllocator, qr QRGenerator) *OrderService {
	return &OrderService{
		orders: orders,
		bills:  bills,
		prices: prices,
		ids:    ids,
		qr:     qr,
	}
}

type PlaceOrderInput struct {
	Items        []models.OrderItem
	CustomerName string
	Phone        string
	TableNumber  *int
}

type PlaceOrderResult struct {
	OrderID     string
	QRCodeImage string
	Amount      float64
}

func (s *OrderService) PlaceOrder(in PlaceOrderInput) (*PlaceOrderResult, error) {
	if len(in.Items) == 0 {
		return nil, fmt.Errorf("%w: at least one item is required", ErrInvalidOrder)
	}
	if in.CustomerName == "" || in.Phone == "" {
		return nil, fmt.Errorf("%w: customer name and phone are required", ErrInvalidOrder)
	}

	items := make([]models.OrderItem, 0, len(in.Items))
	var total float64
	for _, item := range in.Items {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: item name is required", ErrInvalidOrder)
		}
		qty := item.Qty
		if qty <= 0 {
			qty = 1
		}

		price, category, err := s.prices.ActivePrice(item.Name)
		if err != nil {
			if errors.Is(err, ErrUnknownItem) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownItem, item.Name)
			}
			return nil, err
		}

		items = append(items, models.OrderItem{
			Name:     item.Name,
			Price:    price,
			Qty:      qty,
			Category: category,
		})
		total += price * float64(qty)
	}

	orderID := s.ids.NewOrderID()

	qrImage, err := s.qr.PaymentQR(total, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment QR: %w", err)
	}

	order := &models.Order{
		OrderID:      orderID,
		Items:        items,
		CustomerName: in.CustomerName,
		Phone:        in.Phone,
		Status:       models.OrderPendingPayment,
		TableNumber:  in.TableNumber,
		Payment: models.Payment{
			Method:    models.PaymentQR,
			Amount:    total,
			QRCodeURL: qrImage,
			Status:    models.PaymentPending,
		},
	}

	if err := s.orders.CreateOrder(order); err != nil {
		return nil, err
	}

	return &PlaceOrderResult{
		OrderID:     orderID,
		QRCodeImage: qrImage,
		Amount:      total,
	}, nil
}

// Transition moves a pending order to completed or cancelled. Completion
// verifies the payment and materializes exactly one bill; the conditional
// update in the store guarantees a second caller loses the race.
func (s *OrderService) Transition(orderID string, target models.OrderStatus) error {
	if target != models.OrderCompleted && target != models.OrderCancelled {
		return ErrInvalidStatus
	}

	order, err := s.orders.GetOrderByID(orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}
	if order.Status != models.OrderPendingPayment {
		return ErrOrderNotPending
	}

	if target == models.OrderCancelled {
		cancelled, err := s.orders.CancelPending(orderID)
		if err != nil {
			return err
		}
		if cancelled == nil {
			return ErrOrderNotPending
		}
		return nil
	}

	completed, err := s.orders.CompletePending(orderID)
	if err != nil {
		return err
	}
	if completed == nil {
		return ErrOrderNotPending
	}

	bill := billFromOrder(completed)
	if err := s.bills.CreateBill(bill); err != nil {
		logrus.WithError(err).WithField("order_id", orderID).Error("order completed but bill creation failed")
		return err
	}
	return nil
}

func (s *OrderService) PendingOrders() ([]models.Order, error) {
	return s.orders.ListPendingOrders()
}

func (s *OrderService) TodayCompletedOrders() ([]models.Order, error) {
	return s.orders.ListCompletedToday()
}

func billFromOrder(order *models.Order) *models.Bill {
	items := make([]models.BillItem, 0, len(order.Items))
	var computed float64
	for _, item := range order.Items {
		items = append(items, models.BillItem{
			Name:     item.Name,
			Price:    item.Price,
			Qty:      item.Qty,
			Category: item.Category,
		})
		computed += item.Price * float64(item.Qty)
	}

	total := order.Payment.Amount
	if total <= 0 {
		total = computed
	}

	// the scan-to-pay label is a presentation detail; settled money is UPI
	method := order.Payment.Method
	if method == models.PaymentQR {
		method = models.PaymentUPI
	}

	return &models.Bill{
		CustomerName:  order.CustomerName,
		CustomerPhone: order.Phone,
		Items:         items,
		TotalAmount:   total,
		PaymentMethod: method,
	}
}
