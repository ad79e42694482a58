package models

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	OrderPendingPayment OrderStatus = "pending_payment"
	OrderProcessing     OrderStatus = "processing"
	OrderCompleted      OrderStatus = "completed"
	OrderCancelled      OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentFailed   PaymentStatus = "failed"
)

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "Cash"
	PaymentUPI  PaymentMethod = "UPI"
	PaymentCard PaymentMethod = "Card"
	PaymentQR   PaymentMethod = "QR"
)

func (m PaymentMethod) IsValid() bool {
	return m == PaymentCash || m == PaymentUPI || m == PaymentCard || m == PaymentQR
}

// OrderItem is a denormalized copy of the product at the time of ordering,
// not a reference. Later catalog edits never touch placed orders.
type OrderItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Category string  `json:"category,omitempty"`
}

type Payment struct {
	Method    PaymentMethod `json:"method"`
	Amount    float64       `json:"amount"`
	QRCodeURL string        `json:"qrCodeUrl"`
	Status    PaymentStatus `json:"status"`
}

type Order struct {
	ID           uuid.UUID   `db:"id" json:"-"`
	OrderID      string      `db:"order_id" json:"orderId"`
	Items        []OrderItem `db:"items" json:"items"`
	CustomerName string      `db:"customer_name" json:"customerName"`
	Phone        string      `db:"phone" json:"phone"`
	Payment      Payment     `db:"-" json:"payment"`
	Status       OrderStatus `db:"status" json:"status"`
	TableNumber  *int        `db:"table_number" json:"table_number"`
	CreatedAt    time.Time   `db:"created_at" json:"createdAt"`
}
