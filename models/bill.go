package models

import (
	"time"

	"github.com/google/uuid"
)

type BillItem struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Qty      int     `json:"qty"`
	Category string  `json:"category,omitempty"`
}

// Bill is the immutable record of a completed sale. It is written once,
// either by the admin quick-bill flow or when an order is completed.
type Bill struct {
	ID            uuid.UUID     `db:"id" json:"id"`
	CustomerName  string        `db:"customer_name" json:"customerName"`
	CustomerPhone string        `db:"customer_phone" json:"customerPhone"`
	Items         []BillItem    `db:"items" json:"items"`
	TotalAmount   float64       `db:"total_amount" json:"totalAmount"`
	PaymentMethod PaymentMethod `db:"payment_method" json:"paymentMethod"`
	CreatedAt     time.Time     `db:"created_at" json:"createdAt"`
}
