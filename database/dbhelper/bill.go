package dbhelper

import (
	"database/sql"
	"encoding/json"

	"github.com/ZEESHAN8692/restaurant-backend/models"
)

type BillStore struct {
	DB *sql.DB
}

func NewBillStore(db *sql.DB) *BillStore {
	return &BillStore{DB: db}
}

func (s *BillStore) CreateBill(bill *models.Bill) error {
	items, err := json.Marshal(bill.Items)
	if err != nil {
		return err
	}

	return s.DB.QueryRow(`
		INSERT INTO bills (customer_name, customer_phone, items, total_amount, payment_method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		bill.CustomerName, bill.CustomerPhone, items, bill.TotalAmount, bill.PaymentMethod).
		Scan(&bill.ID, &bill.CreatedAt)
}

func (s *BillStore) ListBills() ([]models.Bill, error) {
	rows, err := s.DB.Query(`
		SELECT id, customer_name, customer_phone, items, total_amount, payment_method, created_at
		FROM bills
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bills []models.Bill
	for rows.Next() {
		var bill models.Bill
		var items []byte
		if err := rows.Scan(&bill.ID, &bill.CustomerName, &bill.CustomerPhone, &items,
			&bill.TotalAmount, &bill.PaymentMethod, &bill.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &bill.Items); err != nil {
			return nil, err
		}
		bills = append(bills, bill)
	}
	return bills, rows.Err()
}
