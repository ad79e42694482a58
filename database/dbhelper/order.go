package dbhelper

import (
	"database/sql"
	"encoding/json"

	"github.com/ZEESHAN8692/restaurant-backend/models"
)

// OrderStore is the Postgres implementation of service.OrderStore. Line items
// live in a JSONB column as value copies of the catalog at order time.
type OrderStore struct {
	DB *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{DB: db}
}

const orderColumns = `order_id, items, customer_name, phone,
	payment_method, payment_amount, payment_qr, payment_status,
	status, table_number, created_at`

func (s *OrderStore) CreateOrder(order *models.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}

	return s.DB.QueryRow(`
		INSERT INTO orders (order_id, items, customer_name, phone,
			payment_method, payment_amount, payment_qr, payment_status, status, table_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`,
		order.OrderID, items, order.CustomerName, order.Phone,
		order.Payment.Method, order.Payment.Amount, order.Payment.QRCodeURL, order.Payment.Status,
		order.Status, order.TableNumber).
		Scan(&order.ID, &order.CreatedAt)
}

func (s *OrderStore) GetOrderByID(orderID string) (*models.Order, error) {
	row := s.DB.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE order_id = $1`, orderID)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

// CompletePending flips a pending order to completed/verified in one
// conditional update. Returns nil when the order was no longer pending, which
// is how a concurrent second completion loses the race.
func (s *OrderStore) CompletePending(orderID string) (*models.Order, error) {
	row := s.DB.QueryRow(`
		UPDATE orders
		SET status = $2, payment_status = $3
		WHERE order_id = $1 AND status = $4
		RETURNING `+orderColumns,
		orderID, models.OrderCompleted, models.PaymentVerified, models.OrderPendingPayment)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderStore) CancelPending(orderID string) (*models.Order, error) {
	row := s.DB.QueryRow(`
		UPDATE orders
		SET status = $2, payment_status = $3
		WHERE order_id = $1 AND status = $4
		RETURNING `+orderColumns,
		orderID, models.OrderCancelled, models.PaymentFailed, models.OrderPendingPayment)

	order, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderStore) ListPendingOrders() ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		ORDER BY created_at ASC`, models.OrderPendingPayment)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

func (s *OrderStore) ListCompletedToday() ([]models.Order, error) {
	rows, err := s.DB.Query(`
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = $1
		  AND created_at >= date_trunc('day', now())
		  AND created_at < date_trunc('day', now()) + interval '1 day'
		ORDER BY created_at DESC`, models.OrderCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectOrders(rows)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var order models.Order
	var items []byte
	err := row.Scan(&order.OrderID, &items, &order.CustomerName, &order.Phone,
		&order.Payment.Method, &order.Payment.Amount, &order.Payment.QRCodeURL, &order.Payment.Status,
		&order.Status, &order.TableNumber, &order.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, err
	}
	return &order, nil
}

func collectOrders(rows *sql.Rows) ([]models.Order, error) {
	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}
