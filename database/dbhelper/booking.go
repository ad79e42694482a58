package dbhelper

import (
	"github.com/ZEESHAN8692/restaurant-backend/database"
	"github.com/ZEESHAN8692/restaurant-backend/models"
)

func CreateBooking(booking *models.TableBooking) error {
	return database.RestroDB.QueryRow(`
		INSERT INTO table_bookings (name, phone, guests, booked_for)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		booking.Name, booking.Phone, booking.Guests, booking.Time).
		Scan(&booking.ID, &booking.CreatedAt)
}

// ListUpcomingBookings returns bookings for the next seven days, soonest first.
func ListUpcomingBookings() ([]models.TableBooking, error) {
	rows, err := database.RestroDB.Query(`
		SELECT id, name, phone, guests, booked_for, created_at
		FROM table_bookings
		WHERE booked_for >= now() AND booked_for <= now() + interval '7 days'
		ORDER BY booked_for ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []models.TableBooking
	for rows.Next() {
		var b models.TableBooking
		if err := rows.Scan(&b.ID, &b.Name, &b.Phone, &b.Guests, &b.Time, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
