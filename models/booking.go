package models

import (
	"time"

	"github.com/google/uuid"
)

type TableBooking struct {
	ID        uuid.UUID  `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Phone     string     `db:"phone" json:"phone"`
	Guests    int        `db:"guests" json:"guests"`
	Time      *time.Time `db:"booked_for" json:"time"`
	CreatedAt time.Time  `db:"created_at" json:"createdAt"`
}
