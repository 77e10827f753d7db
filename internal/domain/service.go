package domain

import "time"

// Service is a bookable catalog entry. Bookings snapshot its duration and
// price at creation time, so later catalog edits never change existing
// bookings.
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           float64
	Category        string
	Description     string
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
