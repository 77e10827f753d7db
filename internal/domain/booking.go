package domain

import (
	"time"

	"github.com/villidata/newfork/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking. It is frozen
// data on the booking: nothing in this service processes payments.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
)

// Booking represents an appointment for one or more services performed by
// a single staff member in one sitting.
type Booking struct {
	ID string

	CustomerID    string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string

	StaffID    string
	ServiceIDs []string

	BookingDate time.Time
	StartTime   types.TimeString

	// TotalDurationMinutes and TotalPrice are computed from the service
	// catalog when the booking is created or its services change, and are
	// never recomputed if the catalog changes afterwards.
	TotalDurationMinutes int
	TotalPrice           float64

	Status        BookingStatus
	PaymentMethod string
	PaymentStatus PaymentStatus

	Notes      *string
	AdminNotes *string

	// Home-service visit: the travel fee is frozen into TotalPrice.
	IsHomeService  bool
	ServiceAddress *string
	TravelFee      float64

	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking blocks its time slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsTerminal returns true if no further status transition is allowed
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled
}

// CanBeConfirmed returns true if the booking can move to confirmed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the booking can move to cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanBeCompleted returns true if the booking can move to completed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusConfirmed
}

// CanBeRescheduled returns true if the booking's date/time may change.
// Rescheduling is a mutation of an active booking, not a status of its own.
func (b *Booking) CanBeRescheduled() bool {
	return b.IsActive()
}

// EndTime returns the exclusive end of the booking's interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.TotalDurationMinutes)
}

// BookingsFilter narrows admin booking listings
type BookingsFilter struct {
	StaffID         *string
	Date            *time.Time
	Status          *BookingStatus
	IncludeInactive bool
}
