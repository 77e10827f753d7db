package create_booking

import (
	"time"

	"github.com/villidata/newfork/pkg/types"
)

// Request is the booking creation request
type Request struct {
	CustomerID    string           // external customer id (optional)
	CustomerName  string           // customer display name
	CustomerEmail string           // notification recipient
	CustomerPhone string           // contact phone (optional)
	StaffID       string           // staff member performing the services
	ServiceIDs    []string         // one or more catalog services, done in one sitting
	Date          time.Time        // booking date (no time component)
	StartTime     types.TimeString // slot start, e.g. "10:00"
	PaymentMethod string           // frozen onto the booking, never processed here
	Notes         *string          // customer notes (optional)

	// Home-service visit
	IsHomeService  bool
	ServiceAddress *string
	TravelFee      float64
}

// Response is the created booking
type Response struct {
	ID                   string           // created booking id
	CustomerName         string           // customer display name
	StaffID              string           // staff member
	ServiceIDs           []string         // booked services
	BookingDate          time.Time        // booking date
	StartTime            types.TimeString // slot start
	EndTime              types.TimeString // exclusive slot end
	TotalDurationMinutes int              // sum of the service durations
	TotalPrice           float64          // sum of the service prices plus travel fee
	Status               string           // always "pending" on creation
	PaymentStatus        string           // always "pending" on creation

	CreatedAt time.Time
	UpdatedAt time.Time
}
