package models

import (
	"errors"
	"time"

	"github.com/villidata/newfork/internal/domain"
)

var (
	// ErrInvalidStatus is returned for a status string outside the enum
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request models

// ListBookingsRequest is the admin listing request
type ListBookingsRequest struct {
	StaffID         *string `json:"staffId,omitempty"`
	Date            *string `json:"date,omitempty"` // "2026-09-15"
	Status          *string `json:"status,omitempty"`
	IncludeInactive bool    `json:"includeInactive,omitempty"`
}

// ToDomainFilter converts the request into a domain filter
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StaffID:         r.StaffID,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return filter, err
		}
		filter.Date = &date
	}

	if r.Status != nil {
		status, ok := domain.ParseBookingStatus(*r.Status)
		if !ok {
			return filter, ErrInvalidStatus
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response models

// BookingResponse is the booking DTO returned over HTTP
type BookingResponse struct {
	ID                   string   `json:"id"`
	CustomerID           string   `json:"customerId"`
	CustomerName         string   `json:"customerName"`
	CustomerEmail        string   `json:"customerEmail"`
	CustomerPhone        string   `json:"customerPhone"`
	StaffID              string   `json:"staffId"`
	ServiceIDs           []string `json:"serviceIds"`
	BookingDate          string   `json:"bookingDate"` // "2026-09-15"
	StartTime            string   `json:"startTime"`   // "10:00"
	EndTime              string   `json:"endTime,omitempty"`
	TotalDurationMinutes int      `json:"totalDurationMinutes"`
	TotalPrice           float64  `json:"totalPrice"`
	Status               string   `json:"status"`
	PaymentMethod        string   `json:"paymentMethod"`
	PaymentStatus        string   `json:"paymentStatus"`
	Notes                *string  `json:"notes,omitempty"`
	AdminNotes           *string  `json:"adminNotes,omitempty"`
	IsHomeService        bool     `json:"isHomeService"`
	ServiceAddress       *string  `json:"serviceAddress,omitempty"`
	TravelFee            float64  `json:"travelFee"`
	ReminderSent         bool     `json:"reminderSent"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse wraps a list of bookings
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Conversions

// FromDomainBooking converts the domain model into the DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		CustomerID:           b.CustomerID,
		CustomerName:         b.CustomerName,
		CustomerEmail:        b.CustomerEmail,
		CustomerPhone:        b.CustomerPhone,
		StaffID:              b.StaffID,
		ServiceIDs:           b.ServiceIDs,
		BookingDate:          b.BookingDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		TotalDurationMinutes: b.TotalDurationMinutes,
		TotalPrice:           b.TotalPrice,
		Status:               string(b.Status),
		PaymentMethod:        b.PaymentMethod,
		PaymentStatus:        string(b.PaymentStatus),
		Notes:                b.Notes,
		AdminNotes:           b.AdminNotes,
		IsHomeService:        b.IsHomeService,
		ServiceAddress:       b.ServiceAddress,
		TravelFee:            b.TravelFee,
		ReminderSent:         b.ReminderSent,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = end.String()
	}

	return resp
}

// FromDomainBookings converts a slice of domain bookings into the list DTO
func FromDomainBookings(bookings []*domain.Booking) *BookingListResponse {
	out := make([]BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			out = append(out, *resp)
		}
	}
	return &BookingListResponse{Bookings: out}
}
