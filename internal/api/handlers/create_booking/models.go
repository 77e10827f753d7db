package create_booking

import (
	"time"

	"github.com/villidata/newfork/internal/domain"
	createBooking "github.com/villidata/newfork/internal/usecase/create_booking"
	"github.com/villidata/newfork/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CustomerID     string   `json:"customerId,omitempty"`
	CustomerName   string   `json:"customerName"`
	CustomerEmail  string   `json:"customerEmail"`
	CustomerPhone  string   `json:"customerPhone,omitempty"`
	StaffID        string   `json:"staffId"`
	ServiceIDs     []string `json:"serviceIds"`
	BookingDate    string   `json:"bookingDate"` // "2026-09-15"
	StartTime      string   `json:"startTime"`   // "10:00"
	PaymentMethod  string   `json:"paymentMethod,omitempty"`
	Notes          *string  `json:"notes,omitempty"`
	IsHomeService  bool     `json:"isHomeService,omitempty"`
	ServiceAddress *string  `json:"serviceAddress,omitempty"`
	TravelFee      float64  `json:"travelFee,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                   string   `json:"id"`
	CustomerName         string   `json:"customerName"`
	StaffID              string   `json:"staffId"`
	ServiceIDs           []string `json:"serviceIds"`
	BookingDate          string   `json:"bookingDate"`
	StartTime            string   `json:"startTime"`
	EndTime              string   `json:"endTime"`
	TotalDurationMinutes int      `json:"totalDurationMinutes"`
	TotalPrice           float64  `json:"totalPrice"`
	Status               string   `json:"status"`
	PaymentStatus        string   `json:"paymentStatus"`
	CreatedAt            string   `json:"createdAt"`
	UpdatedAt            string   `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the usecase model
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:     r.CustomerID,
		CustomerName:   r.CustomerName,
		CustomerEmail:  r.CustomerEmail,
		CustomerPhone:  r.CustomerPhone,
		StaffID:        r.StaffID,
		ServiceIDs:     r.ServiceIDs,
		Date:           bookingDate,
		StartTime:      startTime,
		PaymentMethod:  r.PaymentMethod,
		Notes:          r.Notes,
		IsHomeService:  r.IsHomeService,
		ServiceAddress: r.ServiceAddress,
		TravelFee:      r.TravelFee,
	}, nil
}

// FromUseCaseResponse converts the usecase response into the HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:                   resp.ID,
		CustomerName:         resp.CustomerName,
		StaffID:              resp.StaffID,
		ServiceIDs:           resp.ServiceIDs,
		BookingDate:          resp.BookingDate.Format(domain.DateFormat),
		StartTime:            resp.StartTime.String(),
		EndTime:              resp.EndTime.String(),
		TotalDurationMinutes: resp.TotalDurationMinutes,
		TotalPrice:           resp.TotalPrice,
		Status:               resp.Status,
		PaymentStatus:        resp.PaymentStatus,
		CreatedAt:            resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:            resp.UpdatedAt.Format(time.RFC3339),
	}
}
