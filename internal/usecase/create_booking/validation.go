package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/villidata/newfork/internal/domain"
)

func validateRequest(req *Request) error {
	if strings.TrimSpace(req.CustomerName) == "" {
		return fmt.Errorf("%w: customerName is required", ErrInvalidInput)
	}

	if strings.TrimSpace(req.CustomerEmail) == "" {
		return fmt.Errorf("%w: customerEmail is required", ErrInvalidInput)
	}
	if !strings.Contains(req.CustomerEmail, "@") {
		return fmt.Errorf("%w: customerEmail is not a valid address", ErrInvalidInput)
	}

	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}

	if len(req.ServiceIDs) == 0 {
		return fmt.Errorf("%w: at least one serviceID is required", ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServicesPerBooking {
		return fmt.Errorf("%w: at most %d services per booking", ErrInvalidInput, domain.MaxServicesPerBooking)
	}
	seen := make(map[string]struct{}, len(req.ServiceIDs))
	for _, id := range req.ServiceIDs {
		if id == "" {
			return fmt.Errorf("%w: empty serviceID", ErrInvalidInput)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate serviceID %s", ErrInvalidInput, id)
		}
		seen[id] = struct{}{}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}
	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.IsHomeService && (req.ServiceAddress == nil || strings.TrimSpace(*req.ServiceAddress) == "") {
		return fmt.Errorf("%w: serviceAddress is required for home service", ErrInvalidInput)
	}
	if req.TravelFee < 0 {
		return fmt.Errorf("%w: travelFee must not be negative", ErrInvalidInput)
	}

	return nil
}

func validateDate(bookingDate, now time.Time) error {
	dateOnly := time.Date(bookingDate.Year(), bookingDate.Month(), bookingDate.Day(), 0, 0, 0, 0, bookingDate.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrInvalidDate
	}
	return nil
}

// snapshotTotals sums the catalog durations and prices in request order.
// The totals freeze onto the booking and never track later catalog edits.
func snapshotTotals(requested []string, services []*domain.Service) (durationMinutes int, price float64, err error) {
	byID := make(map[string]*domain.Service, len(services))
	for _, s := range services {
		byID[s.ID] = s
	}

	for _, id := range requested {
		s, ok := byID[id]
		if !ok {
			return 0, 0, fmt.Errorf("%w: service %s", ErrServiceNotFound, id)
		}
		durationMinutes += s.DurationMinutes
		price += s.Price
	}

	if durationMinutes <= 0 {
		return 0, 0, fmt.Errorf("%w: services have no duration", ErrInvalidInput)
	}

	return durationMinutes, price, nil
}
