package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/villidata/newfork/internal/domain"
	staffRepo "github.com/villidata/newfork/internal/infra/storage/staff"
	"github.com/villidata/newfork/internal/scheduling"
)

// UseCase answers the available-slots query for one staff member and date.
//
// Slots are checked for conflicts at the listing granularity, not against
// any particular service duration: a slot shown here as free can still be
// rejected at creation time when the requested services run longer than
// one granularity step. Creation re-checks the full duration inside its
// transaction, so the listing stays advisory and the booking stays safe.
type UseCase struct {
	staffRepo          StaffRepository
	breakRepo          BreakRepository
	bookingRepo        BookingRepository
	calendar           *scheduling.Calendar
	granularityMinutes int
	logger             Logger
}

// NewUseCase creates the available-slots usecase
func NewUseCase(
	staffRepo StaffRepository,
	breakRepo BreakRepository,
	bookingRepo BookingRepository,
	calendar *scheduling.Calendar,
	granularityMinutes int,
	logger Logger,
) *UseCase {
	if granularityMinutes <= 0 {
		granularityMinutes = domain.DefaultSlotGranularityMinutes
	}
	return &UseCase{
		staffRepo:          staffRepo,
		breakRepo:          breakRepo,
		bookingRepo:        bookingRepo,
		calendar:           calendar,
		granularityMinutes: granularityMinutes,
		logger:             logger,
	}
}

// Execute returns the bookable start times for the staff member on the date
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: staff=%s, date=%s", req.StaffID, req.Date.Format(domain.DateFormat))

	// 1. Validate input
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		StaffID: req.StaffID,
		Date:    req.Date.Format(domain.DateFormat),
		Slots:   []string{},
	}

	// 2. Fetch the staff member
	staff, err := uc.staffRepo.GetByID(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}
	if !staff.IsActive {
		uc.logger.Warn("GetAvailableSlots: staff id=%s is inactive", req.StaffID)
		return nil, ErrStaffNotFound
	}

	// 3. Resolve the working window; a closed day is empty slots, not an error
	window, open := uc.calendar.ResolveWindow(staff, req.Date)
	if !open {
		uc.logger.Info("GetAvailableSlots: staff id=%s does not work on %s", req.StaffID, resp.Date)
		resp.Closed = true
		return resp, nil
	}

	// 4. Fetch the breaks that apply on this date
	allBreaks, err := uc.breakRepo.ListByStaff(ctx, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get breaks for staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get breaks: %v", ErrInternal, err)
	}
	dayBreaks := scheduling.BreaksFor(allBreaks, req.Date)

	// 5. Fetch the active bookings for this date
	bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(ctx, req.StaffID, req.Date, nil)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings for staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 6. Walk the candidate slots and keep the free ones
	for slot := range scheduling.Slots(window, uc.granularityMinutes) {
		if _, blocked, err := scheduling.BlockingInterval(slot, uc.granularityMinutes, dayBreaks); err != nil || blocked {
			continue
		}
		if taken, err := scheduling.Overlaps(slot, uc.granularityMinutes, bookings); err != nil || taken {
			continue
		}
		resp.Slots = append(resp.Slots, slot.String())
	}

	uc.logger.Info("GetAvailableSlots: staff=%s date=%s: %d slots available", req.StaffID, resp.Date, len(resp.Slots))
	return resp, nil
}

func validateRequest(req *Request) error {
	if req.StaffID == "" {
		return fmt.Errorf("%w: staffID is required", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	return nil
}
