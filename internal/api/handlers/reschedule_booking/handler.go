package reschedule_booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/villidata/newfork/internal/api/handlers"
	"github.com/villidata/newfork/internal/domain"
	rescheduleBooking "github.com/villidata/newfork/internal/usecase/reschedule_booking"
	"github.com/villidata/newfork/pkg/types"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgInvalidDateOrTime  = "invalid booking date or time, expected YYYY-MM-DD and HH:MM"
	msgBookingNotFound    = "booking not found"
	msgStaffNotFound      = "staff member not found"
	msgNotReschedulable   = "booking cannot be rescheduled"
	msgStaffClosed        = "staff member is not available on this date"
	msgSlotConflict       = "time slot is not available"
	msgDateInPast         = "booking date must not be in the past"
)

type conflictResponse struct {
	Error                string `json:"error"`
	ConflictingStartTime string `json:"conflictingStartTime,omitempty"`
}

type closedResponse struct {
	Error  string `json:"error"`
	Closed bool   `json:"closed"`
}

// RescheduleBookingRequest HTTP request model
type RescheduleBookingRequest struct {
	BookingDate string `json:"bookingDate"` // "2026-09-15"
	StartTime   string `json:"startTime"`   // "10:00"
	Confirm     bool   `json:"confirm,omitempty"`
}

type Handler struct {
	useCase RescheduleBookingUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/bookings/{bookingId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	var req RescheduleBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /bookings/%s/reschedule - Invalid request body: %v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	date, err := time.Parse(domain.DateFormat, req.BookingDate)
	if err != nil {
		h.logger.Warn("PUT /bookings/%s/reschedule - Invalid date %q: %v", bookingID, req.BookingDate, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		h.logger.Warn("PUT /bookings/%s/reschedule - Invalid time %q: %v", bookingID, req.StartTime, err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &rescheduleBooking.Request{
		BookingID: bookingID,
		Date:      date,
		StartTime: startTime,
		Confirm:   req.Confirm,
	})
	if err != nil {
		var conflict *rescheduleBooking.SlotConflictError

		switch {
		case errors.As(err, &conflict):
			h.logger.Warn("PUT /bookings/%s/reschedule - Slot conflict: conflicting=%s", bookingID, conflict.ConflictingStartTime)
			handlers.RespondJSON(w, http.StatusConflict, conflictResponse{
				Error:                msgSlotConflict,
				ConflictingStartTime: conflict.ConflictingStartTime.String(),
			})

		case errors.Is(err, rescheduleBooking.ErrStaffClosed):
			h.logger.Warn("PUT /bookings/%s/reschedule - Staff closed on %s", bookingID, req.BookingDate)
			handlers.RespondJSON(w, http.StatusConflict, closedResponse{
				Error:  msgStaffClosed,
				Closed: true,
			})

		case errors.Is(err, rescheduleBooking.ErrBookingNotFound):
			h.logger.Warn("PUT /bookings/%s/reschedule - Booking not found", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, rescheduleBooking.ErrStaffNotFound):
			h.logger.Warn("PUT /bookings/%s/reschedule - Staff not found", bookingID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, rescheduleBooking.ErrNotReschedulable):
			h.logger.Warn("PUT /bookings/%s/reschedule - Not reschedulable", bookingID)
			handlers.RespondBadRequest(w, msgNotReschedulable)

		case errors.Is(err, rescheduleBooking.ErrInvalidDate):
			h.logger.Warn("PUT /bookings/%s/reschedule - Date in past: %s", bookingID, req.BookingDate)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, rescheduleBooking.ErrInvalidInput):
			h.logger.Warn("PUT /bookings/%s/reschedule - Invalid input: %v", bookingID, err)
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("PUT /bookings/%s/reschedule - Failed: %v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /bookings/%s/reschedule - Moved to %s %s", bookingID, result.BookingDate, result.StartTime)
	handlers.RespondJSON(w, http.StatusOK, result)
}
