package get_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/villidata/newfork/internal/api/handlers"
	"github.com/villidata/newfork/internal/service/bookings"
	"github.com/villidata/newfork/internal/service/bookings/models"
)

const msgInvalidFilter = "invalid filter parameters"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/bookings?staffId=&date=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.ListBookingsRequest{}

	query := r.URL.Query()
	if v := query.Get("staffId"); v != "" {
		req.StaffID = &v
	}
	if v := query.Get("date"); v != "" {
		req.Date = &v
	}
	if v := query.Get("status"); v != "" {
		req.Status = &v
	}
	if v := query.Get("includeInactive"); v != "" {
		include, err := strconv.ParseBool(v)
		if err != nil {
			h.logger.Warn("GET /bookings - Invalid includeInactive %q", v)
			handlers.RespondBadRequest(w, msgInvalidFilter)
			return
		}
		req.IncludeInactive = include
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /bookings - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /bookings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /bookings - %d bookings", len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result)
}
