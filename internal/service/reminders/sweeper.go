package reminders

import (
	"context"
	"time"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/internal/service/notifications"
)

const (
	outcomeSent    = "sent"
	outcomeSkipped = "skipped"
	outcomeFailed  = "failed"
)

// SweepResult summarizes one sweep run
type SweepResult struct {
	Date    string `json:"date"`
	Due     int    `json:"due"`
	Sent    int    `json:"sent"`
	Skipped int    `json:"skipped"`
	Failed  int    `json:"failed"`
}

// Sweeper sends reminder emails for tomorrow's active bookings. Each
// booking's reminder_sent flag is claimed before sending, so overlapping
// sweeps (the timer loop and the manual admin trigger, or two replicas)
// never email the same customer twice.
type Sweeper struct {
	bookingRepo BookingRepository
	dispatcher  NotificationDispatcher
	metrics     MetricsCollector
	location    *time.Location
	hour        int
	timeNow     TimeProvider
	logger      Logger
}

// NewSweeper creates a reminder sweeper. hour is the local hour of day
// after which the timer loop starts sweeping.
func NewSweeper(
	bookingRepo BookingRepository,
	dispatcher NotificationDispatcher,
	metrics MetricsCollector,
	location *time.Location,
	hour int,
	timeNow TimeProvider,
	logger Logger,
) *Sweeper {
	if location == nil {
		location = time.UTC
	}
	return &Sweeper{
		bookingRepo: bookingRepo,
		dispatcher:  dispatcher,
		metrics:     metrics,
		location:    location,
		hour:        hour,
		timeNow:     timeNow,
		logger:      logger,
	}
}

// Sweep sends reminders for every active booking on tomorrow's date that
// has not been reminded yet. Safe to call any number of times.
func (s *Sweeper) Sweep(ctx context.Context) (*SweepResult, error) {
	now := s.timeNow.Now().In(s.location)
	tomorrow := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	result := &SweepResult{Date: tomorrow.Format(domain.DateFormat)}

	due, err := s.bookingRepo.ListDueReminders(ctx, tomorrow)
	if err != nil {
		s.logger.Error("Sweep: failed to list due reminders for %s: %v", result.Date, err)
		return nil, err
	}
	result.Due = len(due)

	if len(due) == 0 {
		s.logger.Info("Sweep: no reminders due for %s", result.Date)
		return result, nil
	}

	s.logger.Info("Sweep: %d reminders due for %s", len(due), result.Date)

	for _, booking := range due {
		claimed, err := s.bookingRepo.ClaimReminder(ctx, booking.ID)
		if err != nil {
			s.logger.Error("Sweep: failed to claim reminder for booking id=%s: %v", booking.ID, err)
			s.metrics.IncReminder(outcomeFailed)
			result.Failed++
			continue
		}
		if !claimed {
			// another sweep got here first
			s.metrics.IncReminder(outcomeSkipped)
			result.Skipped++
			continue
		}

		err = s.dispatcher.DispatchSync(ctx, notifications.Message{
			Event:         notifications.EventReminder,
			RecipientName: booking.CustomerName,
			Recipient:     booking.CustomerEmail,
			Vars: map[string]string{
				"booking_id":   booking.ID,
				"booking_date": booking.BookingDate.Format(domain.DateFormat),
				"start_time":   booking.StartTime.String(),
			},
		})
		if err != nil {
			s.logger.Error("Sweep: reminder for booking id=%s failed after claim: %v", booking.ID, err)
			s.metrics.IncReminder(outcomeFailed)
			result.Failed++
			continue
		}

		s.metrics.IncReminder(outcomeSent)
		result.Sent++
	}

	s.logger.Info("Sweep: done for %s: sent=%d skipped=%d failed=%d", result.Date, result.Sent, result.Skipped, result.Failed)
	return result, nil
}

// RunLoop sweeps on the given interval whenever local time has passed the
// configured hour. Returns when ctx is cancelled.
func (s *Sweeper) RunLoop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("RunLoop: reminder loop started, interval=%s, hour=%d, tz=%s", interval, s.hour, s.location)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("RunLoop: reminder loop stopped")
			return
		case <-ticker.C:
			if s.timeNow.Now().In(s.location).Hour() < s.hour {
				continue
			}
			if _, err := s.Sweep(ctx); err != nil {
				s.logger.Error("RunLoop: sweep failed: %v", err)
			}
		}
	}
}
