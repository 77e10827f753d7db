package reminders

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/internal/service/notifications"
	"github.com/villidata/newfork/pkg/types"
)

type mockReminderRepo struct {
	mu sync.Mutex

	due      []*domain.Booking
	listErr  error
	claimed  map[string]bool
	claimErr error
	lastDate time.Time

	// listStale returns already-claimed bookings from the listing, as if
	// another sweep claimed them between the list and the claim.
	listStale bool
}

func newMockReminderRepo(due ...*domain.Booking) *mockReminderRepo {
	return &mockReminderRepo{due: due, claimed: make(map[string]bool)}
}

func (m *mockReminderRepo) ListDueReminders(_ context.Context, date time.Time) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastDate = date
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]*domain.Booking, 0, len(m.due))
	for _, b := range m.due {
		if m.listStale || !m.claimed[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockReminderRepo) ClaimReminder(_ context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.claimErr != nil {
		return false, m.claimErr
	}
	if m.claimed[id] {
		return false, nil
	}
	m.claimed[id] = true
	return true, nil
}

type syncDispatcher struct {
	mu       sync.Mutex
	messages []notifications.Message
	err      error
}

func (d *syncDispatcher) DispatchSync(_ context.Context, msg notifications.Message) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.messages = append(d.messages, msg)
	return nil
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{outcomes: make(map[string]int)}
}

func (m *countingMetrics) IncReminder(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reminderBooking(id string) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerName:  "Mette Jensen",
		CustomerEmail: "mette@example.com",
		BookingDate:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		StartTime:     types.TimeString("10:00"),
		Status:        domain.StatusConfirmed,
	}
}

func TestSweeper_Sweep(t *testing.T) {
	repo := newMockReminderRepo(reminderBooking("b1"), reminderBooking("b2"))
	dispatcher := &syncDispatcher{}
	metrics := newCountingMetrics()
	clock := fixedClock{now: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)}

	sweeper := NewSweeper(repo, dispatcher, metrics, time.UTC, 18, clock, nopLogger{})

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", result.Date)
	assert.Equal(t, 2, result.Due)
	assert.Equal(t, 2, result.Sent)
	assert.Equal(t, 0, result.Skipped)
	assert.Equal(t, 0, result.Failed)

	require.Len(t, dispatcher.messages, 2)
	assert.Equal(t, notifications.EventReminder, dispatcher.messages[0].Event)
	assert.Equal(t, "mette@example.com", dispatcher.messages[0].Recipient)
	assert.Equal(t, "2026-09-02", dispatcher.messages[0].Vars["booking_date"])
	assert.Equal(t, 2, metrics.outcomes["sent"])
}

func TestSweeper_Sweep_TomorrowInLocalTime(t *testing.T) {
	repo := newMockReminderRepo()
	// 23:30 UTC is already the next day two hours east
	clock := fixedClock{now: time.Date(2026, 8, 31, 23, 30, 0, 0, time.UTC)}
	location := time.FixedZone("UTC+2", 2*3600)

	sweeper := NewSweeper(repo, &syncDispatcher{}, newCountingMetrics(), location, 18, clock, nopLogger{})

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", result.Date)
	assert.Equal(t, "2026-09-02", repo.lastDate.Format(domain.DateFormat))
}

func TestSweeper_Sweep_SecondRunSendsNothing(t *testing.T) {
	repo := newMockReminderRepo(reminderBooking("b1"))
	dispatcher := &syncDispatcher{}
	clock := fixedClock{now: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)}

	sweeper := NewSweeper(repo, dispatcher, newCountingMetrics(), time.UTC, 18, clock, nopLogger{})

	first, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := sweeper.Sweep(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, second.Due)
	assert.Equal(t, 0, second.Sent)
	assert.Len(t, dispatcher.messages, 1)
}

func TestSweeper_Sweep_ClaimRace(t *testing.T) {
	repo := newMockReminderRepo(reminderBooking("b1"))
	// another sweep claimed the booking between this sweep's list and claim
	repo.listStale = true
	repo.claimed["b1"] = true
	dispatcher := &syncDispatcher{}
	metrics := newCountingMetrics()
	clock := fixedClock{now: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)}

	sweeper := NewSweeper(repo, dispatcher, metrics, time.UTC, 18, clock, nopLogger{})

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Due)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 1, metrics.outcomes["skipped"])
	assert.Empty(t, dispatcher.messages)
}

func TestSweeper_Sweep_DispatchFails(t *testing.T) {
	repo := newMockReminderRepo(reminderBooking("b1"))
	dispatcher := &syncDispatcher{err: errors.New("mailer down")}
	metrics := newCountingMetrics()
	clock := fixedClock{now: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)}

	sweeper := NewSweeper(repo, dispatcher, metrics, time.UTC, 18, clock, nopLogger{})

	result, err := sweeper.Sweep(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.Due)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, metrics.outcomes["failed"])
}

func TestSweeper_Sweep_ListFails(t *testing.T) {
	repo := newMockReminderRepo()
	repo.listErr = errors.New("db down")
	clock := fixedClock{now: time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)}

	sweeper := NewSweeper(repo, &syncDispatcher{}, newCountingMetrics(), time.UTC, 18, clock, nopLogger{})

	_, err := sweeper.Sweep(context.Background())

	assert.Error(t, err)
}
