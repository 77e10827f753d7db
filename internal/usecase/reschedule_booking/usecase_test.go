package reschedule_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/villidata/newfork/internal/domain"
	bookingRepo "github.com/villidata/newfork/internal/infra/storage/booking"
	staffRepo "github.com/villidata/newfork/internal/infra/storage/staff"
	"github.com/villidata/newfork/internal/scheduling"
	"github.com/villidata/newfork/internal/service/notifications"
	"github.com/villidata/newfork/pkg/types"
)

type mockBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*domain.Booking
}

func newMockBookingRepo(bookings ...*domain.Booking) *mockBookingRepo {
	m := &mockBookingRepo{bookings: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		m.bookings[b.ID] = b
	}
	return m
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (m *mockBookingRepo) GetActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID *string) ([]*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Booking
	for _, b := range m.bookings {
		if b.StaffID != staffID || !b.BookingDate.Equal(date) || !b.IsActive() {
			continue
		}
		if excludeID != nil && b.ID == *excludeID {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}

func (m *mockBookingRepo) UpdateSchedule(ctx context.Context, id string, date time.Time, startTime types.TimeString, status *domain.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	b.BookingDate = date
	b.StartTime = startTime
	if status != nil {
		b.Status = *status
	}
	return nil
}

type mockStaffRepo struct {
	staff map[string]*domain.Staff
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	s, ok := m.staff[id]
	if !ok {
		return nil, staffRepo.ErrStaffNotFound
	}
	return s, nil
}

type mockBreakRepo struct {
	breaks []*domain.StaffBreak
}

func (m *mockBreakRepo) ListByStaff(ctx context.Context, staffID string) ([]*domain.StaffBreak, error) {
	return m.breaks, nil
}

type passthroughTxManager struct{}

func (passthroughTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type recordingDispatcher struct {
	mu       sync.Mutex
	messages []notifications.Message
}

func (d *recordingDispatcher) Dispatch(msg notifications.Message) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
}

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var (
	// both Mondays
	originalDate = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)
	targetDate   = time.Date(2026, time.September, 14, 0, 0, 0, 0, time.UTC)
)

func workingWeek() domain.WeekSchedule {
	window := domain.DayWindow{Start: "09:00", End: "17:00", Enabled: true}
	return domain.WeekSchedule{
		Monday:    window,
		Tuesday:   window,
		Wednesday: window,
		Thursday:  window,
		Friday:    window,
	}
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:                   "b-1",
		CustomerName:         "Jens Hansen",
		CustomerEmail:        "jens@example.com",
		StaffID:              "s-1",
		BookingDate:          originalDate,
		StartTime:            "10:00",
		TotalDurationMinutes: 45,
		Status:               domain.StatusPending,
	}
}

func newTestUseCase(t *testing.T, repo *mockBookingRepo, breaks []*domain.StaffBreak) (*UseCase, *recordingDispatcher) {
	t.Helper()

	staffs := &mockStaffRepo{staff: map[string]*domain.Staff{
		"s-1": {ID: "s-1", Name: "Lars", IsActive: true, AvailableHours: workingWeek()},
	}}
	dispatcher := &recordingDispatcher{}

	uc := NewUseCase(
		repo,
		staffs,
		&mockBreakRepo{breaks: breaks},
		scheduling.NewCalendar(domain.WeekSchedule{}),
		passthroughTxManager{},
		dispatcher,
		nopLogger{},
	)
	uc.timeProvider = fixedClock{now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)}
	return uc, dispatcher
}

func TestExecute_MovesBookingAndSendsChanged(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, dispatcher := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      targetDate,
		StartTime: "13:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-14", resp.BookingDate)
	assert.Equal(t, types.TimeString("13:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("13:45"), resp.EndTime)
	assert.Equal(t, "pending", resp.Status)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, notifications.EventChanged, dispatcher.messages[0].Event)
}

func TestExecute_ConfirmingMoveSendsConfirmedInsteadOfChanged(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, dispatcher := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      targetDate,
		StartTime: "13:00",
		Confirm:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, notifications.EventConfirmed, dispatcher.messages[0].Event)
}

func TestExecute_SameSlotSucceedsWithoutEmail(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, dispatcher := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      originalDate,
		StartTime: "10:00",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-07", resp.BookingDate)
	assert.Equal(t, types.TimeString("10:00"), resp.StartTime)
	assert.Empty(t, dispatcher.messages)
}

func TestExecute_SameSlotWithConfirmSendsConfirmed(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, dispatcher := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      originalDate,
		StartTime: "10:00",
		Confirm:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, notifications.EventConfirmed, dispatcher.messages[0].Event)
}

func TestExecute_ExcludesItselfFromConflictCheck(t *testing.T) {
	// moving within the same day, 15 minutes later: the booking's own old
	// interval overlaps the target but must not block the move
	repo := newMockBookingRepo(testBooking())
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      originalDate,
		StartTime: "10:15",
	})
	require.NoError(t, err)
}

func TestExecute_RejectsConflictWithOtherBooking(t *testing.T) {
	other := &domain.Booking{
		ID:                   "b-2",
		StaffID:              "s-1",
		BookingDate:          targetDate,
		StartTime:            "13:30",
		TotalDurationMinutes: 30,
		Status:               domain.StatusConfirmed,
	}
	repo := newMockBookingRepo(testBooking(), other)
	uc, dispatcher := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      targetDate,
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("13:30"), conflict.ConflictingStartTime)

	// rejected move leaves the booking untouched
	unchanged, err := repo.GetByID(context.Background(), "b-1")
	require.NoError(t, err)
	assert.True(t, unchanged.BookingDate.Equal(originalDate))
	assert.Equal(t, types.TimeString("10:00"), unchanged.StartTime)
	assert.Empty(t, dispatcher.messages)
}

func TestExecute_RejectsBreakOnTargetDate(t *testing.T) {
	vacation := &domain.StaffBreak{
		ID:        "br-1",
		StaffID:   "s-1",
		StartDate: targetDate,
		EndDate:   targetDate,
		StartTime: "09:00",
		EndTime:   "17:00",
		Type:      domain.BreakTypeVacation,
	}
	repo := newMockBookingRepo(testBooking())
	uc, _ := newTestUseCase(t, repo, []*domain.StaffBreak{vacation})

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      targetDate,
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_RejectsClosedTargetDay(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, _ := newTestUseCase(t, repo, nil)

	sunday := time.Date(2026, time.September, 13, 0, 0, 0, 0, time.UTC)
	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      sunday,
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrStaffClosed)
}

func TestExecute_RejectsTerminalBooking(t *testing.T) {
	done := testBooking()
	done.Status = domain.StatusCompleted
	repo := newMockBookingRepo(done)
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      targetDate,
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrNotReschedulable)
}

func TestExecute_RejectsUnknownBooking(t *testing.T) {
	repo := newMockBookingRepo()
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "missing",
		Date:      targetDate,
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_RejectsPastTargetDate(t *testing.T) {
	repo := newMockBookingRepo(testBooking())
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), &Request{
		BookingID: "b-1",
		Date:      time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC),
		StartTime: "13:00",
	})
	require.ErrorIs(t, err, ErrInvalidDate)
}
