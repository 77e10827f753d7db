package create_booking

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
	"github.com/villidata/newfork/pkg/ptr"
	"github.com/villidata/newfork/pkg/types"
)

type mockBookingRepo struct {
	mu         sync.Mutex
	bookings   []*domain.Booking
	createErrs []error
}

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	b.ID = "b-1"
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	m.bookings = append(m.bookings, b)
	return b, nil
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

type mockStaffRepo struct {
	staff map[string]*domain.Staff
	err   error
}

func (m *mockStaffRepo) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	if m.err != nil {
		return nil, m.err
	}
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

type mockCatalogRepo struct {
	services []*domain.Service
}

func (m *mockCatalogRepo) GetByIDs(ctx context.Context, ids []string) ([]*domain.Service, error) {
	return m.services, nil
}

// passthroughTxManager runs the callback without a real transaction
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

func newTestUseCase(t *testing.T, repo *mockBookingRepo, breaks []*domain.StaffBreak) (*UseCase, *recordingDispatcher) {
	t.Helper()

	staffs := &mockStaffRepo{staff: map[string]*domain.Staff{
		"s-1": {ID: "s-1", Name: "Lars", IsActive: true, AvailableHours: workingWeek()},
	}}
	catalog := &mockCatalogRepo{services: []*domain.Service{
		{ID: "svc-cut", Name: "Haircut", DurationMinutes: 30, Price: 250, IsActive: true},
		{ID: "svc-beard", Name: "Beard trim", DurationMinutes: 15, Price: 150, IsActive: true},
	}}
	dispatcher := &recordingDispatcher{}

	uc := NewUseCase(
		repo,
		staffs,
		&mockBreakRepo{breaks: breaks},
		catalog,
		scheduling.NewCalendar(domain.WeekSchedule{}),
		passthroughTxManager{},
		dispatcher,
		nopLogger{},
	)
	uc.timeProvider = fixedClock{now: time.Date(2026, time.September, 1, 10, 0, 0, 0, time.UTC)}
	return uc, dispatcher
}

// Monday in the future
var testDate = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.UTC)

func validRequest() *Request {
	return &Request{
		CustomerName:  "Jens Hansen",
		CustomerEmail: "jens@example.com",
		StaffID:       "s-1",
		ServiceIDs:    []string{"svc-cut", "svc-beard"},
		Date:          testDate,
		StartTime:     "10:00",
	}
}

func TestExecute_CreatesPendingBookingWithSnapshotTotals(t *testing.T) {
	repo := &mockBookingRepo{}
	uc, dispatcher := newTestUseCase(t, repo, nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "b-1", resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "pending", resp.PaymentStatus)
	assert.Equal(t, 45, resp.TotalDurationMinutes)
	assert.Equal(t, 400.0, resp.TotalPrice)
	assert.Equal(t, types.TimeString("10:45"), resp.EndTime)

	require.Len(t, dispatcher.messages, 1)
	assert.Equal(t, notifications.EventCreated, dispatcher.messages[0].Event)
	assert.Equal(t, "jens@example.com", dispatcher.messages[0].Recipient)
}

func TestExecute_AddsTravelFeeForHomeService(t *testing.T) {
	repo := &mockBookingRepo{}
	uc, _ := newTestUseCase(t, repo, nil)

	req := validRequest()
	req.IsHomeService = true
	req.ServiceAddress = ptr.Ptr("Nørregade 1, Copenhagen")
	req.TravelFee = 100

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 500.0, resp.TotalPrice)
}

func TestExecute_RejectsOverlappingBooking(t *testing.T) {
	repo := &mockBookingRepo{bookings: []*domain.Booking{{
		ID:                   "existing",
		StaffID:              "s-1",
		BookingDate:          testDate,
		StartTime:            "10:15",
		TotalDurationMinutes: 30,
		Status:               domain.StatusConfirmed,
	}}}
	uc, dispatcher := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("10:15"), conflict.ConflictingStartTime)
	assert.Empty(t, dispatcher.messages)
}

func TestExecute_AdjacentBookingDoesNotConflict(t *testing.T) {
	repo := &mockBookingRepo{bookings: []*domain.Booking{{
		ID:                   "existing",
		StaffID:              "s-1",
		BookingDate:          testDate,
		StartTime:            "10:45",
		TotalDurationMinutes: 30,
		Status:               domain.StatusConfirmed,
	}}}
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_CancelledBookingDoesNotBlock(t *testing.T) {
	repo := &mockBookingRepo{bookings: []*domain.Booking{{
		ID:                   "cancelled",
		StaffID:              "s-1",
		BookingDate:          testDate,
		StartTime:            "10:00",
		TotalDurationMinutes: 60,
		Status:               domain.StatusCancelled,
	}}}
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_RejectsBreakOverlap(t *testing.T) {
	lunch := &domain.StaffBreak{
		ID:            "br-1",
		StaffID:       "s-1",
		StartTime:     "10:30",
		EndTime:       "11:00",
		Type:          domain.BreakTypeLunch,
		IsRecurring:   true,
		RecurringDays: []time.Weekday{time.Monday},
	}
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, []*domain.StaffBreak{lunch})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotConflict)

	var conflict *SlotConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, types.TimeString("10:30"), conflict.ConflictingStartTime)
}

func TestExecute_RejectsClosedDay(t *testing.T) {
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, nil)

	req := validRequest()
	req.Date = time.Date(2026, time.September, 6, 0, 0, 0, 0, time.UTC) // Sunday

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStaffClosed)
}

func TestExecute_RejectsBookingOutsideWindow(t *testing.T) {
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, nil)

	req := validRequest()
	req.StartTime = "16:45" // 45 minutes of services run past 17:00

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrStaffClosed)
}

func TestExecute_RejectsPastDate(t *testing.T) {
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, nil)

	req := validRequest()
	req.Date = time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_RejectsUnknownService(t *testing.T) {
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, nil)

	req := validRequest()
	req.ServiceIDs = []string{"svc-cut", "svc-missing"}

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_ValidationErrors(t *testing.T) {
	uc, _ := newTestUseCase(t, &mockBookingRepo{}, nil)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"missing name", func(r *Request) { r.CustomerName = "  " }},
		{"missing email", func(r *Request) { r.CustomerEmail = "" }},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-address" }},
		{"no services", func(r *Request) { r.ServiceIDs = nil }},
		{"duplicate services", func(r *Request) { r.ServiceIDs = []string{"svc-cut", "svc-cut"} }},
		{"missing start time", func(r *Request) { r.StartTime = "" }},
		{"bad start time", func(r *Request) { r.StartTime = "25:99" }},
		{"home service without address", func(r *Request) { r.IsHomeService = true }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DuplicateSlotFromIndexMapsToConflict(t *testing.T) {
	repo := &mockBookingRepo{createErrs: []error{bookingRepo.ErrDuplicateSlot}}
	uc, _ := newTestUseCase(t, repo, nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotConflict)
}
