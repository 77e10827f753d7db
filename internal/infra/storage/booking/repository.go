package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/dbmetrics"
	"github.com/villidata/newfork/pkg/psqlbuilder"
	"github.com/villidata/newfork/pkg/types"
)

const uniqueViolationCode = "23505"

var bookingColumns = []string{
	"id",
	"customer_id",
	"customer_name",
	"customer_email",
	"customer_phone",
	"staff_id",
	"service_ids",
	"booking_date",
	"start_time",
	"total_duration_minutes",
	"total_price",
	"status",
	"payment_method",
	"payment_status",
	"notes",
	"admin_notes",
	"is_home_service",
	"service_address",
	"travel_fee",
	"reminder_sent",
	"created_at",
	"updated_at",
}

// Repository stores bookings in postgres
type Repository struct {
	db DBExecutor
}

// NewRepository creates a booking repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new booking and returns it with generated fields set.
// When the context carries a transaction the insert runs inside it, which
// is how creation stays atomic with the conflict check that precedes it.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if b.ID == "" {
		b.ID = uuid.New().String()
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"customer_id",
			"customer_name",
			"customer_email",
			"customer_phone",
			"staff_id",
			"service_ids",
			"booking_date",
			"start_time",
			"total_duration_minutes",
			"total_price",
			"status",
			"payment_method",
			"payment_status",
			"notes",
			"admin_notes",
			"is_home_service",
			"service_address",
			"travel_fee",
		).
		Values(
			b.ID,
			b.CustomerID,
			b.CustomerName,
			b.CustomerEmail,
			b.CustomerPhone,
			b.StaffID,
			pq.Array(b.ServiceIDs),
			b.BookingDate,
			b.StartTime,
			b.TotalDurationMinutes,
			b.TotalPrice,
			b.Status,
			b.PaymentMethod,
			b.PaymentStatus,
			b.Notes,
			b.AdminNotes,
			b.IsHomeService,
			b.ServiceAddress,
			b.TravelFee,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateSlot
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID fetches a booking by id
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetActiveByStaffAndDate returns the active (pending/confirmed) bookings
// for one staff member on one date, ordered by start time. excludeID, when
// set, removes the booking being rescheduled from its own conflict check.
// Inside a transaction the rows are locked with FOR UPDATE, so concurrent
// create/reschedule requests for the same staff and date serialize.
func (r *Repository) GetActiveByStaffAndDate(ctx context.Context, staffID string, date time.Time, excludeID *string) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		OrderBy("start_time ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaffAndDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ListWithFilter returns bookings for the admin listing
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).From("bookings")

	if filter.StaffID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus moves a booking to the given status and stamps updated_at.
// When allowedFrom is given the update is guarded in SQL, so a concurrent
// transition that already moved the booking elsewhere (a cancel racing a
// confirm) matches no row and returns ErrStatusConflict instead of
// silently overwriting a terminal status.
func (r *Repository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, allowedFrom ...domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	if len(allowedFrom) > 0 {
		updateBuilder = updateBuilder.Where(squirrel.Eq{"status": statusStrings(allowedFrom)})
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	zeroRowsErr := ErrBookingNotFound
	if len(allowedFrom) > 0 {
		zeroRowsErr = ErrStatusConflict
	}
	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args, zeroRowsErr)
}

// UpdateSchedule moves a booking to a new date and start time. The
// optional status lets a reschedule that also confirms commit both fields
// in one statement.
func (r *Repository) UpdateSchedule(ctx context.Context, id string, date time.Time, startTime types.TimeString, status *domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("bookings").
		Set("booking_date", date).
		Set("start_time", startTime).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if status != nil {
		updateBuilder = updateBuilder.Set("status", *status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateSchedule", query, args, ErrBookingNotFound)
}

// ListDueReminders returns active bookings on the given date that have not
// been sent a reminder yet.
func (r *Repository) ListDueReminders(ctx context.Context, date time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"booking_date": date}).
		Where(squirrel.Eq{"status": statusStrings(domain.ActiveStatuses)}).
		Where(squirrel.Eq{"reminder_sent": false}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDueReminders - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// ClaimReminder atomically marks the booking's reminder as sent. Returns
// true when this call won the claim; false when another sweep already did.
// The claim is what keeps the reminder sweep idempotent.
func (r *Repository) ClaimReminder(ctx context.Context, id string) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"reminder_sent": false}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: ClaimReminder - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: ClaimReminder - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: ClaimReminder - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected == 1, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, zeroRowsErr error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateSlot
		}
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return zeroRowsErr
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var serviceIDs pq.StringArray
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&b.ID,
		&b.CustomerID,
		&b.CustomerName,
		&b.CustomerEmail,
		&b.CustomerPhone,
		&b.StaffID,
		&serviceIDs,
		&b.BookingDate,
		&b.StartTime,
		&b.TotalDurationMinutes,
		&b.TotalPrice,
		&b.Status,
		&b.PaymentMethod,
		&b.PaymentStatus,
		&b.Notes,
		&b.AdminNotes,
		&b.IsHomeService,
		&b.ServiceAddress,
		&b.TravelFee,
		&b.ReminderSent,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.ServiceIDs = serviceIDs
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func statusStrings(statuses []domain.BookingStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode
}
