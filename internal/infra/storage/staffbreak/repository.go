package staffbreak

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/dbmetrics"
	"github.com/villidata/newfork/pkg/psqlbuilder"
)

// Repository reads staff breaks from postgres
type Repository struct {
	db DBExecutor
}

// NewRepository creates a staff break repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListByStaff returns all breaks for the given staff member. Filtering to
// the breaks that apply on a concrete date happens in the scheduling layer,
// because recurring breaks cannot be matched to a date in SQL without
// duplicating the weekday semantics.
func (r *Repository) ListByStaff(ctx context.Context, staffID string) ([]*domain.StaffBreak, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"staff_id",
		"start_date",
		"end_date",
		"start_time",
		"end_time",
		"break_type",
		"reason",
		"is_recurring",
		"recurring_days",
		"created_by",
		"created_at",
	).
		From("staff_breaks").
		Where(squirrel.Eq{"staff_id": staffID}).
		OrderBy("start_date ASC, start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	breaks := make([]*domain.StaffBreak, 0)
	for rows.Next() {
		b, err := scanBreak(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByStaff - scan row: %v", ErrScanRow, err)
		}
		breaks = append(breaks, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByStaff - rows error: %v", ErrScanRow, err)
	}

	return breaks, nil
}

func scanBreak(rows *sql.Rows) (*domain.StaffBreak, error) {
	var b domain.StaffBreak
	var recurringDays pq.Int64Array
	var createdAt sql.NullTime

	err := rows.Scan(
		&b.ID,
		&b.StaffID,
		&b.StartDate,
		&b.EndDate,
		&b.StartTime,
		&b.EndTime,
		&b.Type,
		&b.Reason,
		&b.IsRecurring,
		&recurringDays,
		&b.CreatedBy,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.RecurringDays = make([]time.Weekday, 0, len(recurringDays))
	for _, d := range recurringDays {
		b.RecurringDays = append(b.RecurringDays, time.Weekday(d))
	}
	b.CreatedAt = createdAt.Time

	return &b, nil
}
