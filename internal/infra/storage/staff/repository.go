package staff

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/villidata/newfork/internal/domain"
	"github.com/villidata/newfork/pkg/dbmetrics"
	"github.com/villidata/newfork/pkg/psqlbuilder"
	"github.com/villidata/newfork/pkg/types"
)

// Repository reads staff members and their working hours from postgres
type Repository struct {
	db DBExecutor
}

// NewRepository creates a staff repository
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches an active staff member with their weekday working hours.
// Weekdays without a staff_working_hours row come back as disabled windows,
// so the business-wide default applies for them.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Staff, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"name",
		"email",
		"phone",
		"specialty",
		"is_active",
		"created_at",
		"updated_at",
	).
		From("staff").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.Staff
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Specialty,
		&s.IsActive,
		&createdAt,
		&updatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrStaffNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan staff: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	schedule, err := r.loadWorkingHours(ctx, executor, id)
	if err != nil {
		return nil, err
	}
	s.AvailableHours = schedule

	return &s, nil
}

func (r *Repository) loadWorkingHours(ctx context.Context, executor DBExecutor, staffID string) (domain.WeekSchedule, error) {
	var schedule domain.WeekSchedule

	query, args, err := psqlbuilder.Select(
		"weekday",
		"start_time",
		"end_time",
		"is_enabled",
	).
		From("staff_working_hours").
		Where(squirrel.Eq{"staff_id": staffID}).
		ToSql()
	if err != nil {
		return schedule, fmt.Errorf("%w: loadWorkingHours - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return schedule, fmt.Errorf("%w: loadWorkingHours - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var weekday int
		var window domain.DayWindow
		var start, end types.TimeString

		if err := rows.Scan(&weekday, &start, &end, &window.Enabled); err != nil {
			return schedule, fmt.Errorf("%w: loadWorkingHours - scan row: %v", ErrScanRow, err)
		}
		if weekday < 0 || weekday > 6 {
			return schedule, fmt.Errorf("%w: loadWorkingHours - weekday %d out of range", ErrScanRow, weekday)
		}

		window.Start = start
		window.End = end
		schedule.SetForWeekday(time.Weekday(weekday), window)
	}

	if err := rows.Err(); err != nil {
		return schedule, fmt.Errorf("%w: loadWorkingHours - rows error: %v", ErrScanRow, err)
	}

	return schedule, nil
}
