package scheduleday

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository репозиторий календарных дней расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория дней
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает день по дате
func (r *Repository) GetByDate(ctx context.Context, date time.Time) (*domain.ScheduleDay, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date").
		From("schedule_days").
		Where(squirrel.Eq{"date": date}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %w", ErrBuildQuery, err)
	}

	var day domain.ScheduleDay
	err = executor.QueryRowContext(ctx, query, args...).Scan(&day.ID, &day.Date)
	if err == sql.ErrNoRows {
		return nil, ErrDayNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan day: %w", ErrExecQuery, err)
	}

	return &day, nil
}

// GetOrCreate возвращает день для даты, создавая его при отсутствии.
// Гонку на вставке разруливает уникальный индекс по date: проигравший
// получает 23505 и перечитывает строку победителя.
func (r *Repository) GetOrCreate(ctx context.Context, date time.Time) (*domain.ScheduleDay, error) {
	day, err := r.GetByDate(ctx, date)
	if err == nil {
		return day, nil
	}
	if !errors.Is(err, ErrDayNotFound) {
		return nil, err
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_days").
		Columns("date").
		Values(date).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetOrCreate - build insert query: %w", ErrBuildQuery, err)
	}

	created := domain.ScheduleDay{Date: date}
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return r.GetByDate(ctx, date)
		}
		return nil, fmt.Errorf("%w: GetOrCreate - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}
