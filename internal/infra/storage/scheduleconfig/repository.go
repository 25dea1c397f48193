package scheduleconfig

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

var configColumns = []string{
	"id",
	"name",
	"is_default",
	"start_date",
	"end_date",
	"wd_start_hour",
	"wd_end_hour",
	"wd_lunch_start_hour",
	"wd_lunch_end_hour",
	"wd_overtime_hour",
	"sd_start_hour",
	"sd_end_hour",
	"sd_overtime_hour",
	"duration_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий конфигураций расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигураций
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую конфигурацию расписания.
// Вставка второго дефолта ломается о частичный уникальный индекс
// и возвращает ErrDefaultExists - на этом построено ленивое создание
// дефолта (первый победил, проигравший перечитывает).
func (r *Repository) Create(ctx context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_configs").
		Columns(
			"name",
			"is_default",
			"start_date",
			"end_date",
			"wd_start_hour",
			"wd_end_hour",
			"wd_lunch_start_hour",
			"wd_lunch_end_hour",
			"wd_overtime_hour",
			"sd_start_hour",
			"sd_end_hour",
			"sd_overtime_hour",
			"duration_minutes",
		).
		Values(
			config.Name,
			config.IsDefault,
			config.StartDate,
			config.EndDate,
			config.WdStartHour,
			config.WdEndHour,
			config.WdLunchStartHour,
			config.WdLunchEndHour,
			config.WdOvertimeHour,
			config.SdStartHour,
			config.SdEndHour,
			config.SdOvertimeHour,
			config.Duration,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&config.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDefaultExists
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return config, nil
}

// GetByID получает конфигурацию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// List возвращает все конфигурации в порядке создания
func (r *Repository) List(ctx context.Context) ([]*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	configs := make([]*domain.ScheduleConfig, 0)
	for rows.Next() {
		config, err := r.scanConfigRow(rows)
		if err != nil {
			return nil, err
		}
		configs = append(configs, config)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %w", ErrScanRow, err)
	}

	return configs, nil
}

// FindForMonth находит конфигурацию, действующую для месяца, начинающегося
// с firstOfMonth: сначала не-дефолтные, чье окно [start_date, end_date]
// содержит первый день месяца (при пересечении окон - с меньшим id),
// затем дефолтная. Если нет ни одной - ErrConfigNotFound.
func (r *Repository) FindForMonth(ctx context.Context, firstOfMonth time.Time) (*domain.ScheduleConfig, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	cond := squirrel.Or{
		squirrel.And{
			squirrel.Eq{"is_default": false},
			squirrel.LtOrEq{"start_date": firstOfMonth},
			squirrel.GtOrEq{"end_date": firstOfMonth},
		},
		squirrel.Eq{"is_default": true},
	}

	query, args, err := psqlbuilder.Select(configColumns...).
		From("schedule_configs").
		Where(cond).
		OrderBy("is_default ASC", "id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindForMonth - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanConfig(executor.QueryRowContext(ctx, query, args...), "FindForMonth")
}

// Update обновляет конфигурацию по месту (без версионирования)
func (r *Repository) Update(ctx context.Context, config *domain.ScheduleConfig) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("name", config.Name).
		Set("is_default", config.IsDefault).
		Set("start_date", config.StartDate).
		Set("end_date", config.EndDate).
		Set("wd_start_hour", config.WdStartHour).
		Set("wd_end_hour", config.WdEndHour).
		Set("wd_lunch_start_hour", config.WdLunchStartHour).
		Set("wd_lunch_end_hour", config.WdLunchEndHour).
		Set("wd_overtime_hour", config.WdOvertimeHour).
		Set("sd_start_hour", config.SdStartHour).
		Set("sd_end_hour", config.SdEndHour).
		Set("sd_overtime_hour", config.SdOvertimeHour).
		Set("duration_minutes", config.Duration).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": config.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDefaultExists
		}
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

// ClearDefault снимает флаг is_default со всех конфигураций, кроме exceptID.
// Вызывается в одной транзакции с назначением нового дефолта.
func (r *Repository) ClearDefault(ctx context.Context, exceptID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_configs").
		Set("is_default", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"is_default": true}).
		Where(squirrel.NotEq{"id": exceptID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearDefault - build update query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDefault - execute update: %w", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет конфигурацию. Запрет удаления дефолта - на уровне сервиса.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("schedule_configs").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrConfigNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanConfig(row rowScanner, op string) (*domain.ScheduleConfig, error) {
	config, err := r.scanInto(row)
	if err == sql.ErrNoRows {
		return nil, ErrConfigNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan config: %w", ErrScanRow, op, err)
	}
	return config, nil
}

func (r *Repository) scanConfigRow(rows *sql.Rows) (*domain.ScheduleConfig, error) {
	config, err := r.scanInto(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: scan config row: %w", ErrScanRow, err)
	}
	return config, nil
}

func (r *Repository) scanInto(row rowScanner) (*domain.ScheduleConfig, error) {
	var config domain.ScheduleConfig
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&config.ID,
		&config.Name,
		&config.IsDefault,
		&config.StartDate,
		&config.EndDate,
		&config.WdStartHour,
		&config.WdEndHour,
		&config.WdLunchStartHour,
		&config.WdLunchEndHour,
		&config.WdOvertimeHour,
		&config.SdStartHour,
		&config.SdEndHour,
		&config.SdOvertimeHour,
		&config.Duration,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	config.CreatedAt = createdAt.Time
	config.UpdatedAt = updatedAt.Time

	return &config, nil
}
