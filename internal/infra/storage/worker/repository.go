package worker

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

var workerColumns = []string{
	"id",
	"name",
	"room",
	"available",
	"created_at",
	"updated_at",
}

// Repository репозиторий работников
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория работников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает работника по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workerColumns...).
		From("workers").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanWorker(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// FirstAvailableByRoom возвращает первого доступного работника кабинета
// в порядке возрастания id. Детерминированный выбор терапевта при записи.
func (r *Repository) FirstAvailableByRoom(ctx context.Context, room int) (*domain.Worker, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(workerColumns...).
		From("workers").
		Where(squirrel.Eq{"room": room}).
		Where(squirrel.Eq{"available": true}).
		OrderBy("id ASC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FirstAvailableByRoom - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanWorker(executor.QueryRowContext(ctx, query, args...), "FirstAvailableByRoom")
}

func (r *Repository) scanWorker(row *sql.Row, op string) (*domain.Worker, error) {
	var worker domain.Worker
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&worker.ID,
		&worker.Name,
		&worker.Room,
		&worker.Available,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrWorkerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan worker: %w", ErrScanRow, op, err)
	}

	worker.CreatedAt = createdAt.Time
	worker.UpdatedAt = updatedAt.Time

	return &worker, nil
}
