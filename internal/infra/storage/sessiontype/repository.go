package sessiontype

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

var typeColumns = []string{
	"id",
	"name",
	"order_code",
	"slot_quantity",
	"price",
	"available",
	"created_at",
	"updated_at",
}

// Repository репозиторий типов сеансов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория типов сеансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает тип сеанса по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.SessionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(typeColumns...).
		From("session_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	sessionType, err := r.scanType(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTypeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan type: %w", ErrScanRow, err)
	}

	return sessionType, nil
}

// ListAvailable возвращает доступные для записи типы сеансов
func (r *Repository) ListAvailable(ctx context.Context) ([]*domain.SessionType, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(typeColumns...).
		From("session_types").
		Where(squirrel.Eq{"available": true}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	types := make([]*domain.SessionType, 0)
	for rows.Next() {
		sessionType, err := r.scanType(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListAvailable - scan type: %w", ErrScanRow, err)
		}
		types = append(types, sessionType)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAvailable - rows error: %w", ErrScanRow, err)
	}

	return types, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanType(row rowScanner) (*domain.SessionType, error) {
	var sessionType domain.SessionType
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&sessionType.ID,
		&sessionType.Name,
		&sessionType.OrderCode,
		&sessionType.SlotQuantity,
		&sessionType.Price,
		&sessionType.Available,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	sessionType.CreatedAt = createdAt.Time
	sessionType.UpdatedAt = updatedAt.Time

	return &sessionType, nil
}
