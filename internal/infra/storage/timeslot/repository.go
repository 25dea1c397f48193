package timeslot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

const uniqueViolation = "23505"

// Repository реестр занятости слотов. Единственный источник истины
// о том, какой сеанс держит какие слоты: уникальный индекс по
// (day_id, room, number) не дает двум сеансам пересечься даже при
// конкурирующих транзакциях.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр реестра занятости
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Reserve занимает count подряд идущих слотов начиная со start за сеансом
// sessionID. Вставка одним запросом: либо весь диапазон, либо ничего.
// Конфликт с уже занятым слотом возвращает ErrSlotTaken.
func (r *Repository) Reserve(ctx context.Context, dayID int64, room, start, count int, sessionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("time_slots").
		Columns("day_id", "room", "number", "session_id")
	for i := 0; i < count; i++ {
		builder = builder.Values(dayID, room, start+i, sessionID)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reserve - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrSlotTaken
		}
		return fmt.Errorf("%w: Reserve - execute insert: %w", ErrExecQuery, err)
	}

	return nil
}

// Release освобождает все слоты сеанса. Идемпотентна: повторный вызов
// для уже освобожденного сеанса не ошибка.
func (r *Repository) Release(ctx context.Context, sessionID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("time_slots").
		Where(squirrel.Eq{"session_id": sessionID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Release - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// FindConflict ищет занятый слот в диапазоне [start, start+count) для
// кабинета и дня. Возвращает id сеанса-владельца первого конфликтующего
// слота или nil, если диапазон свободен.
//
// excludeSessionID исключает слоты указанного сеанса из проверки
// (перенос сеанса не должен конфликтовать сам с собой). При
// ScopeActiveOnly учитываются только слоты активных сеансов.
func (r *Repository) FindConflict(ctx context.Context, dayID int64, room, start, count int, excludeSessionID *int64, scope domain.ConflictScope) (*int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select("ts.session_id").
		From("time_slots ts").
		Where(squirrel.Eq{"ts.day_id": dayID}).
		Where(squirrel.Eq{"ts.room": room}).
		Where(squirrel.GtOrEq{"ts.number": start}).
		Where(squirrel.Lt{"ts.number": start + count}).
		OrderBy("ts.number ASC").
		Limit(1)

	if excludeSessionID != nil {
		builder = builder.Where(squirrel.NotEq{"ts.session_id": *excludeSessionID})
	}

	if scope == domain.ScopeActiveOnly {
		builder = builder.
			Join("sessions s ON s.id = ts.session_id").
			Where(squirrel.Eq{"s.status": domain.StatusActive})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - build select query: %w", ErrBuildQuery, err)
	}

	var sessionID int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&sessionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: FindConflict - scan session id: %w", ErrScanRow, err)
	}

	return &sessionID, nil
}
