package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

var sessionColumns = []string{
	"id",
	"date",
	"room",
	"slot",
	"type_id",
	"worker_id",
	"patient_id",
	"price",
	"status",
	"note",
	"created_at",
	"updated_at",
}

// detailColumns колонки сеанса с присоединенными справочниками.
// Порядок согласован со scanDetail.
var detailColumns = []string{
	"s.id",
	"s.date",
	"s.room",
	"s.slot",
	"s.type_id",
	"s.worker_id",
	"s.patient_id",
	"s.price",
	"s.status",
	"s.note",
	"s.created_at",
	"s.updated_at",
	"st.name AS type_name",
	"st.slot_quantity",
	"w.name AS worker_name",
	"p.mrn",
	"p.name AS patient_name",
	"p.tel",
	"p.note AS patient_note",
}

// Repository репозиторий сеансов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сеансов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сеанс. Цена - снимок цены типа на момент записи,
// вычисляется вызывающим кодом и дальше не пересчитывается.
func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns("date", "room", "slot", "type_id", "worker_id", "patient_id", "price", "status", "note").
		Values(
			session.Date,
			session.Room,
			session.Slot,
			session.TypeID,
			session.WorkerID,
			session.PatientID,
			session.Price,
			session.Status,
			session.Note,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return session, nil
}

// GetByID получает сеанс по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var session domain.Session
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&session.ID,
		&session.Date,
		&session.Room,
		&session.Slot,
		&session.TypeID,
		&session.WorkerID,
		&session.PatientID,
		&session.Price,
		&session.Status,
		&session.Note,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %w", ErrScanRow, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time

	return &session, nil
}

// GetDetailByID получает сеанс со справочными данными
func (r *Repository) GetDetailByID(ctx context.Context, id int64) (*domain.SessionDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.detailQuery().
		Where(squirrel.Eq{"s.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailByID - build select query: %w", ErrBuildQuery, err)
	}

	detail, err := r.scanDetail(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailByID - scan detail: %w", ErrScanRow, err)
	}

	return detail, nil
}

// GetDetailsByDate возвращает сеансы даты под выбранный фильтр видимости.
// Активные читаются через реестр занятости (физически занятые слоты),
// отмененные и неявки - напрямую по дате и статусу, так как слотов
// они не держат.
func (r *Repository) GetDetailsByDate(ctx context.Context, date time.Time, filter domain.StatusFilter) ([]*domain.SessionDetail, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := r.detailQuery()

	if filter == domain.FilterActive {
		// Занятость первична: день берем из реестра слотов, а не из
		// колонки date. Подзапрос вместо join, чтобы сеанс на несколько
		// слотов не размножался в выдаче.
		builder = builder.
			Where(squirrel.Eq{"s.status": domain.StatusActive}).
			Where(squirrel.Expr(
				"s.id IN (SELECT ts.session_id FROM time_slots ts JOIN schedule_days d ON d.id = ts.day_id WHERE d.date = ?)",
				date,
			))
	} else {
		builder = builder.
			Where(squirrel.Eq{"s.date": date}).
			Where(squirrel.Eq{"s.status": string(filter)})
	}

	query, args, err := builder.
		OrderBy("s.room ASC", "s.slot ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByDate - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByDate - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	details := make([]*domain.SessionDetail, 0)
	for rows.Next() {
		detail, err := r.scanDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetDetailsByDate - scan detail: %w", ErrScanRow, err)
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetDetailsByDate - rows error: %w", ErrScanRow, err)
	}

	return details, nil
}

// UpdateSchedule переносит сеанс на новые дату/кабинет/слот, тип и
// работника. Цену не трогает; слоты в реестре занятости перевыпускает
// вызывающий код в той же транзакции.
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, date time.Time, room, slot int, typeID, workerID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("date", date).
		Set("room", room).
		Set("slot", slot).
		Set("type_id", typeID).
		Set("worker_id", workerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSchedule")
}

// UpdateStatus меняет статус сеанса и заметку
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus, note string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", status).
		Set("note", note).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// Delete удаляет сеанс. Слоты должны быть освобождены до вызова.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("sessions").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "Delete")
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %w", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

func (r *Repository) detailQuery() squirrel.SelectBuilder {
	return psqlbuilder.Select(detailColumns...).
		From("sessions s").
		Join("session_types st ON st.id = s.type_id").
		Join("workers w ON w.id = s.worker_id").
		Join("patients p ON p.id = s.patient_id")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanDetail(row rowScanner) (*domain.SessionDetail, error) {
	var detail domain.SessionDetail
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&detail.ID,
		&detail.Date,
		&detail.Room,
		&detail.Slot,
		&detail.TypeID,
		&detail.WorkerID,
		&detail.PatientID,
		&detail.Price,
		&detail.Status,
		&detail.Note,
		&createdAt,
		&updatedAt,
		&detail.TypeName,
		&detail.SlotQuantity,
		&detail.WorkerName,
		&detail.PatientMRN,
		&detail.PatientName,
		&detail.PatientTel,
		&detail.PatientNote,
	)
	if err != nil {
		return nil, err
	}

	detail.CreatedAt = createdAt.Time
	detail.UpdatedAt = updatedAt.Time

	return &detail, nil
}
