package patient

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/dbmetrics"
	"github.com/dosuclinic/DosuSchedulerService/pkg/psqlbuilder"
)

var patientColumns = []string{
	"id",
	"mrn",
	"name",
	"sex",
	"birthday",
	"tel",
	"note",
	"created_at",
	"updated_at",
}

// Repository репозиторий пациентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория пациентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID получает пациента по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanPatient(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// GetByMRN получает пациента по номеру медицинской карты
func (r *Repository) GetByMRN(ctx context.Context, mrn int64) (*domain.Patient, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(patientColumns...).
		From("patients").
		Where(squirrel.Eq{"mrn": mrn}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByMRN - build select query: %w", ErrBuildQuery, err)
	}

	return r.scanPatient(executor.QueryRowContext(ctx, query, args...), "GetByMRN")
}

func (r *Repository) scanPatient(row *sql.Row, op string) (*domain.Patient, error) {
	var patient domain.Patient
	var birthday, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&patient.ID,
		&patient.MRN,
		&patient.Name,
		&patient.Sex,
		&birthday,
		&patient.Tel,
		&patient.Note,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan patient: %w", ErrScanRow, op, err)
	}

	if birthday.Valid {
		patient.Birthday = &birthday.Time
	}
	patient.CreatedAt = createdAt.Time
	patient.UpdatedAt = updatedAt.Time

	return &patient, nil
}
