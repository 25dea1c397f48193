package timeslot

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
)

func newMock(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestReserve_InsertsWholeRange(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO time_slots \(day_id,room,number,session_id\) VALUES \(\$1,\$2,\$3,\$4\),\(\$5,\$6,\$7,\$8\),\(\$9,\$10,\$11,\$12\)`).
		WithArgs(
			int64(7), 1, 4, int64(100),
			int64(7), 1, 5, int64(100),
			int64(7), 1, 6, int64(100),
		).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.Reserve(context.Background(), 7, 1, 4, 3, 100)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_UniqueViolationMapsToSlotTaken(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO time_slots`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Reserve(context.Background(), 7, 1, 4, 2, 100)
	assert.ErrorIs(t, err, ErrSlotTaken)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRelease_Idempotent(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`DELETE FROM time_slots WHERE session_id = \$1`).
		WithArgs(int64(100)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Release(context.Background(), 100)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflict_FreeRange(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT ts\.session_id FROM time_slots ts`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	owner, err := repo.FindConflict(context.Background(), 7, 1, 4, 3, nil, domain.ScopeAll)
	require.NoError(t, err)
	assert.Nil(t, owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflict_ReturnsOwner(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectQuery(`SELECT ts\.session_id FROM time_slots ts`).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}).AddRow(int64(42)))

	owner, err := repo.FindConflict(context.Background(), 7, 1, 4, 3, nil, domain.ScopeAll)
	require.NoError(t, err)
	require.NotNil(t, owner)
	assert.Equal(t, int64(42), *owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflict_ActiveOnlyJoinsSessions(t *testing.T) {
	repo, mock := newMock(t)

	exclude := int64(42)
	mock.ExpectQuery(`SELECT ts\.session_id FROM time_slots ts JOIN sessions s ON s\.id = ts\.session_id`).
		WithArgs(int64(7), 1, 4, 7, exclude, string(domain.StatusActive)).
		WillReturnRows(sqlmock.NewRows([]string{"session_id"}))

	owner, err := repo.FindConflict(context.Background(), 7, 1, 4, 3, &exclude, domain.ScopeActiveOnly)
	require.NoError(t, err)
	assert.Nil(t, owner)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReserve_SerializationFailureStaysUnwrappable(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(`INSERT INTO time_slots`).
		WillReturnError(&pq.Error{Code: "40001"})

	err := repo.Reserve(context.Background(), 7, 1, 4, 2, 100)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecQuery)

	// Конфликт сериализации должен доходить до retry-цикла менеджера
	// транзакций сквозь обертки
	var pqErr *pq.Error
	require.True(t, errors.As(err, &pqErr))
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}
