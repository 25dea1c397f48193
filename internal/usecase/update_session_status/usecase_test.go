package update_session_status

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	"github.com/dosuclinic/DosuSchedulerService/pkg/ptr"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type sessionRepoStub struct {
	session *domain.Session

	updatedStatus domain.SessionStatus
	updatedNote   string
	updateCalled  bool
}

func (s *sessionRepoStub) GetByID(_ context.Context, _ int64) (*domain.Session, error) {
	return s.session, nil
}

func (s *sessionRepoStub) UpdateStatus(_ context.Context, _ int64, status domain.SessionStatus, note string) error {
	s.updateCalled = true
	s.updatedStatus = status
	s.updatedNote = note
	return nil
}

type dayRepoStub struct{}

func (dayRepoStub) GetOrCreate(_ context.Context, date time.Time) (*domain.ScheduleDay, error) {
	return &domain.ScheduleDay{ID: 7, Date: date}, nil
}

type slotRepoStub struct {
	conflictOwner *int64

	released bool
	reserved bool
}

func (s *slotRepoStub) Reserve(_ context.Context, _ int64, _, _, _ int, _ int64) error {
	s.reserved = true
	return nil
}

func (s *slotRepoStub) Release(_ context.Context, _ int64) error {
	s.released = true
	return nil
}

func (s *slotRepoStub) FindConflict(_ context.Context, _ int64, _, _, _ int, _ *int64, _ domain.ConflictScope) (*int64, error) {
	return s.conflictOwner, nil
}

type typeRepoStub struct{}

func (typeRepoStub) GetByID(_ context.Context, id int64) (*domain.SessionType, error) {
	return &domain.SessionType{ID: id, SlotQuantity: 2, Price: 3000, Available: true}, nil
}

type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerStub struct{}

func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}

func sessionWithStatus(status domain.SessionStatus) *domain.Session {
	return &domain.Session{
		ID:        100,
		Date:      testDate,
		Room:      1,
		Slot:      4,
		TypeID:    1,
		WorkerID:  3,
		PatientID: 9,
		Price:     3000,
		Status:    status,
		Note:      "старая заметка",
	}
}

func newUseCase(sessions *sessionRepoStub, slots *slotRepoStub) *UseCase {
	return NewUseCase(sessions, dayRepoStub{}, slots, typeRepoStub{}, txManagerStub{}, loggerStub{})
}

func TestExecute_CancelReleasesSlots(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusActive)}
	slots := &slotRepoStub{}
	uc := newUseCase(sessions, slots)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "canceled"})
	require.NoError(t, err)

	assert.Equal(t, "canceled", resp.Status)
	assert.True(t, slots.released)
	assert.False(t, slots.reserved)
}

func TestExecute_NoShowReleasesSlots(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusActive)}
	slots := &slotRepoStub{}
	uc := newUseCase(sessions, slots)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "noshow"})
	require.NoError(t, err)

	assert.Equal(t, "noshow", resp.Status)
	assert.True(t, slots.released)
}

func TestExecute_ReactivateReservesAgain(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusCanceled)}
	slots := &slotRepoStub{}
	uc := newUseCase(sessions, slots)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "active"})
	require.NoError(t, err)

	assert.Equal(t, "active", resp.Status)
	assert.True(t, slots.reserved)
	assert.False(t, slots.released)
}

func TestExecute_ReactivateConflictKeepsStatus(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusCanceled)}
	slots := &slotRepoStub{}
	owner := int64(42)
	slots.conflictOwner = &owner
	uc := newUseCase(sessions, slots)

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "active"})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, sessions.updateCalled, "status must stay unchanged on conflict")
}

func TestExecute_SameStatusOnlyUpdatesNote(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusActive)}
	slots := &slotRepoStub{}
	uc := newUseCase(sessions, slots)

	resp, err := uc.Execute(context.Background(), &Request{
		SessionID: 100,
		Status:    "active",
		Note:      ptr.Ptr("новая заметка"),
	})
	require.NoError(t, err)

	assert.Equal(t, "новая заметка", resp.Note)
	assert.False(t, slots.released)
	assert.False(t, slots.reserved)
}

func TestExecute_NilNoteKeepsOld(t *testing.T) {
	sessions := &sessionRepoStub{session: sessionWithStatus(domain.StatusActive)}
	uc := newUseCase(sessions, &slotRepoStub{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "canceled"})
	require.NoError(t, err)
	assert.Equal(t, "старая заметка", resp.Note)
}

func TestExecute_InvalidStatus(t *testing.T) {
	uc := newUseCase(&sessionRepoStub{}, &slotRepoStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Status: "done"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
