package reschedule_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
	typeRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/sessiontype"
	timeslotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
)

var (
	oldDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	newDate = time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)
)

type sessionRepoStub struct {
	session   *domain.Session
	getErr    error
	updateErr error

	updatedDate   time.Time
	updatedRoom   int
	updatedSlot   int
	updatedType   int64
	updatedWorker int64
}

func (s *sessionRepoStub) GetByID(_ context.Context, _ int64) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.session, nil
}

func (s *sessionRepoStub) UpdateSchedule(_ context.Context, _ int64, date time.Time, room, slot int, typeID, workerID int64) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	s.updatedDate = date
	s.updatedRoom = room
	s.updatedSlot = slot
	s.updatedType = typeID
	s.updatedWorker = workerID
	return nil
}

type dayRepoStub struct{}

func (dayRepoStub) GetOrCreate(_ context.Context, date time.Time) (*domain.ScheduleDay, error) {
	return &domain.ScheduleDay{ID: 8, Date: date}, nil
}

type slotRepoStub struct {
	conflictOwner *int64
	reserveErr    error

	excludedID    *int64
	released      bool
	reserved      bool
	reservedCount int
}

func (s *slotRepoStub) Reserve(_ context.Context, _ int64, _, _, count int, _ int64) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	s.reserved = true
	s.reservedCount = count
	return nil
}

func (s *slotRepoStub) Release(_ context.Context, _ int64) error {
	s.released = true
	return nil
}

func (s *slotRepoStub) FindConflict(_ context.Context, _ int64, _, _, _ int, excludeSessionID *int64, _ domain.ConflictScope) (*int64, error) {
	s.excludedID = excludeSessionID
	return s.conflictOwner, nil
}

type typeRepoStub struct {
	types map[int64]*domain.SessionType
}

func (s typeRepoStub) GetByID(_ context.Context, id int64) (*domain.SessionType, error) {
	if s.types != nil {
		st, ok := s.types[id]
		if !ok {
			return nil, typeRepo.ErrTypeNotFound
		}
		return st, nil
	}
	return &domain.SessionType{ID: id, SlotQuantity: 2, Price: 3000, Available: true}, nil
}

type workerRepoStub struct{}

func (workerRepoStub) FirstAvailableByRoom(_ context.Context, room int) (*domain.Worker, error) {
	return &domain.Worker{ID: int64(10 + room), Room: room, Available: true}, nil
}

type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerStub struct{}

func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}

func activeSession() *domain.Session {
	return &domain.Session{
		ID:        100,
		Date:      oldDate,
		Room:      1,
		Slot:      4,
		TypeID:    1,
		WorkerID:  3,
		PatientID: 9,
		Price:     3000,
		Status:    domain.StatusActive,
	}
}

func TestExecute_Success(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	slots := &slotRepoStub{}
	uc := NewUseCase(sessions, dayRepoStub{}, slots, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 1})
	require.NoError(t, err)

	assert.Equal(t, newDate, resp.Date)
	assert.Equal(t, 2, resp.Room)
	assert.Equal(t, 6, resp.Slot)
	assert.Equal(t, int64(3000), resp.Price, "price must survive the move")

	assert.True(t, slots.released)
	assert.True(t, slots.reserved)
	assert.Equal(t, newDate, sessions.updatedDate)

	// Работник подбирается заново под новый кабинет
	assert.Equal(t, int64(12), sessions.updatedWorker)
	assert.Equal(t, int64(12), resp.WorkerID)

	// Собственные слоты исключаются из проверки конфликтов
	require.NotNil(t, slots.excludedID)
	assert.Equal(t, int64(100), *slots.excludedID)
}

func TestExecute_ConflictKeepsSession(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	slots := &slotRepoStub{}
	owner := int64(42)
	slots.conflictOwner = &owner
	uc := NewUseCase(sessions, dayRepoStub{}, slots, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 1})
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.False(t, slots.released)
	assert.False(t, slots.reserved)
}

func TestExecute_ConcurrentReserveMapsToConflict(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	slots := &slotRepoStub{reserveErr: timeslotRepo.ErrSlotTaken}
	uc := NewUseCase(sessions, dayRepoStub{}, slots, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 1})
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_NotActive(t *testing.T) {
	canceled := activeSession()
	canceled.Status = domain.StatusCanceled
	sessions := &sessionRepoStub{session: canceled}
	uc := NewUseCase(sessions, dayRepoStub{}, &slotRepoStub{}, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 1})
	assert.ErrorIs(t, err, ErrSessionNotActive)
}

func TestExecute_NotFound(t *testing.T) {
	sessions := &sessionRepoStub{getErr: sessionRepo.ErrSessionNotFound}
	uc := NewUseCase(sessions, dayRepoStub{}, &slotRepoStub{}, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 1})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := NewUseCase(&sessionRepoStub{}, dayRepoStub{}, &slotRepoStub{}, typeRepoStub{}, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 0, Date: newDate, Room: 1, Slot: 0, TypeID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_TypeChangeResizesRange(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	slots := &slotRepoStub{}
	types := typeRepoStub{types: map[int64]*domain.SessionType{
		1: {ID: 1, SlotQuantity: 2, Price: 3000, Available: true},
		5: {ID: 5, SlotQuantity: 4, Price: 9000, Available: true},
	}}
	uc := NewUseCase(sessions, dayRepoStub{}, slots, types, workerRepoStub{}, txManagerStub{}, loggerStub{})

	resp, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 5})
	require.NoError(t, err)

	// Диапазон считается по новому типу, тип сохраняется в сеансе
	assert.Equal(t, 4, slots.reservedCount)
	assert.Equal(t, int64(5), sessions.updatedType)
	assert.Equal(t, int64(5), resp.TypeID)

	// Снимок цены остается от исходной записи
	assert.Equal(t, int64(3000), resp.Price)
}

func TestExecute_TypeNotFound(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	types := typeRepoStub{types: map[int64]*domain.SessionType{}}
	uc := NewUseCase(sessions, dayRepoStub{}, &slotRepoStub{}, types, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 77})
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestExecute_TypeNotAvailable(t *testing.T) {
	sessions := &sessionRepoStub{session: activeSession()}
	types := typeRepoStub{types: map[int64]*domain.SessionType{
		6: {ID: 6, SlotQuantity: 2, Available: false},
	}}
	uc := NewUseCase(sessions, dayRepoStub{}, &slotRepoStub{}, types, workerRepoStub{}, txManagerStub{}, loggerStub{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: 100, Date: newDate, Room: 2, Slot: 6, TypeID: 6})
	assert.ErrorIs(t, err, ErrTypeNotAvailable)
}
