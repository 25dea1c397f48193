package create_session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	typeRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/sessiontype"
	timeslotRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/timeslot"
	workerRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/worker"
)

var testDate = time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

type sessionRepoStub struct {
	created *domain.Session
	err     error
}

func (s *sessionRepoStub) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	session.ID = 100
	s.created = session
	return session, nil
}

type dayRepoStub struct {
	day *domain.ScheduleDay
}

func (s *dayRepoStub) GetOrCreate(_ context.Context, date time.Time) (*domain.ScheduleDay, error) {
	if s.day == nil {
		s.day = &domain.ScheduleDay{ID: 7, Date: date}
	}
	return s.day, nil
}

type slotRepoStub struct {
	conflictOwner *int64
	reserveErr    error

	reservedStart int
	reservedCount int
	reservedFor   int64
}

func (s *slotRepoStub) Reserve(_ context.Context, _ int64, _, start, count int, sessionID int64) error {
	if s.reserveErr != nil {
		return s.reserveErr
	}
	s.reservedStart = start
	s.reservedCount = count
	s.reservedFor = sessionID
	return nil
}

func (s *slotRepoStub) FindConflict(_ context.Context, _ int64, _, _, _ int, _ *int64, _ domain.ConflictScope) (*int64, error) {
	return s.conflictOwner, nil
}

type typeRepoStub struct {
	sessionType *domain.SessionType
	err         error
}

func (s *typeRepoStub) GetByID(_ context.Context, _ int64) (*domain.SessionType, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.sessionType, nil
}

type workerRepoStub struct {
	worker *domain.Worker
	err    error
}

func (s *workerRepoStub) FirstAvailableByRoom(_ context.Context, _ int) (*domain.Worker, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.worker, nil
}

type patientRepoStub struct {
	err error
}

func (s *patientRepoStub) GetByID(_ context.Context, id int64) (*domain.Patient, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.Patient{ID: id, MRN: 555}, nil
}

type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerStub struct{}

func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}

type deps struct {
	sessions *sessionRepoStub
	days     *dayRepoStub
	slots    *slotRepoStub
	types    *typeRepoStub
	workers  *workerRepoStub
	patients *patientRepoStub
}

func newDeps() *deps {
	return &deps{
		sessions: &sessionRepoStub{},
		days:     &dayRepoStub{},
		slots:    &slotRepoStub{},
		types: &typeRepoStub{
			sessionType: &domain.SessionType{ID: 1, Name: "Массаж", SlotQuantity: 2, Price: 3000, Available: true},
		},
		workers:  &workerRepoStub{worker: &domain.Worker{ID: 3, Room: 1, Available: true}},
		patients: &patientRepoStub{},
	}
}

func newUseCase(d *deps) *UseCase {
	return NewUseCase(d.sessions, d.days, d.slots, d.types, d.workers, d.patients, txManagerStub{}, loggerStub{})
}

func validRequest() *Request {
	return &Request{
		Date:      testDate,
		Room:      1,
		Slot:      4,
		TypeID:    1,
		PatientID: 9,
	}
}

func TestExecute_Success(t *testing.T) {
	d := newDeps()
	uc := newUseCase(d)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(100), resp.ID)
	assert.Equal(t, int64(3), resp.WorkerID)
	assert.Equal(t, int64(3000), resp.Price, "price snapshot taken from type")
	assert.Equal(t, string(domain.StatusActive), resp.Status)

	// Диапазон резервируется целиком под количество слотов типа
	assert.Equal(t, 4, d.slots.reservedStart)
	assert.Equal(t, 2, d.slots.reservedCount)
	assert.Equal(t, int64(100), d.slots.reservedFor)
}

func TestExecute_SlotConflict(t *testing.T) {
	d := newDeps()
	owner := int64(42)
	d.slots.conflictOwner = &owner
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
	assert.Nil(t, d.sessions.created, "session must not be created on conflict")
}

func TestExecute_ConcurrentReserveMapsToConflict(t *testing.T) {
	d := newDeps()
	d.slots.reserveErr = timeslotRepo.ErrSlotTaken
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestExecute_TypeNotAvailable(t *testing.T) {
	d := newDeps()
	d.types.sessionType.Available = false
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTypeNotAvailable)
}

func TestExecute_TypeNotFound(t *testing.T) {
	d := newDeps()
	d.types.err = typeRepo.ErrTypeNotFound
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTypeNotFound)
}

func TestExecute_NoWorkerInRoom(t *testing.T) {
	d := newDeps()
	d.workers.err = workerRepo.ErrWorkerNotFound
	uc := newUseCase(d)

	_, err := uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrNoWorkerAvailable)
}

func TestExecute_InvalidRoom(t *testing.T) {
	d := newDeps()
	uc := newUseCase(d)

	req := validRequest()
	req.Room = domain.MaxRoom + 1

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_NegativeSlot(t *testing.T) {
	d := newDeps()
	uc := newUseCase(d)

	req := validRequest()
	req.Slot = -1

	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
