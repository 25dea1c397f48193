package delete_session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	sessionRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/session"
)

type sessionRepoStub struct {
	getErr  error
	deleted bool
}

func (s *sessionRepoStub) GetByID(_ context.Context, id int64) (*domain.Session, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return &domain.Session{ID: id, Status: domain.StatusActive}, nil
}

func (s *sessionRepoStub) Delete(_ context.Context, _ int64) error {
	s.deleted = true
	return nil
}

type slotRepoStub struct {
	released bool
}

func (s *slotRepoStub) Release(_ context.Context, _ int64) error {
	s.released = true
	return nil
}

type txManagerStub struct{}

func (txManagerStub) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type loggerStub struct{}

func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}

func TestExecute_Success(t *testing.T) {
	sessions := &sessionRepoStub{}
	slots := &slotRepoStub{}
	uc := NewUseCase(sessions, slots, txManagerStub{}, loggerStub{})

	err := uc.Execute(context.Background(), 100)
	require.NoError(t, err)

	assert.True(t, slots.released)
	assert.True(t, sessions.deleted)
}

func TestExecute_NotFound(t *testing.T) {
	sessions := &sessionRepoStub{getErr: sessionRepo.ErrSessionNotFound}
	uc := NewUseCase(sessions, &slotRepoStub{}, txManagerStub{}, loggerStub{})

	err := uc.Execute(context.Background(), 100)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestExecute_InvalidID(t *testing.T) {
	uc := NewUseCase(&sessionRepoStub{}, &slotRepoStub{}, txManagerStub{}, loggerStub{})

	err := uc.Execute(context.Background(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
