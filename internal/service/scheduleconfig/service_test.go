package scheduleconfig

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dosuclinic/DosuSchedulerService/internal/domain"
	configRepo "github.com/dosuclinic/DosuSchedulerService/internal/infra/storage/scheduleconfig"
	"github.com/dosuclinic/DosuSchedulerService/internal/service/scheduleconfig/models"
)

type configRepoStub struct {
	configs map[int64]*domain.ScheduleConfig
	nextID  int64

	failFinds    int
	createErr    error
	clearCalled  bool
	createCalled bool
}

func newConfigRepoStub() *configRepoStub {
	return &configRepoStub{configs: map[int64]*domain.ScheduleConfig{}, nextID: 1}
}

func (s *configRepoStub) Create(_ context.Context, config *domain.ScheduleConfig) (*domain.ScheduleConfig, error) {
	s.createCalled = true
	if s.createErr != nil {
		return nil, s.createErr
	}
	config.ID = s.nextID
	s.nextID++
	s.configs[config.ID] = config
	return config, nil
}

func (s *configRepoStub) GetByID(_ context.Context, id int64) (*domain.ScheduleConfig, error) {
	config, ok := s.configs[id]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return config, nil
}

func (s *configRepoStub) List(_ context.Context) ([]*domain.ScheduleConfig, error) {
	out := make([]*domain.ScheduleConfig, 0, len(s.configs))
	for id := int64(1); id < s.nextID; id++ {
		if config, ok := s.configs[id]; ok {
			out = append(out, config)
		}
	}
	return out, nil
}

func (s *configRepoStub) FindForMonth(_ context.Context, firstOfMonth time.Time) (*domain.ScheduleConfig, error) {
	if s.failFinds > 0 {
		s.failFinds--
		return nil, configRepo.ErrConfigNotFound
	}
	var fallback *domain.ScheduleConfig
	for id := int64(1); id < s.nextID; id++ {
		config, ok := s.configs[id]
		if !ok {
			continue
		}
		if config.IsDefault {
			if fallback == nil {
				fallback = config
			}
			continue
		}
		if !config.StartDate.After(firstOfMonth) && !config.EndDate.Before(firstOfMonth) {
			return config, nil
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, configRepo.ErrConfigNotFound
}

func (s *configRepoStub) Update(_ context.Context, config *domain.ScheduleConfig) error {
	if _, ok := s.configs[config.ID]; !ok {
		return configRepo.ErrConfigNotFound
	}
	s.configs[config.ID] = config
	return nil
}

func (s *configRepoStub) ClearDefault(_ context.Context, exceptID int64) error {
	s.clearCalled = true
	for _, config := range s.configs {
		if config.ID != exceptID {
			config.IsDefault = false
		}
	}
	return nil
}

func (s *configRepoStub) Delete(_ context.Context, id int64) error {
	if _, ok := s.configs[id]; !ok {
		return configRepo.ErrConfigNotFound
	}
	delete(s.configs, id)
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

func newService(repo *configRepoStub) *Service {
	return NewService(repo, txManagerStub{}, loggerStub{})
}

func validCreateRequest() *models.CreateConfigRequest {
	return &models.CreateConfigRequest{
		Name:             "лето",
		StartDate:        "2025-06-15",
		EndDate:          "2025-08-20",
		WdStartHour:      "08:00",
		WdEndHour:        "20:00",
		WdLunchStartHour: "12:00",
		WdLunchEndHour:   "13:00",
		WdOvertimeHour:   "17:00",
		SdStartHour:      "09:00",
		SdEndHour:        "14:00",
		SdOvertimeHour:   "12:00",
		DurationMinutes:  20,
	}
}

func TestCreate_TruncatesWindowToMonths(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	resp, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", resp.StartDate)
	assert.Equal(t, "2025-08-31", resp.EndDate)
	assert.Equal(t, 20, resp.DurationMinutes)
}

func TestCreate_InvalidDuration(t *testing.T) {
	svc := newService(newConfigRepoStub())

	req := validCreateRequest()
	req.DurationMinutes = 25

	_, err := svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_NewDefaultDemotesOld(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	old := domain.NewDefaultConfig()
	_, err := repo.Create(context.Background(), old)
	require.NoError(t, err)

	req := validCreateRequest()
	req.IsDefault = true

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, resp.IsDefault)
	assert.True(t, repo.clearCalled)
	assert.False(t, repo.configs[old.ID].IsDefault)
}

func TestDelete_DefaultForbidden(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	created, err := repo.Create(context.Background(), domain.NewDefaultConfig())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrCannotDeleteDefault)
}

func TestDelete_NotFound(t *testing.T) {
	svc := newService(newConfigRepoStub())

	err := svc.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestUpdate_DefaultStaysDefault(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	created, err := repo.Create(context.Background(), domain.NewDefaultConfig())
	require.NoError(t, err)

	req := validCreateRequest()
	req.IsDefault = false

	resp, err := svc.Update(context.Background(), created.ID, req)
	require.NoError(t, err)
	assert.True(t, resp.IsDefault, "default flag cannot be removed by update")
}

func TestResolve_ExistingConfigWins(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	def := domain.NewDefaultConfig()
	_, err := repo.Create(context.Background(), def)
	require.NoError(t, err)

	summer := domain.NewDefaultConfig()
	summer.Name = "лето"
	summer.IsDefault = false
	summer.StartDate = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	summer.EndDate = time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err = repo.Create(context.Background(), summer)
	require.NoError(t, err)

	got, err := svc.Resolve(context.Background(), 2025, time.July)
	require.NoError(t, err)
	assert.Equal(t, summer.ID, got.ID)

	got, err = svc.Resolve(context.Background(), 2025, time.December)
	require.NoError(t, err)
	assert.Equal(t, def.ID, got.ID, "months outside the window fall back to default")
}

func TestResolve_LazyDefaultCreation(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	got, err := svc.Resolve(context.Background(), 2025, time.June)
	require.NoError(t, err)

	assert.True(t, repo.createCalled)
	assert.True(t, got.IsDefault)
	assert.Equal(t, domain.DefaultConfigName, got.Name)
}

func TestResolve_LostRaceRereads(t *testing.T) {
	repo := newConfigRepoStub()
	svc := newService(repo)

	// Первый Find не видит дефолта, Create проигрывает гонку,
	// повторный Find должен увидеть чужой дефолт
	repo.createErr = configRepo.ErrDefaultExists
	repo.failFinds = 1

	winner := domain.NewDefaultConfig()
	winner.ID = 7
	repo.configs[7] = winner
	repo.nextID = 8

	got, err := svc.Resolve(context.Background(), 2025, time.June)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
}
